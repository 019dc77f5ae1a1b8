// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Figure geometry.
const (
	Width  = 15 * vg.Inch
	Height = 4 * vg.Inch
	DPI    = 150

	pointRad    = 3
	titleHeight = vg.Length(28)
)

// Axis labels of the two panels.
const (
	ThroughputLabel = "Throughput (Million txns/s)"
	AbortRateLabel  = "Abort Rate"
)

// Panels returns the throughput and abort-rate plots of f. Only the
// throughput plot carries a legend.
func Panels(f *Figure) (tput, aborts *plot.Plot, err error) {
	tput = newPanel(f.XLabel, ThroughputLabel)
	aborts = newPanel(f.XLabel, AbortRateLabel)
	tput.Legend.Top = true
	tput.Legend.Left = true

	for i, s := range f.Series {
		tputXYs := make(plotter.XYs, len(s.Points))
		rateXYs := make(plotter.XYs, len(s.Points))
		for j, p := range s.Points {
			tputXYs[j] = plotter.XY{X: float64(p.Threads), Y: p.Throughput / 1e6}
			rateXYs[j] = plotter.XY{X: float64(p.Threads), Y: p.AbortRate}
		}

		l, sc, err := styledLine(tputXYs, i)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "series %s", s.Label)
		}
		tput.Add(l, sc)
		tput.Legend.Add(s.Label, l, sc)

		l, sc, err = styledLine(rateXYs, i)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "series %s", s.Label)
		}
		aborts.Add(l, sc)
	}
	return tput, aborts, nil
}

func newPanel(xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = IntegerTicks{}
	p.Add(plotter.NewGrid())
	return p
}

// styledLine returns the line and markers of series i.
func styledLine(xys plotter.XYs, i int) (*plotter.Line, *plotter.Scatter, error) {
	l, sc, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, nil, err
	}
	clr := plotutil.Color(i)
	l.Color = clr
	l.Width = vg.Points(1.5)
	sc.GlyphStyle.Shape = Markers[i%len(Markers)]
	sc.GlyphStyle.Color = clr
	sc.GlyphStyle.Radius = vg.Points(pointRad)
	return l, sc, nil
}

// Render draws f into a PNG file named f.File in dir and returns its
// path. dir is created if necessary.
func Render(f *Figure, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return "", err
	}
	tput, aborts, err := Panels(f)
	if err != nil {
		return "", errors.Wrap(err, f.File)
	}

	img := vgimg.NewWith(vgimg.UseWH(Width, Height), vgimg.UseDPI(DPI), vgimg.UseBackgroundColor(color.White))
	dc := draw.New(img)

	sty := tput.Title.TextStyle
	sty.Font.Size = vg.Points(14)
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YTop
	dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - vg.Points(6)}, f.Title)

	body := draw.Crop(dc, 0, 0, 0, -titleHeight)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Points(30),
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(10),
	}
	canvases := plot.Align([][]*plot.Plot{{tput, aborts}}, tiles, body)
	tput.Draw(canvases[0][0])
	aborts.Draw(canvases[0][1])

	path := filepath.Join(dir, f.File)
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(file); err != nil {
		file.Close()
		return "", errors.Wrapf(err, "writing %s", path)
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// RenderAll renders every figure into dir and returns the image paths.
func RenderAll(figs []*Figure, dir string) ([]string, error) {
	paths := make([]string, 0, len(figs))
	for _, f := range figs {
		p, err := Render(f, dir)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// IntegerTicks is a plot.Ticker that only places ticks on integers.
type IntegerTicks struct{}

var _ plot.Ticker = IntegerTicks{}

// Ticks returns the integer-valued subset of the default ticks, or a
// tick on every integer in range if that subset would be too sparse.
func (IntegerTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	majors := 0
	for _, t := range (plot.DefaultTicks{}).Ticks(min, max) {
		if t.Value != math.Trunc(t.Value) {
			continue
		}
		if t.Label != "" {
			majors++
		}
		ticks = append(ticks, t)
	}
	if majors >= 2 {
		return ticks
	}
	ticks = ticks[:0]
	for v := math.Ceil(min); v <= max; v++ {
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return ticks
}
