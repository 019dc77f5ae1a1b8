// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Markers is the cyclic palette of point markers. Series i of a figure
// uses Markers[i%len(Markers)] on both panels.
var Markers = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	TriDown{},
	draw.SquareGlyph{},
	draw.PyramidGlyph{},
	draw.PlusGlyph{},
	StarGlyph{},
	CrossGlyph{},
	DiamondGlyph{},
	TriUp{},
	draw.RingGlyph{},
	draw.BoxGlyph{},
}

const (
	cosπover4 = vg.Length(.707106781202420)
	sinπover6 = vg.Length(.500000000025921)
	cosπover6 = vg.Length(.866025403769473)
)

// CrossGlyph is a glyph that draws a big X.
// this version draws a heavier X.
type CrossGlyph struct{}

// DrawGlyph implements the Glyph interface.
func (CrossGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(2)})
	r := sty.Radius * cosπover4
	p := make(vg.Path, 0, 2)
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y + r})
	c.Stroke(p)
	p = p[:0]
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y - r})
	c.Stroke(p)
}

// TriDown is a filled triangle pointing down.
type TriDown struct{}

// DrawGlyph implements the Glyph interface.
func (TriDown) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetColor(sty.Color)
	r := sty.Radius + (sty.Radius-sty.Radius*sinπover6)/2
	p := make(vg.Path, 0, 4)
	p.Move(vg.Point{X: pt.X, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X - r*cosπover6, Y: pt.Y + r*sinπover6})
	p.Line(vg.Point{X: pt.X + r*cosπover6, Y: pt.Y + r*sinπover6})
	p.Close()
	c.Fill(p)
}

// TriUp is an open three-pronged marker pointing up.
type TriUp struct{}

// DrawGlyph implements the Glyph interface.
func (TriUp) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(1)})
	r := sty.Radius * cosπover4
	p := make(vg.Path, 0, 3)
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X, Y: pt.Y + r})
	c.Stroke(p)
	p = p[:0]
	p.Move(vg.Point{X: pt.X + r, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X, Y: pt.Y + r})
	c.Stroke(p)
	p = p[:0]
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y})
	c.Stroke(p)
}

// DiamondGlyph is a filled square rotated by 45°.
type DiamondGlyph struct{}

// DrawGlyph implements the Glyph interface.
func (DiamondGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetColor(sty.Color)
	r := sty.Radius
	p := make(vg.Path, 0, 5)
	p.Move(vg.Point{X: pt.X, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y})
	p.Line(vg.Point{X: pt.X, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X - r, Y: pt.Y})
	p.Close()
	c.Fill(p)
}

// StarGlyph is a filled five-pointed star.
type StarGlyph struct{}

// starPoints are the unit-radius vertices of a five-pointed star,
// starting at the top and alternating outer and inner points.
var starPoints = [10]vg.Point{
	{X: 0, Y: 1},
	{X: 0.2245, Y: 0.3090},
	{X: 0.9511, Y: 0.3090},
	{X: 0.3633, Y: -0.1180},
	{X: 0.5878, Y: -0.8090},
	{X: 0, Y: -0.3820},
	{X: -0.5878, Y: -0.8090},
	{X: -0.3633, Y: -0.1180},
	{X: -0.9511, Y: 0.3090},
	{X: -0.2245, Y: 0.3090},
}

// DrawGlyph implements the Glyph interface.
func (StarGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetColor(sty.Color)
	r := sty.Radius * 1.3
	p := make(vg.Path, 0, len(starPoints)+1)
	for i, s := range starPoints {
		q := vg.Point{X: pt.X + r*s.X, Y: pt.Y + r*s.Y}
		if i == 0 {
			p.Move(q)
		} else {
			p.Line(q)
		}
	}
	p.Close()
	c.Fill(p)
}
