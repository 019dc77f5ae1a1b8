// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws sweep results as two-panel line charts:
// throughput on the left, abort rate on the right, both against the
// thread count, one line per protocol.
package chart

import (
	"github.com/txbench/ccsweep/aggregate"
	"github.com/txbench/ccsweep/recipe"
)

// A Point is one aggregated experiment on a series.
type Point struct {
	Threads    int
	Throughput float64 // transactions per second
	AbortRate  float64
}

// A Series is the line of one protocol within a Figure.
type Series struct {
	Label  string
	Points []Point
}

// A Figure is one image: every result of one recipe.Group.
type Figure struct {
	Group  recipe.Group
	Title  string
	XLabel string
	File   string // image file name

	Series []*Series
}

// Build groups results into figures. Figures are ordered by the first
// appearance of their group in results, series within a figure by the
// first appearance of their protocol, and points in input order, which
// for a recipe's matrix is ascending thread count.
func Build(r recipe.Recipe, seconds int, results []*aggregate.Result) []*Figure {
	var figs []*Figure
	byGroup := make(map[recipe.Group]*Figure)
	for _, res := range results {
		e := res.Experiment
		g := r.Group(e)
		fig, ok := byGroup[g]
		if !ok {
			fig = &Figure{
				Group:  g,
				Title:  r.PlotTitle(g),
				XLabel: r.XLabel(seconds),
				File:   r.PlotName(g),
			}
			byGroup[g] = fig
			figs = append(figs, fig)
		}
		s := fig.series(e.Protocol)
		s.Points = append(s.Points, Point{
			Threads:    e.Threads,
			Throughput: res.Throughput,
			AbortRate:  res.AbortRate,
		})
	}
	return figs
}

func (f *Figure) series(label string) *Series {
	for _, s := range f.Series {
		if s.Label == label {
			return s
		}
	}
	s := &Series{Label: label}
	f.Series = append(f.Series, s)
	return s
}
