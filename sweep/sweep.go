// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweep drives the stages of a benchmark sweep: build the
// engine once per configuration, run every trial, aggregate the logs
// and plot the results.
package sweep

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/txbench/ccsweep/aggregate"
	"github.com/txbench/ccsweep/build"
	"github.com/txbench/ccsweep/chart"
	"github.com/txbench/ccsweep/executor"
	"github.com/txbench/ccsweep/recipe"
	"github.com/txbench/ccsweep/trial"
)

// SummaryFile is the name, within the result directory, of the
// benchmark-format summary written by Plot.
const SummaryFile = "summary.txt"

// A Sweep runs one recipe under one Config.
type Sweep struct {
	Config   Config
	Recipe   recipe.Recipe
	Executor executor.Executor
	Log      logrus.FieldLogger

	// Out receives the results table printed by Plot. Nil
	// discards it.
	Out io.Writer
}

// New returns a Sweep of r under c. Commands are executed locally, or
// only logged if c.DryRun is set.
func New(c Config, r recipe.Recipe, log logrus.FieldLogger) (*Sweep, error) {
	if err := r.Validate(); err != nil {
		return nil, errors.Wrapf(err, "recipe %s", r.Name())
	}
	var ex executor.Executor = executor.NewLocal(log)
	if c.DryRun {
		ex = executor.NewDryRun(log)
	}
	return &Sweep{Config: c, Recipe: r, Executor: ex, Log: log.WithField("recipe", r.Name())}, nil
}

// Build compiles every binary the recipe needs.
func (s *Sweep) Build(ctx context.Context) ([]recipe.BuildConfig, error) {
	c := &s.Config
	if err := mkdirs(c.BuildDir, c.CompileLogDir); err != nil {
		return nil, err
	}
	o := &build.Orchestrator{
		Recipe:    s.Recipe,
		Executor:  s.Executor,
		Log:       s.Log,
		SourceDir: c.SourceDir,
		BuildDir:  c.BuildDir,
		LogDir:    c.CompileLogDir,
		CMake:     c.CMake,
		Make:      c.Make,
		Jobs:      c.Jobs,
	}
	built, err := o.Build(ctx, s.Recipe.Experiments())
	if err != nil {
		return built, err
	}
	s.Log.Infof("Built %d configurations", len(built))
	return built, nil
}

// Run runs every trial of the recipe and returns the number run.
func (s *Sweep) Run(ctx context.Context) (int, error) {
	c := &s.Config
	if err := mkdirs(c.ResultDir); err != nil {
		return 0, err
	}
	r := &trial.Runner{
		Recipe:       s.Recipe,
		Executor:     s.Executor,
		Log:          s.Log,
		BinDir:       c.BinDir,
		ResultDir:    c.ResultDir,
		Trials:       c.Trials,
		Seconds:      c.Seconds,
		SkipExisting: c.SkipExisting,
	}
	n, err := r.Run(ctx, s.Recipe.Experiments())
	if err != nil {
		return n, err
	}
	s.Log.Infof("Ran %d trials", n)
	return n, nil
}

// Plot aggregates the trial logs, writes the summary and renders one
// figure per group. It returns the paths of the figures.
func (s *Sweep) Plot(ctx context.Context) ([]string, error) {
	c := &s.Config
	a := &aggregate.Aggregator{
		Recipe:  s.Recipe,
		Source:  aggregate.Dir(c.ResultDir),
		Trials:  c.Trials,
		Seconds: c.Seconds,
	}
	results, err := a.AggregateAll(s.Recipe.Experiments())
	if err != nil {
		return nil, err
	}

	summary := filepath.Join(c.ResultDir, SummaryFile)
	if err := writeFile(summary, func(w io.Writer) error {
		return aggregate.WriteSummary(w, s.Recipe, c.Seconds, results)
	}); err != nil {
		return nil, err
	}
	s.Log.WithField("file", summary).Info("Wrote summary")
	if s.Out != nil {
		if err := aggregate.WriteTable(s.Out, results); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	paths, err := chart.RenderAll(chart.Build(s.Recipe, c.Seconds, results), c.PlotDir)
	if err != nil {
		return paths, errors.Wrap(err, "plotting")
	}
	for _, p := range paths {
		s.Log.WithField("file", p).Info("Wrote figure")
	}
	return paths, nil
}

// All runs Build, Run and Plot in order, stopping at the first error.
func (s *Sweep) All(ctx context.Context) ([]string, error) {
	if _, err := s.Build(ctx); err != nil {
		return nil, err
	}
	if _, err := s.Run(ctx); err != nil {
		return nil, err
	}
	return s.Plot(ctx)
}

func mkdirs(dirs ...string) error {
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0777); err != nil {
			return errors.Wrap(err, "creating directory")
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}
