// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aggregate reads back the trial logs of a sweep and averages
// them per experiment.
package aggregate

import (
	"io"
	"os"
	"path/filepath"

	"github.com/aclements/go-moremath/stats"
	"github.com/pkg/errors"

	"github.com/txbench/ccsweep/recipe"
	"github.com/txbench/ccsweep/txlog"
)

// A Source opens trial logs by file name.
type Source interface {
	Open(name string) (io.ReadCloser, error)
}

// Dir is a Source reading logs from a directory.
type Dir string

func (d Dir) Open(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(string(d), name))
}

// A Trial is the outcome of one run.
type Trial struct {
	txlog.Metrics
	AbortRate float64
}

// A Result averages the trials of one experiment. Throughput and
// AbortRate are arithmetic means over Trials; the abort rate is
// averaged per trial, not computed from summed counts.
type Result struct {
	Experiment recipe.Experiment
	Throughput float64 // transactions per second
	AbortRate  float64
	Trials     []Trial
}

// An Aggregator computes Results from the logs in Source.
type Aggregator struct {
	Recipe  recipe.Recipe
	Source  Source
	Trials  int
	Seconds int

	r txlog.Reader
}

// Aggregate reads the logs of every trial of e and averages them. A
// log missing a metric yields a *txlog.MissingMetricError, a trial
// with neither commits nor aborts a *txlog.UndefinedAbortRateError;
// both are wrapped with the experiment.
func (a *Aggregator) Aggregate(e recipe.Experiment) (*Result, error) {
	if a.Trials < 1 {
		return nil, errors.Errorf("trial count %d must be at least 1", a.Trials)
	}
	res := &Result{Experiment: e, Trials: make([]Trial, 0, a.Trials)}
	tputs := make([]float64, 0, a.Trials)
	rates := make([]float64, 0, a.Trials)
	for i := 0; i < a.Trials; i++ {
		name := a.Recipe.LogName(e, a.Seconds, i)
		m, err := a.read(name)
		if err != nil {
			return nil, errors.Wrapf(err, "aggregating %v", e)
		}
		rate, err := m.AbortRate()
		if err != nil {
			return nil, errors.Wrapf(err, "aggregating %v", e)
		}
		res.Trials = append(res.Trials, Trial{Metrics: m, AbortRate: rate})
		tputs = append(tputs, m.Throughput)
		rates = append(rates, rate)
	}
	res.Throughput = stats.Mean(tputs)
	res.AbortRate = stats.Mean(rates)
	return res, nil
}

// AggregateAll aggregates es in order, stopping at the first error.
func (a *Aggregator) AggregateAll(es []recipe.Experiment) ([]*Result, error) {
	out := make([]*Result, 0, len(es))
	for _, e := range es {
		r, err := a.Aggregate(e)
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (a *Aggregator) read(name string) (txlog.Metrics, error) {
	rc, err := a.Source.Open(name)
	if err != nil {
		return txlog.Metrics{}, err
	}
	defer rc.Close()
	a.r.Reset(rc, name)
	return a.r.Read()
}
