// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trial runs the engine binaries of a sweep, writing one log
// file per (experiment, trial).
package trial

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/txbench/ccsweep/executor"
	"github.com/txbench/ccsweep/recipe"
	"github.com/txbench/ccsweep/txlog"
)

// An Error reports a failed trial.
type Error struct {
	Experiment recipe.Experiment
	Trial      int
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v trial %d: %v", e.Experiment, e.Trial, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// A Runner executes trials sequentially.
type Runner struct {
	Recipe   recipe.Recipe
	Executor executor.Executor
	Log      logrus.FieldLogger

	// BinDir holds the compiled binaries. ResultDir receives the
	// trial logs. Binaries run with BinDir as working directory.
	BinDir    string
	ResultDir string

	// Trials is the number of replications per experiment and
	// Seconds the duration passed to each run.
	Trials  int
	Seconds int

	// SkipExisting skips trials whose log already exists and holds
	// every metric, so an interrupted sweep can be resumed.
	SkipExisting bool
}

// Run runs every trial of es, stopping at the first failure. It
// returns the number of trials executed.
func (r *Runner) Run(ctx context.Context, es []recipe.Experiment) (int, error) {
	if r.Trials < 1 {
		return 0, fmt.Errorf("trial count %d must be at least 1", r.Trials)
	}
	ran := 0
	for _, e := range es {
		bin := filepath.Join(r.BinDir, r.Recipe.BinaryName(r.Recipe.Build(e)))
		args := r.Recipe.Args(e, r.Seconds)
		log := r.Log.WithField("experiment", e.String())
		log.Infof("Running %s %v", filepath.Base(bin), args)
		for i := 0; i < r.Trials; i++ {
			out := r.LogPath(e, i)
			tlog := log.WithField("trial", i)
			if r.SkipExisting && complete(out) {
				tlog.Debugf("Skipping, %s is complete", out)
				continue
			}
			tlog.Debug("Trial")
			c := executor.Command{Dir: r.BinDir, Path: bin, Args: args, Output: out}
			if err := r.Executor.Execute(ctx, c); err != nil {
				return ran, &Error{Experiment: e, Trial: i, Err: err}
			}
			ran++
		}
	}
	return ran, nil
}

// LogPath returns the path of the log of trial i of e.
func (r *Runner) LogPath(e recipe.Experiment, i int) string {
	return filepath.Join(r.ResultDir, r.Recipe.LogName(e, r.Seconds, i))
}

// complete reports whether the log at path parses with every metric.
func complete(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	_, err = txlog.Parse(f, path)
	return err == nil
}
