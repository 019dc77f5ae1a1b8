// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package build compiles one engine binary per distinct build
// configuration of a sweep.
package build

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/txbench/ccsweep/executor"
	"github.com/txbench/ccsweep/recipe"
)

// Stage names a step of a build.
type Stage string

const (
	Configure Stage = "configure"
	Compile   Stage = "compile"
)

// An Error reports a failed build step.
type Error struct {
	Stage  Stage
	Config recipe.BuildConfig
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Config, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// An Orchestrator configures and compiles the engine.
type Orchestrator struct {
	Recipe   recipe.Recipe
	Executor executor.Executor
	Log      logrus.FieldLogger

	// SourceDir is the engine checkout; BuildDir is where the
	// build tree lives; LogDir receives one compile log per build.
	SourceDir string
	BuildDir  string
	LogDir    string

	// CMake and Make are the build tool programs.
	CMake string
	Make  string

	// Jobs is the compile parallelism. Zero lets make decide.
	Jobs int
}

// Build compiles each distinct build configuration of es exactly
// once, in first-encounter order, and returns the configurations
// built. It stops at the first failing step.
func (o *Orchestrator) Build(ctx context.Context, es []recipe.Experiment) ([]recipe.BuildConfig, error) {
	var built []recipe.BuildConfig
	seen := make(map[recipe.BuildConfig]bool)
	for _, e := range es {
		b := o.Recipe.Build(e)
		if seen[b] {
			continue
		}
		seen[b] = true

		log := o.Log.WithField("build", b.String())
		log.Infof("Compiling %s", o.Recipe.BinaryName(b))
		if err := o.Executor.Execute(ctx, o.configureCommand(b)); err != nil {
			return built, &Error{Stage: Configure, Config: b, Err: err}
		}
		c := o.compileCommand(b)
		if err := o.Executor.Execute(ctx, c); err != nil {
			return built, &Error{Stage: Compile, Config: b, Err: errors.Wrapf(err, "see %s", c.Output)}
		}
		built = append(built, b)
	}
	return built, nil
}

func (o *Orchestrator) configureCommand(b recipe.BuildConfig) executor.Command {
	args := []string{o.SourceDir}
	for _, d := range o.Recipe.Defines(b) {
		args = append(args, "-D"+d)
	}
	return executor.Command{Dir: o.BuildDir, Path: o.CMake, Args: args}
}

func (o *Orchestrator) compileCommand(b recipe.BuildConfig) executor.Command {
	jobs := "-j"
	if o.Jobs > 0 {
		jobs += strconv.Itoa(o.Jobs)
	}
	return executor.Command{
		Dir:    o.BuildDir,
		Path:   o.Make,
		Args:   []string{jobs},
		Output: filepath.Join(o.LogDir, CompileLogName(b)),
	}
}

// CompileLogName returns the file name of the compile log of b.
func CompileLogName(b recipe.BuildConfig) string {
	return b.String() + ".compile_log"
}
