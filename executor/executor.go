// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor runs external commands to completion.
//
// A sweep runs one command at a time and waits for it; there is no
// background task handle. Output of a command either goes to a file,
// which becomes a durable record of the run, or to the driver's own
// standard output.
package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// A Command describes one invocation of an external program.
type Command struct {
	// Dir is the working directory. Empty means the driver's.
	Dir string

	// Path is the program to run. It is resolved with exec.LookPath
	// if it contains no path separator.
	Path string
	Args []string

	// Output is the file that receives the combined standard
	// output and standard error. It is created or truncated. Empty
	// means the driver's standard output and standard error.
	Output string
}

func (c Command) String() string {
	s := c.Path
	if len(c.Args) > 0 {
		s += " " + strings.Join(c.Args, " ")
	}
	if c.Output != "" {
		s += " > " + c.Output + " 2>&1"
	}
	return s
}

// Executor runs commands.
type Executor interface {
	// Execute runs c and blocks until it exits. A command that
	// cannot be started or exits with a nonzero status yields an
	// *ExitError.
	Execute(ctx context.Context, c Command) error
}

// An ExitError reports a command that failed to start or exited
// unsuccessfully.
type ExitError struct {
	Command Command

	// ExitCode is the exit status, or -1 if the command could not
	// be started or was killed by a signal.
	ExitCode int

	Err error
}

func (e *ExitError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s: %v", e.Command.Path, e.Err)
	}
	return fmt.Sprintf("%s: exit status %d", e.Command.Path, e.ExitCode)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Local runs commands on the local machine as the current user.
type Local struct {
	log logrus.FieldLogger
}

var _ Executor = (*Local)(nil)

// NewLocal returns a Local executor that logs to log.
func NewLocal(log logrus.FieldLogger) *Local {
	return &Local{log: log}
}

func (l *Local) Execute(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	if c.Output == "" {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		f, err := os.Create(c.Output)
		if err != nil {
			return &ExitError{Command: c, ExitCode: -1, Err: errors.Wrap(err, "creating output file")}
		}
		defer f.Close()
		// One descriptor for both streams keeps their interleaving.
		cmd.Stdout = f
		cmd.Stderr = f
	}

	l.log.Debugf("Starting %s", c)
	start := time.Now()
	err := cmd.Run()
	if err != nil {
		code := -1
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			code = ee.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Wrap(ctxErr, err.Error())
		}
		l.log.Debugf("Ended %s with status %d after %v", c, code, time.Since(start))
		return &ExitError{Command: c, ExitCode: code, Err: err}
	}
	l.log.Debugf("Ended %s after %v", c, time.Since(start))
	return nil
}

// DryRun logs commands instead of running them.
type DryRun struct {
	log logrus.FieldLogger
}

var _ Executor = (*DryRun)(nil)

// NewDryRun returns a DryRun executor that logs to log.
func NewDryRun(log logrus.FieldLogger) *DryRun {
	return &DryRun{log: log}
}

func (d *DryRun) Execute(ctx context.Context, c Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.Dir != "" {
		d.log.Infof("(cd %s && %s)", c.Dir, c)
	} else {
		d.log.Info(c.String())
	}
	return nil
}
