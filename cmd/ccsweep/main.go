// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Ccsweep builds a transactional engine once per configuration, runs
// a benchmark sweep over concurrency control protocols and thread
// counts, and plots throughput and abort rate.
//
// Usage:
//
//	ccsweep [flags] matrix <recipe>
//	ccsweep [flags] build <recipe>
//	ccsweep [flags] run <recipe>
//	ccsweep [flags] plot <recipe>
//	ccsweep [flags] all <recipe>
//
// The recipes are "tpcc" and "ycsb". "all" runs build, run and plot
// in order. Flags may also be given in a YAML file named by -config,
// or as CCSWEEP_* environment variables, e.g. CCSWEEP_TRIALS=3.
//
// Trial logs are written to <source-dir>/build/bin/res and figures to
// <source-dir>/build/bin/res/plots unless overridden. Any failure
// exits with status 1.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	log := logrus.New()
	err := newRootCmd(log).ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
