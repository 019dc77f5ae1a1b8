// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/txbench/ccsweep/build"
	"github.com/txbench/ccsweep/recipe"
	"github.com/txbench/ccsweep/sweep"
)

func newRootCmd(log *logrus.Logger) *cobra.Command {
	var configFile string
	root := &cobra.Command{
		Use:           "ccsweep",
		Short:         "Benchmark sweeps over concurrency control protocols",
		Long:          "ccsweep builds the engine once per configuration, runs every trial of a sweep and plots throughput and abort rate against the thread count.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "read configuration from YAML `file`")
	sweep.Flags(root.PersistentFlags(), sweep.Default())

	// setup loads the configuration and the recipe named by args[0].
	setup := func(cmd *cobra.Command, args []string) (*sweep.Sweep, error) {
		c, err := sweep.Load(configFile, cmd.Flags(), sweep.Default())
		if err != nil {
			return nil, err
		}
		log.SetLevel(c.Level())
		r, err := recipe.Lookup(args[0])
		if err != nil {
			return nil, err
		}
		s, err := sweep.New(c, r, log)
		if err != nil {
			return nil, err
		}
		s.Out = cmd.OutOrStdout()
		return s, nil
	}

	stage := func(name, short string, run func(context.Context, *sweep.Sweep) error) *cobra.Command {
		return &cobra.Command{
			Use:       name + " <recipe>",
			Short:     short,
			Args:      cobra.ExactArgs(1),
			ValidArgs: recipe.Names(),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := setup(cmd, args)
				if err != nil {
					return err
				}
				return errors.Wrap(run(cmd.Context(), s), name)
			},
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:       "matrix <recipe>",
			Short:     "Print the experiments, builds and log names of a recipe",
			Args:      cobra.ExactArgs(1),
			ValidArgs: recipe.Names(),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := sweep.Load(configFile, cmd.Flags(), sweep.Default())
				if err != nil {
					return err
				}
				r, err := recipe.Lookup(args[0])
				if err != nil {
					return err
				}
				if err := r.Validate(); err != nil {
					return err
				}
				return printMatrix(cmd.OutOrStdout(), r, c)
			},
		},
		stage("build", "Compile one binary per build configuration", func(ctx context.Context, s *sweep.Sweep) error {
			_, err := s.Build(ctx)
			return err
		}),
		stage("run", "Run every trial of the sweep", func(ctx context.Context, s *sweep.Sweep) error {
			_, err := s.Run(ctx)
			return err
		}),
		stage("plot", "Aggregate trial logs and draw figures", func(ctx context.Context, s *sweep.Sweep) error {
			_, err := s.Plot(ctx)
			return err
		}),
		stage("all", "Build, run and plot", func(ctx context.Context, s *sweep.Sweep) error {
			_, err := s.All(ctx)
			return err
		}),
	)
	return root
}

// printMatrix writes the build configurations of r followed by one
// line per experiment with its binary and first log name.
func printMatrix(w io.Writer, r recipe.Recipe, c sweep.Config) error {
	es := r.Experiments()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "build\tbinary\tdefines\tcompile log\n")
	for _, b := range recipe.BuildConfigs(r, es) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b, r.BinaryName(b), strings.Join(r.Defines(b), " "), build.CompileLogName(b))
	}
	fmt.Fprintf(tw, "\nexperiment\tbinary\targs\tlog\n")
	for _, e := range es {
		fmt.Fprintf(tw, "%v\t%s\t%s\t%s\n", e, r.BinaryName(r.Build(e)), strings.Join(r.Args(e, c.Seconds), " "), r.LogName(e, c.Seconds, 0))
	}
	fmt.Fprintf(tw, "\n%d experiments, %d builds, %d trials each\n", len(es), len(recipe.BuildConfigs(r, es)), c.Trials)
	return tw.Flush()
}
