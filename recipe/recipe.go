// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package recipe describes benchmark sweeps over a transactional
// engine: the ordered matrix of experiments, how each experiment maps
// to a compile-time configuration, and how experiments, logs and plots
// are named on disk.
//
// Everything in this package is pure. Two recipes are provided: TPCC,
// which sweeps protocols and thread counts with the warehouse count
// pinned to the thread count, and YCSB, which additionally sweeps a
// fixed list of workload presets.
package recipe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// An Experiment is one point of a sweep matrix. It is a plain value
// and may be used as a map key. Fields that do not apply to a recipe
// are zero.
type Experiment struct {
	Protocol string
	Threads  int

	// Warehouses is set by the TPCC recipe.
	Warehouses int

	// Payload, Workload, Records, Skew and Reps are set by the
	// YCSB recipe.
	Payload  int
	Workload string
	Records  int
	Skew     float64
	Reps     int
}

// A BuildConfig is the projection of an Experiment onto the fields
// that select a distinct engine binary.
type BuildConfig struct {
	Protocol string
	Payload  int // 0 when the recipe has no payload dimension
}

// A Group is the key under which experiments are plotted together.
// It is an Experiment with the protocol and thread count cleared.
type Group struct {
	Experiment
}

// A Recipe generates a sweep matrix and names its artifacts.
type Recipe interface {
	// Name returns the recipe name, e.g. "tpcc".
	Name() string

	// Benchmark returns the engine's benchmark selector, e.g. "TPCC".
	Benchmark() string

	// Experiments returns the sweep matrix. The result is freshly
	// allocated and identical across calls. For a fixed protocol
	// and group, thread counts appear in ascending input order.
	Experiments() []Experiment

	// Build projects e onto its compile-time configuration.
	Build(e Experiment) BuildConfig

	// BinaryName returns the file name of the binary for b.
	BinaryName(b BuildConfig) string

	// Defines returns the configure-time definitions for b, in
	// "KEY=VALUE" form without the -D prefix.
	Defines(b BuildConfig) []string

	// Args returns the positional arguments for running e for
	// the given number of seconds.
	Args(e Experiment, seconds int) []string

	// LogName returns the log file name of trial i of e.
	LogName(e Experiment, seconds, trial int) string

	// Group returns the plotting group of e.
	Group(e Experiment) Group

	// PlotName returns the image file name for g.
	PlotName(g Group) string

	// PlotTitle returns the figure title for g.
	PlotTitle(g Group) string

	// XLabel returns the thread axis label.
	XLabel(seconds int) string

	// Validate reports whether the recipe's domains are usable.
	Validate() error
}

// DefaultProtocols are the protocols compared by the default recipes.
var DefaultProtocols = []string{"silo", "nowait", "mvto"}

// DefaultThreads are the thread counts swept by the default recipes.
var DefaultThreads = []int{1, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120}

// Lookup returns the default recipe called name.
func Lookup(name string) (Recipe, error) {
	switch strings.ToLower(name) {
	case "tpcc":
		return DefaultTPCC(), nil
	case "ycsb":
		return DefaultYCSB(), nil
	}
	return nil, fmt.Errorf("unknown recipe %q (want tpcc or ycsb)", name)
}

// Names lists the recipes known to Lookup.
func Names() []string {
	return []string{"tpcc", "ycsb"}
}

// BuildConfigs returns the distinct build configurations of es in
// first-encounter order.
func BuildConfigs(r Recipe, es []Experiment) []BuildConfig {
	seen := make(map[BuildConfig]bool)
	var out []BuildConfig
	for _, e := range es {
		b := r.Build(e)
		if seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}

// String returns the short name of a build, e.g. "silo" or
// "ycsb100_nowait". It doubles as the compile log stem.
func (b BuildConfig) String() string {
	if b.Payload == 0 {
		return b.Protocol
	}
	return "ycsb" + strconv.Itoa(b.Payload) + "_" + b.Protocol
}

func (e Experiment) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] T:%d", e.Protocol, e.Threads)
	if e.Warehouses != 0 {
		fmt.Fprintf(&sb, " W:%d", e.Warehouses)
	}
	if e.Workload != "" {
		fmt.Fprintf(&sb, " P:%d WL:%s R:%d θ:%s reps:%d", e.Payload, e.Workload, e.Records, formatSkew(e.Skew), e.Reps)
	}
	return sb.String()
}

var protocolRE = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func validateCommon(protocols []string, threads []int) error {
	if len(protocols) == 0 {
		return fmt.Errorf("no protocols")
	}
	if len(threads) == 0 {
		return fmt.Errorf("no thread counts")
	}
	seen := make(map[string]bool)
	for _, p := range protocols {
		if !protocolRE.MatchString(p) {
			return fmt.Errorf("protocol %q must be a lowercase identifier", p)
		}
		if seen[p] {
			return fmt.Errorf("duplicate protocol %q", p)
		}
		seen[p] = true
	}
	for i, t := range threads {
		if t <= 0 {
			return fmt.Errorf("thread count %d must be positive", t)
		}
		if i > 0 && t <= threads[i-1] {
			return fmt.Errorf("thread counts must be strictly ascending, got %d after %d", t, threads[i-1])
		}
	}
	return nil
}

// formatSkew returns the shortest decimal form of skew, as the engine
// accepts it on the command line.
func formatSkew(skew float64) string {
	return strconv.FormatFloat(skew, 'f', -1, 64)
}

// encodeSkew returns skew in file name form. Values below 1 drop the
// decimal point ("0.99" → "099"); larger values replace it with "p" so
// that the encoding stays injective.
func encodeSkew(skew float64) string {
	s := formatSkew(skew)
	if skew < 1 {
		return strings.Replace(s, ".", "", 1)
	}
	return strings.Replace(s, ".", "p", 1)
}
