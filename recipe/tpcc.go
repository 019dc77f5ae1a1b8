// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import (
	"strconv"
	"strings"
)

// TPCC sweeps protocols and thread counts over the TPC-C benchmark.
// The warehouse count always equals the thread count, and all results
// are drawn in a single figure.
type TPCC struct {
	Protocols []string
	Threads   []int
}

var _ Recipe = (*TPCC)(nil)

// DefaultTPCC returns the TPCC recipe with the default protocols and
// thread counts.
func DefaultTPCC() *TPCC {
	return &TPCC{
		Protocols: append([]string(nil), DefaultProtocols...),
		Threads:   append([]int(nil), DefaultThreads...),
	}
}

func (*TPCC) Name() string      { return "tpcc" }
func (*TPCC) Benchmark() string { return "TPCC" }

// Experiments returns protocol × threads with threads varying fastest.
func (r *TPCC) Experiments() []Experiment {
	out := make([]Experiment, 0, len(r.Protocols)*len(r.Threads))
	for _, p := range r.Protocols {
		for _, t := range r.Threads {
			out = append(out, Experiment{Protocol: p, Threads: t, Warehouses: t})
		}
	}
	return out
}

func (*TPCC) Build(e Experiment) BuildConfig {
	return BuildConfig{Protocol: e.Protocol}
}

func (*TPCC) BinaryName(b BuildConfig) string {
	return "tpcc_" + b.Protocol
}

func (r *TPCC) Defines(b BuildConfig) []string {
	return []string{
		"LOG_LEVEL=0",
		"CMAKE_BUILD_TYPE=Release",
		"BENCHMARK=" + r.Benchmark(),
		"CC_ALG=" + strings.ToUpper(b.Protocol),
	}
}

// Args returns "warehouses threads seconds".
func (*TPCC) Args(e Experiment, seconds int) []string {
	return []string{
		strconv.Itoa(e.Warehouses),
		strconv.Itoa(e.Threads),
		strconv.Itoa(seconds),
	}
}

// LogName returns e.g. "TPCCsiloT10W10S10.log0".
func (*TPCC) LogName(e Experiment, seconds, trial int) string {
	return "TPCC" + e.Protocol +
		"T" + strconv.Itoa(e.Threads) +
		"W" + strconv.Itoa(e.Warehouses) +
		"S" + strconv.Itoa(seconds) +
		".log" + strconv.Itoa(trial)
}

// Group puts every experiment in the same figure.
func (*TPCC) Group(Experiment) Group { return Group{} }

func (*TPCC) PlotName(Group) string { return "warehouse_threadcount.png" }

func (*TPCC) PlotTitle(Group) string { return "(NP Only) TPC-C" }

func (*TPCC) XLabel(seconds int) string {
	return "Thread Count = Num Warehouse (" + strconv.Itoa(seconds) + " seconds)"
}

func (r *TPCC) Validate() error {
	return validateCommon(r.Protocols, r.Threads)
}
