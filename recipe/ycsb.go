// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Preset fixes every YCSB workload parameter except protocol and
// thread count.
type Preset struct {
	Payload  int     // bytes per record; compile-time
	Workload string  // YCSB workload letter
	Records  int     // table size
	Skew     float64 // Zipfian theta
	Reps     int     // operations per transaction
}

// DefaultPresets reproduce the workloads of published comparisons:
// the first two after Cicada, the other three after TicToc.
var DefaultPresets = []Preset{
	{Payload: 100, Workload: "B", Records: 10000000, Skew: 0.99, Reps: 16},
	{Payload: 100, Workload: "A", Records: 10000000, Skew: 0.99, Reps: 1},
	{Payload: 1024, Workload: "C", Records: 10000000, Skew: 0, Reps: 2},
	{Payload: 1024, Workload: "A", Records: 10000000, Skew: 0.8, Reps: 16},
	{Payload: 1024, Workload: "B", Records: 10000000, Skew: 0.9, Reps: 16},
}

// YCSB sweeps protocols, thread counts and workload presets. The
// payload size is a compile-time parameter, so each (protocol,
// payload) pair is a separate binary. One figure is drawn per preset.
type YCSB struct {
	Protocols []string
	Threads   []int
	Presets   []Preset
}

var _ Recipe = (*YCSB)(nil)

// DefaultYCSB returns the YCSB recipe with the default protocols,
// thread counts and presets.
func DefaultYCSB() *YCSB {
	return &YCSB{
		Protocols: append([]string(nil), DefaultProtocols...),
		Threads:   append([]int(nil), DefaultThreads...),
		Presets:   append([]Preset(nil), DefaultPresets...),
	}
}

func (*YCSB) Name() string      { return "ycsb" }
func (*YCSB) Benchmark() string { return "YCSB" }

// Experiments returns protocol × threads × presets. The preset varies
// fastest; for any fixed protocol and preset the thread counts still
// appear in ascending order.
func (r *YCSB) Experiments() []Experiment {
	out := make([]Experiment, 0, len(r.Protocols)*len(r.Threads)*len(r.Presets))
	for _, p := range r.Protocols {
		for _, t := range r.Threads {
			for _, s := range r.Presets {
				out = append(out, Experiment{
					Protocol: p,
					Threads:  t,
					Payload:  s.Payload,
					Workload: s.Workload,
					Records:  s.Records,
					Skew:     s.Skew,
					Reps:     s.Reps,
				})
			}
		}
	}
	return out
}

func (*YCSB) Build(e Experiment) BuildConfig {
	return BuildConfig{Protocol: e.Protocol, Payload: e.Payload}
}

func (*YCSB) BinaryName(b BuildConfig) string {
	return b.String()
}

func (r *YCSB) Defines(b BuildConfig) []string {
	return []string{
		"LOG_LEVEL=0",
		"CMAKE_BUILD_TYPE=Release",
		"BENCHMARK=" + r.Benchmark(),
		"CC_ALG=" + strings.ToUpper(b.Protocol),
		"PAYLOAD_SIZE=" + strconv.Itoa(b.Payload),
	}
}

// Args returns "workload records threads seconds skew reps".
func (*YCSB) Args(e Experiment, seconds int) []string {
	return []string{
		e.Workload,
		strconv.Itoa(e.Records),
		strconv.Itoa(e.Threads),
		strconv.Itoa(seconds),
		formatSkew(e.Skew),
		strconv.Itoa(e.Reps),
	}
}

// LogName returns e.g.
// "YCSBsiloP100WBR10000000T10S10Theta099Reps16.log0".
func (*YCSB) LogName(e Experiment, seconds, trial int) string {
	return "YCSB" + e.Protocol +
		"P" + strconv.Itoa(e.Payload) +
		"W" + e.Workload +
		"R" + strconv.Itoa(e.Records) +
		"T" + strconv.Itoa(e.Threads) +
		"S" + strconv.Itoa(seconds) +
		"Theta" + encodeSkew(e.Skew) +
		"Reps" + strconv.Itoa(e.Reps) +
		".log" + strconv.Itoa(trial)
}

func (*YCSB) Group(e Experiment) Group {
	return Group{Experiment{
		Payload:  e.Payload,
		Workload: e.Workload,
		Records:  e.Records,
		Skew:     e.Skew,
		Reps:     e.Reps,
	}}
}

// PlotName returns e.g. "YCSB(B)P100R10000000THETA099REPS16.png".
func (*YCSB) PlotName(g Group) string {
	return fmt.Sprintf("YCSB(%s)P%dR%dTHETA%sREPS%d.png", g.Workload, g.Payload, g.Records, encodeSkew(g.Skew), g.Reps)
}

func (*YCSB) PlotTitle(g Group) string {
	return fmt.Sprintf("YCSB-%s, %d records each with %d bytes, θ = %s, %d reps per txn",
		g.Workload, g.Records, g.Payload, formatSkew(g.Skew), g.Reps)
}

func (*YCSB) XLabel(seconds int) string {
	return "Thread Count (" + strconv.Itoa(seconds) + " seconds)"
}

func (r *YCSB) Validate() error {
	if err := validateCommon(r.Protocols, r.Threads); err != nil {
		return err
	}
	if len(r.Presets) == 0 {
		return fmt.Errorf("no workload presets")
	}
	seen := make(map[Preset]bool)
	for _, p := range r.Presets {
		if err := p.validate(); err != nil {
			return err
		}
		if seen[p] {
			return fmt.Errorf("duplicate preset %+v", p)
		}
		seen[p] = true
	}
	return nil
}

func (p Preset) validate() error {
	switch {
	case p.Payload <= 0:
		return fmt.Errorf("preset %+v: payload must be positive", p)
	case len(p.Workload) != 1 || p.Workload[0] < 'A' || p.Workload[0] > 'F':
		return fmt.Errorf("preset %+v: workload must be one of A-F", p)
	case p.Records <= 0:
		return fmt.Errorf("preset %+v: record count must be positive", p)
	case p.Skew < 0 || math.IsNaN(p.Skew) || math.IsInf(p.Skew, 0):
		return fmt.Errorf("preset %+v: skew must be a non-negative number", p)
	case p.Reps <= 0:
		return fmt.Errorf("preset %+v: reps must be positive", p)
	}
	return nil
}
