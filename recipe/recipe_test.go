// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTPCCExperiments(t *testing.T) {
	r := DefaultTPCC()
	es := r.Experiments()
	if len(es) != 3*13 {
		t.Fatalf("got %d experiments, want 39", len(es))
	}
	if diff := cmp.Diff(es, r.Experiments()); diff != "" {
		t.Errorf("Experiments not deterministic (-first +second):\n%s", diff)
	}
	for i, e := range es {
		if e.Warehouses != e.Threads {
			t.Errorf("%v: warehouses %d != threads %d", e, e.Warehouses, e.Threads)
		}
		if want := DefaultProtocols[i/13]; e.Protocol != want {
			t.Errorf("experiment %d: protocol %s, want %s", i, e.Protocol, want)
		}
		if want := DefaultThreads[i%13]; e.Threads != want {
			t.Errorf("experiment %d: threads %d, want %d", i, e.Threads, want)
		}
	}
}

func TestYCSBExperiments(t *testing.T) {
	r := DefaultYCSB()
	es := r.Experiments()
	if want := 3 * 13 * 5; len(es) != want {
		t.Fatalf("got %d experiments, want %d", len(es), want)
	}
	if diff := cmp.Diff(es, r.Experiments()); diff != "" {
		t.Errorf("Experiments not deterministic (-first +second):\n%s", diff)
	}

	// Within each (protocol, group), threads must ascend.
	type key struct {
		proto string
		g     Group
	}
	last := make(map[key]int)
	groups := make(map[Group]bool)
	for _, e := range es {
		g := r.Group(e)
		groups[g] = true
		k := key{e.Protocol, g}
		if prev, ok := last[k]; ok && e.Threads <= prev {
			t.Errorf("%v: threads %d not after %d", e, e.Threads, prev)
		}
		last[k] = e.Threads
	}
	if len(groups) != len(DefaultPresets) {
		t.Errorf("got %d groups, want %d", len(groups), len(DefaultPresets))
	}
}

func TestBuildConfigs(t *testing.T) {
	tpcc := DefaultTPCC()
	got := BuildConfigs(tpcc, tpcc.Experiments())
	want := []BuildConfig{{Protocol: "silo"}, {Protocol: "nowait"}, {Protocol: "mvto"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tpcc build configs (-want +got):\n%s", diff)
	}

	ycsb := DefaultYCSB()
	got = BuildConfigs(ycsb, ycsb.Experiments())
	want = []BuildConfig{
		{"silo", 100}, {"silo", 1024},
		{"nowait", 100}, {"nowait", 1024},
		{"mvto", 100}, {"mvto", 1024},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ycsb build configs (-want +got):\n%s", diff)
	}
}

func TestLogName(t *testing.T) {
	tpcc := DefaultTPCC()
	e := Experiment{Protocol: "silo", Threads: 10, Warehouses: 10}
	if got, want := tpcc.LogName(e, 10, 0), "TPCCsiloT10W10S10.log0"; got != want {
		t.Errorf("LogName = %q, want %q", got, want)
	}
	// Only the trial suffix differs across replications.
	a, b := tpcc.LogName(e, 10, 0), tpcc.LogName(e, 10, 4)
	if strings.TrimSuffix(a, "0") != strings.TrimSuffix(b, "4") {
		t.Errorf("replications differ beyond the trial suffix: %q vs %q", a, b)
	}

	ycsb := DefaultYCSB()
	e = Experiment{Protocol: "nowait", Threads: 20, Payload: 1024, Workload: "C", Records: 10000000, Skew: 0, Reps: 2}
	if got, want := ycsb.LogName(e, 10, 3), "YCSBnowaitP1024WCR10000000T20S10Theta0Reps2.log3"; got != want {
		t.Errorf("LogName = %q, want %q", got, want)
	}
}

func TestLogNamesUnique(t *testing.T) {
	for _, name := range Names() {
		r, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		seen := make(map[string]Experiment)
		for _, e := range r.Experiments() {
			for i := 0; i < 5; i++ {
				n := r.LogName(e, 10, i)
				if prev, ok := seen[n]; ok {
					t.Errorf("%s: %v trial %d collides with %v: %s", name, e, i, prev, n)
				}
				seen[n] = e
			}
		}
	}
}

func TestEncodeSkew(t *testing.T) {
	for _, test := range []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{0.99, "099"},
		{0.8, "08"},
		{0.05, "005"},
		{1, "1"},
		{1.5, "1p5"},
		{15, "15"},
	} {
		if got := encodeSkew(test.in); got != test.want {
			t.Errorf("encodeSkew(%v) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestArgs(t *testing.T) {
	e := Experiment{Protocol: "silo", Threads: 30, Warehouses: 30}
	if diff := cmp.Diff([]string{"30", "30", "10"}, DefaultTPCC().Args(e, 10)); diff != "" {
		t.Errorf("tpcc args (-want +got):\n%s", diff)
	}
	e = Experiment{Protocol: "mvto", Threads: 40, Payload: 100, Workload: "B", Records: 10000000, Skew: 0.99, Reps: 16}
	if diff := cmp.Diff([]string{"B", "10000000", "40", "10", "0.99", "16"}, DefaultYCSB().Args(e, 10)); diff != "" {
		t.Errorf("ycsb args (-want +got):\n%s", diff)
	}
}

func TestDefinesAndBinaries(t *testing.T) {
	ycsb := DefaultYCSB()
	b := BuildConfig{Protocol: "nowait", Payload: 4}
	want := []string{"LOG_LEVEL=0", "CMAKE_BUILD_TYPE=Release", "BENCHMARK=YCSB", "CC_ALG=NOWAIT", "PAYLOAD_SIZE=4"}
	if diff := cmp.Diff(want, ycsb.Defines(b)); diff != "" {
		t.Errorf("ycsb defines (-want +got):\n%s", diff)
	}
	if got := ycsb.BinaryName(b); got != "ycsb4_nowait" {
		t.Errorf("ycsb binary = %q", got)
	}
	if got := DefaultTPCC().BinaryName(BuildConfig{Protocol: "mvto"}); got != "tpcc_mvto" {
		t.Errorf("tpcc binary = %q", got)
	}
}

func TestPlotNames(t *testing.T) {
	ycsb := DefaultYCSB()
	var got []string
	for _, p := range DefaultPresets {
		e := Experiment{Protocol: "silo", Threads: 1, Payload: p.Payload, Workload: p.Workload, Records: p.Records, Skew: p.Skew, Reps: p.Reps}
		got = append(got, ycsb.PlotName(ycsb.Group(e)))
	}
	want := []string{
		"YCSB(B)P100R10000000THETA099REPS16.png",
		"YCSB(A)P100R10000000THETA099REPS1.png",
		"YCSB(C)P1024R10000000THETA0REPS2.png",
		"YCSB(A)P1024R10000000THETA08REPS16.png",
		"YCSB(B)P1024R10000000THETA09REPS16.png",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("plot names (-want +got):\n%s", diff)
	}
	if got := DefaultTPCC().PlotName(Group{}); got != "warehouse_threadcount.png" {
		t.Errorf("tpcc plot name = %q", got)
	}
}

func TestValidate(t *testing.T) {
	for _, r := range []Recipe{DefaultTPCC(), DefaultYCSB()} {
		if err := r.Validate(); err != nil {
			t.Errorf("%s: default recipe invalid: %v", r.Name(), err)
		}
	}
	bad := []Recipe{
		&TPCC{Protocols: nil, Threads: []int{1}},
		&TPCC{Protocols: []string{"silo"}, Threads: nil},
		&TPCC{Protocols: []string{"Silo"}, Threads: []int{1}},
		&TPCC{Protocols: []string{"silo", "silo"}, Threads: []int{1}},
		&TPCC{Protocols: []string{"silo"}, Threads: []int{0}},
		&TPCC{Protocols: []string{"silo"}, Threads: []int{10, 1}},
		&YCSB{Protocols: []string{"silo"}, Threads: []int{1}},
		&YCSB{Protocols: []string{"silo"}, Threads: []int{1}, Presets: []Preset{{100, "Z", 10, 0, 1}}},
		&YCSB{Protocols: []string{"silo"}, Threads: []int{1}, Presets: []Preset{{100, "A", 10, -1, 1}}},
		&YCSB{Protocols: []string{"silo"}, Threads: []int{1}, Presets: []Preset{{0, "A", 10, 0, 1}}},
	}
	for _, r := range bad {
		if err := r.Validate(); err == nil {
			t.Errorf("%s %+v: want error", r.Name(), r)
		}
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"tpcc", "YCSB"} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
		}
	}
	if _, err := Lookup("tatp"); err == nil {
		t.Error("Lookup(tatp): want error")
	}
}
