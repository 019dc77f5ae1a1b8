// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package txlog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleLog = `loading tables...
[thread 0] done
commits: 100
usr_aborts: 3
sys_aborts: 10
Throughput: 1000
elapsed: 10.0s
`

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(sampleLog), "x.log0")
	if err != nil {
		t.Fatal(err)
	}
	want := Metrics{File: "x.log0", Commits: 100, Aborts: 10, Throughput: 1000}
	if m != want {
		t.Errorf("got %+v, want %+v", m, want)
	}
	rate, err := m.AbortRate()
	if err != nil {
		t.Fatal(err)
	}
	if want := 10.0 / 110.0; math.Abs(rate-want) > 1e-12 {
		t.Errorf("AbortRate = %v, want %v", rate, want)
	}
}

func TestParseLastOccurrenceWins(t *testing.T) {
	in := "commits: 1\nsys_aborts: 1\nThroughput: 1\n" +
		"  commits:   7 extra tokens\n\tThroughput:\t2.5e6\n"
	m, err := Parse(strings.NewReader(in), "f")
	if err != nil {
		t.Fatal(err)
	}
	if m.Commits != 7 || m.Aborts != 1 || m.Throughput != 2.5e6 {
		t.Errorf("got %+v", m)
	}
}

func TestParseIgnoresNonLeadingMarkers(t *testing.T) {
	// A marker only counts as the first token of a line.
	in := "total commits: 5\ncommits: 2\nsys_aborts: 0\nThroughput: 3\nnote Throughput: 99\n"
	m, err := Parse(strings.NewReader(in), "f")
	if err != nil {
		t.Fatal(err)
	}
	if m.Commits != 2 || m.Throughput != 3 {
		t.Errorf("got %+v", m)
	}
}

func TestParseMissing(t *testing.T) {
	for _, test := range []struct {
		in     string
		marker string
	}{
		{"", CommitsMarker},
		{"sys_aborts: 1\nThroughput: 1\n", CommitsMarker},
		{"commits: 1\nThroughput: 1\n", AbortsMarker},
		{"commits: 1\nsys_aborts: 1\n", ThroughputMarker},
		{"Commits: 1\nsys_aborts: 1\nThroughput: 1\n", CommitsMarker},
		{"commits:1\nsys_aborts: 1\nThroughput: 1\n", CommitsMarker},
	} {
		_, err := Parse(strings.NewReader(test.in), "f.log0")
		var me *MissingMetricError
		if !errors.As(err, &me) {
			t.Errorf("%q: got %v, want *MissingMetricError", test.in, err)
			continue
		}
		if me.Marker != test.marker || me.File != "f.log0" {
			t.Errorf("%q: got %+v, want marker %q", test.in, me, test.marker)
		}
	}
}

func TestParseSyntaxError(t *testing.T) {
	for _, in := range []string{
		"commits:\n",
		"commits: many\n",
		"sys_aborts: NaN\n",
		"Throughput: +Inf\n",
	} {
		_, err := Parse(strings.NewReader("first line\n"+in), "f")
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("%q: got %v, want *SyntaxError", in, err)
			continue
		}
		if se.Line != 2 {
			t.Errorf("%q: line %d, want 2", in, se.Line)
		}
	}
}

func TestUndefinedAbortRate(t *testing.T) {
	m := Metrics{File: "z.log1", Commits: 0, Aborts: 0, Throughput: 0}
	_, err := m.AbortRate()
	var ue *UndefinedAbortRateError
	if !errors.As(err, &ue) {
		t.Fatalf("got %v, want *UndefinedAbortRateError", err)
	}
	if ue.File != "z.log1" {
		t.Errorf("File = %q", ue.File)
	}

	// Zero aborts with commits is a valid zero rate.
	m.Commits = 5
	rate, err := m.AbortRate()
	if err != nil || rate != 0 {
		t.Errorf("AbortRate = %v, %v; want 0, nil", rate, err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TPCCsiloT1W1S10.log0")
	if err := os.WriteFile(path, []byte(sampleLog), 0666); err != nil {
		t.Fatal(err)
	}
	m, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.File != path || m.Throughput != 1000 {
		t.Errorf("got %+v", m)
	}
	if _, err := ParseFile(path + ".missing"); !os.IsNotExist(err) {
		t.Errorf("missing file: got %v", err)
	}
}

func TestReaderReset(t *testing.T) {
	r := NewReader(strings.NewReader(sampleLog), "a")
	if _, err := r.Read(); err != nil {
		t.Fatal(err)
	}
	// Metrics from the previous input must not leak.
	r.Reset(strings.NewReader("commits: 1\n"), "b")
	_, err := r.Read()
	var me *MissingMetricError
	if !errors.As(err, &me) || me.File != "b" || me.Marker != AbortsMarker {
		t.Errorf("after Reset: got %v", err)
	}
}
