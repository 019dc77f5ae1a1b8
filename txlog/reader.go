// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package txlog reads the textual output of an engine benchmark run.
//
// The output is free-form except for three lines, each starting with
// a marker token followed by a number:
//
//	commits: 1234567
//	sys_aborts: 8910
//	Throughput: 123456.7
//
// Tokens are separated by white space. All other lines are ignored. If
// a marker appears more than once, the last occurrence wins.
package txlog

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// Markers that introduce the metrics of a run, in the order they are
// checked for presence.
const (
	CommitsMarker    = "commits:"
	AbortsMarker     = "sys_aborts:"
	ThroughputMarker = "Throughput:"
)

var markers = [...]string{CommitsMarker, AbortsMarker, ThroughputMarker}

// Metrics are the results of one run.
type Metrics struct {
	// File is the log the metrics were read from.
	File string

	Commits    float64
	Aborts     float64
	Throughput float64 // transactions per second
}

// AbortRate returns Aborts / (Aborts + Commits). If the run neither
// committed nor aborted anything the rate is undefined and AbortRate
// returns an *UndefinedAbortRateError.
func (m Metrics) AbortRate() (float64, error) {
	total := m.Aborts + m.Commits
	if total == 0 {
		return 0, &UndefinedAbortRateError{File: m.File}
	}
	return m.Aborts / total, nil
}

// A MissingMetricError reports a log without one of the markers.
type MissingMetricError struct {
	File   string
	Marker string
}

func (e *MissingMetricError) Error() string {
	return fmt.Sprintf("%s: no %q line", e.File, e.Marker)
}

// An UndefinedAbortRateError reports a run with zero commits and zero
// aborts.
type UndefinedAbortRateError struct {
	File string
}

func (e *UndefinedAbortRateError) Error() string {
	return fmt.Sprintf("%s: abort rate undefined with 0 commits and 0 aborts", e.File)
}

// A SyntaxError reports a marker line whose value cannot be parsed.
type SyntaxError struct {
	File string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// maxLine bounds the length of a single log line.
const maxLine = 1 << 20

// A Reader extracts Metrics from one log.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int

	m    Metrics
	seen [len(markers)]bool
}

// NewReader returns a Reader that reads from r. fileName is used in
// results and error messages.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to read a new log.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.s = bufio.NewScanner(ior)
	r.s.Buffer(nil, maxLine)
	r.fileName = fileName
	r.line = 0
	r.m = Metrics{File: fileName}
	r.seen = [len(markers)]bool{}
}

// Read consumes the whole input and returns its metrics. It fails
// with a *MissingMetricError if a marker never appears, a *SyntaxError
// if a marker has no numeric value, or the underlying I/O error.
func (r *Reader) Read() (Metrics, error) {
	for r.s.Scan() {
		r.line++
		if err := r.parseLine(r.s.Bytes()); err != nil {
			return Metrics{}, err
		}
	}
	if err := r.s.Err(); err != nil {
		return Metrics{}, fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	for i, ok := range r.seen {
		if !ok {
			return Metrics{}, &MissingMetricError{File: r.fileName, Marker: markers[i]}
		}
	}
	return r.m, nil
}

func (r *Reader) parseLine(line []byte) error {
	fields := bytes.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	var dst *float64
	var idx int
	switch string(fields[0]) {
	case CommitsMarker:
		dst, idx = &r.m.Commits, 0
	case AbortsMarker:
		dst, idx = &r.m.Aborts, 1
	case ThroughputMarker:
		dst, idx = &r.m.Throughput, 2
	default:
		return nil
	}
	if len(fields) < 2 {
		return &SyntaxError{r.fileName, r.line, "missing value after " + string(fields[0])}
	}
	v, err := strconv.ParseFloat(string(fields[1]), 64)
	if err != nil {
		return &SyntaxError{r.fileName, r.line, fmt.Sprintf("parsing %s value: %v", fields[0], err.(*strconv.NumError).Err)}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &SyntaxError{r.fileName, r.line, fmt.Sprintf("%s value %s is not finite", fields[0], fields[1])}
	}
	*dst = v
	r.seen[idx] = true
	return nil
}

// Parse reads the metrics of the log in r.
func Parse(r io.Reader, fileName string) (Metrics, error) {
	return NewReader(r, fileName).Read()
}

// ParseFile reads the metrics of the log file at path.
func ParseFile(path string) (Metrics, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metrics{}, err
	}
	defer f.Close()
	return Parse(f, path)
}
