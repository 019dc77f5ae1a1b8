// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aggregate

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/aclements/go-moremath/stats"

	"github.com/txbench/ccsweep/recipe"
)

// WriteSummary writes every trial of results in the Go benchmark
// format, one line per trial, preceded by configuration lines for the
// sweep. The output can be fed to benchstat to compare sweeps.
//
// For example:
//
//	recipe: tpcc
//	seconds: 10
//
//	BenchmarkTPCC/proto=silo/threads=10/warehouses=10 1 1.2e+06 txn/s 0.0909 abort-rate 100 commits 10 aborts
func WriteSummary(w io.Writer, r recipe.Recipe, seconds int, results []*Result) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "recipe: %s\n", r.Name())
	fmt.Fprintf(&buf, "seconds: %d\n", seconds)
	buf.WriteByte('\n')
	for _, res := range results {
		name := BenchmarkName(r, res.Experiment)
		for _, t := range res.Trials {
			fmt.Fprintf(&buf, "%s 1 %v txn/s %v abort-rate %v commits %v aborts\n",
				name, t.Throughput, t.AbortRate, t.Commits, t.Aborts)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// BenchmarkName returns the Go benchmark name of e, with one
// key=value sub-benchmark part per parameter.
func BenchmarkName(r recipe.Recipe, e recipe.Experiment) string {
	var b bytes.Buffer
	b.WriteString("Benchmark")
	b.WriteString(r.Benchmark())
	part := func(k, v string) {
		b.WriteByte('/')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v)
	}
	part("proto", e.Protocol)
	part("threads", strconv.Itoa(e.Threads))
	if e.Warehouses != 0 {
		part("warehouses", strconv.Itoa(e.Warehouses))
	}
	if e.Workload != "" {
		part("payload", strconv.Itoa(e.Payload))
		part("workload", e.Workload)
		part("records", strconv.Itoa(e.Records))
		part("theta", strconv.FormatFloat(e.Skew, 'f', -1, 64))
		part("reps", strconv.Itoa(e.Reps))
	}
	return b.String()
}

// WriteTable writes a human-readable table of results: mean
// throughput in millions of transactions per second with its 95%
// confidence interval, and mean abort rate.
func WriteTable(w io.Writer, results []*Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "experiment\tMtxn/s\t±\tabort rate\t\n")
	for _, res := range results {
		xs := make([]float64, len(res.Trials))
		for i, t := range res.Trials {
			xs[i] = t.Throughput
		}
		fmt.Fprintf(tw, "%v\t%.3f\t%s\t%.4f\t\n", res.Experiment, res.Throughput/1e6, pctRange(xs), res.AbortRate)
	}
	return tw.Flush()
}

// pctRange formats the half-width of the 95% confidence interval of
// the mean of xs as a percentage of the mean.
func pctRange(xs []float64) string {
	if len(xs) < 2 {
		return "?"
	}
	mean, lo, hi := stats.Sample{Xs: xs}.MeanCI(0.95)
	if mean == 0 || math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return "?"
	}
	return fmt.Sprintf("%.0f%%", 100*math.Max(hi/mean-1, 1-lo/mean))
}
