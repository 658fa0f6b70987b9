// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtab derives per-iteration statistics and aggregate
// tables from benchmark results.
package benchtab

import (
	"math"

	"github.com/anira-bench/anirabench/benchfmt"
	"github.com/anira-bench/anirabench/benchmath"
	"github.com/anira-bench/anirabench/benchproc"
)

// RowOpts selects the per-iteration statistics computed by Rows.
type RowOpts struct {
	// MovingAverage is the moving average window, or 0 for none.
	MovingAverage int

	// Cumulative enables the cumulative average.
	Cumulative bool
}

// Rows pairs each result with its derived statistics. Statistics are
// computed within each sequence and never cross sequence boundaries.
// The returned rows are in the same order as results; statistics that
// are disabled or undefined are NaN.
func Rows(results []*benchfmt.Result, opts RowOpts) ([]benchfmt.Row, error) {
	rows := make([]benchfmt.Row, len(results))
	for i, r := range results {
		rows[i] = benchfmt.Row{Result: r, MovingAverage: math.NaN(), CumulativeAverage: math.NaN()}
	}
	if opts.MovingAverage == 0 && !opts.Cumulative {
		return rows, nil
	}

	g := benchproc.NewGrouper(benchproc.BySequence)
	for _, r := range results {
		g.Add(r)
	}
	for _, grp := range g.Groups() {
		xs := grp.Runtimes()
		if opts.MovingAverage != 0 {
			ma, err := benchmath.MovingAverage(xs, opts.MovingAverage)
			if err != nil {
				return nil, err
			}
			for i, idx := range grp.Index {
				rows[idx].MovingAverage = ma[i]
			}
		}
		if opts.Cumulative {
			for i, ca := range benchmath.CumulativeAverage(xs) {
				rows[grp.Index[i]].CumulativeAverage = ca
			}
		}
	}
	return rows, nil
}
