// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmath provides the statistics derived from benchmark
// runtimes: per-group summaries and per-iteration running averages.
package benchmath

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"
)

// A Summary summarizes a sample of runtimes.
type Summary struct {
	// N is the number of values in the sample.
	N int

	// Mean and StdDev are the sample mean and sample standard
	// deviation. StdDev is 0 for samples with fewer than two
	// values.
	Mean, StdDev float64

	// Min, Max, Median and P95 are order statistics of the sample.
	// P95 is the empirical 95th percentile.
	Min, Max, Median, P95 float64
}

// Summarize computes the Summary of xs. If xs is empty, every statistic
// is NaN.
func Summarize(xs []float64) Summary {
	if len(xs) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, StdDev: nan, Min: nan, Max: nan, Median: nan, P95: nan}
	}

	sample := stats.Sample{Xs: xs}
	s := Summary{N: len(xs), Mean: sample.Mean()}
	if len(xs) > 1 {
		s.StdDev = sample.StdDev()
	}
	s.Min, s.Max = sample.Bounds()

	// gonum's quantiles require sorted input; don't disturb the
	// caller's order.
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return s
}
