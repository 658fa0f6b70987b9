// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/floats"
)

// MovingAverage returns the trailing moving average of xs over window
// values. Element i is the mean of xs[i-window+1:i+1]. Elements for
// which fewer than window values are available are NaN.
func MovingAverage(xs []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, fmt.Errorf("moving average window must be at least 1, got %d", window)
	}
	out := make([]float64, len(xs))
	for i := range xs {
		if i+1 < window {
			out[i] = math.NaN()
			continue
		}
		out[i] = stats.Mean(xs[i+1-window : i+1])
	}
	return out, nil
}

// CumulativeAverage returns the running mean of xs. Element i is the
// mean of xs[:i+1].
func CumulativeAverage(xs []float64) []float64 {
	out := make([]float64, len(xs))
	floats.CumSum(out, xs)
	for i := range out {
		out[i] /= float64(i + 1)
	}
	return out
}

// Warmup returns the values of xs whose iteration number is at least
// n. iterations[i] is the iteration number of xs[i]. If n <= 0, Warmup
// returns xs.
func Warmup(xs []float64, iterations []int, n int) []float64 {
	if n <= 0 {
		return xs
	}
	var out []float64
	for i, x := range xs {
		if iterations[i] >= n {
			out = append(out, x)
		}
	}
	return out
}
