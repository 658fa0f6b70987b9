// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit normalizes the runtime units printed by the
// benchmark harness.
//
// All runtimes are carried in milliseconds, the unit the harness uses by
// default. Other time units are scaled on input so that derived
// statistics never mix units.
package benchunit

import (
	"strconv"
	"strings"
	"sync"
)

// Base is the unit every runtime is normalized to.
const Base = "ms"

type tidyEntry struct {
	tidied string
	factor float64
}

var tidyCache sync.Map // unit string -> *tidyEntry

// Tidy normalizes a time unit to milliseconds. It returns the tidied
// unit and the multiplicative factor to convert a value in unit to a
// value in tidied. For example, to convert value x in microseconds to
// milliseconds, multiply x by factor.
//
// If unit is not a time unit, Tidy returns unit unchanged and a factor
// of 0.
func Tidy(unit string) (tidied string, factor float64) {
	// Fast path for what the harness prints.
	if unit == Base {
		return Base, 1
	}

	if tc, ok := tidyCache.Load(unit); ok {
		tc := tc.(*tidyEntry)
		return tc.tidied, tc.factor
	}

	tidied, factor = tidy(unit)
	tidyCache.Store(unit, &tidyEntry{tidied, factor})
	return
}

func tidy(unit string) (tidied string, factor float64) {
	switch strings.TrimSpace(unit) {
	case "ns":
		return Base, 1e-6
	case "us", "µs", "μs":
		return Base, 1e-3
	case "ms":
		return Base, 1
	case "s", "sec":
		return Base, 1e3
	}
	return unit, 0
}

// Format renders a millisecond value the way the harness prints it,
// with four decimals.
func Format(ms float64) string {
	return strconv.FormatFloat(ms, 'f', 4, 64)
}
