// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"strconv"

	"github.com/anira-bench/anirabench/benchfmt"
)

// nonGroupFields are the result components that are not part of any
// grouping key.
var nonGroupFields = []struct {
	name string
	get  func(*benchfmt.Result) string
}{
	{"fixture", func(r *benchfmt.Result) string { return r.Fixture }},
	{"benchmark", func(r *benchfmt.Result) string { return r.Benchmark }},
	{"sample rate", func(r *benchfmt.Result) string { return strconv.FormatFloat(r.SampleRate, 'g', -1, 64) }},
}

// NonSingularFields returns the names of the fields outside the
// grouping key for which at least two of results have different
// values.
//
// This is useful for warning the user if aggregating a group of
// results has resulted in potentially hiding important configuration
// differences.
func NonSingularFields(results []*benchfmt.Result) []string {
	if len(results) <= 1 {
		// There can't be any differences.
		return nil
	}
	var out []string
	for _, f := range nonGroupFields {
		base := f.get(results[0])
		for _, r := range results[1:] {
			if f.get(r) != base {
				out = append(out, f.name)
				break
			}
		}
	}
	return out
}
