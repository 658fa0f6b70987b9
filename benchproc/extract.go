// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/anira-bench/anirabench/benchfmt"
)

// An extractor returns some component of a benchmark result as a
// string.
type extractor func(*benchfmt.Result) string

// Keys lists the result components that filters can refer to.
var Keys = []string{"model", "backend", "buffer", "iteration", "repetition", "fixture", "benchmark", "label"}

// newExtractor returns a function that extracts the component of a
// benchmark result named by key. The key must be one of Keys.
func newExtractor(key string) (extractor, error) {
	switch key {
	case "model":
		return func(r *benchfmt.Result) string { return r.Model }, nil
	case "backend":
		return func(r *benchfmt.Result) string { return r.Backend }, nil
	case "buffer":
		return func(r *benchfmt.Result) string { return strconv.Itoa(r.BufferSize) }, nil
	case "iteration":
		return func(r *benchfmt.Result) string { return strconv.Itoa(r.Iteration) }, nil
	case "repetition":
		return func(r *benchfmt.Result) string { return strconv.Itoa(r.Repetition) }, nil
	case "fixture":
		return func(r *benchfmt.Result) string { return r.Fixture }, nil
	case "benchmark":
		return func(r *benchfmt.Result) string { return r.Benchmark }, nil
	case "label":
		return func(r *benchfmt.Result) string { return r.Label }, nil
	case "":
		return nil, fmt.Errorf("key must not be empty")
	}
	return nil, fmt.Errorf("unknown key %q (want one of %s)", key, strings.Join(Keys, ", "))
}
