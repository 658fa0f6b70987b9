// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchproc provides tools for filtering and grouping
// benchmark iteration results.
//
// The filter language is described in "go doc
// github.com/anira-bench/anirabench/benchproc/syntax".
//
// The typical steps for processing a stream of benchmark
// results are:
//
// 1. Filter each benchfmt.Result according to a user predicate parsed
// by NewFilter.
//
// 2. Add each remaining Result to a Grouper, which collects results
// into Groups according to a Projection. Groups keep the order in
// which they were first observed, and the results within a group keep
// input order.
//
// 3. At the end of the stream, process each Group. NonSingularFields
// reports configuration that varies within a group and is therefore
// hidden by aggregating it.
package benchproc
