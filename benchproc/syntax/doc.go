// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax documents the syntax used by benchmark filter and
// grouping expressions.
//
// These expressions work with the iteration results of a benchmark
// log. Each result (a line containing "SingleIteration") has the
// following components, each of which can be referred to by key:
//
// - "model" is the model file name, e.g. "model_0.onnx".
//
// - "backend" is the inference backend, e.g. "onnx" or "libtorch".
//
// - "buffer" is the host buffer size in samples, e.g. "2048".
//
// - "iteration" and "repetition" are the position of the result within
// its run, starting at "0".
//
// - "fixture" and "benchmark" are the first two components of the
// benchmark name, e.g. "ProcessBlockFixture" and "BM_SIMPLE".
//
// - "label" refers to the input file provided on the command line
// (for command-line tools that use benchfmt.Files).
//
// Filters
//
// Filters are boolean expressions that match or exclude results.
//
// A basic "key:value" filter matches results for which the value of
// "key" is "value". Keys and values can be bare words if they don't
// contain any special characters, or double-quoted strings using Go
// syntax. Values can also be regular expressions surrounded by "/"s,
// such as "model:/^cnn/". A regular expression matches if it matches
// any part of the value. Basic filters can be extended to
// "key:(value1 value2 ...)", which will match if any of the values
// match. Finally, the basic filter "*" matches everything.
//
// Filters can be combined into more complex expressions. Filters can
// be prefixed with "-" to negate them, or combined with "AND" and
// "OR" operators and parenthesis to build up expressions. The "AND"
// operator can be omitted, so "a:b AND c:d" is equivalent to "a:b
// c:d".
//
// Detailed syntax:
//
//   expr     = andExpr {"OR" andExpr}
//   andExpr  = match {"AND"? match}
//   match    = "(" expr ")"
//            | "-" match
//            | "*"
//            | key ":" value
//            | key ":" "(" value {value} ")"
//   key      = word
//   value    = word
//            | "/" regexp "/"
//   word     = bareWord
//            | double-quoted Go string
//   bareWord = [^-*"():/][^ ():]*
//
// Grouping
//
// Summaries group results by one of two projections:
//
// - "sequence" groups the iterations of one repetition of one
// configuration: label, model, backend, buffer, and repetition.
//
// - "config" groups all repetitions of one configuration: label,
// model, backend, and buffer.
//
// Groups are ordered by the position at which each group is first
// observed in the input.
package syntax
