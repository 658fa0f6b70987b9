// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt provides a reader for the benchmark log format
// printed by the audio inference benchmark fixture, and a CSV writer
// for the per-iteration results it contains.
//
// A log interleaves host configuration banners with one line per
// timed iteration:
//
//	Model: model.onnx | Backend: onnx | Host Sample Rate: 44100 Hz | Host Buffer Size: 2048 = 46.4399 ms
//	SingleIteration/ProcessBlockFixture/BM_SIMPLE/model.onnx/onnx/2048/iteration:0/repetition:0			1.2345 ms
//
// The reader and writer are streaming operations. The reader reuses
// its Result between calls to Scan; callers that retain results must
// Clone them.
//
// This package is designed to be used with the higher-level packages
// benchunit, benchmath, and benchproc.
package benchfmt

// A Result is a single timed iteration of a benchmark.
type Result struct {
	// Label identifies the input this result was read from. It is
	// usually the file name.
	Label string

	// Fixture and Benchmark are the first two components of the
	// benchmark name, e.g. "ProcessBlockFixture" and "BM_SIMPLE".
	Fixture   string
	Benchmark string

	// Model is the model file name and Backend the inference
	// backend that ran it.
	Model   string
	Backend string

	// BufferSize is the host buffer size in samples.
	BufferSize int

	// Iteration and Repetition locate this result within its
	// sequence. Iterations restart at 0 for every repetition.
	Iteration  int
	Repetition int

	// Runtime is the measured runtime in milliseconds.
	Runtime float64

	// OrigRuntime and OrigUnit, if OrigUnit is non-empty, give the
	// runtime as read from the input before it was converted to
	// milliseconds.
	OrigRuntime float64
	OrigUnit    string

	// SampleRate is the host sample rate in Hz from the most recent
	// host configuration banner, or 0 if none was seen.
	SampleRate float64
}

// Clone makes a copy of Result that shares no state with r.
func (r *Result) Clone() *Result {
	r2 := *r
	return &r2
}

// A SequenceKey identifies the run of iterations that make up one
// repetition of one benchmark configuration. Two registered benchmarks
// that run the same configuration form separate sequences.
type SequenceKey struct {
	Label      string
	Benchmark  string
	Model      string
	Backend    string
	BufferSize int
	Repetition int
}

// A ConfigKey identifies one benchmark configuration across all of its
// repetitions.
type ConfigKey struct {
	Label      string
	Model      string
	Backend    string
	BufferSize int
}

// SequenceKey returns the sequence r belongs to.
func (r *Result) SequenceKey() SequenceKey {
	return SequenceKey{r.Label, r.Benchmark, r.Model, r.Backend, r.BufferSize, r.Repetition}
}

// ConfigKey returns the configuration r belongs to.
func (r *Result) ConfigKey() ConfigKey {
	return ConfigKey{r.Label, r.Model, r.Backend, r.BufferSize}
}

// Config returns the configuration of the sequence k.
func (k SequenceKey) Config() ConfigKey {
	return ConfigKey{k.Label, k.Model, k.Backend, k.BufferSize}
}
