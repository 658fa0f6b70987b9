// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"testing"

	"github.com/anira-bench/anirabench/benchfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProjection(t *testing.T) {
	p, err := ParseProjection("sequence")
	require.NoError(t, err)
	assert.Equal(t, BySequence, p)

	p, err = ParseProjection("config")
	require.NoError(t, err)
	assert.Equal(t, ByConfig, p)
	assert.Equal(t, "config", p.String())

	_, err = ParseProjection("model")
	assert.EqualError(t, err, `unknown grouping "model" (want sequence or config)`)
}

func TestGrouper(t *testing.T) {
	input := []*benchfmt.Result{
		res("a.onnx", "onnx", 64, 0, 0),
		res("b.pt", "libtorch", 64, 0, 0),
		res("a.onnx", "onnx", 64, 1, 0),
		res("a.onnx", "onnx", 64, 0, 1),
		res("b.pt", "libtorch", 64, 1, 0),
		res("a.onnx", "onnx", 64, 1, 1),
	}

	t.Run("sequence", func(t *testing.T) {
		g := NewGrouper(BySequence)
		for _, r := range input {
			g.Add(r)
		}
		assert.Equal(t, 6, g.Len())
		groups := g.Groups()
		require.Len(t, groups, 3)
		assert.Equal(t, benchfmt.SequenceKey{Label: "bench.log", Benchmark: "BM_SIMPLE", Model: "a.onnx", Backend: "onnx", BufferSize: 64, Repetition: 0}, groups[0].Key)
		assert.Equal(t, []int{0, 2}, groups[0].Index)
		assert.Equal(t, "b.pt", groups[1].Key.Model)
		assert.Equal(t, []int{1, 4}, groups[1].Index)
		assert.Equal(t, 1, groups[2].Key.Repetition)
		assert.Equal(t, []int{3, 5}, groups[2].Index)
	})

	t.Run("config", func(t *testing.T) {
		g := NewGrouper(ByConfig)
		for _, r := range input {
			g.Add(r)
		}
		groups := g.Groups()
		require.Len(t, groups, 2)
		assert.Equal(t, []int{0, 2, 3, 5}, groups[0].Index)
		assert.Equal(t, 0, groups[0].Key.Repetition)
		assert.Empty(t, groups[0].Key.Benchmark)
		assert.Equal(t, []int{1, 4}, groups[1].Index)
	})

	t.Run("labels", func(t *testing.T) {
		g := NewGrouper(ByConfig)
		a, b := res("a.onnx", "onnx", 64, 0, 0), res("a.onnx", "onnx", 64, 0, 0)
		b.Label = "other.log"
		g.Add(a)
		g.Add(b)
		assert.Len(t, g.Groups(), 2)
	})

	t.Run("benchmarks", func(t *testing.T) {
		a, b := res("a.onnx", "onnx", 64, 0, 0), res("a.onnx", "onnx", 64, 0, 0)
		b.Benchmark = "BM_ADVANCED"
		seq, cfg := NewGrouper(BySequence), NewGrouper(ByConfig)
		for _, r := range []*benchfmt.Result{a, b} {
			seq.Add(r)
			cfg.Add(r)
		}
		require.Len(t, seq.Groups(), 2)
		assert.Equal(t, "BM_ADVANCED", seq.Groups()[1].Key.Benchmark)
		assert.Len(t, cfg.Groups(), 1)
	})
}

func TestGroupRuntimes(t *testing.T) {
	g := NewGrouper(BySequence)
	for i, rt := range []float64{1.5, 1, 2} {
		r := res("a.onnx", "onnx", 64, i, 0)
		r.Runtime = rt
		g.Add(r)
	}
	assert.Equal(t, []float64{1.5, 1, 2}, g.Groups()[0].Runtimes())
}
