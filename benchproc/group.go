// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"fmt"

	"github.com/anira-bench/anirabench/benchfmt"
)

// A Projection selects how results are grouped.
type Projection int

const (
	// BySequence groups the iterations of one repetition of one
	// configuration.
	BySequence Projection = iota
	// ByConfig groups all repetitions of one configuration.
	ByConfig
)

// ParseProjection parses "sequence" or "config".
func ParseProjection(s string) (Projection, error) {
	switch s {
	case "sequence", "":
		return BySequence, nil
	case "config":
		return ByConfig, nil
	}
	return 0, fmt.Errorf("unknown grouping %q (want sequence or config)", s)
}

func (p Projection) String() string {
	switch p {
	case BySequence:
		return "sequence"
	case ByConfig:
		return "config"
	}
	return fmt.Sprintf("Projection(%d)", int(p))
}

// Key projects res onto p. For ByConfig, the Benchmark and Repetition
// of the returned key are always zero.
func (p Projection) Key(res *benchfmt.Result) benchfmt.SequenceKey {
	k := res.SequenceKey()
	if p == ByConfig {
		k.Benchmark, k.Repetition = "", 0
	}
	return k
}

// A Group is a set of results that share a projected key.
type Group struct {
	Key benchfmt.SequenceKey

	// Results are the results in the group, in the order they were
	// added.
	Results []*benchfmt.Result

	// Index gives, for each result, its position in the sequence of
	// all results added to the Grouper.
	Index []int
}

// Runtimes returns the runtime of each result in g.
func (g *Group) Runtimes() []float64 {
	xs := make([]float64, len(g.Results))
	for i, r := range g.Results {
		xs[i] = r.Runtime
	}
	return xs
}

// A Grouper collects results into Groups.
type Grouper struct {
	proj   Projection
	groups []*Group
	byKey  map[benchfmt.SequenceKey]*Group
	n      int
}

// NewGrouper returns a Grouper that groups by proj.
func NewGrouper(proj Projection) *Grouper {
	return &Grouper{proj: proj, byKey: make(map[benchfmt.SequenceKey]*Group)}
}

// Add adds res to its group. The Grouper retains res, so the caller
// must not modify it afterwards.
func (g *Grouper) Add(res *benchfmt.Result) {
	k := g.proj.Key(res)
	grp := g.byKey[k]
	if grp == nil {
		grp = &Group{Key: k}
		g.byKey[k] = grp
		g.groups = append(g.groups, grp)
	}
	grp.Results = append(grp.Results, res)
	grp.Index = append(grp.Index, g.n)
	g.n++
}

// Projection returns the projection g groups by.
func (g *Grouper) Projection() Projection {
	return g.proj
}

// Groups returns the groups in the order they were first observed.
func (g *Grouper) Groups() []*Group {
	return g.groups
}

// Len returns the total number of results added.
func (g *Grouper) Len() int {
	return g.n
}
