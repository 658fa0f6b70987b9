// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"errors"
	"runtime"
	"strings"
	"sync"

	"github.com/anira-bench/anirabench/benchfmt"
	"github.com/anira-bench/anirabench/benchmath"
	"github.com/anira-bench/anirabench/benchproc"
)

// A Builder collects benchmark results into an aggregate Table.
type Builder struct {
	groups *benchproc.Grouper
}

// NewBuilder creates a new Builder that groups results by proj.
func NewBuilder(proj benchproc.Projection) *Builder {
	return &Builder{benchproc.NewGrouper(proj)}
}

// Add adds result to the Builder. The Builder retains result.
func (b *Builder) Add(result *benchfmt.Result) {
	b.groups.Add(result)
}

// TableOpts provides options for constructing the final aggregate
// table from a Builder.
type TableOpts struct {
	// Warmup is the number of leading iterations of each sequence
	// to exclude from the summaries.
	Warmup int
}

// ToTable finalizes a Builder into an aggregate table with one row per
// group, in the order groups were first observed.
func (b *Builder) ToTable(opts TableOpts) *Table {
	groups := b.groups.Groups()
	t := &Table{
		Projection: b.groups.Projection(),
		Opts:       opts,
		Rows:       make([]*TableRow, len(groups)),
	}

	// Summaries sort every group, so compute them in parallel with
	// a simple concurrency limit.
	limit := make(chan struct{}, 2*runtime.GOMAXPROCS(-1))
	var wg sync.WaitGroup
	wg.Add(len(groups))
	for i, grp := range groups {
		row := &TableRow{Key: grp.Key}
		t.Rows[i] = row
		limit <- struct{}{}
		go func(grp *benchproc.Group) {
			summarizeRow(grp, row, opts)
			<-limit
			wg.Done()
		}(grp)
	}
	wg.Wait()
	return t
}

func summarizeRow(grp *benchproc.Group, row *TableRow, opts TableOpts) {
	iters := make([]int, len(grp.Results))
	for i, r := range grp.Results {
		iters[i] = r.Iteration
	}
	row.Summary = benchmath.Summarize(benchmath.Warmup(grp.Runtimes(), iters, opts.Warmup))

	if row.Summary.N == 0 && len(grp.Results) > 0 {
		row.Warnings = append(row.Warnings, errors.New("all iterations excluded by warmup"))
	}

	// Warn for non-singular configuration values in this group.
	nsk := benchproc.NonSingularFields(grp.Results)
	if len(nsk) > 0 {
		var warn strings.Builder
		warn.WriteString("benchmarks vary in ")
		warn.WriteString(strings.Join(nsk, ", "))
		row.Warnings = append(row.Warnings, errors.New(warn.String()))
	}
}
