// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/anira-bench/anirabench/benchfmt"
	"github.com/anira-bench/anirabench/benchmath"
	"github.com/anira-bench/anirabench/benchproc"
	"github.com/anira-bench/anirabench/benchunit"
	"github.com/olekukonko/tablewriter"
)

// A Table summarizes benchmark results with one row per group.
type Table struct {
	// Projection is the grouping of the rows.
	Projection benchproc.Projection

	// Opts is the configuration options for this table.
	Opts TableOpts

	// Rows are the groups in order of first observation.
	Rows []*TableRow
}

// TableRow summarizes one group.
type TableRow struct {
	// Key identifies the group. For the config projection,
	// Key.Benchmark and Key.Repetition are meaningless.
	Key benchfmt.SequenceKey

	Summary benchmath.Summary

	// Warnings is a list of warnings for this row.
	Warnings []error
}

// Header returns the column names of t.
func (t *Table) Header() []string {
	hdr := []string{"Log", "Model", "Backend", "Buffer Size"}
	if t.Projection == benchproc.BySequence {
		hdr = append(hdr, "Repetition Count")
	}
	return append(hdr, "Samples", "Mean", "Std Dev", "Min", "Max", "Median", "P95")
}

func (t *Table) record(row *TableRow) []string {
	k, s := row.Key, row.Summary
	rec := []string{k.Label, k.Model, k.Backend, strconv.Itoa(k.BufferSize)}
	if t.Projection == benchproc.BySequence {
		rec = append(rec, strconv.Itoa(k.Repetition))
	}
	rec = append(rec, strconv.Itoa(s.N))
	for _, v := range []float64{s.Mean, s.StdDev, s.Min, s.Max, s.Median, s.P95} {
		if math.IsNaN(v) {
			rec = append(rec, "")
		} else {
			rec = append(rec, benchunit.Format(v))
		}
	}
	return rec
}

// ToCSV writes t to CSV (comma-separated values) format.
//
// Warnings are written to a separate stream so as not to interrupt
// the regular format of the CSV table.
func (t *Table) ToCSV(w, warnings io.Writer) error {
	o := csv.NewWriter(w)
	o.Write(t.Header())
	for i, row := range t.Rows {
		o.Write(t.record(row))
		t.writeWarnings(warnings, fmt.Sprintf("row %d", i+2), row)
	}
	o.Flush()
	return o.Error()
}

// ToText renders t to a textual representation, assuming a
// fixed-width font. Warnings are printed after the table.
func (t *Table) ToText(w io.Writer) error {
	tw := tablewriter.NewWriter(w)
	hdr := t.Header()
	cols := make([]any, len(hdr))
	for i, h := range hdr {
		cols[i] = h
	}
	tw.Header(cols...)

	var data [][]string
	for _, row := range t.Rows {
		data = append(data, t.record(row))
	}
	if err := tw.Bulk(data); err != nil {
		return err
	}
	if err := tw.Render(); err != nil {
		return err
	}
	for _, row := range t.Rows {
		t.writeWarnings(w, t.rowName(row), row)
	}
	return nil
}

func (t *Table) rowName(row *TableRow) string {
	k := row.Key
	name := fmt.Sprintf("%s/%s/%d", k.Model, k.Backend, k.BufferSize)
	if t.Projection == benchproc.BySequence {
		name = fmt.Sprintf("%s %s repetition %d", k.Benchmark, name, k.Repetition)
	}
	return name
}

func (t *Table) writeWarnings(w io.Writer, where string, row *TableRow) {
	for _, warn := range row.Warnings {
		fmt.Fprintf(w, "%s: %s\n", where, warn)
	}
}
