// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/anira-bench/anirabench/benchunit"
)

// WriterOptions selects the optional columns a Writer emits after the
// fixed ones.
type WriterOptions struct {
	SampleRate        bool // "Sample Rate"
	MovingAverage     bool // "Moving Average"
	CumulativeAverage bool // "Cumulative Average"
	Label             bool // "Log"
}

// A Row is a Result together with the statistics derived for it.
// Derived values that are undefined for this row are NaN.
type Row struct {
	*Result

	MovingAverage     float64
	CumulativeAverage float64
}

// A Writer writes per-iteration results as CSV.
type Writer struct {
	w    *csv.Writer
	opts WriterOptions

	wroteHeader bool
	row         []string
}

// NewWriter returns a writer that writes CSV rows to w.
func NewWriter(w io.Writer, opts WriterOptions) *Writer {
	return &Writer{w: csv.NewWriter(w), opts: opts}
}

// Header returns the CSV header for opts.
func (opts WriterOptions) Header() []string {
	hdr := []string{"Model", "Backend", "Buffer Size", "Iteration Count", "Repetition Count", "Runtime"}
	if opts.SampleRate {
		hdr = append(hdr, "Sample Rate")
	}
	if opts.MovingAverage {
		hdr = append(hdr, "Moving Average")
	}
	if opts.CumulativeAverage {
		hdr = append(hdr, "Cumulative Average")
	}
	if opts.Label {
		hdr = append(hdr, "Log")
	}
	return hdr
}

// Write writes row, preceded by the header if this is the first row.
// Like csv.Writer, Write buffers; errors surface from Flush.
func (w *Writer) Write(row Row) error {
	if err := w.writeHeader(); err != nil {
		return err
	}

	w.row = append(w.row[:0],
		row.Model,
		row.Backend,
		strconv.Itoa(row.BufferSize),
		strconv.Itoa(row.Iteration),
		strconv.Itoa(row.Repetition),
		benchunit.Format(row.Runtime),
	)
	if w.opts.SampleRate {
		if row.SampleRate == 0 {
			w.row = append(w.row, "")
		} else {
			w.row = append(w.row, strconv.FormatFloat(row.SampleRate, 'f', -1, 64))
		}
	}
	if w.opts.MovingAverage {
		w.row = append(w.row, formatDerived(row.MovingAverage))
	}
	if w.opts.CumulativeAverage {
		w.row = append(w.row, formatDerived(row.CumulativeAverage))
	}
	if w.opts.Label {
		w.row = append(w.row, row.Label)
	}
	return w.w.Write(w.row)
}

func (w *Writer) writeHeader() error {
	if w.wroteHeader {
		return nil
	}
	w.wroteHeader = true
	return w.w.Write(w.opts.Header())
}

// Flush writes any buffered data to the underlying io.Writer. If no
// rows were written, it writes the header alone.
func (w *Writer) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.w.Flush()
	return w.w.Error()
}

func formatDerived(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return benchunit.Format(v)
}
