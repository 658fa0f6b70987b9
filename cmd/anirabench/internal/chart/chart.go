// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws benchmark runtimes per iteration.
package chart

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/anira-bench/anirabench/benchfmt"
	"github.com/anira-bench/anirabench/benchmath"
	"github.com/anira-bench/anirabench/benchproc"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Options configures Runtime.
type Options struct {
	// Title is the plot title. If empty, a default is used.
	Title string

	// MovingAverage, if non-zero, overlays a dashed moving average
	// of this window on each sequence.
	MovingAverage int
}

// Runtime plots runtime against iteration with one line per sequence.
func Runtime(results []*benchfmt.Result, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = "Runtime per iteration"
	}
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Runtime (ms)"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	g := benchproc.NewGrouper(benchproc.BySequence)
	for _, r := range results {
		g.Add(r)
	}
	for i, grp := range g.Groups() {
		pts := make(plotter.XYs, len(grp.Results))
		for j, r := range grp.Results {
			pts[j].X = float64(r.Iteration)
			pts[j].Y = r.Runtime
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", seriesName(grp.Key), err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(seriesName(grp.Key), line)

		if opts.MovingAverage == 0 {
			continue
		}
		ma, err := benchmath.MovingAverage(grp.Runtimes(), opts.MovingAverage)
		if err != nil {
			return nil, err
		}
		var maPts plotter.XYs
		for j, v := range ma {
			// Undefined until the window fills.
			if !math.IsNaN(v) {
				maPts = append(maPts, plotter.XY{X: pts[j].X, Y: v})
			}
		}
		if len(maPts) == 0 {
			continue
		}
		maLine, err := plotter.NewLine(maPts)
		if err != nil {
			return nil, err
		}
		maLine.Color = plotutil.Color(i)
		maLine.Width = vg.Points(2)
		maLine.Dashes = plotutil.Dashes(1)
		p.Add(maLine)
		p.Legend.Add(fmt.Sprintf("%s (avg %d)", seriesName(grp.Key), opts.MovingAverage), maLine)
	}
	return p, nil
}

func seriesName(k benchfmt.SequenceKey) string {
	return fmt.Sprintf("%s %s %s/%s/%d #%d", k.Label, k.Benchmark, k.Model, k.Backend, k.BufferSize, k.Repetition)
}

// Save writes p to path. The image format is taken from the file
// extension: png, svg, pdf, eps, jpg, or tif.
func Save(p *plot.Plot, path string) error {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff":
	default:
		return fmt.Errorf("unsupported image format %q", ext)
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
