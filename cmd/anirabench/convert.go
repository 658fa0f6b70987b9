// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anira-bench/anirabench/benchfmt"
	"github.com/anira-bench/anirabench/benchproc"
	"github.com/anira-bench/anirabench/cmd/anirabench/internal/benchtab"
	"github.com/anira-bench/anirabench/storage"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (e *env) runConvert(cmd *cobra.Command, args []string) error {
	cfg := e.cfg
	paths := inputs(args)

	var db *storage.DB
	if cfg.DB != "" {
		driver, dsn, err := storage.ParseDSN(cfg.DB)
		if err != nil {
			return err
		}
		if db, err = storage.Open(driver, dsn); err != nil {
			return err
		}
		defer db.Close()
	}

	opts := benchfmt.WriterOptions{
		SampleRate:        cfg.SampleRate,
		MovingAverage:     cfg.MovingAverage > 0,
		CumulativeAverage: cfg.Cumulative,
	}
	rowOpts := benchtab.RowOpts{MovingAverage: cfg.MovingAverage, Cumulative: cfg.Cumulative}

	// Read every input separately so each can go to its own file
	// and its own upload.
	var all []*benchfmt.Result
	perInput := make([][]*benchfmt.Result, len(paths))
	for i, path := range paths {
		results, err := e.read(path)
		if err != nil {
			return err
		}
		perInput[i] = results
		all = append(all, results...)

		if db != nil {
			label, _ := benchfmt.SplitLabel(path)
			id, err := db.Upload(cmd.Context(), label, results)
			if err != nil {
				return fmt.Errorf("uploading %s: %w", label, err)
			}
			e.log.Info("uploaded", zap.String("label", label), zap.Int64("id", id), zap.Int("iterations", len(results)))
		}
	}

	if cfg.Output != "" {
		opts.Label = len(paths) > 1
		if err := e.writeCSV(cfg.Output, all, opts, rowOpts); err != nil {
			return err
		}
	} else {
		if err := os.MkdirAll(cfg.OutputDir, 0o777); err != nil {
			return err
		}
		for i, out := range e.outputPaths(cfg.OutputDir, paths) {
			if err := e.writeCSV(out, perInput[i], opts, rowOpts); err != nil {
				return err
			}
		}
	}

	if cfg.Aggregate != "" {
		if err := e.writeAggregate(cfg.Aggregate, all); err != nil {
			return err
		}
	}
	return nil
}

// outputPath returns the CSV file in dir for input arg: the base name
// of its label with the extension replaced by ".csv".
func outputPath(dir, arg string) string {
	label, _ := benchfmt.SplitLabel(arg)
	base := filepath.Base(label)
	if label == "-" {
		base = "stdin"
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+".csv")
}

// outputPaths returns the output file for each input. Inputs that
// would share a file get a "-N" suffix, counting from 2.
func (e *env) outputPaths(dir string, args []string) []string {
	outs := make([]string, len(args))
	used := make(map[string]string)
	for i, arg := range args {
		out := outputPath(dir, arg)
		if prev, ok := used[out]; ok {
			base := strings.TrimSuffix(out, ".csv")
			for n := 2; ; n++ {
				out = fmt.Sprintf("%s-%d.csv", base, n)
				if _, ok := used[out]; !ok {
					break
				}
			}
			e.log.Warn("output name collision", zap.String("input", arg), zap.String("other", prev), zap.String("path", out))
		}
		used[out] = arg
		outs[i] = out
	}
	return outs
}

// create opens path for writing, or returns e.w if path is "-".
func (e *env) create(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{e.w}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func (e *env) writeCSV(path string, results []*benchfmt.Result, opts benchfmt.WriterOptions, rowOpts benchtab.RowOpts) (err error) {
	rows, err := benchtab.Rows(results, rowOpts)
	if err != nil {
		return err
	}
	f, err := e.create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierror.Append(err, cerr).ErrorOrNil()
		}
	}()

	bw := benchfmt.NewWriter(f, opts)
	for _, row := range rows {
		if err := bw.Write(row); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if path != "-" {
		e.log.Info("wrote", zap.String("path", path), zap.Int("rows", len(rows)))
	}
	return nil
}

func (e *env) writeAggregate(path string, results []*benchfmt.Result) (err error) {
	proj, err := benchproc.ParseProjection(e.cfg.GroupBy)
	if err != nil {
		return err
	}
	b := benchtab.NewBuilder(proj)
	for _, r := range results {
		b.Add(r)
	}
	table := b.ToTable(benchtab.TableOpts{Warmup: e.cfg.Warmup})

	f, err := e.create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierror.Append(err, cerr).ErrorOrNil()
		}
	}()
	if err := table.ToCSV(f, e.wErr); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if path != "-" {
		e.log.Info("wrote", zap.String("path", path), zap.Int("rows", len(table.Rows)))
	}
	return nil
}
