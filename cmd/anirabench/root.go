// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/anira-bench/anirabench/benchfmt"
	"github.com/anira-bench/anirabench/benchproc"
	"github.com/anira-bench/anirabench/cmd/anirabench/internal/config"
	"github.com/anira-bench/anirabench/cmd/anirabench/internal/logging"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is the state shared by all commands of one invocation.
type env struct {
	w, wErr    io.Writer
	configFile string

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd(w, wErr io.Writer) *cobra.Command {
	e := &env{w: w, wErr: wErr}

	root := &cobra.Command{
		Use:   "anirabench [inputs...]",
		Short: "Convert audio inference benchmark logs to CSV",
		Long: `anirabench converts the SingleIteration lines of benchmark logs to CSV,
summarizes them, and plots them. Without a command, it runs convert.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          e.runConvert,
	}
	root.SetOut(w)
	root.SetErr(wErr)
	root.PersistentFlags().StringVar(&e.configFile, "config", "", "read defaults from config `file`")
	root.PersistentFlags().String("log-level", "info", "log `level` (debug, info, warn, error)")
	root.PersistentPreRunE = e.setup
	addConvertFlags(root)

	convert := &cobra.Command{
		Use:   "convert [inputs...]",
		Short: "Write the iterations of each input as CSV",
		RunE:  e.runConvert,
	}
	addConvertFlags(convert)

	summary := &cobra.Command{
		Use:   "summary [inputs...]",
		Short: "Print summary statistics per sequence or configuration",
		RunE:  e.runSummary,
	}
	summary.Flags().String("filter", "", "use only iterations matching filter `query`")
	summary.Flags().String("group-by", "sequence", "group iterations by `projection` (sequence or config)")
	summary.Flags().Int("warmup", 0, "exclude the first `n` iterations of each sequence")
	summary.Flags().String("format", "text", "print results in `format` (text or csv)")
	summary.Flags().Bool("strict", false, "fail on malformed iteration lines")

	plot := &cobra.Command{
		Use:   "plot -o file [inputs...]",
		Short: "Plot runtime per iteration",
		RunE:  e.runPlot,
	}
	plot.Flags().StringP("output", "o", "", "write the chart to `file` (.png, .svg, .pdf, ...)")
	plot.Flags().String("filter", "", "use only iterations matching filter `query`")
	plot.Flags().Int("moving-average", 0, "overlay a moving average over `n` iterations")
	plot.Flags().Bool("strict", false, "fail on malformed iteration lines")

	root.AddCommand(convert, summary, plot)
	return root
}

func addConvertFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("output-dir", "results", "write one CSV per input to `dir`")
	f.StringP("output", "o", "", "write all inputs to a single CSV `file` (- for stdout)")
	f.Int("moving-average", 0, "add a moving average over `n` iterations")
	f.Bool("cumulative", false, "add the cumulative average")
	f.Bool("sample-rate", false, "add the host sample rate")
	f.String("filter", "", "use only iterations matching filter `query`")
	f.String("aggregate", "", "also write summary statistics to CSV `file`")
	f.String("group-by", "sequence", "group -aggregate statistics by `projection` (sequence or config)")
	f.Int("warmup", 0, "exclude the first `n` iterations of each sequence from -aggregate")
	f.String("db", "", "store iterations in database `driver:dsn` (sqlite3 or mysql)")
	f.Bool("strict", false, "fail on malformed iteration lines")
}

func (e *env) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.New(), e.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	log, err := logging.New(e.wErr, cfg.LogLevel)
	if err != nil {
		return err
	}
	e.cfg, e.log = cfg, log
	return nil
}

// inputs returns the command-line inputs, defaulting to stdin.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

// read returns the results of paths that pass the configured filter,
// in input order. Malformed lines are logged, or collected into the
// returned error if cfg.Strict is set.
func (e *env) read(paths ...string) ([]*benchfmt.Result, error) {
	filter, err := benchproc.NewFilter(e.cfg.Filter)
	if err != nil {
		return nil, fmt.Errorf("parsing -filter: %w", err)
	}

	var results []*benchfmt.Result
	var errs *multierror.Error
	files := benchfmt.Files{Paths: paths, AllowStdin: true, AllowLabels: true}
	for files.Scan() {
		res, err := files.Result()
		if err != nil {
			var se *benchfmt.SyntaxError
			if errors.As(err, &se) {
				e.log.Warn(se.Msg, zap.String("file", se.FileName), zap.Int("line", se.Line))
			}
			errs = multierror.Append(errs, err)
			continue
		}
		if !filter.Apply(res) {
			continue
		}
		results = append(results, res.Clone())
	}
	if err := files.Err(); err != nil {
		return nil, err
	}
	if e.cfg.Strict {
		if err := errs.ErrorOrNil(); err != nil {
			return nil, err
		}
	}
	return results, nil
}
