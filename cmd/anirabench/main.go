// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Anirabench converts audio inference benchmark logs to CSV and
// summarizes them.
//
// Usage:
//
//	anirabench [convert] [flags] inputs...
//	anirabench summary [flags] inputs...
//	anirabench plot -o FILE [flags] inputs...
//
// Each input is a log printed by the benchmark fixture. The lines of
// interest time a single iteration of one benchmark configuration:
//
//	Model: model_0.onnx | Backend: onnx | Host Sample Rate: 44100 Hz | Host Buffer Size: 2048 = 46.4399 ms
//	SingleIteration/ProcessBlockFixture/BM_SIMPLE/model_0.onnx/onnx/2048/iteration:0/repetition:0			1.5000 ms
//	SingleIteration/ProcessBlockFixture/BM_SIMPLE/model_0.onnx/onnx/2048/iteration:1/repetition:0			1.0000 ms
//
// All other lines are ignored. A "SingleIteration" line that cannot be
// parsed is reported and skipped, or, with -strict, fails the run.
//
// An input of "-" reads standard input, which is also the default if
// there are no inputs. An input of the form "label=path" reads path
// and labels its results with label instead of the path.
//
// # Convert
//
// convert, which is also the default command, writes the iterations of
// each input to a CSV file in -output-dir named after the input, e.g.
// results/bench.csv for bench.log:
//
//	Model,Backend,Buffer Size,Iteration Count,Repetition Count,Runtime
//	model_0.onnx,onnx,2048,0,0,1.5000
//	model_0.onnx,onnx,2048,1,0,1.0000
//
// With -o, all inputs are written to a single file instead ("-" for
// standard output), with a Log column if there is more than one input.
// -moving-average N, -cumulative and -sample-rate add the columns
// "Moving Average", "Cumulative Average" and "Sample Rate". Averages
// are computed over each sequence of iterations of one repetition of
// one configuration. -aggregate FILE additionally writes the summary
// table described below to FILE, and -db driver:dsn stores the
// iterations in a sqlite3 or mysql database.
//
// # Summary
//
// summary prints one row per group of iterations with the sample
// count, mean, standard deviation, min, max, median and 95th
// percentile of the runtime. -group-by sequence (the default) groups
// by repetition; -group-by config combines all repetitions of a
// configuration. -warmup N excludes the first N iterations of every
// sequence.
//
// # Plot
//
// plot draws runtime against iteration with one line per sequence.
// The image format follows the extension of the -o file.
//
// # Filtering
//
// -filter selects iterations with a filter expression, such as
// "backend:onnx buffer:(512 2048)". See "go doc
// github.com/anira-bench/anirabench/benchproc/syntax".
//
// # Configuration
//
// Flag defaults may be set in anirabench.yaml (or .toml, .json) in
// the current directory or $HOME/.config/anirabench, or in a file
// given by -config, using the flag names as keys. Environment
// variables of the form ANIRABENCH_MOVING_AVERAGE override the file;
// flags override everything.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "anirabench: %s\n", err)
		os.Exit(1)
	}
}

func run(w, wErr io.Writer, args []string) error {
	root := newRootCmd(w, wErr)
	root.SetArgs(args)
	return root.Execute()
}
