// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anira-bench/anirabench/cmd/anirabench/internal/config"
	"github.com/anira-bench/anirabench/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConvert(t *testing.T) {
	golden(t, "convertSimple", "convert", "-o", "-", "simple.log")
	golden(t, "convertStats", "-o", "-", "--moving-average", "2", "--cumulative", "--sample-rate", "simple.log")
	golden(t, "convertMixed", "convert", "-o", "-", "simple.log", "mixed.log")
	golden(t, "convertFilter", "convert", "-o", "-", "--filter", "backend:libtorch OR repetition:12", "simple.log", "B=mixed.log")
}

func TestSummary(t *testing.T) {
	golden(t, "summaryCSV", "summary", "--format", "csv", "simple.log")
	golden(t, "summaryConfig", "summary", "--format", "csv", "--group-by", "config", "--warmup", "1", "simple.log", "mixed.log")
}

func TestSummaryText(t *testing.T) {
	stdout, _ := runIn(t, "testdata", "summary", "simple.log")
	for _, want := range []string{"model_0.onnx", "1.5000", "2.0000", "3.0000"} {
		assert.Contains(t, stdout, want)
	}
}

func TestConvertOutputDir(t *testing.T) {
	dir := t.TempDir()
	_, stderr := runIn(t, "testdata", "--output-dir", filepath.Join(dir, "results"), "simple.log", "x=mixed.log")

	data, err := os.ReadFile(filepath.Join(dir, "results", "simple.csv"))
	require.NoError(t, err)
	assert.Equal(t, 7, strings.Count(string(data), "\n"))

	data, err = os.ReadFile(filepath.Join(dir, "results", "x.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Model,Backend,Buffer Size,Iteration Count,Repetition Count,Runtime\n"+
		"hybridnn.pt,libtorch,512,0,0,0.2500\n"+
		"hybridnn.pt,libtorch,512,1,0,0.7500\n"+
		"no_model,custom,256,0,12,0.0100\n", string(data))

	assert.Contains(t, stderr, "warn malformed iteration line")
	assert.Contains(t, stderr, "info wrote")
}

func TestConvertOutputDirCollision(t *testing.T) {
	dir := t.TempDir()
	src, err := os.ReadFile(filepath.Join("testdata", "simple.log"))
	require.NoError(t, err)
	for _, sub := range []string{"a", "b", "c"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o777))
		require.NoError(t, os.WriteFile(filepath.Join(dir, sub, "bench.log"), src, 0o644))
	}
	_, stderr := runIn(t, dir, "--output-dir", "results", "a/bench.log", "b/bench.log", "c/bench.log")

	for _, name := range []string{"bench.csv", "bench-2.csv", "bench-3.csv"} {
		data, err := os.ReadFile(filepath.Join(dir, "results", name))
		require.NoError(t, err, name)
		assert.Equal(t, 7, strings.Count(string(data), "\n"), name)
	}
	assert.Contains(t, stderr, `warn output name collision {"input": "b/bench.log", "other": "a/bench.log"`)
	assert.Contains(t, stderr, `"path": "`+filepath.Join("results", "bench-3.csv")+`"`)
}

func TestOutputPaths(t *testing.T) {
	e := &env{log: zap.NewNop()}
	got := e.outputPaths("out", []string{"x/bench.log", "bench.csv", "y/bench.txt", "bench-2.log", "-"})
	assert.Equal(t, []string{
		filepath.Join("out", "bench.csv"),
		filepath.Join("out", "bench-2.csv"),
		filepath.Join("out", "bench-3.csv"),
		filepath.Join("out", "bench-2-2.csv"),
		filepath.Join("out", "stdin.csv"),
	}, got)
}

func TestConvertAggregate(t *testing.T) {
	agg := filepath.Join(t.TempDir(), "agg.csv")
	runIn(t, "testdata", "-o", "-", "--aggregate", agg, "--group-by", "config", "simple.log")
	data, err := os.ReadFile(agg)
	require.NoError(t, err)
	assert.Equal(t, "Log,Model,Backend,Buffer Size,Samples,Mean,Std Dev,Min,Max,Median,P95\n"+
		"simple.log,model_0.onnx,onnx,2048,6,1.7500,0.7583,1.0000,3.0000,1.5000,3.0000\n", string(data))
}

func TestConvertDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.db")
	runIn(t, "testdata", "-o", "-", "--db", "sqlite3:"+path, "simple.log", "mixed.log")

	db, err := storage.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	for id, want := range map[int64]int{1: 6, 2: 3} {
		got, err := db.Iterations(context.Background(), id)
		require.NoError(t, err)
		assert.Len(t, got, want)
	}
}

func TestPlot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "runtime.svg")
	runIn(t, "testdata", "plot", "-o", out, "--moving-average", "2", "simple.log")
	fi, err := os.Stat(out)
	require.NoError(t, err)
	assert.NotZero(t, fi.Size())
}

func TestConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "anirabench.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("output: \"-\"\ncumulative: true\n"), 0o644))
	stdout, _ := runIn(t, "testdata", "--config", cfg, "simple.log")
	assert.True(t, strings.HasPrefix(stdout, "Model,Backend,Buffer Size,Iteration Count,Repetition Count,Runtime,Cumulative Average\n"))
}

func TestErrors(t *testing.T) {
	testChdir(t, "testdata")
	t.Setenv("HOME", t.TempDir())
	for _, test := range []struct {
		args []string
		err  string
	}{
		{[]string{"-o", "-", "--strict", "mixed.log"}, "mixed.log:4: malformed iteration line"},
		{[]string{"-o", "-", "--filter", "colour:red", "simple.log"}, `unknown key "colour"`},
		{[]string{"-o", "-", "missing.log"}, "missing.log"},
		{[]string{"-o", "-", "--moving-average", "-1", "simple.log"}, "moving-average must be >= 0"},
		{[]string{"summary", "--group-by", "model", "simple.log"}, `unknown grouping "model"`},
		{[]string{"plot", "simple.log"}, "plot requires -o file"},
		{[]string{"plot", "-o", "chart.bmp", "simple.log"}, `unsupported image format "bmp"`},
		{[]string{"-o", "-", "--db", "results.db", "simple.log"}, "must have the form driver:dsn"},
	} {
		var stdout, stderr bytes.Buffer
		err := run(&stdout, &stderr, test.args)
		if assert.Error(t, err, "%v", test.args) {
			assert.Contains(t, err.Error(), test.err, "%v", test.args)
		}
	}
}

// runIn runs anirabench in dir with a clean home directory and
// returns its output.
func runIn(t *testing.T, dir string, args ...string) (stdout, stderr string) {
	t.Helper()
	testChdir(t, dir)
	t.Setenv("HOME", t.TempDir())

	var got, gotErr bytes.Buffer
	t.Logf("anirabench %s", strings.Join(args, " "))
	if err := run(&got, &gotErr, args); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return got.String(), gotErr.String()
}

func golden(t *testing.T, name string, args ...string) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		stdout, stderr := runIn(t, "testdata", args...)

		// Compare to the golden output.
		compare(t, name, "stdout", []byte(stdout))
		compare(t, name, "stderr", []byte(stderr))
	})
}

func compare(t *testing.T, name, sub string, got []byte) {
	t.Helper()

	wantPath := name + "." + sub
	want, err := os.ReadFile(wantPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Treat a missing file as empty.
			want = nil
		} else {
			t.Fatal(err)
		}
	}

	if bytes.Equal(want, got) {
		return
	}

	// Write a "got" file for reference.
	gotPath := name + ".got-" + sub
	if err := os.WriteFile(gotPath, got, 0666); err != nil {
		t.Fatalf("error writing %s: %s", gotPath, err)
	}

	data, err := exec.Command("diff", "-Nu", wantPath, gotPath).CombinedOutput()
	if len(data) > 0 {
		t.Errorf("diff -Nu %s %s:\n%s", wantPath, gotPath, string(data))
		return
	}
	// Most likely, "diff not found" so print the bad output so there is something.
	t.Errorf("want:\n%sgot:\n%s", string(want), string(got))
}

func TestReadLogsSyntaxErrors(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := &env{cfg: &config.Config{}, log: zap.New(core)}

	results, err := e.read("testdata/mixed.log")
	require.NoError(t, err)
	assert.Len(t, results, 3)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "malformed iteration line", entry.Message)
	assert.Equal(t, map[string]interface{}{"file": "testdata/mixed.log", "line": int64(4)}, entry.ContextMap())

	e.cfg.Strict = true
	_, err = e.read("testdata/mixed.log")
	assert.ErrorContains(t, err, "testdata/mixed.log:4: malformed iteration line")
}

// testChdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func testChdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if abs, err := filepath.Abs(dir); err == nil {
		t.Setenv("PWD", abs)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
