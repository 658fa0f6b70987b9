// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/anira-bench/anirabench/benchproc"
	"github.com/anira-bench/anirabench/cmd/anirabench/internal/benchtab"
	"github.com/spf13/cobra"
)

func (e *env) runSummary(cmd *cobra.Command, args []string) error {
	proj, err := benchproc.ParseProjection(e.cfg.GroupBy)
	if err != nil {
		return err
	}
	results, err := e.read(inputs(args)...)
	if err != nil {
		return err
	}

	b := benchtab.NewBuilder(proj)
	for _, r := range results {
		b.Add(r)
	}
	table := b.ToTable(benchtab.TableOpts{Warmup: e.cfg.Warmup})
	if e.cfg.Format == "csv" {
		return table.ToCSV(e.w, e.wErr)
	}
	return table.ToText(e.w)
}
