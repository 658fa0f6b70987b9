// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"

	"github.com/anira-bench/anirabench/cmd/anirabench/internal/chart"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (e *env) runPlot(cmd *cobra.Command, args []string) error {
	if e.cfg.Output == "" {
		return errors.New("plot requires -o file")
	}
	results, err := e.read(inputs(args)...)
	if err != nil {
		return err
	}
	p, err := chart.Runtime(results, chart.Options{MovingAverage: e.cfg.MovingAverage})
	if err != nil {
		return err
	}
	if err := chart.Save(p, e.cfg.Output); err != nil {
		return err
	}
	e.log.Info("wrote", zap.String("path", e.cfg.Output))
	return nil
}
