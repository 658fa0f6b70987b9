// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads anirabench settings from defaults, a config
// file, ANIRABENCH_* environment variables, and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anira-bench/anirabench/benchproc"
	"github.com/anira-bench/anirabench/cmd/anirabench/internal/logging"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the merged configuration of one invocation.
type Config struct {
	OutputDir     string `mapstructure:"output-dir"`
	Output        string `mapstructure:"output"`
	MovingAverage int    `mapstructure:"moving-average"`
	Cumulative    bool   `mapstructure:"cumulative"`
	SampleRate    bool   `mapstructure:"sample-rate"`
	Filter        string `mapstructure:"filter"`
	Aggregate     string `mapstructure:"aggregate"`
	GroupBy       string `mapstructure:"group-by"`
	Warmup        int    `mapstructure:"warmup"`
	DB            string `mapstructure:"db"`
	Strict        bool   `mapstructure:"strict"`
	Format        string `mapstructure:"format"`
	LogLevel      string `mapstructure:"log-level"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		OutputDir: "results",
		GroupBy:   "sequence",
		Format:    "text",
		LogLevel:  "info",
	}
}

// New returns a viper instance with defaults and environment binding
// set up.
func New() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("output-dir", d.OutputDir)
	v.SetDefault("output", d.Output)
	v.SetDefault("moving-average", d.MovingAverage)
	v.SetDefault("cumulative", d.Cumulative)
	v.SetDefault("sample-rate", d.SampleRate)
	v.SetDefault("filter", d.Filter)
	v.SetDefault("aggregate", d.Aggregate)
	v.SetDefault("group-by", d.GroupBy)
	v.SetDefault("warmup", d.Warmup)
	v.SetDefault("db", d.DB)
	v.SetDefault("strict", d.Strict)
	v.SetDefault("format", d.Format)
	v.SetDefault("log-level", d.LogLevel)

	v.SetEnvPrefix("anirabench")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v, applies flags, and returns the
// validated result. If file is empty, Load looks for anirabench.yaml
// (or .toml, .json) in the current directory and in
// $HOME/.config/anirabench; a missing file is not an error.
func Load(v *viper.Viper, file string, flags *pflag.FlagSet) (*Config, error) {
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("anirabench")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "anirabench"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the ranges and enumerations of c.
func (c *Config) Validate() error {
	if c.MovingAverage < 0 {
		return fmt.Errorf("moving-average must be >= 0, got %d", c.MovingAverage)
	}
	if c.Warmup < 0 {
		return fmt.Errorf("warmup must be >= 0, got %d", c.Warmup)
	}
	if _, err := benchproc.ParseProjection(c.GroupBy); err != nil {
		return err
	}
	if c.Format != "text" && c.Format != "csv" {
		return fmt.Errorf("format must be text or csv, got %q", c.Format)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
