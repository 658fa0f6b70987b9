// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn")
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("malformed iteration line", zap.String("file", "bench.log"), zap.Int("line", 4))
	require.NoError(t, log.Sync())

	assert.Equal(t, "warn malformed iteration line {\"file\": \"bench.log\", \"line\": 4}\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	_, err := ParseLevel("loud")
	assert.EqualError(t, err, `bad log level "loud"`)
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, "debug", l.String())
}
