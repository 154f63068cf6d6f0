//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Copyright (C) 2025 Aaron Mathis aaron.mathis@gmail.com
//
// This file is part of tweetids.
//
// tweetids is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// tweetids is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with tweetids. If not, see https://www.gnu.org/licenses/.

package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{" WARN ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseLevel(c.in), c.in)
	}
	assert.True(t, ValidLevel("Debug"))
	assert.False(t, ValidLevel("loud"))
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"LEVEL", "DEBUG")
	t.Setenv(EnvPrefix+"FORMAT", "json")
	t.Setenv(EnvPrefix+"CALLER", "true")

	opt := FromEnv()
	assert.Equal(t, "debug", opt.Level)
	assert.Equal(t, "json", opt.Format)
	assert.True(t, opt.WithCaller)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Format: "json", Component: "reader", Writer: &buf})

	log.Info().Msg("dropped")
	log.Warn().Str("k", "v").Msg("kept")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "reader", line["component"])
	assert.Equal(t, "v", line["k"])
	assert.NotContains(t, buf.String(), "dropped")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Format: "console", Writer: &buf})

	log.Error().Err(errors.New("boom")).Msg("failed")
	assert.Contains(t, buf.String(), "failed")
	assert.Contains(t, buf.String(), "boom")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestNew_ConsoleToRedirectedFileHasNoColor(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stderr.log"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, isTerminal(f))
	log := New(Options{Level: "info", Format: "console", Writer: f})
	log.Warn().Str("key", "TWEETIDS_STRICT").Msg("invalid bool; using default")
	require.NoError(t, f.Sync())

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "invalid bool")
	assert.NotContains(t, string(data), "\x1b[")
}

func TestInit_Get(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Format: "json", Component: "cli", Writer: &buf})

	Get().Info().Msg("root-msg")

	out := buf.String()
	assert.Contains(t, out, "root-msg")
	assert.Contains(t, out, `"component":"cli"`)
	assert.Same(t, Get(), Get())
}
