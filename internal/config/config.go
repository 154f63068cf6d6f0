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

// Package config layers command settings from defaults, an optional YAML file and
// TWEETIDS_* environment variables. Command-line flags are applied last by the CLI.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/aaronlmathis/tweetids/internal/logger"
)

// EnvPrefix prefixes every environment variable the tool reads.
const EnvPrefix = "TWEETIDS_"

// Conf is a namespaced view over environment variables.
// Use New() for global access, or Prefix("LOG_") for module scopes.
type Conf struct {
	prefix  string
	invalid func(Invalid)
}

// Invalid describes an environment value that could not be parsed and was replaced
// by its default.
type Invalid struct {
	Key     string
	Value   string
	Kind    string // "int" or "bool"
	Default string
}

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Env is the TWEETIDS_ scoped view.
func Env() Conf { return New().Prefix(EnvPrefix) }

// Prefix creates a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p, invalid: c.invalid} }

// OnInvalid returns a Conf that hands invalid values to fn instead of logging them
// through the root logger.
func (c Conf) OnInvalid(fn func(Invalid)) Conf { return Conf{prefix: c.prefix, invalid: fn} }

func (c Conf) reportInvalid(inv Invalid) {
	if c.invalid != nil {
		c.invalid(inv)
		return
	}
	logger.Get().Warn().Str("key", inv.Key).Str("value", inv.Value).Str("default", inv.Default).
		Msgf("invalid %s; using default", inv.Kind)
}

func (c Conf) key(k string) string { return c.prefix + k }

// Has reports whether the key is set to a non-empty value
func (c Conf) Has(key string) bool {
	return strings.TrimSpace(os.Getenv(c.key(key))) != ""
}

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(c.key(key)))
	if v == "" {
		return def
	}
	return v
}

// MayInt returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayInt(key string, def int) int {
	s := strings.TrimSpace(os.Getenv(c.key(key)))
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	c.reportInvalid(Invalid{Key: c.key(key), Value: s, Kind: "int", Default: strconv.Itoa(def)})
	return def
}

// MayBool returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayBool(key string, def bool) bool {
	s := strings.TrimSpace(os.Getenv(c.key(key)))
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	c.reportInvalid(Invalid{Key: c.key(key), Value: s, Kind: "bool", Default: strconv.FormatBool(def)})
	return def
}

// MayList splits a comma-separated value, dropping empty items; def if missing/empty.
// A value made only of separators yields an empty, non-nil list.
func (c Conf) MayList(key string, def []string) []string {
	s := strings.TrimSpace(os.Getenv(c.key(key)))
	if s == "" {
		return def
	}
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
