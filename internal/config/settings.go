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

package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aaronlmathis/tweetids/readers"
)

// Settings is the resolved run configuration.
type Settings struct {
	Languages    []string
	Strict       bool
	Archive      bool
	FoldCase     bool
	Output       string
	Format       string
	MaxLineBytes int
	LogLevel     string
	LogFormat    string
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Settings {
	return Settings{
		Output:       "-",
		Format:       "text",
		MaxLineBytes: readers.DefaultMaxLineBytes,
		LogLevel:     "info",
		LogFormat:    "console",
	}
}

// File is the YAML configuration file layout. Unset fields leave the lower layer
// untouched.
type File struct {
	Languages    []string `yaml:"languages"`
	Strict       *bool    `yaml:"strict"`
	Archive      *bool    `yaml:"archive"`
	FoldCase     *bool    `yaml:"fold_case"`
	Output       string   `yaml:"output"`
	Format       string   `yaml:"format"`
	MaxLineBytes int      `yaml:"max_line_bytes"`
	Log          struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// LoadFile reads a YAML configuration file. Unknown keys are rejected.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	var file File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &file, nil
}

// LoadDotEnv loads variables from .env style files into the environment without
// overriding variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ErrNoLanguageCodes is returned when a language list is given but holds no codes.
// Only an absent list disables filtering.
var ErrNoLanguageCodes = errors.New("language list is set but holds no codes")

// ApplyFile overlays the values set in f.
func (s *Settings) ApplyFile(f *File) error {
	if f == nil {
		return nil
	}
	if f.Languages != nil {
		if len(f.Languages) == 0 {
			return fmt.Errorf("config languages: %w", ErrNoLanguageCodes)
		}
		s.Languages = f.Languages
	}
	if f.Strict != nil {
		s.Strict = *f.Strict
	}
	if f.Archive != nil {
		s.Archive = *f.Archive
	}
	if f.FoldCase != nil {
		s.FoldCase = *f.FoldCase
	}
	if f.Output != "" {
		s.Output = f.Output
	}
	if f.Format != "" {
		s.Format = f.Format
	}
	if f.MaxLineBytes > 0 {
		s.MaxLineBytes = f.MaxLineBytes
	}
	if f.Log.Level != "" {
		s.LogLevel = f.Log.Level
	}
	if f.Log.Format != "" {
		s.LogFormat = f.Log.Format
	}
	return nil
}

// ApplyEnv overlays the TWEETIDS_* variables set in c.
func (s *Settings) ApplyEnv(c Conf) error {
	if c.Has("LANGUAGES") {
		langs := c.MayList("LANGUAGES", nil)
		if len(langs) == 0 {
			return fmt.Errorf("%sLANGUAGES: %w", c.prefix, ErrNoLanguageCodes)
		}
		s.Languages = langs
	}
	s.Strict = c.MayBool("STRICT", s.Strict)
	s.Archive = c.MayBool("ARCHIVE", s.Archive)
	s.FoldCase = c.MayBool("FOLD_CASE", s.FoldCase)
	s.Output = c.MayString("OUTPUT", s.Output)
	s.Format = c.MayString("FORMAT", s.Format)
	s.MaxLineBytes = c.MayInt("MAX_LINE_BYTES", s.MaxLineBytes)

	log := c.Prefix("LOG_")
	s.LogLevel = log.MayString("LEVEL", s.LogLevel)
	s.LogFormat = log.MayString("FORMAT", s.LogFormat)
	return nil
}

// Load resolves defaults, then the YAML file at path (when non-empty), then the
// environment. Unparsable environment values keep the lower layer's value and are
// returned so the caller can log them once its logger is configured.
func Load(path string) (Settings, []Invalid, error) {
	s := Defaults()
	if path != "" {
		f, err := LoadFile(path)
		if err != nil {
			return s, nil, err
		}
		if err := s.ApplyFile(f); err != nil {
			return s, nil, err
		}
	}

	var invalid []Invalid
	env := Env().OnInvalid(func(inv Invalid) { invalid = append(invalid, inv) })
	if err := s.ApplyEnv(env); err != nil {
		return s, invalid, err
	}
	return s, invalid, nil
}
