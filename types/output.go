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

package types

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aaronlmathis/tweetids/core"
	"github.com/aaronlmathis/tweetids/writers"
)

// OutputFormat represents a supported sink format.
type OutputFormat int

const (
	FormatText OutputFormat = iota
	FormatJSON
	FormatCSV
	FormatParquet
)

var formatNames = map[OutputFormat]string{
	FormatText:    "text",
	FormatJSON:    "json",
	FormatCSV:     "csv",
	FormatParquet: "parquet",
}

func (f OutputFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("OutputFormat(%d)", int(f))
}

// ParseOutputFormat maps a format name to an OutputFormat. Matching ignores case.
// The empty string selects FormatText.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json", "jsonl", "ndjson":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "parquet":
		return FormatParquet, nil
	default:
		return 0, fmt.Errorf("unknown output format %q (want text, json, csv or parquet)", name)
	}
}

// OutputLocation creates an IDSink for a given format.
type OutputLocation interface {
	NewSink(format OutputFormat) (core.IDSink, error)
	String() string
}

// StdoutLocation writes output to the process's standard output.
// Closing the sink flushes it but leaves stdout open.
type StdoutLocation struct {
	// Writer overrides os.Stdout; used by tests.
	Writer io.Writer
}

func (s StdoutLocation) String() string { return "stdout" }

// NewSink instantiates a writer for standard output.
func (s StdoutLocation) NewSink(format OutputFormat) (core.IDSink, error) {
	w := s.Writer
	if w == nil {
		w = os.Stdout
	}
	return newSink(nopCloser{w}, format, s.String())
}

// FileLocation writes output to a local filesystem path.
type FileLocation struct {
	Path string
}

func (f FileLocation) String() string { return f.Path }

// NewSink creates the file (and its parent directories) and instantiates a writer for it.
func (f FileLocation) NewSink(format OutputFormat) (core.IDSink, error) {
	if format == FormatParquet {
		pw, err := writers.NewParquetWriter(f.Path)
		if err != nil {
			return nil, err
		}
		return pw, nil
	}

	if dir := filepath.Dir(f.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	file, err := os.Create(f.Path)
	if err != nil {
		return nil, err
	}

	sink, err := newSink(file, format, f.Path)
	if err != nil {
		file.Close()
		return nil, err
	}
	return sink, nil
}

// ResolveOutput selects the output location for path. "" and "-" mean stdout.
// Parquet cannot be streamed to stdout.
func ResolveOutput(path string, format OutputFormat) (OutputLocation, error) {
	if path == "" || path == "-" {
		if format == FormatParquet {
			return nil, fmt.Errorf("parquet output requires a file path")
		}
		return StdoutLocation{}, nil
	}
	return FileLocation{Path: path}, nil
}

func newSink(w io.WriteCloser, format OutputFormat, name string) (core.IDSink, error) {
	switch format {
	case FormatText:
		return writers.NewTextWriter(w), nil
	case FormatJSON:
		jw, err := writers.NewJSONWriter(w)
		if err != nil {
			return nil, err
		}
		return jw, nil
	case FormatCSV:
		cw, err := writers.NewCSVWriter(w)
		if err != nil {
			return nil, err
		}
		return cw, nil
	default:
		return nil, fmt.Errorf("unsupported format %s for %s", format, name)
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
