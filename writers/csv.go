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

package writers

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// CSVWriterStats holds statistics about the writer's progress.
type CSVWriterStats struct {
	IDsWritten    int64
	FlushCount    int64
	FlushDuration time.Duration
	LastFlushTime time.Time
}

// CSVWriterOptions configures a CSVWriter.
type CSVWriterOptions struct {
	Comma       rune   // Field delimiter
	UseCRLF     bool   // Terminate rows with \r\n
	WriteHeader bool   // Emit a header row
	Header      string // Header column name
	BatchSize   int    // Flush every BatchSize rows; 0 flushes only on Flush/Close
}

// WriterOptionCSV represents a functional option for CSVWriter.
type WriterOptionCSV func(*CSVWriterOptions)

// WithComma sets the field delimiter.
func WithComma(delim rune) WriterOptionCSV {
	return func(opts *CSVWriterOptions) {
		opts.Comma = delim
	}
}

// WithWriteHeader toggles the header row.
func WithWriteHeader(write bool) WriterOptionCSV {
	return func(opts *CSVWriterOptions) {
		opts.WriteHeader = write
	}
}

// WithHeader sets the header column name.
func WithHeader(name string) WriterOptionCSV {
	return func(opts *CSVWriterOptions) {
		opts.Header = name
	}
}

// WithCSVBatchSize flushes every size rows.
func WithCSVBatchSize(size int) WriterOptionCSV {
	return func(opts *CSVWriterOptions) {
		opts.BatchSize = size
	}
}

// WithUseCRLF terminates rows with \r\n.
func WithUseCRLF(useCRLF bool) WriterOptionCSV {
	return func(opts *CSVWriterOptions) {
		opts.UseCRLF = useCRLF
	}
}

// CSVWriter writes one tweet id per CSV row.
type CSVWriter struct {
	writer      *csv.Writer
	closer      io.Closer
	options     CSVWriterOptions
	row         []string
	pending     int
	stats       CSVWriterStats
	wroteHeader bool
	errorState  bool
	closed      bool
}

// NewCSVWriter creates a CSVWriter. Closing it closes w.
func NewCSVWriter(w io.WriteCloser, opts ...WriterOptionCSV) (*CSVWriter, error) {
	options := CSVWriterOptions{
		Comma:       ',',
		WriteHeader: true,
		Header:      "tweet_id",
	}
	for _, opt := range opts {
		opt(&options)
	}

	cw := csv.NewWriter(w)
	cw.Comma = options.Comma
	cw.UseCRLF = options.UseCRLF

	return &CSVWriter{
		writer:  cw,
		closer:  w,
		options: options,
		row:     make([]string, 1),
	}, nil
}

// Write implements core.IDSink.
func (c *CSVWriter) Write(ctx context.Context, id int64) error {
	if c.closed {
		return &WriterError{Writer: "csv", Op: "write", Err: errClosed}
	}
	if c.errorState {
		return &WriterError{Writer: "csv", Op: "write", Err: io.ErrClosedPipe}
	}

	if err := c.writeHeader(); err != nil {
		return err
	}

	c.row[0] = strconv.FormatInt(id, 10)
	if err := c.writer.Write(c.row); err != nil {
		c.errorState = true
		return &WriterError{Writer: "csv", Op: "write_row", Err: err}
	}
	c.stats.IDsWritten++
	c.pending++

	if c.options.BatchSize > 0 && c.pending >= c.options.BatchSize {
		if err := c.Flush(); err != nil {
			c.errorState = true
			return err
		}
	}
	return nil
}

// Flush implements core.IDSink.
func (c *CSVWriter) Flush() error {
	start := time.Now()

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return &WriterError{Writer: "csv", Op: "flush", Err: err}
	}

	c.pending = 0
	c.stats.FlushCount++
	c.stats.LastFlushTime = time.Now()
	c.stats.FlushDuration += time.Since(start)
	return nil
}

// Close implements core.IDSink. A header is written even when no ids were.
func (c *CSVWriter) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if err := c.writeHeader(); err != nil {
		return err
	}
	if err := c.Flush(); err != nil {
		return err
	}
	if c.closer != nil {
		if err := c.closer.Close(); err != nil {
			return &WriterError{Writer: "csv", Op: "close", Err: err}
		}
	}
	return nil
}

// Stats returns the current statistics of the writer.
func (c *CSVWriter) Stats() CSVWriterStats {
	return c.stats
}

func (c *CSVWriter) writeHeader() error {
	if c.wroteHeader || !c.options.WriteHeader {
		return nil
	}
	if err := c.writer.Write([]string{c.options.Header}); err != nil {
		c.errorState = true
		return &WriterError{Writer: "csv", Op: "write_header", Err: err}
	}
	c.wroteHeader = true
	return nil
}
