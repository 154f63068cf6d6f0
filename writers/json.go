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
	"bufio"
	"context"
	"io"

	"github.com/goccy/go-json"
)

// JSONWriterStats holds statistics about the writer's progress.
type JSONWriterStats struct {
	IDsWritten int64
	FlushCount int64
}

// JSONWriterOptions configures a JSONWriter.
type JSONWriterOptions struct {
	FieldName    string // Key holding the id, "tweet_id" by default
	FlushOnWrite bool   // Flush after every id
}

// WriterOptionJSON represents a functional option for JSONWriter.
type WriterOptionJSON func(*JSONWriterOptions)

// WithJSONFieldName sets the key holding the id.
func WithJSONFieldName(name string) WriterOptionJSON {
	return func(o *JSONWriterOptions) {
		if name != "" {
			o.FieldName = name
		}
	}
}

// WithFlushOnWrite flushes after every id.
func WithFlushOnWrite(enabled bool) WriterOptionJSON {
	return func(o *JSONWriterOptions) {
		o.FlushOnWrite = enabled
	}
}

// JSONWriter writes each tweet id as a one-field JSON object per line.
type JSONWriter struct {
	w      *bufio.Writer
	closer io.Closer
	key    []byte
	stats  JSONWriterStats
	opts   JSONWriterOptions
	closed bool
}

// NewJSONWriter creates a JSONWriter. Closing it closes w.
func NewJSONWriter(w io.WriteCloser, options ...WriterOptionJSON) (*JSONWriter, error) {
	opts := JSONWriterOptions{FieldName: "tweet_id"}
	for _, opt := range options {
		opt(&opts)
	}

	key, err := json.Marshal(opts.FieldName)
	if err != nil {
		return nil, &WriterError{Writer: "json", Op: "marshal_key", Err: err}
	}

	return &JSONWriter{
		w:      bufio.NewWriter(w),
		closer: w,
		key:    key,
		opts:   opts,
	}, nil
}

// Write implements core.IDSink.
func (j *JSONWriter) Write(ctx context.Context, id int64) error {
	if j.closed {
		return &WriterError{Writer: "json", Op: "write", Err: errClosed}
	}

	value, err := json.Marshal(id)
	if err != nil {
		return &WriterError{Writer: "json", Op: "marshal", Err: err}
	}

	j.w.WriteByte('{')
	j.w.Write(j.key)
	j.w.WriteByte(':')
	j.w.Write(value)
	if _, err := j.w.WriteString("}\n"); err != nil {
		return &WriterError{Writer: "json", Op: "write", Err: err}
	}
	j.stats.IDsWritten++

	if j.opts.FlushOnWrite {
		return j.Flush()
	}
	return nil
}

// Flush implements core.IDSink.
func (j *JSONWriter) Flush() error {
	if err := j.w.Flush(); err != nil {
		return &WriterError{Writer: "json", Op: "flush", Err: err}
	}
	j.stats.FlushCount++
	return nil
}

// Close implements core.IDSink.
func (j *JSONWriter) Close() error {
	if j.closed {
		return nil
	}
	j.closed = true

	if err := j.Flush(); err != nil {
		return err
	}
	if j.closer != nil {
		if err := j.closer.Close(); err != nil {
			return &WriterError{Writer: "json", Op: "close", Err: err}
		}
	}
	return nil
}

// Stats returns the current statistics of the writer.
func (j *JSONWriter) Stats() JSONWriterStats {
	return j.stats
}
