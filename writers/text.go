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
	"strconv"
)

// TextWriterStats holds statistics about the writer's progress.
type TextWriterStats struct {
	IDsWritten int64
	FlushCount int64
}

// TextWriterOptions configures a TextWriter.
type TextWriterOptions struct {
	BufferSize   int  // Size of the output buffer in bytes
	FlushOnWrite bool // Flush after every id, for interactive consumers
}

// WriterOptionText represents a functional option for TextWriter.
type WriterOptionText func(*TextWriterOptions)

// WithTextBufferSize sets the output buffer size.
func WithTextBufferSize(size int) WriterOptionText {
	return func(o *TextWriterOptions) {
		if size > 0 {
			o.BufferSize = size
		}
	}
}

// WithTextFlushOnWrite flushes after every id.
func WithTextFlushOnWrite(enabled bool) WriterOptionText {
	return func(o *TextWriterOptions) {
		o.FlushOnWrite = enabled
	}
}

// TextWriter writes one base-10 tweet id per line.
type TextWriter struct {
	w       *bufio.Writer
	closer  io.Closer
	scratch []byte
	stats   TextWriterStats
	opts    TextWriterOptions
	closed  bool
}

// NewTextWriter creates a TextWriter. Closing it closes w.
func NewTextWriter(w io.WriteCloser, options ...WriterOptionText) *TextWriter {
	opts := TextWriterOptions{BufferSize: 64 * 1024}
	for _, opt := range options {
		opt(&opts)
	}
	return &TextWriter{
		w:       bufio.NewWriterSize(w, opts.BufferSize),
		closer:  w,
		scratch: make([]byte, 0, 24),
		opts:    opts,
	}
}

// Write implements core.IDSink.
func (t *TextWriter) Write(ctx context.Context, id int64) error {
	if t.closed {
		return &WriterError{Writer: "text", Op: "write", Err: errClosed}
	}

	t.scratch = strconv.AppendInt(t.scratch[:0], id, 10)
	t.scratch = append(t.scratch, '\n')
	if _, err := t.w.Write(t.scratch); err != nil {
		return &WriterError{Writer: "text", Op: "write", Err: err}
	}
	t.stats.IDsWritten++

	if t.opts.FlushOnWrite {
		return t.Flush()
	}
	return nil
}

// Flush implements core.IDSink.
func (t *TextWriter) Flush() error {
	if err := t.w.Flush(); err != nil {
		return &WriterError{Writer: "text", Op: "flush", Err: err}
	}
	t.stats.FlushCount++
	return nil
}

// Close implements core.IDSink. It flushes before closing the destination.
func (t *TextWriter) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	if err := t.Flush(); err != nil {
		return err
	}
	if t.closer != nil {
		if err := t.closer.Close(); err != nil {
			return &WriterError{Writer: "text", Op: "close", Err: err}
		}
	}
	return nil
}

// Stats returns the current statistics of the writer.
func (t *TextWriter) Stats() TextWriterStats {
	return t.stats
}
