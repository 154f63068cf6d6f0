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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"
	"github.com/apache/arrow/go/v12/arrow/memory"
	"github.com/apache/arrow/go/v12/parquet"
	"github.com/apache/arrow/go/v12/parquet/compress"
	"github.com/apache/arrow/go/v12/parquet/pqarrow"
)

// This file implements a Parquet sink holding a single non-nullable INT64 column of
// tweet ids. Ids are buffered in an Arrow builder and written as record batches.

// ParquetWriterStats holds statistics about the writer's progress.
type ParquetWriterStats struct {
	IDsWritten     int64
	BatchesFlushed int64
	FlushDuration  time.Duration
}

// ParquetWriterOptions configures a ParquetWriter.
type ParquetWriterOptions struct {
	BatchSize    int                  // Ids per Arrow record batch
	RowGroupSize int64                // Max rows per Parquet row group; 0 keeps the library default
	Compression  compress.Compression // Compression codec
	ColumnName   string               // Name of the id column
}

// WriterOptionParquet represents a functional option for ParquetWriter.
type WriterOptionParquet func(*ParquetWriterOptions)

// WithParquetBatchSize sets the number of ids per record batch.
func WithParquetBatchSize(size int) WriterOptionParquet {
	return func(opts *ParquetWriterOptions) {
		if size > 0 {
			opts.BatchSize = size
		}
	}
}

// WithRowGroupSize sets the maximum number of rows per row group.
func WithRowGroupSize(size int64) WriterOptionParquet {
	return func(opts *ParquetWriterOptions) {
		opts.RowGroupSize = size
	}
}

// WithCompression sets the Parquet compression codec.
func WithCompression(compression compress.Compression) WriterOptionParquet {
	return func(opts *ParquetWriterOptions) {
		opts.Compression = compression
	}
}

// WithColumnName sets the name of the id column.
func WithColumnName(name string) WriterOptionParquet {
	return func(opts *ParquetWriterOptions) {
		if name != "" {
			opts.ColumnName = name
		}
	}
}

// ParquetWriter writes tweet ids to a Parquet file.
type ParquetWriter struct {
	file    *os.File
	writer  *pqarrow.FileWriter
	schema  *arrow.Schema
	builder *array.Int64Builder
	stats   ParquetWriterStats
	opts    ParquetWriterOptions
	closed  bool
}

// NewParquetWriter creates filename (and its parent directories) and prepares the
// Parquet file writer.
func NewParquetWriter(filename string, options ...WriterOptionParquet) (*ParquetWriter, error) {
	opts := ParquetWriterOptions{
		BatchSize:   64 * 1024,
		Compression: compress.Codecs.Snappy,
		ColumnName:  "tweet_id",
	}
	for _, opt := range options {
		opt(&opts)
	}

	dir := filepath.Dir(filename)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &WriterError{
				Writer: "parquet",
				Op:     "create_directory",
				Err:    fmt.Errorf("failed to create directory %s: %w", dir, err),
			}
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, &WriterError{
			Writer: "parquet",
			Op:     "open_file",
			Err:    fmt.Errorf("failed to create parquet file %s: %w", filename, err),
		}
	}

	schema := arrow.NewSchema([]arrow.Field{
		{Name: opts.ColumnName, Type: arrow.PrimitiveTypes.Int64, Nullable: false},
	}, nil)

	propOpts := []parquet.WriterProperty{parquet.WithCompression(opts.Compression)}
	if opts.RowGroupSize > 0 {
		propOpts = append(propOpts, parquet.WithMaxRowGroupLength(opts.RowGroupSize))
	}

	writer, err := pqarrow.NewFileWriter(schema, file, parquet.NewWriterProperties(propOpts...), pqarrow.DefaultWriterProps())
	if err != nil {
		file.Close()
		return nil, &WriterError{
			Writer: "parquet",
			Op:     "create_writer",
			Err:    fmt.Errorf("failed to create parquet file writer: %w", err),
		}
	}

	return &ParquetWriter{
		file:    file,
		writer:  writer,
		schema:  schema,
		builder: array.NewInt64Builder(memory.NewGoAllocator()),
		opts:    opts,
	}, nil
}

// Write implements core.IDSink. Ids are buffered until BatchSize is reached.
func (p *ParquetWriter) Write(ctx context.Context, id int64) error {
	if p.closed {
		return &WriterError{Writer: "parquet", Op: "write", Err: errClosed}
	}

	p.builder.Append(id)
	p.stats.IDsWritten++

	if p.builder.Len() >= p.opts.BatchSize {
		return p.flushBatch()
	}
	return nil
}

// Flush implements core.IDSink. Buffered ids are written as one record batch.
func (p *ParquetWriter) Flush() error {
	if p.closed {
		return nil
	}
	return p.flushBatch()
}

// Close implements core.IDSink. It writes the remaining ids and the Parquet footer.
func (p *ParquetWriter) Close() error {
	if p.closed {
		return nil
	}

	flushErr := p.flushBatch()
	p.closed = true
	p.builder.Release()

	// closing the file writer also closes the underlying file
	if err := p.writer.Close(); err != nil {
		return &WriterError{
			Writer: "parquet",
			Op:     "close_writer",
			Err:    fmt.Errorf("failed to close parquet writer: %w", err),
		}
	}
	p.file = nil
	return flushErr
}

// Stats returns the current statistics of the writer.
func (p *ParquetWriter) Stats() ParquetWriterStats {
	return p.stats
}

func (p *ParquetWriter) flushBatch() error {
	n := p.builder.Len()
	if n == 0 {
		return nil
	}

	start := time.Now()

	ids := p.builder.NewArray()
	defer ids.Release()

	record := array.NewRecord(p.schema, []arrow.Array{ids}, int64(n))
	defer record.Release()

	if err := p.writer.Write(record); err != nil {
		return &WriterError{
			Writer: "parquet",
			Op:     "write_batch",
			Err:    fmt.Errorf("failed to write record batch: %w", err),
		}
	}

	p.stats.BatchesFlushed++
	p.stats.FlushDuration += time.Since(start)
	return nil
}
