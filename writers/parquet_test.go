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
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"
	"github.com/apache/arrow/go/v12/arrow/memory"
	"github.com/apache/arrow/go/v12/parquet"
	"github.com/apache/arrow/go/v12/parquet/compress"
	"github.com/apache/arrow/go/v12/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readParquetIDs(t *testing.T, path string) (string, []int64) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	table, err := pqarrow.ReadTable(context.Background(), f,
		parquet.NewReaderProperties(memory.DefaultAllocator),
		pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	require.NoError(t, err)
	defer table.Release()

	require.Equal(t, int64(1), table.NumCols())
	col := table.Column(0)
	require.Equal(t, arrow.INT64, col.DataType().ID())

	var ids []int64
	for _, chunk := range col.Data().Chunks() {
		ids = append(ids, chunk.(*array.Int64).Int64Values()...)
	}
	return col.Name(), ids
}

func TestParquetWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ids.parquet")
	w, err := NewParquetWriter(path, WithParquetBatchSize(2))
	require.NoError(t, err)

	ids := []int64{5, 6, 5, 1234567890123456789, 1}
	for _, id := range ids {
		require.NoError(t, w.Write(context.Background(), id))
	}
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	stats := w.Stats()
	assert.Equal(t, int64(5), stats.IDsWritten)
	assert.Equal(t, int64(3), stats.BatchesFlushed)

	name, got := readParquetIDs(t, path)
	assert.Equal(t, "tweet_id", name)
	assert.Equal(t, ids, got)
}

func TestParquetWriter_EmptyFileHasSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	w, err := NewParquetWriter(path, WithColumnName("id"), WithCompression(compress.Codecs.Uncompressed))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	name, got := readParquetIDs(t, path)
	assert.Equal(t, "id", name)
	assert.Empty(t, got)
}

func TestParquetWriter_WriteAfterClose(t *testing.T) {
	w, err := NewParquetWriter(filepath.Join(t.TempDir(), "x.parquet"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.ErrorIs(t, w.Write(context.Background(), 1), errClosed)
}

func TestParquetWriter_BadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := NewParquetWriter(filepath.Join(blocker, "ids.parquet"))
	require.Error(t, err)
	var we *WriterError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "parquet", we.Writer)
}
