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

package readers

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/aaronlmathis/tweetids/core"
)

// StdinLocation is the location name that reads from standard input.
const StdinLocation = "-"

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Compression identifies a stream compression format.
type Compression int

const (
	// CompressionNone is an uncompressed stream.
	CompressionNone Compression = iota
	// CompressionGzip is a gzip stream.
	CompressionGzip
	// CompressionZstd is a zstandard stream.
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	default:
		return "none"
	}
}

// CompressionFromName guesses the compression of a plain input from its extension.
func CompressionFromName(name string) Compression {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".tgz":
		return CompressionGzip
	case ".zst", ".zstd", ".tzst":
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// SniffCompression peeks at the head of br and reports its compression by magic bytes.
// Nothing is consumed from br.
func SniffCompression(br *bufio.Reader) (Compression, error) {
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return CompressionNone, err
	}
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return CompressionGzip, nil
	case bytes.HasPrefix(head, zstdMagic):
		return CompressionZstd, nil
	default:
		return CompressionNone, nil
	}
}

// OpenFile opens a plain line-delimited JSON location as one input.
// ".gz" and ".zst" files are decompressed transparently.
func OpenFile(location string) (*core.Input, error) {
	rc, err := openLocation(location)
	if err != nil {
		return nil, &core.InputError{Location: location, Op: "open", Err: err}
	}

	body, err := decompress(rc, CompressionFromName(location))
	if err != nil {
		rc.Close()
		return nil, &core.InputError{Location: location, Op: "decompress", Err: err}
	}

	return &core.Input{Name: location, Body: body}, nil
}

// openLocation opens a local file or standard input without decompressing it.
func openLocation(location string) (io.ReadCloser, error) {
	if location == StdinLocation {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(location)
}

// decompress wraps rc according to c. Closing the result closes rc.
func decompress(rc io.ReadCloser, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionGzip:
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
		return &stackedCloser{Reader: gz, closers: []io.Closer{gz, rc}}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(rc, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zstdCloser{zr}, rc}}, nil
	default:
		return rc, nil
	}
}

// stackedCloser reads from the outermost decoder and closes every layer, outermost first.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// zstd.Decoder.Close has no error result.
type zstdCloser struct{ d *zstd.Decoder }

func (z zstdCloser) Close() error {
	z.d.Close()
	return nil
}
