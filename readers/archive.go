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
	"archive/tar"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aaronlmathis/tweetids/core"
)

// ErrEmptyArchive is returned for an archive stream holding no bytes at all. A tar
// with only its end-of-archive blocks is valid and has no members.
var ErrEmptyArchive = errors.New("empty archive")

// ArchiveReader expands one tar archive into a sequence of inputs, one per regular member,
// in the archive's native order. The archive may be gzip or zstd compressed.
type ArchiveReader struct {
	location string
	body     io.ReadCloser
	tr       *tar.Reader
	current  *core.Input
	members  int64
	skipped  int64
}

// OpenArchive opens the archive at location ("-" for standard input).
func OpenArchive(location string) (*ArchiveReader, error) {
	rc, err := openLocation(location)
	if err != nil {
		return nil, &core.InputError{Location: location, Op: "open", Err: err}
	}
	return NewArchiveReader(location, rc)
}

// NewArchiveReader wraps an already opened archive stream. Compression is detected from
// the stream's magic bytes. Closing the ArchiveReader closes rc.
func NewArchiveReader(location string, rc io.ReadCloser) (*ArchiveReader, error) {
	br := bufio.NewReader(rc)
	c, err := SniffCompression(br)
	if err != nil {
		rc.Close()
		return nil, &core.InputError{Location: location, Op: "read_header", Err: err}
	}

	body, err := decompress(&readCloser{Reader: br, Closer: rc}, c)
	if err != nil {
		rc.Close()
		return nil, &core.InputError{Location: location, Op: "decompress", Err: err}
	}

	tb := bufio.NewReader(body)
	if _, err := tb.Peek(1); err != nil {
		body.Close()
		if err == io.EOF {
			err = ErrEmptyArchive
		}
		return nil, &core.InputError{Location: location, Op: "read_header", Err: err}
	}

	return &ArchiveReader{
		location: location,
		body:     body,
		tr:       tar.NewReader(tb),
	}, nil
}

// Next closes the previous member and returns the next regular member as an input,
// or io.EOF after the last member. Directories, links and other entries are skipped.
func (a *ArchiveReader) Next(ctx context.Context) (*core.Input, error) {
	if err := a.closeCurrent(); err != nil {
		return nil, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hdr, err := a.tr.Next()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, &core.InputError{Location: a.location, Op: "next_member", Err: err}
		}

		if !hdr.FileInfo().Mode().IsRegular() {
			a.skipped++
			continue
		}

		name := fmt.Sprintf("%s:%s", a.location, hdr.Name)
		body, err := decompress(io.NopCloser(a.tr), CompressionFromName(hdr.Name))
		if err != nil {
			return nil, &core.InputError{Location: name, Op: "decompress", Err: err}
		}

		a.members++
		a.current = &core.Input{Name: name, Body: body}
		return a.current, nil
	}
}

// Close releases the current member and the archive itself.
func (a *ArchiveReader) Close() error {
	first := a.closeCurrent()
	if a.body != nil {
		if err := a.body.Close(); err != nil && first == nil {
			first = err
		}
		a.body = nil
	}
	return first
}

// Stats returns the number of members yielded and entries skipped so far.
func (a *ArchiveReader) Stats() (members, skipped int64) {
	return a.members, a.skipped
}

func (a *ArchiveReader) closeCurrent() error {
	if a.current == nil {
		return nil
	}
	err := a.current.Close()
	a.current = nil
	if err != nil {
		return &core.InputError{Location: a.location, Op: "close_member", Err: err}
	}
	return nil
}

type readCloser struct {
	io.Reader
	io.Closer
}
