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
	"context"
	"io"

	"github.com/aaronlmathis/tweetids/core"
)

// InputsOptions configures how locations are turned into inputs.
type InputsOptions struct {
	Archives bool // Treat every location as a tar archive and yield its members
}

// InputOption represents a functional option for Inputs.
type InputOption func(*InputsOptions)

// WithArchives enables archive mode.
func WithArchives(enabled bool) InputOption {
	return func(o *InputsOptions) {
		o.Archives = enabled
	}
}

// InputsStats holds statistics about resolved inputs.
type InputsStats struct {
	LocationsOpened int64  // Plain files and archives opened
	InputsYielded   int64  // Line sources handed to the consumer
	MembersSkipped  int64  // Non-regular archive entries skipped
	Current         string // Name of the input currently open
}

// Inputs implements core.InputIterator over a list of locations.
// Locations are opened lazily, in order, and at most one line source is open at a time.
type Inputs struct {
	locations []string
	next      int
	archive   *ArchiveReader
	current   *core.Input
	opts      InputsOptions
	stats     InputsStats
}

// NewInputs creates an iterator over locations.
func NewInputs(locations []string, options ...InputOption) *Inputs {
	var opts InputsOptions
	for _, opt := range options {
		opt(&opts)
	}
	return &Inputs{
		locations: append([]string(nil), locations...),
		opts:      opts,
	}
}

// Next closes the previous input and returns the next one, or io.EOF when every
// location has been consumed.
func (it *Inputs) Next(ctx context.Context) (*core.Input, error) {
	if err := it.closeCurrent(); err != nil {
		return nil, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if it.archive != nil {
			in, err := it.archive.Next(ctx)
			if err == io.EOF {
				if err := it.closeArchive(); err != nil {
					return nil, err
				}
				continue
			}
			if err != nil {
				return nil, err
			}
			return it.yield(in), nil
		}

		if it.next >= len(it.locations) {
			return nil, io.EOF
		}
		location := it.locations[it.next]
		it.next++

		if it.opts.Archives {
			archive, err := OpenArchive(location)
			if err != nil {
				return nil, err
			}
			it.archive = archive
			it.stats.LocationsOpened++
			continue
		}

		in, err := OpenFile(location)
		if err != nil {
			return nil, err
		}
		it.stats.LocationsOpened++
		return it.yield(in), nil
	}
}

// Close releases the current input and archive, if any.
func (it *Inputs) Close() error {
	first := it.closeCurrent()
	if err := it.closeArchive(); err != nil && first == nil {
		first = err
	}
	return first
}

// Stats returns the current statistics of the iterator.
func (it *Inputs) Stats() InputsStats {
	return it.stats
}

func (it *Inputs) yield(in *core.Input) *core.Input {
	it.current = in
	it.stats.InputsYielded++
	it.stats.Current = in.Name
	return in
}

func (it *Inputs) closeCurrent() error {
	if it.current == nil {
		return nil
	}
	in := it.current
	it.current = nil
	it.stats.Current = ""
	if err := in.Close(); err != nil {
		return &core.InputError{Location: in.Name, Op: "close", Err: err}
	}
	return nil
}

func (it *Inputs) closeArchive() error {
	if it.archive == nil {
		return nil
	}
	a := it.archive
	it.archive = nil
	_, skipped := a.Stats()
	it.stats.MembersSkipped += skipped
	return a.Close()
}
