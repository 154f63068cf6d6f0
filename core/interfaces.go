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

package core

import (
	"context"
)

// Package core defines the core interfaces for the tweetids library.
//
// Sources are pull-based: every Read or Next call returns one item or io.EOF when
// exhausted, so nothing is read ahead of the consumer.

// TweetSource streams decoded tweets from a single input.
type TweetSource interface {
	// Read returns the next tweet or io.EOF when no more tweets are available.
	Read(ctx context.Context) (Tweet, error)
	// Close releases any resources held by the source.
	Close() error
}

// InputIterator yields line sources one at a time, in order.
// The previously returned Input is closed by the iterator before the next is opened.
type InputIterator interface {
	// Next returns the next input or io.EOF when all locations are exhausted.
	Next(ctx context.Context) (*Input, error)
	// Close releases the current input and any open container.
	Close() error
}

// IDSink receives emitted tweet identifiers in order.
type IDSink interface {
	// Write outputs a single tweet id.
	Write(ctx context.Context, id int64) error
	// Flush ensures all buffered ids are written.
	Flush() error
	// Close flushes and releases any resources held by the sink.
	Close() error
}

// Transformer modifies tweets before they are filtered.
type Transformer interface {
	// Transform applies the transformation to a tweet and returns the result.
	Transform(ctx context.Context, tweet Tweet) (Tweet, error)
}

// Filter determines whether a tweet's id is emitted.
type Filter interface {
	// ShouldInclude returns true if the tweet's id should be emitted.
	ShouldInclude(ctx context.Context, tweet Tweet) (bool, error)
}
