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

package tweetids

import (
	"context"
	"errors"
	"io"
	"iter"
)

// FilterIDs returns a lazy sequence of the ids of the tweets read from src that f
// includes, in read order. One tweet is read per step and nothing is read ahead.
//
// The first error from src, f or ctx is yielded once with a zero id and ends the
// sequence. A nil f includes every tweet. FilterIDs does not close src.
func FilterIDs(ctx context.Context, src TweetSource, f Filter) iter.Seq2[int64, error] {
	return func(yield func(int64, error) bool) {
		for {
			if err := ctx.Err(); err != nil {
				yield(0, err)
				return
			}

			tweet, err := src.Read(ctx)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(0, err)
				return
			}

			if f != nil {
				include, err := f.ShouldInclude(ctx, tweet)
				if err != nil {
					yield(0, err)
					return
				}
				if !include {
					continue
				}
			}

			if !yield(tweet.ID, nil) {
				return
			}
		}
	}
}
