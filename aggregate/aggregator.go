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

package aggregate

import (
	"context"

	"github.com/aaronlmathis/tweetids/core"
)

// Package aggregate provides tallies over the tweets seen during a run.

// Aggregator accumulates tweets into keyed counts.
type Aggregator interface {
	// Add processes a tweet for aggregation.
	Add(ctx context.Context, tweet core.Tweet) error
	// Result returns a copy of the accumulated counts.
	Result() map[string]int64
	// Reset clears the aggregator state for reuse.
	Reset()
}
