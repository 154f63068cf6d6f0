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
	"time"

	"github.com/aaronlmathis/tweetids/aggregate"
)

// Stats summarizes one pipeline run.
type Stats struct {
	InputsOpened int64
	RecordsRead  int64
	IDsEmitted   int64
	Duration     time.Duration

	// Per-language tallies keyed by Twitter_lang, after transformation.
	ReadByLanguage    map[string]int64
	EmittedByLanguage map[string]int64
}

// TopEmitted returns the n languages with the most emitted ids.
func (s Stats) TopEmitted(n int) []aggregate.Count {
	return aggregate.Top(s.EmittedByLanguage, n)
}
