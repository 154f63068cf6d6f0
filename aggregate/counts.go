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
	"sort"

	"github.com/aaronlmathis/tweetids/core"
)

// KeyFunc extracts the grouping key of a tweet.
type KeyFunc func(core.Tweet) string

// MissingKey is the key used when LangID_tool is absent.
const MissingKey = "<none>"

// ByTwitterLang groups tweets by their platform-reported language.
func ByTwitterLang(tweet core.Tweet) string {
	return tweet.TwitterLang
}

// ByLangIDTool groups tweets by their secondary-classifier language.
func ByLangIDTool(tweet core.Tweet) string {
	if !tweet.HasLangIDTool {
		return MissingKey
	}
	return tweet.LangIDTool
}

// LanguageCounts counts tweets per language key.
type LanguageCounts struct {
	key    KeyFunc
	counts map[string]int64
	total  int64
}

// NewLanguageCounts creates a counter grouping by key (ByTwitterLang when nil).
func NewLanguageCounts(key KeyFunc) *LanguageCounts {
	if key == nil {
		key = ByTwitterLang
	}
	return &LanguageCounts{
		key:    key,
		counts: make(map[string]int64),
	}
}

// Add implements Aggregator.
func (c *LanguageCounts) Add(ctx context.Context, tweet core.Tweet) error {
	c.counts[c.key(tweet)]++
	c.total++
	return nil
}

// Result implements Aggregator.
func (c *LanguageCounts) Result() map[string]int64 {
	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Reset implements Aggregator.
func (c *LanguageCounts) Reset() {
	c.counts = make(map[string]int64)
	c.total = 0
}

// Total returns the number of tweets added.
func (c *LanguageCounts) Total() int64 {
	return c.total
}

// Count is a single key and its tally.
type Count struct {
	Key   string
	Count int64
}

// Top returns the n most frequent keys, ties broken by key. n <= 0 returns all keys.
func (c *LanguageCounts) Top(n int) []Count {
	return Top(c.counts, n)
}

// Top ranks an arbitrary tally map the way LanguageCounts.Top does.
func Top(counts map[string]int64, n int) []Count {
	out := make([]Count, 0, len(counts))
	for k, v := range counts {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
