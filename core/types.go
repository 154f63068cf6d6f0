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
	"io"
	"sort"
)

// Package core defines the core types for the tweetids library.
//
// tweetids streams line-delimited JSON tweet records, filters them by language and
// emits the surviving tweet identifiers for hydration.
//
// This file contains the primary domain types and function adapters.

// Tweet is a single record decoded from one JSON line.
// Only the fields the language filter needs are retained.
type Tweet struct {
	ID            int64  // tweet_id
	TwitterLang   string // Twitter_lang, as reported by the platform
	LangIDTool    string // LangID_tool, as reported by the secondary classifier
	HasLangIDTool bool   // false when LangID_tool is absent or null
}

// Languages is a set of language codes.
// The nil set is the "no filtering" sentinel and matches every code.
type Languages map[string]struct{}

// AllLanguages is the "no filtering" sentinel.
var AllLanguages Languages

// NewLanguages builds a language set from codes.
// An empty or nil codes slice yields the AllLanguages sentinel.
func NewLanguages(codes ...string) Languages {
	if len(codes) == 0 {
		return AllLanguages
	}
	set := make(Languages, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// IsAll reports whether the set is the "no filtering" sentinel.
func (l Languages) IsAll() bool {
	return l == nil
}

// Contains reports whether code is a member of the set.
// The sentinel contains every code.
func (l Languages) Contains(code string) bool {
	if l == nil {
		return true
	}
	_, ok := l[code]
	return ok
}

// Codes returns the members in sorted order, or nil for the sentinel.
func (l Languages) Codes() []string {
	if l == nil {
		return nil
	}
	codes := make([]string, 0, len(l))
	for c := range l {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// FilterConfig is the immutable per-run filter configuration.
type FilterConfig struct {
	Languages   Languages // AllLanguages disables filtering
	StrictMatch bool      // consult only Twitter_lang
}

// Input is one line source: a plain file, stdin, or a single archive member.
// Both the consumer and the InputIterator may close it; only the first Close reaches Body.
type Input struct {
	Name string        // location or "archive.tar.gz:member.json"
	Body io.ReadCloser // opened content stream

	closed bool
}

// Close releases the input's content stream.
func (in *Input) Close() error {
	if in == nil || in.Body == nil || in.closed {
		return nil
	}
	in.closed = true
	return in.Body.Close()
}

// TransformFunc is a function adapter for the Transformer interface.
type TransformFunc func(ctx context.Context, tweet Tweet) (Tweet, error)

// Transform implements the Transformer interface for TransformFunc.
func (f TransformFunc) Transform(ctx context.Context, tweet Tweet) (Tweet, error) {
	return f(ctx, tweet)
}

// FilterFunc is a function adapter for the Filter interface.
// Allows ordinary functions to be used as Filters.
type FilterFunc func(ctx context.Context, tweet Tweet) (bool, error)

// ShouldInclude implements the Filter interface for FilterFunc.
func (f FilterFunc) ShouldInclude(ctx context.Context, tweet Tweet) (bool, error) {
	return f(ctx, tweet)
}
