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
	"github.com/aaronlmathis/tweetids/core"
)

// Package tweetids streams line-delimited JSON tweet records, filters them by
// language and emits the surviving tweet identifiers for hydration.
//
// The domain types and interfaces live in package core; they are re-exported here so
// library users can build a pipeline from a single import.
//
// Example usage:
//
//	cfg := tweetids.FilterConfig{Languages: core.NewLanguages("en", "fr")}
//	pipeline, err := tweetids.NewPipeline().
//	    From(readers.NewInputs([]string{"dump.jsonl"})).
//	    Filter(filter.Language(cfg)).
//	    To(writers.NewTextWriter(os.Stdout)).
//	    Build()
//	if err != nil { log.Fatal(err) }
//	if err := pipeline.Execute(context.Background()); err != nil { log.Fatal(err) }

type (
	Tweet         = core.Tweet
	Languages     = core.Languages
	FilterConfig  = core.FilterConfig
	Input         = core.Input
	TweetSource   = core.TweetSource
	InputIterator = core.InputIterator
	IDSink        = core.IDSink
	Transformer   = core.Transformer
	Filter        = core.Filter
	TransformFunc = core.TransformFunc
	FilterFunc    = core.FilterFunc
)

// AllLanguages is the "no filtering" sentinel.
var AllLanguages = core.AllLanguages
