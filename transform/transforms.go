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

package transform

import (
	"context"
	"strings"

	"github.com/aaronlmathis/tweetids/core"
)

// Package transform provides tweet transformers applied before filtering.
//
// Transformers only touch the language tags; ids are never rewritten.

// TrimSpace removes surrounding whitespace from both language tags.
func TrimSpace() core.Transformer {
	return core.TransformFunc(func(ctx context.Context, tweet core.Tweet) (core.Tweet, error) {
		tweet.TwitterLang = strings.TrimSpace(tweet.TwitterLang)
		if tweet.HasLangIDTool {
			tweet.LangIDTool = strings.TrimSpace(tweet.LangIDTool)
		}
		return tweet, nil
	})
}

// ToLower lowercases both language tags.
func ToLower() core.Transformer {
	return core.TransformFunc(func(ctx context.Context, tweet core.Tweet) (core.Tweet, error) {
		tweet.TwitterLang = strings.ToLower(tweet.TwitterLang)
		if tweet.HasLangIDTool {
			tweet.LangIDTool = strings.ToLower(tweet.LangIDTool)
		}
		return tweet, nil
	})
}

// Chain applies transformers in order.
func Chain(transformers ...core.Transformer) core.Transformer {
	return core.TransformFunc(func(ctx context.Context, tweet core.Tweet) (core.Tweet, error) {
		current := tweet
		for _, t := range transformers {
			next, err := t.Transform(ctx, current)
			if err != nil {
				return core.Tweet{}, err
			}
			current = next
		}
		return current, nil
	})
}

// FoldLanguageCase trims and lowercases both language tags so that matching against
// lowercased target languages is case-insensitive.
func FoldLanguageCase() core.Transformer {
	return Chain(TrimSpace(), ToLower())
}

// FoldCodes applies the FoldLanguageCase normalization to configured language codes.
func FoldCodes(codes []string) []string {
	if codes == nil {
		return nil
	}
	folded := make([]string, len(codes))
	for i, c := range codes {
		folded[i] = strings.ToLower(strings.TrimSpace(c))
	}
	return folded
}
