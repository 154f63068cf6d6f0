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

package filter

import (
	"context"

	"github.com/aaronlmathis/tweetids/core"
)

// Package filter provides the language predicate and composable tweet filters.
//
// All filters are stateless core.FilterFunc values; they hold no cross-record state
// and can be combined with And, Or and Not.

// Language builds the tweet id filter predicate for cfg:
//
//	sentinel languages                          -> pass
//	Twitter_lang in languages                   -> pass
//	!strict && LangID_tool present && in langs  -> pass
//	otherwise                                   -> reject
//
// Strict mode never admits a tweet whose Twitter_lang does not match.
func Language(cfg core.FilterConfig) core.Filter {
	if cfg.Languages.IsAll() {
		return All()
	}
	if cfg.StrictMatch {
		return TwitterLangIn(cfg.Languages)
	}
	return Or(TwitterLangIn(cfg.Languages), LangIDToolIn(cfg.Languages))
}

// All passes every tweet.
func All() core.Filter {
	return core.FilterFunc(func(ctx context.Context, tweet core.Tweet) (bool, error) {
		return true, nil
	})
}

// TwitterLangIn passes tweets whose platform-reported language is in langs.
func TwitterLangIn(langs core.Languages) core.Filter {
	return core.FilterFunc(func(ctx context.Context, tweet core.Tweet) (bool, error) {
		return langs.Contains(tweet.TwitterLang), nil
	})
}

// LangIDToolIn passes tweets carrying a secondary-classifier language in langs.
// A tweet without LangID_tool never passes.
func LangIDToolIn(langs core.Languages) core.Filter {
	return core.FilterFunc(func(ctx context.Context, tweet core.Tweet) (bool, error) {
		if !tweet.HasLangIDTool {
			return false, nil
		}
		return langs.Contains(tweet.LangIDTool), nil
	})
}

// IDIn passes tweets whose id is one of ids.
func IDIn(ids ...int64) core.Filter {
	idSet := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	return core.FilterFunc(func(ctx context.Context, tweet core.Tweet) (bool, error) {
		_, ok := idSet[tweet.ID]
		return ok, nil
	})
}

// And combines multiple filters with logical AND.
// Evaluation stops at the first filter that rejects.
func And(filters ...core.Filter) core.Filter {
	return core.FilterFunc(func(ctx context.Context, tweet core.Tweet) (bool, error) {
		for _, filter := range filters {
			include, err := filter.ShouldInclude(ctx, tweet)
			if err != nil {
				return false, err
			}
			if !include {
				return false, nil
			}
		}
		return true, nil
	})
}

// Or combines multiple filters with logical OR.
// Evaluation stops at the first filter that passes.
func Or(filters ...core.Filter) core.Filter {
	return core.FilterFunc(func(ctx context.Context, tweet core.Tweet) (bool, error) {
		for _, filter := range filters {
			include, err := filter.ShouldInclude(ctx, tweet)
			if err != nil {
				return false, err
			}
			if include {
				return true, nil
			}
		}
		return false, nil
	})
}

// Not inverts the result of a filter.
func Not(filter core.Filter) core.Filter {
	return core.FilterFunc(func(ctx context.Context, tweet core.Tweet) (bool, error) {
		include, err := filter.ShouldInclude(ctx, tweet)
		if err != nil {
			return false, err
		}
		return !include, nil
	})
}

// Custom wraps a plain predicate as a filter.
func Custom(predicate func(core.Tweet) bool) core.Filter {
	return core.FilterFunc(func(ctx context.Context, tweet core.Tweet) (bool, error) {
		return predicate(tweet), nil
	})
}

// CustomWithContext wraps a context-aware predicate as a filter.
func CustomWithContext(predicate func(context.Context, core.Tweet) (bool, error)) core.Filter {
	return core.FilterFunc(predicate)
}
