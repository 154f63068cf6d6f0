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

package validators

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Package validators checks a filter configuration before a run.
//
// Validation never rejects a configuration: codes are matched verbatim against the
// records, so a surprising code is reported as a warning and the run proceeds.

// Warning is a non-fatal configuration advisory.
type Warning struct {
	Code    string // Offending language code, empty for set-level warnings
	Message string
}

func (w Warning) String() string {
	if w.Code == "" {
		return w.Message
	}
	return fmt.Sprintf("%q: %s", w.Code, w.Message)
}

// NoLanguagesMessage is the advisory emitted when no target languages are configured.
const NoLanguagesMessage = "no languages specified; every tweet id will be emitted"

// ValidateLanguages reports empty, duplicate, malformed and unconventionally written codes.
func ValidateLanguages(codes []string) []Warning {
	if len(codes) == 0 {
		return []Warning{{Message: NoLanguagesMessage}}
	}

	var warnings []Warning
	seen := make(map[string]bool, len(codes))

	for _, code := range codes {
		if strings.TrimSpace(code) == "" {
			warnings = append(warnings, Warning{Code: code, Message: "empty language code"})
			continue
		}
		if seen[code] {
			warnings = append(warnings, Warning{Code: code, Message: "duplicate language code"})
			continue
		}
		seen[code] = true

		if code != strings.TrimSpace(code) {
			warnings = append(warnings, Warning{Code: code, Message: "surrounding whitespace is matched verbatim"})
			continue
		}

		tag, err := language.Raw.Parse(code)
		if err != nil {
			warnings = append(warnings, Warning{Code: code, Message: "not a well-formed BCP 47 language tag"})
			continue
		}
		if written := tag.String(); written != code {
			warnings = append(warnings, Warning{
				Code:    code,
				Message: fmt.Sprintf("usually written %q; codes are matched verbatim", written),
			})
		}
	}

	return warnings
}
