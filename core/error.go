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
	"errors"
	"fmt"
)

// Package core defines the error taxonomy for the tweetids library.
//
// Every error is fatal to a run: nothing is retried and no record is skipped.

var (
	// ErrMissingField marks a record lacking a required field.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidField marks a record whose field has the wrong JSON type.
	ErrInvalidField = errors.New("invalid field value")
)

// InputError reports a location that could not be opened or an archive that could not be read.
type InputError struct {
	Location string // Input location or archive member
	Op       string // Operation that failed (e.g., "open", "stat", "decompress", "next_member")
	Err      error  // Underlying error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input %s %s: %v", e.Op, e.Location, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ParseError reports a line that is not valid JSON.
type ParseError struct {
	Source string // Input name
	Line   int    // 1-based line number
	Err    error  // Underlying decode or scan error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s:%d: %v", e.Source, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError reports a record that is missing a required field or carries a mistyped one.
type SchemaError struct {
	Source string // Input name
	Line   int    // 1-based line number
	Field  string // JSON field name
	Err    error  // ErrMissingField or ErrInvalidField, possibly wrapped
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s:%d: field %q: %v", e.Source, e.Line, e.Field, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
