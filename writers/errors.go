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

package writers

import "fmt"

// Package writers provides implementations of core.IDSink for writing tweet ids to
// various destinations. Every sink preserves the order in which ids are written.

// WriterError wraps sink-specific write errors with context about the operation.
type WriterError struct {
	Writer string // Sink kind (e.g., "text", "csv", "parquet")
	Op     string // Operation that failed (e.g., "write", "flush", "close")
	Err    error  // Underlying error
}

func (e *WriterError) Error() string {
	return fmt.Sprintf("%s writer %s: %v", e.Writer, e.Op, e.Err)
}

func (e *WriterError) Unwrap() error {
	return e.Err
}

// errClosed is returned by Write after Close.
var errClosed = fmt.Errorf("writer is closed")
