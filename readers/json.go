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

package readers

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"github.com/aaronlmathis/tweetids/core"
)

// Package readers provides the tweet source and input resolution for tweetids.
//
// This file implements a streaming reader for line-delimited JSON tweet records.
// Each line is decoded independently; nothing beyond the current line is buffered.

// ErrInvalidUTF8 is reported for lines that are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("line is not valid UTF-8")

const (
	initialLineBuffer = 64 * 1024
	// DefaultMaxLineBytes caps a single JSON line.
	DefaultMaxLineBytes = 16 * 1024 * 1024
)

// JSON field names of a tweet record.
const (
	FieldTweetID     = "tweet_id"
	FieldTwitterLang = "Twitter_lang"
	FieldLangIDTool  = "LangID_tool"
)

// TweetReaderStats holds statistics about the reader's progress.
type TweetReaderStats struct {
	LinesRead    int64         // Lines scanned, including blank ones
	RecordsRead  int64         // Tweets decoded
	BytesRead    int64         // Bytes consumed, newlines included
	ReadDuration time.Duration // Total time spent in Read
}

// TweetReaderOptions configures a TweetReader.
type TweetReaderOptions struct {
	MaxLineBytes int // Longest accepted line; longer lines are a parse error
}

// ReaderOptionTweet represents a functional option for TweetReader.
type ReaderOptionTweet func(*TweetReaderOptions)

// WithMaxLineBytes sets the longest accepted JSON line.
func WithMaxLineBytes(n int) ReaderOptionTweet {
	return func(o *TweetReaderOptions) {
		if n > 0 {
			o.MaxLineBytes = n
		}
	}
}

// TweetReader implements core.TweetSource over one line-delimited JSON input.
type TweetReader struct {
	name    string
	scanner *bufio.Scanner
	closer  io.Closer
	line    int
	stats   TweetReaderStats
	err     error
}

// NewTweetReader creates a TweetReader over in. Closing the reader closes the input.
func NewTweetReader(in *core.Input, options ...ReaderOptionTweet) *TweetReader {
	opts := TweetReaderOptions{MaxLineBytes: DefaultMaxLineBytes}
	for _, opt := range options {
		opt(&opts)
	}

	scanner := bufio.NewScanner(in.Body)
	buf := make([]byte, 0, min(initialLineBuffer, opts.MaxLineBytes))
	scanner.Buffer(buf, opts.MaxLineBytes)

	return &TweetReader{
		name:    in.Name,
		scanner: scanner,
		closer:  in,
	}
}

// Read returns the next tweet or io.EOF when the input is exhausted.
// Blank lines are skipped. Once an error is returned every later call returns it again.
func (r *TweetReader) Read(ctx context.Context) (core.Tweet, error) {
	start := time.Now()
	defer func() { r.stats.ReadDuration += time.Since(start) }()

	if r.err != nil {
		return core.Tweet{}, r.err
	}

	for {
		if err := ctx.Err(); err != nil {
			return core.Tweet{}, err
		}

		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				r.err = &core.ParseError{Source: r.name, Line: r.line + 1, Err: err}
				return core.Tweet{}, r.err
			}
			r.err = io.EOF
			return core.Tweet{}, io.EOF
		}

		r.line++
		line := r.scanner.Bytes()
		r.stats.LinesRead++
		r.stats.BytesRead += int64(len(line) + 1)

		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		tweet, err := r.decode(line)
		if err != nil {
			r.err = err
			return core.Tweet{}, err
		}
		r.stats.RecordsRead++
		return tweet, nil
	}
}

// Close releases the underlying input.
func (r *TweetReader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// Name returns the input name used in error messages.
func (r *TweetReader) Name() string {
	return r.name
}

// Stats returns the current statistics of the reader.
func (r *TweetReader) Stats() TweetReaderStats {
	return r.stats
}

func (r *TweetReader) decode(line []byte) (core.Tweet, error) {
	// the decoder would silently substitute U+FFFD
	if !utf8.Valid(line) {
		return core.Tweet{}, &core.ParseError{Source: r.name, Line: r.line, Err: ErrInvalidUTF8}
	}

	fields, err := decodeObject(line)
	if err != nil {
		return core.Tweet{}, &core.ParseError{Source: r.name, Line: r.line, Err: err}
	}

	var tweet core.Tweet

	rawID, ok := fields[FieldTweetID]
	if !ok {
		return core.Tweet{}, r.schemaError(FieldTweetID, core.ErrMissingField)
	}
	if tweet.ID, err = parseTweetID(rawID); err != nil {
		return core.Tweet{}, r.schemaError(FieldTweetID, err)
	}

	rawLang, ok := fields[FieldTwitterLang]
	if !ok {
		return core.Tweet{}, r.schemaError(FieldTwitterLang, core.ErrMissingField)
	}
	switch v := rawLang.(type) {
	case nil:
	case string:
		tweet.TwitterLang = v
	default:
		return core.Tweet{}, r.schemaError(FieldTwitterLang,
			fmt.Errorf("%w: expected string, got %T", core.ErrInvalidField, rawLang))
	}

	if v, ok := fields[FieldLangIDTool].(string); ok {
		tweet.LangIDTool = v
		tweet.HasLangIDTool = true
	}

	return tweet, nil
}

func (r *TweetReader) schemaError(field string, err error) error {
	return &core.SchemaError{Source: r.name, Line: r.line, Field: field, Err: err}
}

// decodeObject decodes a single JSON object, keeping numbers as json.Number so that
// 64-bit ids are not rounded through float64.
func decodeObject(line []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("expected a JSON object, got null")
	}

	var trailing interface{}
	if err := dec.Decode(&trailing); err != io.EOF {
		if err == nil {
			return nil, errors.New("unexpected data after JSON object")
		}
		return nil, err
	}

	return fields, nil
}

func parseTweetID(raw interface{}) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		id, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", core.ErrInvalidField, v.String())
		}
		return id, nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", core.ErrInvalidField, v)
		}
		return id, nil
	case nil:
		return 0, fmt.Errorf("%w: null", core.ErrMissingField)
	default:
		return 0, fmt.Errorf("%w: expected integer, got %T", core.ErrInvalidField, raw)
	}
}
