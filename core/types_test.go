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
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCloser struct {
	io.Reader
	closes int
}

func (c *countingCloser) Close() error {
	c.closes++
	return nil
}

func TestNewLanguages(t *testing.T) {
	assert.True(t, NewLanguages().IsAll())
	assert.True(t, NewLanguages(nil...).IsAll())

	set := NewLanguages("fr", "en", "en")
	assert.False(t, set.IsAll())
	assert.True(t, set.Contains("en"))
	assert.False(t, set.Contains("de"))
	assert.Equal(t, []string{"en", "fr"}, set.Codes())
}

func TestAllLanguages_ContainsEverything(t *testing.T) {
	assert.True(t, AllLanguages.Contains("zz"))
	assert.True(t, AllLanguages.Contains(""))
	assert.Nil(t, AllLanguages.Codes())
}

func TestInput_CloseOnce(t *testing.T) {
	body := &countingCloser{Reader: strings.NewReader("x")}
	in := &Input{Name: "a.json", Body: body}

	require.NoError(t, in.Close())
	require.NoError(t, in.Close())
	assert.Equal(t, 1, body.closes)

	var nilInput *Input
	assert.NoError(t, nilInput.Close())
}

func TestErrors_Unwrap(t *testing.T) {
	schema := &SchemaError{Source: "a.json", Line: 3, Field: "tweet_id", Err: ErrMissingField}
	assert.ErrorIs(t, schema, ErrMissingField)
	assert.Contains(t, schema.Error(), "a.json:3")
	assert.Contains(t, schema.Error(), `"tweet_id"`)

	cause := errors.New("unexpected end of JSON input")
	parse := &ParseError{Source: "b.json", Line: 7, Err: cause}
	assert.ErrorIs(t, parse, cause)
	assert.Equal(t, "parse b.json:7: unexpected end of JSON input", parse.Error())

	input := &InputError{Location: "missing.json", Op: "open", Err: io.ErrUnexpectedEOF}
	var target *InputError
	require.ErrorAs(t, error(input), &target)
	assert.Equal(t, "open", target.Op)
}
