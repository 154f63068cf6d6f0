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
	"context"
	"errors"
	"io"
	"strings"
)

// sliceSource yields a fixed list of tweets, then err (io.EOF when nil).
type sliceSource struct {
	tweets []Tweet
	err    error
	reads  int
}

func (s *sliceSource) Read(ctx context.Context) (Tweet, error) {
	if s.reads < len(s.tweets) {
		t := s.tweets[s.reads]
		s.reads++
		return t, nil
	}
	if s.err != nil {
		return Tweet{}, s.err
	}
	return Tweet{}, io.EOF
}

func (s *sliceSource) Close() error { return nil }

type trackedBody struct {
	io.Reader
	closed bool
}

func (b *trackedBody) Close() error {
	b.closed = true
	return nil
}

// memInputs yields in-memory inputs and records whether each was closed before the
// next one was requested.
type memInputs struct {
	names    []string
	contents []string
	pos      int
	bodies   []*trackedBody
	openErr  error

	closedBeforeNext []bool
	closed           bool
}

func newMemInputs(pairs ...string) *memInputs {
	m := &memInputs{}
	for i := 0; i+1 < len(pairs); i += 2 {
		m.names = append(m.names, pairs[i])
		m.contents = append(m.contents, pairs[i+1])
	}
	return m
}

func (m *memInputs) Next(ctx context.Context) (*Input, error) {
	if n := len(m.bodies); n > 0 {
		m.closedBeforeNext = append(m.closedBeforeNext, m.bodies[n-1].closed)
	}
	if m.pos >= len(m.names) {
		if m.openErr != nil {
			return nil, m.openErr
		}
		return nil, io.EOF
	}
	body := &trackedBody{Reader: strings.NewReader(m.contents[m.pos])}
	m.bodies = append(m.bodies, body)
	in := &Input{Name: m.names[m.pos], Body: body}
	m.pos++
	return in, nil
}

func (m *memInputs) Close() error {
	m.closed = true
	return nil
}

// memSink records ids in order.
type memSink struct {
	ids     []int64
	flushes int
	closed  bool
	failAt  int
}

var errSinkFull = errors.New("sink full")

func (s *memSink) Write(ctx context.Context, id int64) error {
	if s.failAt > 0 && len(s.ids)+1 >= s.failAt {
		return errSinkFull
	}
	s.ids = append(s.ids, id)
	return nil
}

func (s *memSink) Flush() error {
	s.flushes++
	return nil
}

func (s *memSink) Close() error {
	s.closed = true
	return nil
}
