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
	"archive/tar"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronlmathis/tweetids/core"
	"github.com/aaronlmathis/tweetids/filter"
	"github.com/aaronlmathis/tweetids/readers"
	"github.com/aaronlmathis/tweetids/transform"
	"github.com/aaronlmathis/tweetids/writers"
)

func TestPipeline_BuildRequiresInputsAndSink(t *testing.T) {
	_, err := NewPipeline().To(&memSink{}).Build()
	assert.Error(t, err)

	_, err = NewPipeline().From(newMemInputs()).Build()
	assert.Error(t, err)

	p, err := NewPipeline().From(newMemInputs()).To(&memSink{}).Build()
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestPipeline_TwoSourcesConcatenate(t *testing.T) {
	inputs := newMemInputs(
		"a.json", `{"tweet_id":5,"Twitter_lang":"en"}`+"\n"+`{"tweet_id":8,"Twitter_lang":"ja"}`+"\n",
		"b.json", `{"tweet_id":6,"Twitter_lang":"en"}`+"\n"+`{"tweet_id":5,"Twitter_lang":"en"}`+"\n",
	)
	sink := &memSink{}

	p, err := NewPipeline().
		From(inputs).
		Filter(filter.Language(FilterConfig{Languages: core.NewLanguages("en")})).
		To(sink).
		Build()
	require.NoError(t, err)
	require.NoError(t, p.Execute(context.Background()))

	assert.Equal(t, []int64{5, 6, 5}, sink.ids)
	assert.True(t, sink.closed)
	assert.True(t, inputs.closed)
	assert.Equal(t, []bool{true, true}, inputs.closedBeforeNext)

	stats := p.Stats()
	assert.Equal(t, int64(2), stats.InputsOpened)
	assert.Equal(t, int64(4), stats.RecordsRead)
	assert.Equal(t, int64(3), stats.IDsEmitted)
	assert.Equal(t, map[string]int64{"en": 3, "ja": 1}, stats.ReadByLanguage)
	assert.Equal(t, map[string]int64{"en": 3}, stats.EmittedByLanguage)
	assert.Equal(t, "en", stats.TopEmitted(1)[0].Key)
}

func TestPipeline_ParseErrorKeepsEarlierOutput(t *testing.T) {
	inputs := newMemInputs(
		"a.json", `{"tweet_id":1,"Twitter_lang":"en"}`+"\n",
		"b.json", `{"tweet_id":2,"Twitter_lang":"en"}`+"\n"+`{not json`+"\n"+`{"tweet_id":3,"Twitter_lang":"en"}`+"\n",
	)
	sink := &memSink{}

	p, err := NewPipeline().From(inputs).To(sink).Build()
	require.NoError(t, err)

	err = p.Execute(context.Background())
	var pe *core.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "b.json", pe.Source)
	assert.Equal(t, 2, pe.Line)

	assert.Equal(t, []int64{1, 2}, sink.ids)
	assert.Equal(t, 1, sink.flushes)
	assert.True(t, sink.closed)
	assert.True(t, inputs.closed)
	assert.True(t, inputs.bodies[1].closed)
}

func TestPipeline_SchemaError(t *testing.T) {
	inputs := newMemInputs("a.json", `{"tweet_id":1}`+"\n")
	sink := &memSink{}

	p, err := NewPipeline().From(inputs).To(sink).Build()
	require.NoError(t, err)

	err = p.Execute(context.Background())
	var se *core.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, readers.FieldTwitterLang, se.Field)
	assert.ErrorIs(t, err, core.ErrMissingField)
	assert.Empty(t, sink.ids)
}

func TestPipeline_InputErrorStopsRun(t *testing.T) {
	inputs := newMemInputs("a.json", `{"tweet_id":1,"Twitter_lang":"en"}`+"\n")
	inputs.openErr = &core.InputError{Location: "missing.json", Op: "open", Err: os.ErrNotExist}
	sink := &memSink{}

	p, err := NewPipeline().From(inputs).To(sink).Build()
	require.NoError(t, err)

	err = p.Execute(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, []int64{1}, sink.ids)
	assert.True(t, sink.closed)
}

func TestPipeline_SinkError(t *testing.T) {
	inputs := newMemInputs("a.json", `{"tweet_id":1,"Twitter_lang":"en"}`+"\n"+`{"tweet_id":2,"Twitter_lang":"en"}`+"\n")
	sink := &memSink{failAt: 2}

	p, err := NewPipeline().From(inputs).To(sink).Build()
	require.NoError(t, err)

	assert.ErrorIs(t, p.Execute(context.Background()), errSinkFull)
	assert.Equal(t, []int64{1}, sink.ids)
}

func TestPipeline_TransformAndWhere(t *testing.T) {
	inputs := newMemInputs("a.json", strings.Join([]string{
		`{"tweet_id":1,"Twitter_lang":" EN "}`,
		`{"tweet_id":2,"Twitter_lang":"fr","LangID_tool":"En"}`,
		`{"tweet_id":3,"Twitter_lang":"en"}`,
		`{"tweet_id":4,"Twitter_lang":"de"}`,
	}, "\n"))
	sink := &memSink{}

	langs := core.NewLanguages(transform.FoldCodes([]string{"EN"})...)
	p, err := NewPipeline().
		From(inputs).
		Transform(transform.FoldLanguageCase()).
		Filter(filter.Language(FilterConfig{Languages: langs})).
		Where(func(ctx context.Context, tweet Tweet) (bool, error) { return tweet.ID != 3, nil }).
		To(sink).
		Build()
	require.NoError(t, err)
	require.NoError(t, p.Execute(context.Background()))

	assert.Equal(t, []int64{1, 2}, sink.ids)
}

func TestPipeline_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inputs := newMemInputs("a.json", `{"tweet_id":1,"Twitter_lang":"en"}`+"\n")
	sink := &memSink{}
	p, err := NewPipeline().From(inputs).To(sink).Build()
	require.NoError(t, err)

	assert.ErrorIs(t, p.Execute(ctx), context.Canceled)
	assert.Empty(t, sink.ids)
	assert.True(t, sink.closed)
}

func TestPipeline_ArchiveEndToEnd(t *testing.T) {
	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)
	members := []struct {
		name string
		body string
		dir  bool
	}{
		{name: "day1/", dir: true},
		{name: "day1/a.json", body: `{"tweet_id":10,"Twitter_lang":"en"}` + "\n" + `{"tweet_id":11,"Twitter_lang":"es"}` + "\n"},
		{name: "day1/b.json", body: `{"tweet_id":12,"Twitter_lang":"und","LangID_tool":"en"}` + "\n"},
	}
	for _, m := range members {
		hdr := &tar.Header{Name: m.name, Mode: 0o644, Size: int64(len(m.body)), Typeflag: tar.TypeReg}
		if m.dir {
			hdr = &tar.Header{Name: m.name, Mode: 0o755, Typeflag: tar.TypeDir}
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if !m.dir {
			_, err := tw.Write([]byte(m.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())

	var gzBuf bytes.Buffer
	zw := gzip.NewWriter(&gzBuf)
	_, err := zw.Write(tarBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	dir := t.TempDir()
	archive := filepath.Join(dir, "tweets.tgz")
	require.NoError(t, os.WriteFile(archive, gzBuf.Bytes(), 0o644))
	out := filepath.Join(dir, "ids.txt")
	file, err := os.Create(out)
	require.NoError(t, err)

	p, err := NewPipeline().
		From(readers.NewInputs([]string{archive}, readers.WithArchives(true))).
		Filter(filter.Language(FilterConfig{Languages: core.NewLanguages("en")})).
		To(writers.NewTextWriter(file)).
		Build()
	require.NoError(t, err)
	require.NoError(t, p.Execute(context.Background()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "10\n12\n", string(data))
	assert.Equal(t, int64(2), p.Stats().InputsOpened)
}
