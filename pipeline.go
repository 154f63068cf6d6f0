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
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/aaronlmathis/tweetids/aggregate"
	"github.com/aaronlmathis/tweetids/filter"
	"github.com/aaronlmathis/tweetids/readers"
)

// PipelineBuilder provides a fluent API for constructing filtering pipelines.
// Use NewPipeline() to create a new builder, then chain From, Transform, Filter, To,
// and configuration methods.
type PipelineBuilder struct {
	pipeline *Pipeline
}

// NewPipeline creates a new PipelineBuilder.
func NewPipeline() *PipelineBuilder {
	return &PipelineBuilder{
		pipeline: &Pipeline{
			transformers: make([]Transformer, 0),
			filters:      make([]Filter, 0),
			logger:       zerolog.Nop(),
		},
	}
}

// From sets the inputs of the pipeline. Inputs are filtered in the order the
// iterator yields them.
func (pb *PipelineBuilder) From(inputs InputIterator) *PipelineBuilder {
	pb.pipeline.inputs = inputs
	return pb
}

// Transform adds a Transformer applied to every tweet before filtering.
func (pb *PipelineBuilder) Transform(transformer Transformer) *PipelineBuilder {
	pb.pipeline.transformers = append(pb.pipeline.transformers, transformer)
	return pb
}

// Filter adds a Filter. A tweet's id is emitted only when every filter includes it.
func (pb *PipelineBuilder) Filter(f Filter) *PipelineBuilder {
	pb.pipeline.filters = append(pb.pipeline.filters, f)
	return pb
}

// Map adds a transformation using a function.
func (pb *PipelineBuilder) Map(fn func(ctx context.Context, tweet Tweet) (Tweet, error)) *PipelineBuilder {
	return pb.Transform(TransformFunc(fn))
}

// Where adds a filtering condition using a function.
func (pb *PipelineBuilder) Where(fn func(ctx context.Context, tweet Tweet) (bool, error)) *PipelineBuilder {
	return pb.Filter(FilterFunc(fn))
}

// To sets the IDSink receiving emitted ids.
func (pb *PipelineBuilder) To(sink IDSink) *PipelineBuilder {
	pb.pipeline.sink = sink
	return pb
}

// WithLogger sets the logger used for per-input progress and the run summary.
func (pb *PipelineBuilder) WithLogger(logger zerolog.Logger) *PipelineBuilder {
	pb.pipeline.logger = logger
	return pb
}

// WithReaderOptions sets the options every per-input TweetReader is created with.
func (pb *PipelineBuilder) WithReaderOptions(opts ...readers.ReaderOptionTweet) *PipelineBuilder {
	pb.pipeline.readerOpts = append(pb.pipeline.readerOpts, opts...)
	return pb
}

// Build validates and constructs the Pipeline.
func (pb *PipelineBuilder) Build() (*Pipeline, error) {
	if pb.pipeline.inputs == nil {
		return nil, fmt.Errorf("pipeline requires inputs")
	}
	if pb.pipeline.sink == nil {
		return nil, fmt.Errorf("pipeline requires an id sink")
	}
	return pb.pipeline, nil
}

// Pipeline reads every input in order, filters its tweets and writes the surviving
// ids to the sink.
//
// Errors are fatal: the first input, parse, schema, transform, filter or sink error
// stops the run. Ids written before the error stay written.
type Pipeline struct {
	inputs       InputIterator
	transformers []Transformer
	filters      []Filter
	sink         IDSink
	readerOpts   []readers.ReaderOptionTweet
	logger       zerolog.Logger

	stats   Stats
	read    *aggregate.LanguageCounts
	emitted *aggregate.LanguageCounts
}

// Execute runs the pipeline. The inputs are closed and the sink is flushed and
// closed on every return path.
func (p *Pipeline) Execute(ctx context.Context) (err error) {
	start := time.Now()
	p.read = aggregate.NewLanguageCounts(aggregate.ByTwitterLang)
	p.emitted = aggregate.NewLanguageCounts(aggregate.ByTwitterLang)
	p.stats = Stats{}

	defer func() {
		p.inputs.Close()

		flushErr := p.sink.Flush()
		closeErr := p.sink.Close()
		if err == nil {
			err = errors.Join(flushErr, closeErr)
		}

		p.stats.ReadByLanguage = p.read.Result()
		p.stats.EmittedByLanguage = p.emitted.Result()
		p.stats.Duration = time.Since(start)
	}()

	include := p.filter()
	for {
		in, err := p.inputs.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		p.stats.InputsOpened++

		if err := p.process(ctx, in, include); err != nil {
			return err
		}
	}
}

// Stats returns the statistics of the last Execute.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

func (p *Pipeline) process(ctx context.Context, in *Input, include Filter) error {
	reader := readers.NewTweetReader(in, p.readerOpts...)
	var emitted int64
	defer func() {
		reader.Close()

		rs := reader.Stats()
		p.stats.RecordsRead += rs.RecordsRead
		p.stats.IDsEmitted += emitted
		p.logger.Debug().
			Str("input", reader.Name()).
			Int64("records", rs.RecordsRead).
			Int64("emitted", emitted).
			Dur("read_duration", rs.ReadDuration).
			Msg("input done")
	}()

	src := &transformingSource{source: reader, transformers: p.transformers, counts: p.read}
	for id, err := range FilterIDs(ctx, src, include) {
		if err != nil {
			return err
		}
		if err := p.sink.Write(ctx, id); err != nil {
			return err
		}
		emitted++
	}
	return nil
}

// filter combines the configured filters and tallies the languages of included tweets.
func (p *Pipeline) filter() Filter {
	combined := filter.All()
	if len(p.filters) > 0 {
		combined = filter.And(p.filters...)
	}
	return FilterFunc(func(ctx context.Context, tweet Tweet) (bool, error) {
		include, err := combined.ShouldInclude(ctx, tweet)
		if err != nil || !include {
			return false, err
		}
		return true, p.emitted.Add(ctx, tweet)
	})
}

// transformingSource applies transformers to every tweet read and tallies languages.
type transformingSource struct {
	source       TweetSource
	transformers []Transformer
	counts       *aggregate.LanguageCounts
}

func (s *transformingSource) Read(ctx context.Context) (Tweet, error) {
	tweet, err := s.source.Read(ctx)
	if err != nil {
		return Tweet{}, err
	}
	for _, t := range s.transformers {
		tweet, err = t.Transform(ctx, tweet)
		if err != nil {
			return Tweet{}, err
		}
	}
	return tweet, s.counts.Add(ctx, tweet)
}

func (s *transformingSource) Close() error {
	return s.source.Close()
}
