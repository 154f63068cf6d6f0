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

// Package main provides the tweetids command: filter line-delimited JSON tweet
// records by language and print the surviving tweet ids.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aaronlmathis/tweetids"
	"github.com/aaronlmathis/tweetids/core"
	"github.com/aaronlmathis/tweetids/filter"
	"github.com/aaronlmathis/tweetids/internal/config"
	"github.com/aaronlmathis/tweetids/internal/logger"
	"github.com/aaronlmathis/tweetids/readers"
	"github.com/aaronlmathis/tweetids/transform"
	"github.com/aaronlmathis/tweetids/types"
	"github.com/aaronlmathis/tweetids/validators"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitUsageError   = 1
	ExitInputError   = 2
	ExitParseError   = 3
	ExitRuntimeError = 4
)

// usageError marks configuration and command-line mistakes.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...interface{}) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and maps its outcome to an exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cli := &cli{stdout: stdout, stderr: stderr, log: logger.New(logger.Options{Writer: stderr})}
	cmd := cli.command()
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	code := exitCode(err)
	cli.log.Error().Err(err).Int("exit_code", code).Msg("tweetids failed")
	return code
}

func exitCode(err error) int {
	var (
		usageErr  *usageError
		inputErr  *core.InputError
		parseErr  *core.ParseError
		schemaErr *core.SchemaError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usageErr):
		return ExitUsageError
	case errors.As(err, &inputErr):
		return ExitInputError
	case errors.As(err, &parseErr), errors.As(err, &schemaErr):
		return ExitParseError
	default:
		return ExitRuntimeError
	}
}

type cli struct {
	stdout io.Writer
	stderr io.Writer
	log    zerolog.Logger

	configPath   string
	languages    []string
	strict       bool
	archive      bool
	foldCase     bool
	output       string
	format       string
	maxLineBytes int
	logLevel     string
	logFormat    string

	settings config.Settings
}

func (c *cli) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tweetids [flags] INPUT...",
		Short: "Print the ids of tweets written in the given languages",
		Long: `tweetids reads line-delimited JSON tweet records and prints the tweet_id of
every record whose language matches, one id per line, in input order.

A record matches when its Twitter_lang is one of the languages, or, unless
--strict is given, when its LangID_tool is. Without --languages every id is
printed. An INPUT of "-" reads standard input.

Exit codes:
  0 - Success
  1 - Configuration or usage error
  2 - An input could not be opened or read
  3 - A record is not valid JSON or lacks tweet_id or Twitter_lang
  4 - Output or other runtime error

Examples:
  tweetids -l en,fr dump.jsonl
  tweetids --strict -l en --tgz day1.tar.gz day2.tar.gz
  tweetids -l ja -f parquet -o ids.parquet dump.jsonl.zst`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("at least one INPUT is required")
			}
			return nil
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.configure,
		RunE:              c.execute,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	f := cmd.Flags()
	f.StringSliceVarP(&c.languages, "languages", "l", nil, "target languages (repeatable or comma separated); absent means no filtering")
	f.BoolVar(&c.strict, "strict", false, "consult only Twitter_lang")
	f.BoolVarP(&c.archive, "archive", "a", false, "treat inputs as tar archives (gzip/zstd auto-detected)")
	f.BoolVar(&c.archive, "tgz", false, "alias for --archive")
	f.BoolVar(&c.archive, "targzipped", false, "alias for --archive")
	f.StringVarP(&c.output, "output", "o", "-", `output path ("-" is stdout)`)
	f.StringVarP(&c.format, "format", "f", "text", "output format: text, json, csv or parquet")
	f.BoolVar(&c.foldCase, "fold-case", false, "case-insensitive language matching")
	f.IntVar(&c.maxLineBytes, "max-line-bytes", readers.DefaultMaxLineBytes, "maximum JSON line size in bytes")
	f.StringVar(&c.configPath, "config", "", "optional YAML config file")
	f.StringVar(&c.logLevel, "log-level", "info", "trace, debug, info, warn or error")
	f.StringVar(&c.logFormat, "log-format", "console", "console or json")
	return cmd
}

// configure resolves settings (flags > environment > YAML > defaults) and the logger.
func (c *cli) configure(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return &usageError{err: err}
	}

	s, invalid, err := config.Load(c.configPath)
	if err != nil {
		return &usageError{err: err}
	}

	flags := cmd.Flags()
	changed := func(names ...string) bool {
		for _, n := range names {
			if flags.Changed(n) {
				return true
			}
		}
		return false
	}
	if changed("languages") {
		if len(c.languages) == 0 {
			return &usageError{err: fmt.Errorf("--languages: %w", config.ErrNoLanguageCodes)}
		}
		s.Languages = c.languages
	}
	if changed("strict") {
		s.Strict = c.strict
	}
	if changed("archive", "tgz", "targzipped") {
		s.Archive = c.archive
	}
	if changed("fold-case") {
		s.FoldCase = c.foldCase
	}
	if changed("output") {
		s.Output = c.output
	}
	if changed("format") {
		s.Format = c.format
	}
	if changed("max-line-bytes") {
		s.MaxLineBytes = c.maxLineBytes
	}
	if changed("log-level") {
		s.LogLevel = c.logLevel
	}
	if changed("log-format") {
		s.LogFormat = c.logFormat
	}

	if !logger.ValidLevel(s.LogLevel) {
		return usagef("unknown log level %q", s.LogLevel)
	}
	if s.LogFormat != "console" && s.LogFormat != "json" {
		return usagef("unknown log format %q", s.LogFormat)
	}
	if s.MaxLineBytes <= 0 {
		return usagef("max line bytes must be positive, got %d", s.MaxLineBytes)
	}

	c.settings = s
	c.log = logger.New(logger.Options{Level: s.LogLevel, Format: s.LogFormat, Writer: c.stderr})
	for _, inv := range invalid {
		c.log.Warn().Str("key", inv.Key).Str("value", inv.Value).Str("default", inv.Default).
			Msgf("invalid %s; using default", inv.Kind)
	}
	c.log.Debug().
		Strs("languages", s.Languages).
		Bool("strict", s.Strict).
		Bool("archive", s.Archive).
		Str("format", s.Format).
		Str("output", s.Output).
		Msg("configuration resolved")
	return nil
}

func (c *cli) execute(cmd *cobra.Command, args []string) error {
	s := c.settings

	format, err := types.ParseOutputFormat(s.Format)
	if err != nil {
		return &usageError{err: err}
	}
	loc, err := types.ResolveOutput(s.Output, format)
	if err != nil {
		return &usageError{err: err}
	}
	if _, ok := loc.(types.StdoutLocation); ok {
		loc = types.StdoutLocation{Writer: c.stdout}
	}

	for _, w := range validators.ValidateLanguages(s.Languages) {
		c.log.Warn().Str("code", w.Code).Msg(w.Message)
	}

	codes := s.Languages
	if s.FoldCase {
		codes = transform.FoldCodes(codes)
	}
	cfg := core.FilterConfig{Languages: core.NewLanguages(codes...), StrictMatch: s.Strict}

	sink, err := loc.NewSink(format)
	if err != nil {
		return fmt.Errorf("open output %s: %w", loc, err)
	}

	builder := tweetids.NewPipeline().
		From(readers.NewInputs(args, readers.WithArchives(s.Archive))).
		Filter(filter.Language(cfg)).
		To(sink).
		WithLogger(c.log).
		WithReaderOptions(readers.WithMaxLineBytes(s.MaxLineBytes))
	if s.FoldCase {
		builder.Transform(transform.FoldLanguageCase())
	}

	pipeline, err := builder.Build()
	if err != nil {
		sink.Close()
		return err
	}

	err = pipeline.Execute(cmd.Context())
	c.summary(pipeline.Stats())
	return err
}

func (c *cli) summary(stats tweetids.Stats) {
	top := zerolog.Dict()
	for _, count := range stats.TopEmitted(10) {
		top.Int64(count.Key, count.Count)
	}
	c.log.Info().
		Int64("inputs", stats.InputsOpened).
		Int64("records", stats.RecordsRead).
		Int64("emitted", stats.IDsEmitted).
		Dur("elapsed", stats.Duration).
		Dict("top_languages", top).
		Msg("run complete")
}
