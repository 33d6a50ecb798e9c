package config

import (
	"github.com/daig/wolfram-parse/internal/logging"
	"github.com/daig/wolfram-parse/pkg/parser/wolfram"
	"github.com/daig/wolfram-parse/pkg/wlast"
)

// Options resolves the configuration into the parser's options record and
// applies the configured log level. Call Validate first; unknown values
// fall back to defaults here rather than erroring twice.
func (c *Config) Options() *wolfram.Options {
	opts := wolfram.DefaultOptions()
	if c == nil {
		return opts
	}

	if c.TabWidth >= 1 {
		opts.TabWidth = c.TabWidth
	}

	switch c.FirstLine {
	case FirstLineCheck:
		opts.FirstLineBehavior = wolfram.FirstLineCheck
	case FirstLineScript:
		opts.FirstLineBehavior = wolfram.FirstLineScript
	}

	if c.Encoding == EncodingStrictASCII {
		opts.EncodingMode = wolfram.EncodingStrictASCII
	}

	if c.SourceConvention == ConventionCharacterIndex {
		opts.SourceConvention = wlast.ConventionCharacterIndex
	}

	quirks := wolfram.DefaultQuirks()
	for _, name := range c.Quirks {
		quirks[wolfram.Quirk(name)] = true
	}
	opts.Quirks = quirks

	if c.LogLevel != "" {
		logging.SetLevel(c.LogLevel)
	}

	return opts
}
