// Package config defines the parse-options record and its YAML form.
// These types are pure data structures; pkg/parser/wolfram consumes the
// resolved options and never reads files or the environment itself.
package config

import "github.com/daig/wolfram-parse/pkg/wlast"

// FirstLineMode controls how a `#!` line at the start of input is treated.
type FirstLineMode string

const (
	// FirstLineNormal tokenizes the first line like any other.
	FirstLineNormal FirstLineMode = "normal"
	// FirstLineCheck treats a leading `#!` line as trivia if present.
	FirstLineCheck FirstLineMode = "check-for-shebang"
	// FirstLineScript always treats the first line as trivia.
	FirstLineScript FirstLineMode = "always-script"
)

// EncodingMode polices the input bytes.
type EncodingMode string

const (
	EncodingNormal      EncodingMode = "normal"
	EncodingStrictASCII EncodingMode = "strict-ascii"
)

// SourceConventionMode selects how source locations are reported.
type SourceConventionMode string

const (
	ConventionLineColumn     SourceConventionMode = "line-column"
	ConventionCharacterIndex SourceConventionMode = "character-offset"
)

// Config is the serializable parse-options record.
type Config struct {
	// TabWidth is the column advance of a tab character. Must be at least 1.
	TabWidth int `yaml:"tab_width"`

	// FirstLine controls shebang handling.
	FirstLine FirstLineMode `yaml:"first_line"`

	// Encoding selects normal UTF-8 or strict ASCII input.
	Encoding EncodingMode `yaml:"encoding"`

	// SourceConvention selects line-column or character-offset locations.
	SourceConvention SourceConventionMode `yaml:"source_convention"`

	// Quirks lists enabled legacy behaviors by name.
	Quirks []string `yaml:"quirks"`

	// LogLevel sets the library's debug logging level.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration every field falls back to.
func Default() *Config {
	return &Config{
		TabWidth:         wlast.DefaultTabWidth,
		FirstLine:        FirstLineNormal,
		Encoding:         EncodingNormal,
		SourceConvention: ConventionLineColumn,
		LogLevel:         "warn",
	}
}

// Merge fills any zero-valued field of c from other.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if c.TabWidth == 0 {
		c.TabWidth = other.TabWidth
	}
	if c.FirstLine == "" {
		c.FirstLine = other.FirstLine
	}
	if c.Encoding == "" {
		c.Encoding = other.Encoding
	}
	if c.SourceConvention == "" {
		c.SourceConvention = other.SourceConvention
	}
	if len(c.Quirks) == 0 {
		c.Quirks = other.Quirks
	}
	if c.LogLevel == "" {
		c.LogLevel = other.LogLevel
	}
}
