package wolfram

import "github.com/daig/wolfram-parse/pkg/wlast"

// EncodingMode selects how input bytes are policed.
type EncodingMode int

const (
	// EncodingNormal accepts UTF-8.
	EncodingNormal EncodingMode = iota
	// EncodingStrictASCII reports every byte above 0x7F.
	EncodingStrictASCII
)

// Options configures a parse. The zero value is not useful; construct with
// DefaultOptions and override fields, or load from YAML via pkg/config.
type Options struct {
	// TabWidth is the column advance of a tab character; at least 1.
	TabWidth int

	// FirstLineBehavior controls shebang handling on the first line.
	FirstLineBehavior FirstLineBehavior

	// EncodingMode polices the input bytes.
	EncodingMode EncodingMode

	// SourceConvention selects line-column or character-offset locations.
	SourceConvention wlast.SourceConvention

	// Quirks enables legacy abstraction behaviors.
	Quirks QuirkSettings
}

// DefaultOptions returns the options every entry point assumes when passed
// nil.
func DefaultOptions() *Options {
	return &Options{
		TabWidth:          wlast.DefaultTabWidth,
		FirstLineBehavior: FirstLineNormal,
		EncodingMode:      EncodingNormal,
		SourceConvention:  wlast.ConventionLineColumn,
		Quirks:            DefaultQuirks(),
	}
}

func (o *Options) orDefault() *Options {
	if o == nil {
		return DefaultOptions()
	}
	return o
}
