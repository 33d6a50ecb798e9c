package reporter

import (
	"io"
	"os"
)

// Format specifies the output format for issues.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// IsValid returns true if the format is recognized.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// Options configures issue reporting.
type Options struct {
	// Writer receives the rendered output. Defaults to stdout.
	Writer io.Writer

	// Format selects the renderer. Defaults to text.
	Format Format

	// Color is "auto", "always", or "never".
	Color string

	// ShowContext includes the offending source line with a caret marker.
	ShowContext bool

	// Label names the input in the output, e.g. a file path.
	Label string
}

// DefaultOptions returns the options used when fields are unset.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		Label:       "<input>",
	}
}
