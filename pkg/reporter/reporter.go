// Package reporter renders parse issues for humans and machines: styled
// terminal output with source context, or JSON for tooling.
package reporter

import (
	"fmt"

	"github.com/daig/wolfram-parse/pkg/wlast"
)

// Reporter formats and writes parse issues.
type Reporter interface {
	// Report writes formatted output for the issues found in source.
	// It returns the number of issues reported and any write errors.
	Report(issues []wlast.Issue, source []byte) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.Format == "" {
		opts.Format = defaults.Format
	}
	if opts.Color == "" {
		opts.Color = defaults.Color
	}
	if opts.Label == "" {
		opts.Label = defaults.Label
	}
	if !opts.Format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}

	switch opts.Format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}
