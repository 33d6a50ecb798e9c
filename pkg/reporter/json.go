package reporter

import (
	"encoding/json"
	"fmt"

	"github.com/daig/wolfram-parse/pkg/wlast"
)

// JSONReporter formats issues as a JSON document.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// jsonIssue is the stable wire form of one issue.
type jsonIssue struct {
	Tag      string   `json:"tag"`
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	Span     string   `json:"span"`
	Actions  []string `json:"actions,omitempty"`
}

type jsonReport struct {
	Label  string      `json:"label"`
	Issues []jsonIssue `json:"issues"`
}

// Report implements Reporter.
func (r *JSONReporter) Report(issues []wlast.Issue, _ []byte) (int, error) {
	report := jsonReport{Label: r.opts.Label, Issues: make([]jsonIssue, 0, len(issues))}
	for _, issue := range issues {
		out := jsonIssue{
			Tag:      string(issue.Tag),
			Severity: issue.Severity.String(),
			Message:  issue.Message,
			Span:     issue.Span.String(),
		}
		for _, action := range issue.Actions {
			out.Actions = append(out.Actions, action.Label)
		}
		report.Issues = append(report.Issues, out)
	}

	encoder := json.NewEncoder(r.opts.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return 0, fmt.Errorf("encode json: %w", err)
	}
	return len(issues), nil
}
