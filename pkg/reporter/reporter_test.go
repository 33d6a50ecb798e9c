package reporter_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daig/wolfram-parse/pkg/reporter"
	"github.com/daig/wolfram-parse/pkg/wlast"
)

func sampleIssues() []wlast.Issue {
	missing := wlast.NewIssue(wlast.TagMissingCloser, "missing ) to match (",
		wlast.SeverityFatal,
		wlast.SpanFrom(wlast.LineColumn(1, 1), wlast.LineColumn(1, 7)))
	missing.Actions = []wlast.CodeAction{{Label: "insert )", ReplacementText: ")"}}

	operand := wlast.NewIssue(wlast.TagExpectedOperand, "expected an operand",
		wlast.SeverityWarning,
		wlast.SpanFrom(wlast.LineColumn(1, 4), wlast.LineColumn(1, 5)))

	return []wlast.Issue{missing, operand}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "sarif"})
	assert.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r, err := reporter.New(reporter.Options{
		Writer:      &buf,
		Format:      reporter.FormatText,
		Color:       "never",
		Label:       "example.wl",
		ShowContext: true,
	})
	require.NoError(t, err)

	count, err := r.Report(sampleIssues(), []byte("(1 + 2"))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, "example.wl:1:1")
	assert.Contains(t, out, "fatal")
	assert.Contains(t, out, "missing ) to match (")
	assert.Contains(t, out, "(MissingCloser)")
	assert.Contains(t, out, "Suggestion:")
	// Source context with caret.
	assert.Contains(t, out, "(1 + 2")
	assert.Contains(t, out, "^")
}

func TestTextReporter_NoContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r, err := reporter.New(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowContext: false,
	})
	require.NoError(t, err)

	_, err = r.Report(sampleIssues(), []byte("(1 + 2"))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "^")
}

func TestTextReporter_NoIssues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r, err := reporter.New(reporter.Options{Writer: &buf, Color: "never"})
	require.NoError(t, err)

	count, err := r.Report(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, buf.String())
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r, err := reporter.New(reporter.Options{
		Writer: &buf,
		Format: reporter.FormatJSON,
		Label:  "in.wl",
	})
	require.NoError(t, err)

	count, err := r.Report(sampleIssues(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var decoded struct {
		Label  string `json:"label"`
		Issues []struct {
			Tag      string   `json:"tag"`
			Severity string   `json:"severity"`
			Message  string   `json:"message"`
			Span     string   `json:"span"`
			Actions  []string `json:"actions"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "in.wl", decoded.Label)
	require.Len(t, decoded.Issues, 2)
	assert.Equal(t, "MissingCloser", decoded.Issues[0].Tag)
	assert.Equal(t, "fatal", decoded.Issues[0].Severity)
	assert.Equal(t, []string{"insert )"}, decoded.Issues[0].Actions)
}

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	assert.True(t, reporter.IsColorEnabled("always", &strings.Builder{}))
	assert.False(t, reporter.IsColorEnabled("never", &strings.Builder{}))
	// A plain writer is not a TTY.
	assert.False(t, reporter.IsColorEnabled("auto", &strings.Builder{}))
}
