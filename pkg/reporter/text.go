package reporter

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/daig/wolfram-parse/pkg/wlast"
)

const bufWriterSize = 32 * 1024

// TextReporter formats issues as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *Styles
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: NewStyles(IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(issues []wlast.Issue, source []byte) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	lines := splitLines(source)
	width := r.terminalWidth()

	for i := range issues {
		issue := &issues[i]
		fmt.Fprint(bw, r.formatIssue(issue, lines, width))
	}

	return len(issues), nil
}

// formatIssue renders one issue:
//
//	<label>:<line>:<col>  <severity>  <message>  (<tag>)
//	        <source line>
//	        ^
func (r *TextReporter) formatIssue(issue *wlast.Issue, lines [][]byte, width int) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%s",
		r.styles.Label.Render(r.opts.Label),
		issue.Span.Start,
	)

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		r.formatSeverity(issue.Severity),
		r.styles.Message.Render(issue.Message),
		r.styles.Tag.Render("("+string(issue.Tag)+")"),
	))

	if r.opts.ShowContext {
		builder.WriteString(r.formatSourceContext(issue, lines, width))
	}

	for _, action := range issue.Actions {
		builder.WriteString("    " + r.styles.Dim.Render("Suggestion:") + " " +
			r.styles.Action.Render(action.Label) + "\n")
	}
	for _, desc := range issue.AdditionalDescriptions {
		builder.WriteString("    " + r.styles.Dim.Render(desc) + "\n")
	}

	return builder.String()
}

func (r *TextReporter) formatSeverity(sev wlast.Severity) string {
	switch sev {
	case wlast.SeverityFatal:
		return r.styles.Fatal.Render("fatal")
	case wlast.SeverityError:
		return r.styles.Error.Render("error")
	case wlast.SeverityWarning:
		return r.styles.Warning.Render("warning")
	default:
		return r.styles.Remark.Render("remark")
	}
}

// formatSourceContext renders the offending line with a caret marker. Lines
// wider than the terminal are truncated so the caret stays visible.
func (r *TextReporter) formatSourceContext(issue *wlast.Issue, lines [][]byte, width int) string {
	line := int(issue.Span.Start.Line)
	if line < 1 || line > len(lines) {
		return ""
	}
	text := string(lines[line-1])
	column := int(issue.Span.Start.Column)

	const indent = "        "
	if width > len(indent)+8 && len(text) > width-len(indent) {
		avail := width - len(indent)
		if column > avail {
			cut := column - avail/2
			if cut < len(text) {
				text = text[cut:]
				column -= cut
			}
		}
		if len(text) > avail {
			text = text[:avail]
		}
	}

	var builder strings.Builder
	builder.WriteString(indent + r.styles.SourceLine.Render(text) + "\n")
	if column > 0 {
		builder.WriteString(indent + strings.Repeat(" ", column-1) + r.styles.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// terminalWidth reports the writer's terminal width, or 0 when the writer
// is not a terminal.
func (r *TextReporter) terminalWidth() int {
	f, ok := r.opts.Writer.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// splitLines indexes source by line for context rendering.
func splitLines(source []byte) [][]byte {
	if len(source) == 0 {
		return nil
	}
	lines := bytes.Split(source, []byte("\n"))
	for i, line := range lines {
		lines[i] = bytes.TrimSuffix(line, []byte("\r"))
	}
	return lines
}
