// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError = "error"
	FieldInput = "input"
	FieldSpan  = "span"

	// Parse fields.
	FieldTokens    = "tokens"
	FieldToplevel  = "toplevel"
	FieldIssues    = "issues"
	FieldFatal     = "fatal"
	FieldEncoding  = "encoding"
	FieldTabWidth  = "tab_width"
	FieldFirstLine = "first_line"

	// Issue fields.
	FieldTag      = "tag"
	FieldSeverity = "severity"
	FieldMessage  = "message"
)
