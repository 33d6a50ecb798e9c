package wlast

import "fmt"

// NodeSeq is an ordered sequence of nodes: the tokens of a tokenization, or
// the top-level expressions (and surrounding trivia nodes) of a parse.
type NodeSeq[N any] []N

// Single returns the only element of the sequence, or a descriptive error
// when the sequence is empty or holds several elements.
func (s NodeSeq[N]) Single() (N, error) {
	var zero N
	switch len(s) {
	case 0:
		return zero, fmt.Errorf("expected a single node, sequence is empty")
	case 1:
		return s[0], nil
	default:
		return zero, fmt.Errorf("expected a single node, sequence has %d", len(s))
	}
}

// UnsafeEncoding flags the specific way an input's bytes could not be
// decoded. The zero value means the encoding was safe.
type UnsafeEncoding int

const (
	EncodingOK UnsafeEncoding = iota
	EncodingIncompleteUTF8
	EncodingStraggleSurrogate
	EncodingBOM
	EncodingNonASCII
)

func (e UnsafeEncoding) String() string {
	switch e {
	case EncodingOK:
		return "ok"
	case EncodingIncompleteUTF8:
		return "incomplete-utf8"
	case EncodingStraggleSurrogate:
		return "straggle-surrogate"
	case EncodingBOM:
		return "bom"
	case EncodingNonASCII:
		return "non-ascii"
	default:
		return fmt.Sprintf("UnsafeEncoding(%d)", int(e))
	}
}

// Result is the envelope every entry point returns: the syntax (tokens, CST,
// or AST), the issue streams, and the encoding flag. Fatal issues do not
// suppress syntax; they signal that the tree contains error nodes.
type Result[T any] struct {
	Syntax         T
	FatalIssues    []Issue
	NonFatalIssues []Issue
	UnsafeEncoding UnsafeEncoding
}

// IsOK reports whether parsing finished without fatal issues.
func (r *Result[T]) IsOK() bool {
	return len(r.FatalIssues) == 0
}

// HasIssues reports whether any issue, fatal or not, was recorded.
func (r *Result[T]) HasIssues() bool {
	return len(r.FatalIssues) > 0 || len(r.NonFatalIssues) > 0
}

// Issues returns all issues, fatal first, each stream in source order.
func (r *Result[T]) Issues() []Issue {
	out := make([]Issue, 0, len(r.FatalIssues)+len(r.NonFatalIssues))
	out = append(out, r.FatalIssues...)
	out = append(out, r.NonFatalIssues...)
	return out
}
