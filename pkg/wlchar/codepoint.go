// Package wlchar is the character layer: it turns a byte buffer into a
// stream of logical code points with accurate source spans, resolving UTF-8
// and the Wolfram Language escape forms (`\[Alpha]`, `\:00AB`, `\.41`,
// `\101`, one-letter escapes, and linear-syntax escapes).
package wlchar

import (
	"fmt"

	"github.com/daig/wolfram-parse/pkg/wlast"
)

// CodePoint is a tagged scalar: a Unicode scalar value in 0..0x10FFFF, or
// one of the negative sentinels below.
type CodePoint int32

const (
	// EndOfInput marks exhaustion of the byte buffer.
	EndOfInput CodePoint = -1

	// Unsafe stands in for bytes that could not be decoded. The reader
	// records the exact failure on its encoding flag.
	Unsafe CodePoint = -2

	// LinearSyntaxOpen and LinearSyntaxClose are the `\(` and `\)` escapes
	// that bracket a linear-syntax box. `\<` and `\>` are accepted as the
	// same grouping.
	LinearSyntaxOpen  CodePoint = -3
	LinearSyntaxClose CodePoint = -4

	// LinearSyntaxBang is the `\!` escape introducing a box expression.
	LinearSyntaxBang CodePoint = -5

	// LineContinuation is a `\` immediately followed by a line terminator.
	LineContinuation CodePoint = -6
)

// IsSentinel reports whether the code point is out-of-band.
func (c CodePoint) IsSentinel() bool { return c < 0 }

func (c CodePoint) String() string {
	switch c {
	case EndOfInput:
		return "<eof>"
	case Unsafe:
		return "<unsafe>"
	case LinearSyntaxOpen:
		return `\(`
	case LinearSyntaxClose:
		return `\)`
	case LinearSyntaxBang:
		return `\!`
	case LineContinuation:
		return "<line-continuation>"
	default:
		return fmt.Sprintf("%q", rune(c))
	}
}

// Char is one decoded code point with its source data. A char spelled by a
// multi-byte escape covers the whole escape: Offset..EndOffset are the byte
// bounds and Span the location bounds of the literal spelling, so a named
// escape counts as the width of its source text, not as one column.
type Char struct {
	Point     CodePoint
	Offset    int
	EndOffset int
	Span      wlast.Span

	// Escaped is set when the char was spelled by an escape. An escaped
	// character never takes a syntactic role: an escaped `"` does not
	// delimit a string and an escaped `+` is not an operator. Letterlike
	// classification is unaffected, so `\[Alpha]` still starts a symbol.
	Escaped bool
}

// IsEndOfInput reports whether the char marks the end of the buffer.
func (c Char) IsEndOfInput() bool { return c.Point == EndOfInput }
