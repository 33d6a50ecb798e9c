package wlchar

import "unicode"

// Classification sets over code points. These are the second external data
// input of the character layer: which points are letterlike, whitespace,
// newline, or uninterpretable.

// IsLetterlike reports whether the point can appear in a symbol. `$` is a
// letter in the Wolfram Language, as are the common letterlike named
// characters (Greek letters, \[Infinity], \[Degree], the formal constants).
func IsLetterlike(c CodePoint) bool {
	if c.IsSentinel() {
		return false
	}
	r := rune(c)
	if r == '$' {
		return true
	}
	if r < 0x80 {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}
	switch r {
	case 0x221E, // \[Infinity]
		0x00B0,         // \[Degree]
		0xF74D,         // \[ExponentialE]
		0xF74E, 0xF74F: // \[ImaginaryI], \[ImaginaryJ]
		return true
	}
	return unicode.IsLetter(r)
}

// IsDigit reports an ASCII decimal digit.
func IsDigit(c CodePoint) bool {
	return c >= '0' && c <= '9'
}

// IsWhitespace reports inline whitespace: space, tab, and the named space
// characters. Line terminators are classified separately.
func IsWhitespace(c CodePoint) bool {
	switch c {
	case ' ', '\t', '\v', '\f',
		0x00A0, // \[NonBreakingSpace]
		0x2009, // \[ThinSpace]
		0x205F, // \[MediumSpace]
		0xFEFF: // BOM, absorbed as whitespace after being reported
		return true
	default:
		return false
	}
}

// IsNewline reports a line terminator: LF, CR, NEL, LS, PS, and the
// \[IndentingNewLine] named character. CRLF is handled as a single break by
// the reader.
func IsNewline(c CodePoint) bool {
	switch c {
	case '\n', '\r',
		0x0085, // NEL
		0x2028, // LS
		0x2029, // PS
		0xF3A2: // \[IndentingNewLine]
		return true
	default:
		return false
	}
}

// IsUninterpretable reports points that never form a valid token.
func IsUninterpretable(c CodePoint) bool {
	switch c {
	case 0xFFFD, 0xFFFE, 0xFFFF:
		return true
	default:
		return c == Unsafe
	}
}
