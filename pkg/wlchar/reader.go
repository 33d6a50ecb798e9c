package wlchar

import (
	"fmt"
	"unicode/utf8"

	"github.com/daig/wolfram-parse/pkg/wlast"
)

// Reader decodes a byte buffer into a stream of Chars, resolving UTF-8 and
// escape sequences while tracking byte offset, line, and tab-expanded
// column. Malformed input produces issues and best-guess characters; the
// stream never aborts before end of input.
type Reader struct {
	input       []byte
	offset      int
	loc         wlast.Location
	tabWidth    uint64
	convention  wlast.SourceConvention
	strictASCII bool

	issues   []wlast.Issue
	encoding wlast.UnsafeEncoding
}

// NewReader constructs a reader over input. tabWidth must be at least 1;
// zero selects the default.
func NewReader(input []byte, convention wlast.SourceConvention, tabWidth int, strictASCII bool) *Reader {
	if tabWidth < 1 {
		tabWidth = wlast.DefaultTabWidth
	}
	start := wlast.LineColumn(1, 1)
	if convention == wlast.ConventionCharacterIndex {
		start = wlast.CharacterIndex(1)
	}
	return &Reader{
		input:       input,
		loc:         start,
		tabWidth:    uint64(tabWidth),
		convention:  convention,
		strictASCII: strictASCII,
	}
}

// Input returns the underlying buffer. Token text slices borrow from it.
func (r *Reader) Input() []byte { return r.input }

// Offset returns the byte offset of the next character.
func (r *Reader) Offset() int { return r.offset }

// Loc returns the source location of the next character.
func (r *Reader) Loc() wlast.Location { return r.loc }

// Issues returns the issues recorded so far.
func (r *Reader) Issues() []wlast.Issue { return r.issues }

// Encoding returns the unsafe-encoding flag, or EncodingOK.
func (r *Reader) Encoding() wlast.UnsafeEncoding { return r.encoding }

// AddIssue appends an issue. The tokenizer shares the reader's issue stream
// so all lexical issues arrive in one deterministic sequence.
func (r *Reader) AddIssue(issue wlast.Issue) {
	r.issues = append(r.issues, issue)
}

func (r *Reader) setEncoding(flag wlast.UnsafeEncoding) {
	if r.encoding == wlast.EncodingOK {
		r.encoding = flag
	}
}

// Next decodes and consumes one character.
func (r *Reader) Next() Char {
	ch, next, nextLoc, pending, flag := r.decode(r.offset, r.loc)
	r.offset = next
	r.loc = nextLoc
	r.issues = append(r.issues, pending...)
	if flag != wlast.EncodingOK {
		r.setEncoding(flag)
	}
	return ch
}

// Peek decodes the next character without consuming it or recording its
// issues.
func (r *Reader) Peek() Char {
	ch, _, _, _, _ := r.decode(r.offset, r.loc)
	return ch
}

// PeekSecond decodes the character after the next one. Two characters of
// lookahead is all the tokenizer ever needs.
func (r *Reader) PeekSecond() Char {
	_, next, nextLoc, _, _ := r.decode(r.offset, r.loc)
	ch, _, _, _, _ := r.decode(next, nextLoc)
	return ch
}

// advance computes the location after consuming the source text
// input[from:to] spelling the single code point c. A named escape advances
// the column by the width of its literal spelling; a tab advances to the
// next multiple of the tab width.
func (r *Reader) advance(loc wlast.Location, from, to int, c CodePoint, escaped bool) wlast.Location {
	if r.convention == wlast.ConventionCharacterIndex {
		if escaped {
			return wlast.CharacterIndex(loc.Column + uint64(to-from))
		}
		return wlast.CharacterIndex(loc.Column + 1)
	}
	if !escaped && IsNewline(c) {
		return wlast.LineColumn(loc.Line+1, 1)
	}
	if c == LineContinuation {
		return wlast.LineColumn(loc.Line+1, 1)
	}
	if c == '\t' && !escaped {
		col := ((loc.Column-1)/r.tabWidth+1)*r.tabWidth + 1
		return wlast.LineColumn(loc.Line, col)
	}
	if escaped {
		// Escapes are spelled in ASCII, so bytes equal characters.
		return wlast.LineColumn(loc.Line, loc.Column+uint64(to-from))
	}
	return wlast.LineColumn(loc.Line, loc.Column+1)
}

func (r *Reader) char(point CodePoint, from, to int, loc wlast.Location, escaped bool) (Char, int, wlast.Location) {
	end := r.advance(loc, from, to, point, escaped)
	return Char{
		Point:     point,
		Offset:    from,
		EndOffset: to,
		Span:      wlast.SpanFrom(loc, end),
		Escaped:   escaped,
	}, to, end
}

// decode reads one character at offset without mutating the reader. It
// returns the character, the next offset and location, any issues the
// character produced, and an encoding flag.
func (r *Reader) decode(offset int, loc wlast.Location) (Char, int, wlast.Location, []wlast.Issue, wlast.UnsafeEncoding) {
	if offset >= len(r.input) {
		ch := Char{Point: EndOfInput, Offset: offset, EndOffset: offset, Span: wlast.Point(loc)}
		return ch, offset, loc, nil, wlast.EncodingOK
	}

	b := r.input[offset]

	if b == '\\' && offset+1 < len(r.input) {
		return r.decodeEscape(offset, loc)
	}

	if b < 0x80 {
		if b == '\r' {
			// CRLF counts as one line break.
			end := offset + 1
			if end < len(r.input) && r.input[end] == '\n' {
				end++
			}
			ch, next, nextLoc := r.char('\n', offset, end, loc, false)
			return ch, next, nextLoc, nil, wlast.EncodingOK
		}
		ch, next, nextLoc := r.char(CodePoint(b), offset, offset+1, loc, false)
		return ch, next, nextLoc, nil, wlast.EncodingOK
	}

	// UTF-16 byte-order marks are not valid UTF-8 at all.
	if offset == 0 && len(r.input) >= 2 &&
		((r.input[0] == 0xFF && r.input[1] == 0xFE) || (r.input[0] == 0xFE && r.input[1] == 0xFF)) {
		ch, next, nextLoc := r.char(Unsafe, offset, offset+2, loc, false)
		issue := wlast.NewIssue(wlast.TagBOM, "UTF-16 byte order mark; only UTF-8 and ASCII input is accepted", wlast.SeverityFatal, ch.Span)
		return ch, next, nextLoc, []wlast.Issue{issue}, wlast.EncodingBOM
	}

	point, size := utf8.DecodeRune(r.input[offset:])
	if point == utf8.RuneError && size <= 1 {
		ch, next, nextLoc := r.char(Unsafe, offset, offset+1, loc, false)
		issue := wlast.NewIssue(wlast.TagIncompleteUTF8Sequence,
			fmt.Sprintf("invalid UTF-8 sequence: stray byte 0x%02X", b), wlast.SeverityFatal, ch.Span)
		return ch, next, nextLoc, []wlast.Issue{issue}, wlast.EncodingIncompleteUTF8
	}

	var pending []wlast.Issue
	flag := wlast.EncodingOK

	if offset == 0 && point == 0xFEFF {
		ch, next, nextLoc := r.char(0xFEFF, offset, offset+size, loc, false)
		issue := wlast.NewIssue(wlast.TagBOM, "byte order mark at start of input", wlast.SeverityWarning, ch.Span)
		return ch, next, nextLoc, []wlast.Issue{issue}, wlast.EncodingBOM
	}

	if r.strictASCII {
		ch, next, nextLoc := r.char(CodePoint(point), offset, offset+size, loc, false)
		issue := wlast.NewIssue(wlast.TagNonASCIICharacter,
			fmt.Sprintf("non-ASCII character %q in strict ASCII mode", point), wlast.SeverityError, ch.Span)
		return ch, next, nextLoc, []wlast.Issue{issue}, wlast.EncodingNonASCII
	}

	ch, next, nextLoc := r.char(CodePoint(point), offset, offset+size, loc, false)
	return ch, next, nextLoc, pending, flag
}

// decodeEscape handles everything after a backslash. On malformed escapes
// the backslash itself is emitted as a standalone character with an issue;
// it is never silently swallowed.
func (r *Reader) decodeEscape(offset int, loc wlast.Location) (Char, int, wlast.Location, []wlast.Issue, wlast.UnsafeEncoding) {
	head := r.input[offset+1]

	switch {
	case head == '[':
		return r.decodeLongName(offset, loc)
	case head == ':':
		return r.decodeHex(offset, loc, 4)
	case head == '.':
		return r.decodeHex(offset, loc, 2)
	case head == '|':
		return r.decodeHex(offset, loc, 6)
	case head >= '0' && head <= '7':
		return r.decodeOctal(offset, loc)
	case head == '(', head == '<':
		ch, next, nextLoc := r.char(LinearSyntaxOpen, offset, offset+2, loc, true)
		return ch, next, nextLoc, nil, wlast.EncodingOK
	case head == ')', head == '>':
		ch, next, nextLoc := r.char(LinearSyntaxClose, offset, offset+2, loc, true)
		return ch, next, nextLoc, nil, wlast.EncodingOK
	case head == '!':
		ch, next, nextLoc := r.char(LinearSyntaxBang, offset, offset+2, loc, true)
		return ch, next, nextLoc, nil, wlast.EncodingOK
	case head == '\n', head == '\r':
		end := offset + 2
		if head == '\r' && end < len(r.input) && r.input[end] == '\n' {
			end++
		}
		ch, next, nextLoc := r.char(LineContinuation, offset, end, loc, true)
		return ch, next, nextLoc, nil, wlast.EncodingOK
	}

	if point, ok := singleLetterEscape(head); ok {
		ch, next, nextLoc := r.char(point, offset, offset+2, loc, true)
		return ch, next, nextLoc, nil, wlast.EncodingOK
	}

	// Not an escape head: the backslash stands alone.
	ch, next, nextLoc := r.char('\\', offset, offset+1, loc, true)
	issue := wlast.NewIssue(wlast.TagUnrecognizedEscape,
		fmt.Sprintf("unrecognized escape \\%c", head), wlast.SeverityError, ch.Span)
	return ch, next, nextLoc, []wlast.Issue{issue}, wlast.EncodingOK
}

// singleLetterEscape maps the fixed one-letter escape table.
func singleLetterEscape(b byte) (CodePoint, bool) {
	switch b {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	case ' ':
		return ' ', true
	default:
		return 0, false
	}
}

func (r *Reader) decodeLongName(offset int, loc wlast.Location) (Char, int, wlast.Location, []wlast.Issue, wlast.UnsafeEncoding) {
	at := offset + 2
	for at < len(r.input) && isASCIILetter(r.input[at]) {
		at++
	}
	nameEnd := at
	if nameEnd == offset+2 || at >= len(r.input) || r.input[at] != ']' {
		// Empty name or missing closing bracket: the backslash stands alone.
		ch, next, nextLoc := r.char('\\', offset, offset+1, loc, true)
		issue := wlast.NewIssue(wlast.TagUnexpectedEscapeSequence,
			"malformed \\[Name] escape: expected ASCII letters and a closing ]", wlast.SeverityError, ch.Span)
		return ch, next, nextLoc, []wlast.Issue{issue}, wlast.EncodingOK
	}
	name := string(r.input[offset+2 : nameEnd])
	point, ok := LookupLongName(name)
	if !ok {
		ch, next, nextLoc := r.char(Unsafe, offset, nameEnd+1, loc, true)
		issue := wlast.NewIssue(wlast.TagUnrecognizedLongName,
			fmt.Sprintf("unrecognized named character \\[%s]", name), wlast.SeverityError, ch.Span)
		return ch, next, nextLoc, []wlast.Issue{issue}, wlast.EncodingOK
	}
	ch, next, nextLoc := r.char(point, offset, nameEnd+1, loc, true)
	return ch, next, nextLoc, nil, wlast.EncodingOK
}

func (r *Reader) decodeHex(offset int, loc wlast.Location, digits int) (Char, int, wlast.Location, []wlast.Issue, wlast.UnsafeEncoding) {
	start := offset + 2
	end := start + digits
	if end > len(r.input) {
		return r.malformedEscape(offset, loc, digits)
	}
	var value uint32
	for _, b := range r.input[start:end] {
		v, ok := hexValue(b)
		if !ok {
			return r.malformedEscape(offset, loc, digits)
		}
		value = value<<4 | uint32(v)
	}
	if value >= 0xD800 && value <= 0xDFFF {
		ch, next, nextLoc := r.char(Unsafe, offset, end, loc, true)
		issue := wlast.NewIssue(wlast.TagStraggleSurrogate,
			fmt.Sprintf("escape \\|%06X denotes a surrogate code point", value), wlast.SeverityFatal, ch.Span)
		return ch, next, nextLoc, []wlast.Issue{issue}, wlast.EncodingStraggleSurrogate
	}
	if value > 0x10FFFF {
		ch, next, nextLoc := r.char(Unsafe, offset, end, loc, true)
		issue := wlast.NewIssue(wlast.TagUnexpectedEscapeSequence,
			fmt.Sprintf("escape denotes code point %#X outside Unicode", value), wlast.SeverityError, ch.Span)
		return ch, next, nextLoc, []wlast.Issue{issue}, wlast.EncodingOK
	}
	ch, next, nextLoc := r.char(CodePoint(value), offset, end, loc, true)
	return ch, next, nextLoc, nil, wlast.EncodingOK
}

func (r *Reader) decodeOctal(offset int, loc wlast.Location) (Char, int, wlast.Location, []wlast.Issue, wlast.UnsafeEncoding) {
	start := offset + 1
	end := start + 3
	if end > len(r.input) {
		return r.malformedEscape(offset, loc, 3)
	}
	var value uint32
	for _, b := range r.input[start:end] {
		if b < '0' || b > '7' {
			return r.malformedEscape(offset, loc, 3)
		}
		value = value<<3 | uint32(b-'0')
	}
	ch, next, nextLoc := r.char(CodePoint(value), offset, end, loc, true)
	return ch, next, nextLoc, nil, wlast.EncodingOK
}

func (r *Reader) malformedEscape(offset int, loc wlast.Location, digits int) (Char, int, wlast.Location, []wlast.Issue, wlast.UnsafeEncoding) {
	ch, next, nextLoc := r.char('\\', offset, offset+1, loc, true)
	issue := wlast.NewIssue(wlast.TagUnexpectedEscapeSequence,
		fmt.Sprintf("malformed \\%c escape: expected %d digits", r.input[offset+1], digits), wlast.SeverityError, ch.Span)
	return ch, next, nextLoc, []wlast.Issue{issue}, wlast.EncodingOK
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func hexValue(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
