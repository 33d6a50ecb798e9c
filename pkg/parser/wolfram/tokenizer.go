// Package wolfram parses Wolfram Language input-form syntax. The pipeline is
// a single pass per layer: the character reader decodes bytes to code points,
// the tokenizer covers the input with a contiguous token stream, the Pratt
// parser builds a concrete syntax tree, and the abstraction pass rewrites the
// CST into head/argument form.
package wolfram

import (
	"fmt"

	"github.com/daig/wolfram-parse/pkg/wlast"
	"github.com/daig/wolfram-parse/pkg/wlchar"
)

// FirstLineBehavior selects how a `#!` shebang on the first line is treated.
type FirstLineBehavior int

const (
	// FirstLineNormal tokenizes the first line like any other.
	FirstLineNormal FirstLineBehavior = iota
	// FirstLineCheck treats a leading `#!` line as trivia if present.
	FirstLineCheck
	// FirstLineScript always treats the first line as trivia.
	FirstLineScript
)

// Tokenizer performs a single-pass tokenization of Wolfram Language input.
// The produced tokens are contiguous, non-overlapping, and cover the whole
// input; trivia are first-class tokens.
type Tokenizer struct {
	reader *wlchar.Reader
	input  []byte

	// groupDepth tracks open brackets so newlines classify as toplevel or
	// internal. Recovery keeps it at zero or above.
	groupDepth int

	firstLine FirstLineBehavior
	started   bool
}

// NewTokenizer constructs a tokenizer over input with the given options.
func NewTokenizer(input []byte, opts *Options) *Tokenizer {
	opts = opts.orDefault()
	return &Tokenizer{
		reader: wlchar.NewReader(input, opts.SourceConvention, opts.TabWidth,
			opts.EncodingMode == EncodingStrictASCII),
		input:     input,
		firstLine: opts.FirstLineBehavior,
	}
}

// Issues returns the lexical issues recorded so far, in source order.
func (t *Tokenizer) Issues() []wlast.Issue { return t.reader.Issues() }

// Encoding returns the unsafe-encoding flag, or EncodingOK.
func (t *Tokenizer) Encoding() wlast.UnsafeEncoding { return t.reader.Encoding() }

func (t *Tokenizer) addIssue(tag wlast.IssueTag, msg string, sev wlast.Severity, span wlast.Span) {
	t.reader.AddIssue(wlast.NewIssue(tag, msg, sev, span))
}

// token finalizes the token that began at startOffset/startLoc.
func (t *Tokenizer) token(kind wlast.TokenKind, startOffset int, startLoc wlast.Location) wlast.Token {
	tok := wlast.Token{
		Kind:   kind,
		Text:   t.input[startOffset:t.reader.Offset()],
		Offset: startOffset,
		Span:   wlast.SpanFrom(startLoc, t.reader.Loc()),
	}
	t.adjustGroupDepth(kind)
	return tok
}

func (t *Tokenizer) adjustGroupDepth(kind wlast.TokenKind) {
	switch kind {
	case wlast.TokOpenParen, wlast.TokOpenSquare, wlast.TokOpenCurly, wlast.TokLessBar,
		wlast.TokLongNameLeftAngleBracket, wlast.TokLongNameLeftCeiling,
		wlast.TokLongNameLeftFloor, wlast.TokLongNameLeftDoubleBracket,
		wlast.TokLongNameLeftAssociation:
		t.groupDepth++
	case wlast.TokCloseParen, wlast.TokCloseSquare, wlast.TokCloseCurly, wlast.TokBarGreater,
		wlast.TokLongNameRightAngleBracket, wlast.TokLongNameRightCeiling,
		wlast.TokLongNameRightFloor, wlast.TokLongNameRightDoubleBracket,
		wlast.TokLongNameRightAssociation:
		if t.groupDepth > 0 {
			t.groupDepth--
		}
	}
}

// accept consumes the next character if it is the unescaped code point want.
func (t *Tokenizer) accept(want wlchar.CodePoint) bool {
	next := t.reader.Peek()
	if next.Point == want && !next.Escaped {
		t.reader.Next()
		return true
	}
	return false
}

// Next lexes and returns the next token. After the end of input it keeps
// returning the synthetic end-of-file token, the only token with an empty
// span.
func (t *Tokenizer) Next() wlast.Token {
	if !t.started {
		t.started = true
		if tok, ok := t.tryShebang(); ok {
			return tok
		}
	}

	startOffset := t.reader.Offset()
	startLoc := t.reader.Loc()
	c := t.reader.Next()

	switch {
	case c.IsEndOfInput():
		return t.token(wlast.TokEndOfFile, startOffset, startLoc)

	case c.Point == wlchar.LineContinuation:
		return t.token(wlast.TokLineContinuation, startOffset, startLoc)

	case c.Point == wlchar.LinearSyntaxOpen:
		return t.scanLinearSyntaxBlob(startOffset, startLoc)

	case c.Point == wlchar.LinearSyntaxBang:
		return t.token(wlast.TokLinearSyntaxBang, startOffset, startLoc)

	case c.Point == wlchar.LinearSyntaxClose:
		t.addIssue(wlast.TagUnexpectedCharacter, `stray \) with no matching \(`,
			wlast.SeverityError, wlast.SpanFrom(startLoc, t.reader.Loc()))
		return t.token(wlast.TokErrorUnhandledCharacter, startOffset, startLoc)

	case c.Point == wlchar.Unsafe:
		return t.token(wlast.TokErrorUnsafeCharacterEncoding, startOffset, startLoc)

	case !c.Escaped && wlchar.IsNewline(c.Point):
		if t.groupDepth == 0 {
			return t.token(wlast.TokToplevelNewline, startOffset, startLoc)
		}
		return t.token(wlast.TokInternalNewline, startOffset, startLoc)

	case wlchar.IsWhitespace(c.Point):
		return t.scanWhitespace(startOffset, startLoc)

	case wlchar.IsDigit(c.Point):
		return t.scanNumber(startOffset, startLoc, false)

	case c.Point == '.' && !c.Escaped && wlchar.IsDigit(t.reader.Peek().Point):
		// `.5` is the real 0.5.
		return t.scanNumber(startOffset, startLoc, true)

	case c.Point == '"' && !c.Escaped:
		return t.scanString(startOffset, startLoc)

	case wlchar.IsLetterlike(c.Point) || (c.Point == '`' && !c.Escaped):
		return t.scanSymbol(c, startOffset, startLoc)

	case c.Escaped && c.Point < 0x80:
		// An escaped ASCII special takes no syntactic role.
		t.addIssue(wlast.TagUnhandledCharacter,
			fmt.Sprintf("unexpected escaped character %s", c.Point),
			wlast.SeverityError, wlast.SpanFrom(startLoc, t.reader.Loc()))
		return t.token(wlast.TokErrorUnhandledCharacter, startOffset, startLoc)

	case c.Point == '(':
		if t.accept('*') {
			return t.scanComment(startOffset, startLoc)
		}
		return t.token(wlast.TokOpenParen, startOffset, startLoc)

	default:
		if kind, ok := operatorTokenForPoint(c.Point); ok {
			return t.token(kind, startOffset, startLoc)
		}
		if kind, ok := t.scanOperator(c); ok {
			return t.token(kind, startOffset, startLoc)
		}
		t.addIssue(wlast.TagUnhandledCharacter,
			fmt.Sprintf("unhandled character %s", c.Point),
			wlast.SeverityError, wlast.SpanFrom(startLoc, t.reader.Loc()))
		return t.token(wlast.TokErrorUnhandledCharacter, startOffset, startLoc)
	}
}

// tryShebang handles the first-line mode before normal lexing starts.
func (t *Tokenizer) tryShebang() (wlast.Token, bool) {
	if t.firstLine == FirstLineNormal {
		return wlast.Token{}, false
	}
	if t.firstLine == FirstLineCheck {
		if len(t.input) < 2 || t.input[0] != '#' || t.input[1] != '!' {
			return wlast.Token{}, false
		}
	}
	startOffset := t.reader.Offset()
	startLoc := t.reader.Loc()
	for {
		next := t.reader.Peek()
		if next.IsEndOfInput() || (!next.Escaped && wlchar.IsNewline(next.Point)) {
			break
		}
		t.reader.Next()
	}
	if t.reader.Offset() == startOffset {
		return wlast.Token{}, false
	}
	return t.token(wlast.TokShebang, startOffset, startLoc), true
}

// scanWhitespace coalesces a run of inline whitespace into one token.
func (t *Tokenizer) scanWhitespace(startOffset int, startLoc wlast.Location) wlast.Token {
	for {
		next := t.reader.Peek()
		if next.Point == wlchar.EndOfInput || !wlchar.IsWhitespace(next.Point) {
			break
		}
		if next.Escaped && next.Point < 0x80 {
			break
		}
		t.reader.Next()
	}
	return t.token(wlast.TokWhitespace, startOffset, startLoc)
}

// scanComment lexes `(*` ... `*)`. Comments nest; an unterminated comment is
// a fatal issue.
func (t *Tokenizer) scanComment(startOffset int, startLoc wlast.Location) wlast.Token {
	depth := 1
	for depth > 0 {
		c := t.reader.Next()
		switch {
		case c.IsEndOfInput():
			t.addIssue(wlast.TagUnterminatedComment, "unterminated comment",
				wlast.SeverityFatal, wlast.SpanFrom(startLoc, t.reader.Loc()))
			return t.token(wlast.TokErrorUnterminatedComment, startOffset, startLoc)
		case c.Point == '(' && !c.Escaped:
			if t.accept('*') {
				depth++
			}
		case c.Point == '*' && !c.Escaped:
			if t.accept(')') {
				depth--
			}
		}
	}
	return t.token(wlast.TokComment, startOffset, startLoc)
}

// scanLinearSyntaxBlob lexes `\(` ... `\)`, which nests and may contain
// strings.
func (t *Tokenizer) scanLinearSyntaxBlob(startOffset int, startLoc wlast.Location) wlast.Token {
	depth := 1
	for depth > 0 {
		c := t.reader.Next()
		switch {
		case c.IsEndOfInput():
			t.addIssue(wlast.TagUnterminatedLinearSyntax, "unterminated linear syntax box",
				wlast.SeverityFatal, wlast.SpanFrom(startLoc, t.reader.Loc()))
			return t.token(wlast.TokErrorUnterminatedLinearSyntaxBlob, startOffset, startLoc)
		case c.Point == wlchar.LinearSyntaxOpen:
			depth++
		case c.Point == wlchar.LinearSyntaxClose:
			depth--
		case c.Point == '"' && !c.Escaped:
			for {
				inner := t.reader.Next()
				if inner.IsEndOfInput() {
					t.addIssue(wlast.TagUnterminatedLinearSyntax, "unterminated linear syntax box",
						wlast.SeverityFatal, wlast.SpanFrom(startLoc, t.reader.Loc()))
					return t.token(wlast.TokErrorUnterminatedLinearSyntaxBlob, startOffset, startLoc)
				}
				if inner.Point == '"' && !inner.Escaped {
					break
				}
			}
		}
	}
	return t.token(wlast.TokLinearSyntaxBlob, startOffset, startLoc)
}

// scanString lexes a `"`-delimited string. The escape grammar is resolved by
// the reader, so an escaped quote does not terminate. An unterminated string
// is a fatal issue with a synthesized closing quote at end of input.
func (t *Tokenizer) scanString(startOffset int, startLoc wlast.Location) wlast.Token {
	for {
		c := t.reader.Next()
		if c.IsEndOfInput() {
			span := wlast.SpanFrom(startLoc, t.reader.Loc())
			issue := wlast.NewIssue(wlast.TagUnterminatedString, "unterminated string",
				wlast.SeverityFatal, span)
			issue.Actions = []wlast.CodeAction{{
				Label:           `insert closing "`,
				Span:            wlast.Point(t.reader.Loc()),
				ReplacementText: `"`,
			}}
			t.reader.AddIssue(issue)
			return t.token(wlast.TokErrorUnterminatedString, startOffset, startLoc)
		}
		if c.Point == '"' && !c.Escaped {
			return t.token(wlast.TokString, startOffset, startLoc)
		}
	}
}

// NextAsTag lexes the token after `::` as a message tag: a bare letterlike
// run or a quoted string, never a general expression.
func (t *Tokenizer) NextAsTag() wlast.Token {
	startOffset := t.reader.Offset()
	startLoc := t.reader.Loc()
	next := t.reader.Peek()
	switch {
	case next.Point == '"' && !next.Escaped:
		t.reader.Next()
		return t.scanString(startOffset, startLoc)
	case wlchar.IsLetterlike(next.Point) || wlchar.IsDigit(next.Point):
		for {
			p := t.reader.Peek()
			if !wlchar.IsLetterlike(p.Point) && !wlchar.IsDigit(p.Point) {
				break
			}
			t.reader.Next()
		}
		return t.token(wlast.TokString, startOffset, startLoc)
	default:
		t.addIssue(wlast.TagExpectedTag, "expected a message tag after ::",
			wlast.SeverityError, wlast.Point(startLoc))
		return t.token(wlast.TokErrorExpectedTag, startOffset, startLoc)
	}
}

// NextAsFile lexes the token after `<<`, `>>`, or `>>>` as a file path.
// Leading whitespace comes back as ordinary trivia tokens; the caller keeps
// asking until it gets a non-trivia token.
func (t *Tokenizer) NextAsFile() wlast.Token {
	startOffset := t.reader.Offset()
	startLoc := t.reader.Loc()
	next := t.reader.Peek()
	if wlchar.IsWhitespace(next.Point) && !next.Escaped {
		t.reader.Next()
		return t.scanWhitespace(startOffset, startLoc)
	}
	if next.Point == '"' && !next.Escaped {
		t.reader.Next()
		return t.scanString(startOffset, startLoc)
	}
	if !isFileChar(next.Point) {
		t.addIssue(wlast.TagExpectedFile, "expected a file name",
			wlast.SeverityError, wlast.Point(startLoc))
		return t.token(wlast.TokErrorExpectedFile, startOffset, startLoc)
	}
	for isFileChar(t.reader.Peek().Point) {
		t.reader.Next()
	}
	return t.token(wlast.TokString, startOffset, startLoc)
}

// isFileChar reports characters allowed in an unquoted file specification.
func isFileChar(c wlchar.CodePoint) bool {
	if wlchar.IsLetterlike(c) || wlchar.IsDigit(c) {
		return true
	}
	switch c {
	case '`', '/', '.', '\\', '!', '-', '_', ':', '*', '~', '?', '+':
		return true
	default:
		return false
	}
}
