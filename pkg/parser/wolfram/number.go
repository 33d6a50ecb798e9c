package wolfram

import (
	"fmt"
	"strconv"

	"github.com/daig/wolfram-parse/pkg/wlast"
	"github.com/daig/wolfram-parse/pkg/wlchar"
)

// scanNumber lexes a numeric literal. The grammar, informally:
//
//	digits ('^^' base-digits)? ('.' digits?)? precision? ('*^' sign? digits)?
//
// where precision is ` (machine precision) or “ (accuracy), optionally
// followed by a signed decimal number. The scanner records the offending
// position precisely on errors and always consumes a maximal prefix, so the
// tiling invariant survives malformed numbers.
// leadingDot is set when the literal began with a bare decimal point, as in
// `.5`.
func (t *Tokenizer) scanNumber(startOffset int, startLoc wlast.Location, leadingDot bool) wlast.Token {
	kind := wlast.TokInteger
	base := 10

	if leadingDot {
		kind = wlast.TokReal
		t.consumeDigits(10)
		return t.scanNumberSuffix(kind, startOffset, startLoc)
	}

	// Leading decimal digits. The first digit is already consumed.
	t.consumeDigits(10)

	// Base mark: n^^digits with 2 <= n <= 36.
	if t.reader.Peek().Point == '^' && t.reader.PeekSecond().Point == '^' {
		baseText := string(t.input[startOffset:t.reader.Offset()])
		t.reader.Next()
		t.reader.Next()
		parsed, err := strconv.Atoi(baseText)
		if err != nil || parsed < 2 || parsed > 36 {
			markLoc := t.reader.Loc()
			t.consumeDigits(36)
			t.addIssue(wlast.TagInvalidBase,
				fmt.Sprintf("base %s out of range; bases 2 through 36 are supported", baseText),
				wlast.SeverityError, wlast.SpanFrom(startLoc, markLoc))
			return t.token(wlast.TokErrorNumber, startOffset, startLoc)
		}
		base = parsed
		digitsStart := t.reader.Offset()
		bad, badLoc := t.consumeDigitsChecked(base)
		if t.reader.Offset() == digitsStart {
			t.addIssue(wlast.TagExpectedDigit,
				fmt.Sprintf("expected base-%d digits after ^^", base),
				wlast.SeverityError, wlast.Point(t.reader.Loc()))
			return t.token(wlast.TokErrorNumber, startOffset, startLoc)
		}
		if bad {
			t.addIssue(wlast.TagExpectedDigit,
				fmt.Sprintf("digit out of range for base %d", base),
				wlast.SeverityError, wlast.Point(badLoc))
			return t.token(wlast.TokErrorNumber, startOffset, startLoc)
		}
	}

	// Decimal point. `1..` is the integer 1 followed by the .. operator, so
	// a second dot stops the number.
	if t.reader.Peek().Point == '.' && t.reader.PeekSecond().Point != '.' {
		t.reader.Next()
		kind = wlast.TokReal
		t.consumeDigits(base)
	}

	return t.scanNumberSuffix(kind, startOffset, startLoc)
}

// scanNumberSuffix lexes the precision/accuracy marks and the *^ exponent.
func (t *Tokenizer) scanNumberSuffix(kind wlast.TokenKind, startOffset int, startLoc wlast.Location) wlast.Token {
	// Precision and accuracy marks.
	if t.accept('`') {
		kind = wlast.TokReal
		accuracy := t.accept('`')
		signed := false
		if p := t.reader.Peek().Point; p == '-' || p == '+' {
			second := t.reader.PeekSecond().Point
			if wlchar.IsDigit(second) || second == '.' {
				t.reader.Next()
				signed = true
			}
		}
		digitsStart := t.reader.Offset()
		t.consumeDigits(10)
		if t.reader.Peek().Point == '.' && wlchar.IsDigit(t.reader.PeekSecond().Point) {
			t.reader.Next()
			t.consumeDigits(10)
		}
		if accuracy && signed && t.reader.Offset() == digitsStart {
			t.addIssue(wlast.TagExpectedAccuracy,
				"expected a number after the accuracy sign", wlast.SeverityError,
				wlast.Point(t.reader.Loc()))
			return t.token(wlast.TokErrorNumber, startOffset, startLoc)
		}
	}

	// Exponent: *^ sign? digits.
	if t.reader.Peek().Point == '*' && t.reader.PeekSecond().Point == '^' {
		t.reader.Next()
		t.reader.Next()
		if p := t.reader.Peek().Point; p == '-' || p == '+' {
			t.reader.Next()
		}
		digitsStart := t.reader.Offset()
		t.consumeDigits(10)
		if t.reader.Offset() == digitsStart {
			t.addIssue(wlast.TagExpectedDigit, "expected digits in *^ exponent",
				wlast.SeverityError, wlast.Point(t.reader.Loc()))
			return t.token(wlast.TokErrorNumber, startOffset, startLoc)
		}
		kind = wlast.TokReal
	}

	return t.token(kind, startOffset, startLoc)
}

// consumeDigits consumes a maximal run of base-b digit characters. For bases
// above 10 the letters are accepted case-insensitively.
func (t *Tokenizer) consumeDigits(base int) {
	for isBaseDigit(t.reader.Peek().Point, base) {
		t.reader.Next()
	}
}

// consumeDigitsChecked consumes a maximal alphanumeric run and reports the
// first character whose value is out of range for the base.
func (t *Tokenizer) consumeDigitsChecked(base int) (bad bool, badLoc wlast.Location) {
	for {
		p := t.reader.Peek()
		if !isBaseDigit(p.Point, 36) {
			return bad, badLoc
		}
		if !bad && !isBaseDigit(p.Point, base) {
			bad = true
			badLoc = t.reader.Loc()
		}
		t.reader.Next()
	}
}

func isBaseDigit(c wlchar.CodePoint, base int) bool {
	var value int
	switch {
	case c >= '0' && c <= '9':
		value = int(c - '0')
	case c >= 'a' && c <= 'z':
		value = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		value = int(c-'A') + 10
	default:
		return false
	}
	return value < base
}
