package wolfram

import (
	"github.com/daig/wolfram-parse/pkg/wlast"
	"github.com/daig/wolfram-parse/pkg/wlchar"
)

// scanSymbol lexes a symbol: a leading letterlike character followed by
// letterlike and digit characters, with a backtick as a context separator.
// The backtick must sit between letterlike segments; a trailing, doubled,
// or dangling backtick is an invalid shape and produces an error token
// covering the consumed prefix rather than a silently truncated symbol.
func (t *Tokenizer) scanSymbol(first wlchar.Char, startOffset int, startLoc wlast.Location) wlast.Token {
	// A leading backtick spells a context-relative symbol and must be
	// followed by a letterlike character.
	if first.Point == '`' {
		if !wlchar.IsLetterlike(t.reader.Peek().Point) {
			t.addIssue(wlast.TagExpectedLetterlike,
				"expected a letter after ` in symbol", wlast.SeverityError,
				wlast.SpanFrom(startLoc, t.reader.Loc()))
			return t.token(wlast.TokErrorExpectedLetterlike, startOffset, startLoc)
		}
	}

	for {
		p := t.reader.Peek()
		switch {
		case wlchar.IsLetterlike(p.Point) || wlchar.IsDigit(p.Point):
			t.reader.Next()
		case p.Point == '`' && !p.Escaped:
			t.reader.Next()
			if !wlchar.IsLetterlike(t.reader.Peek().Point) {
				t.addIssue(wlast.TagExpectedLetterlike,
					"expected a letter after ` in symbol", wlast.SeverityError,
					wlast.SpanFrom(startLoc, t.reader.Loc()))
				return t.token(wlast.TokErrorExpectedLetterlike, startOffset, startLoc)
			}
		default:
			return t.token(wlast.TokSymbol, startOffset, startLoc)
		}
	}
}
