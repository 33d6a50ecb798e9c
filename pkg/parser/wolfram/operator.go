package wolfram

import (
	"github.com/daig/wolfram-parse/pkg/wlast"
	"github.com/daig/wolfram-parse/pkg/wlchar"
)

// scanOperator resolves an ASCII operator spelling, longest match first. The
// spellings share long prefixes (`=`, `==`, `===`, `=!=`, `=.`; `/`, `//`,
// `//.`, `//@`, ...), so each branch peeks ahead before committing; a prefix
// that needs two characters of confirmation (`=!=`, `|->`, `^:=`) checks
// both before consuming either.
func (t *Tokenizer) scanOperator(first wlchar.Char) (wlast.TokenKind, bool) {
	switch first.Point {
	case ')':
		return wlast.TokCloseParen, true
	case '[':
		return wlast.TokOpenSquare, true
	case ']':
		return wlast.TokCloseSquare, true
	case '{':
		return wlast.TokOpenCurly, true
	case '}':
		return wlast.TokCloseCurly, true
	case ',':
		return wlast.TokComma, true
	case '\'':
		return wlast.TokSingleQuote, true

	case '.':
		if t.accept('.') {
			if t.accept('.') {
				return wlast.TokDotDotDot, true
			}
			return wlast.TokDotDot, true
		}
		return wlast.TokDot, true

	case ':':
		switch {
		case t.accept(':'):
			return wlast.TokColonColon, true
		case t.accept('='):
			return wlast.TokColonEqual, true
		case t.accept('>'):
			return wlast.TokColonGreater, true
		}
		return wlast.TokColon, true

	case '=':
		switch {
		case t.accept('='):
			if t.accept('=') {
				return wlast.TokEqualEqualEqual, true
			}
			return wlast.TokEqualEqual, true
		case t.reader.Peek().Point == '!' && t.reader.PeekSecond().Point == '=':
			t.reader.Next()
			t.reader.Next()
			return wlast.TokEqualBangEqual, true
		case t.reader.Peek().Point == '.' && !wlchar.IsDigit(t.reader.PeekSecond().Point):
			// `a =.` unsets; `a =.5` assigns the real .5.
			t.reader.Next()
			return wlast.TokEqualDot, true
		}
		return wlast.TokEqual, true

	case '+':
		switch {
		case t.accept('+'):
			return wlast.TokPlusPlus, true
		case t.accept('='):
			return wlast.TokPlusEqual, true
		}
		return wlast.TokPlus, true

	case '-':
		switch {
		case t.accept('-'):
			return wlast.TokMinusMinus, true
		case t.accept('='):
			return wlast.TokMinusEqual, true
		case t.accept('>'):
			return wlast.TokMinusGreater, true
		}
		return wlast.TokMinus, true

	case '*':
		switch {
		case t.accept('*'):
			return wlast.TokStarStar, true
		case t.accept('='):
			return wlast.TokStarEqual, true
		}
		return wlast.TokStar, true

	case '/':
		switch {
		case t.accept('@'):
			return wlast.TokSlashAt, true
		case t.accept(';'):
			return wlast.TokSlashSemi, true
		case t.accept(':'):
			return wlast.TokSlashColon, true
		case t.accept('*'):
			return wlast.TokSlashStar, true
		case t.accept('='):
			return wlast.TokSlashEqual, true
		case t.reader.Peek().Point == '.' && !wlchar.IsDigit(t.reader.PeekSecond().Point):
			// `a /. b` replaces; `a/.5` divides by the real .5.
			t.reader.Next()
			return wlast.TokSlashDot, true
		case t.accept('/'):
			switch {
			case t.accept('@'):
				return wlast.TokSlashSlashAt, true
			case t.accept('='):
				return wlast.TokSlashSlashEqual, true
			case t.reader.Peek().Point == '.' && !wlchar.IsDigit(t.reader.PeekSecond().Point):
				t.reader.Next()
				return wlast.TokSlashSlashDot, true
			}
			return wlast.TokSlashSlash, true
		}
		return wlast.TokSlash, true

	case '^':
		switch {
		case t.accept('='):
			return wlast.TokCaretEqual, true
		case t.reader.Peek().Point == ':' && t.reader.PeekSecond().Point == '=':
			t.reader.Next()
			t.reader.Next()
			return wlast.TokCaretColonEqual, true
		}
		return wlast.TokCaret, true

	case '<':
		switch {
		case t.accept('='):
			return wlast.TokLessEqual, true
		case t.accept('>'):
			return wlast.TokLessGreater, true
		case t.accept('<'):
			return wlast.TokLessLess, true
		case t.accept('|'):
			return wlast.TokLessBar, true
		case t.reader.Peek().Point == '-' && t.reader.PeekSecond().Point == '>':
			t.reader.Next()
			t.reader.Next()
			return wlast.TokLessMinusGreater, true
		}
		return wlast.TokLess, true

	case '>':
		switch {
		case t.accept('='):
			return wlast.TokGreaterEqual, true
		case t.accept('>'):
			if t.accept('>') {
				return wlast.TokGreaterGreaterGreater, true
			}
			return wlast.TokGreaterGreater, true
		}
		return wlast.TokGreater, true

	case '|':
		switch {
		case t.accept('|'):
			return wlast.TokBarBar, true
		case t.accept('>'):
			return wlast.TokBarGreater, true
		case t.reader.Peek().Point == '-' && t.reader.PeekSecond().Point == '>':
			t.reader.Next()
			t.reader.Next()
			return wlast.TokBarMinusGreater, true
		}
		return wlast.TokBar, true

	case '&':
		if t.accept('&') {
			return wlast.TokAmpAmp, true
		}
		return wlast.TokAmp, true

	case '!':
		switch {
		case t.accept('='):
			return wlast.TokBangEqual, true
		case t.accept('!'):
			return wlast.TokBangBang, true
		}
		return wlast.TokBang, true

	case '?':
		if t.accept('?') {
			return wlast.TokQuestionQuestion, true
		}
		return wlast.TokQuestion, true

	case '@':
		switch {
		case t.accept('@'):
			if t.accept('@') {
				return wlast.TokAtAtAt, true
			}
			return wlast.TokAtAt, true
		case t.accept('*'):
			return wlast.TokAtStar, true
		}
		return wlast.TokAt, true

	case '~':
		if t.accept('~') {
			return wlast.TokTildeTilde, true
		}
		return wlast.TokTilde, true

	case ';':
		if t.accept(';') {
			return wlast.TokSemiSemi, true
		}
		return wlast.TokSemi, true

	case '_':
		switch {
		case t.accept('_'):
			if t.accept('_') {
				return wlast.TokUnderUnderUnder, true
			}
			return wlast.TokUnderUnder, true
		case t.accept('.'):
			return wlast.TokUnderDot, true
		}
		return wlast.TokUnder, true

	case '#':
		if t.accept('#') {
			return wlast.TokHashHash, true
		}
		return wlast.TokHash, true

	case '%':
		if t.accept('%') {
			for t.accept('%') {
			}
			return wlast.TokPercentPercent, true
		}
		return wlast.TokPercent, true
	}

	return wlast.TokUnknown, false
}

// operatorTokenForPoint maps a named-character code point to its operator
// token. This realizes the code-point-to-operator table of the character
// data.
func operatorTokenForPoint(c wlchar.CodePoint) (wlast.TokenKind, bool) {
	switch c {
	case 0xF522:
		return wlast.TokLongNameRule, true
	case 0xF51F:
		return wlast.TokLongNameRuleDelayed, true
	case 0x00D7:
		return wlast.TokLongNameTimes, true
	case 0x00F7:
		return wlast.TokLongNameDivide, true
	case 0x2227:
		return wlast.TokLongNameAnd, true
	case 0x2228:
		return wlast.TokLongNameOr, true
	case 0x00AC:
		return wlast.TokLongNameNot, true
	case 0x2208:
		return wlast.TokLongNameElement, true
	case 0xF431:
		return wlast.TokLongNameEqual, true
	case 0x2260:
		return wlast.TokLongNameNotEqual, true
	case 0x2264:
		return wlast.TokLongNameLessEqual, true
	case 0x2265:
		return wlast.TokLongNameGreaterEqual, true
	case 0xF4A1:
		return wlast.TokLongNameFunction, true
	case 0x00B1:
		return wlast.TokLongNamePlusMinus, true
	case 0x2212:
		return wlast.TokLongNameMinus, true
	case 0x221A:
		return wlast.TokLongNameSqrt, true
	case 0x00B7:
		return wlast.TokLongNameCenterDot, true
	case 0xF4A0:
		return wlast.TokLongNameCross, true
	case 0x2295:
		return wlast.TokLongNameCirclePlus, true
	case 0x2297:
		return wlast.TokLongNameCircleTimes, true
	case 0x2062:
		return wlast.TokLongNameInvisibleTimes, true
	case 0x2063:
		return wlast.TokLongNameInvisibleComma, true
	case 0xF39E:
		return wlast.TokLongNameImplicitPlus, true
	case 0x2329:
		return wlast.TokLongNameLeftAngleBracket, true
	case 0x232A:
		return wlast.TokLongNameRightAngleBracket, true
	case 0x2308:
		return wlast.TokLongNameLeftCeiling, true
	case 0x2309:
		return wlast.TokLongNameRightCeiling, true
	case 0x230A:
		return wlast.TokLongNameLeftFloor, true
	case 0x230B:
		return wlast.TokLongNameRightFloor, true
	case 0x301A:
		return wlast.TokLongNameLeftDoubleBracket, true
	case 0x301B:
		return wlast.TokLongNameRightDoubleBracket, true
	case 0xF113:
		return wlast.TokLongNameLeftAssociation, true
	case 0xF114:
		return wlast.TokLongNameRightAssociation, true
	default:
		return wlast.TokUnknown, false
	}
}
