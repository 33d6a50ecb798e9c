package wlast

import "fmt"

// tokenKindNames is indexed by TokenKind and must stay in declaration order
// with the constant block in token.go.
var tokenKindNames = [...]string{
	TokUnknown:   "Unknown",
	TokEndOfFile: "EndOfFile",

	TokWhitespace:       "Whitespace",
	TokInternalNewline:  "InternalNewline",
	TokToplevelNewline:  "ToplevelNewline",
	TokComment:          "Comment",
	TokLineContinuation: "LineContinuation",
	TokShebang:          "Shebang",

	TokSymbol:           "Symbol",
	TokString:           "String",
	TokInteger:          "Integer",
	TokReal:             "Real",
	TokLinearSyntaxBlob: "LinearSyntaxBlob",

	TokErrorExpectedOperand:              "ErrorExpectedOperand",
	TokErrorExpectedTag:                  "ErrorExpectedTag",
	TokErrorExpectedFile:                 "ErrorExpectedFile",
	TokErrorExpectedLetterlike:           "ErrorExpectedLetterlike",
	TokErrorNumber:                       "ErrorNumber",
	TokErrorUnhandledCharacter:           "ErrorUnhandledCharacter",
	TokErrorUnterminatedString:           "ErrorUnterminatedString",
	TokErrorUnterminatedComment:          "ErrorUnterminatedComment",
	TokErrorUnterminatedLinearSyntaxBlob: "ErrorUnterminatedLinearSyntaxBlob",
	TokErrorUnexpectedCloser:             "ErrorUnexpectedCloser",
	TokErrorUnsafeCharacterEncoding:      "ErrorUnsafeCharacterEncoding",
	TokErrorPrefixImplicitNull:           "ErrorPrefixImplicitNull",
	TokErrorInfixImplicitNull:            "ErrorInfixImplicitNull",

	TokFakeImplicitTimes: "FakeImplicitTimes",
	TokFakeImplicitOne:   "FakeImplicitOne",
	TokFakeImplicitAll:   "FakeImplicitAll",
	TokFakeImplicitNull:  "FakeImplicitNull",

	TokDot:       "Dot",
	TokDotDot:    "DotDot",
	TokDotDotDot: "DotDotDot",

	TokColon:        "Colon",
	TokColonColon:   "ColonColon",
	TokColonEqual:   "ColonEqual",
	TokColonGreater: "ColonGreater",

	TokEqual:           "Equal",
	TokEqualEqual:      "EqualEqual",
	TokEqualEqualEqual: "EqualEqualEqual",
	TokEqualBangEqual:  "EqualBangEqual",
	TokEqualDot:        "EqualDot",

	TokPlus:         "Plus",
	TokPlusPlus:     "PlusPlus",
	TokPlusEqual:    "PlusEqual",
	TokMinus:        "Minus",
	TokMinusMinus:   "MinusMinus",
	TokMinusEqual:   "MinusEqual",
	TokMinusGreater: "MinusGreater",

	TokStar:            "Star",
	TokStarStar:        "StarStar",
	TokStarEqual:       "StarEqual",
	TokSlash:           "Slash",
	TokSlashAt:         "SlashAt",
	TokSlashSemi:       "SlashSemi",
	TokSlashDot:        "SlashDot",
	TokSlashSlash:      "SlashSlash",
	TokSlashSlashAt:    "SlashSlashAt",
	TokSlashSlashDot:   "SlashSlashDot",
	TokSlashSlashEqual: "SlashSlashEqual",
	TokSlashEqual:      "SlashEqual",
	TokSlashStar:       "SlashStar",
	TokSlashColon:      "SlashColon",

	TokCaret:           "Caret",
	TokCaretEqual:      "CaretEqual",
	TokCaretColonEqual: "CaretColonEqual",

	TokLess:                  "Less",
	TokLessEqual:             "LessEqual",
	TokLessGreater:           "LessGreater",
	TokLessLess:              "LessLess",
	TokLessMinusGreater:      "LessMinusGreater",
	TokLessBar:               "LessBar",
	TokGreater:               "Greater",
	TokGreaterEqual:          "GreaterEqual",
	TokGreaterGreater:        "GreaterGreater",
	TokGreaterGreaterGreater: "GreaterGreaterGreater",

	TokBar:              "Bar",
	TokBarBar:           "BarBar",
	TokBarGreater:       "BarGreater",
	TokBarMinusGreater:  "BarMinusGreater",
	TokAmp:              "Amp",
	TokAmpAmp:           "AmpAmp",
	TokBang:             "Bang",
	TokBangEqual:        "BangEqual",
	TokBangBang:         "BangBang",
	TokQuestion:         "Question",
	TokQuestionQuestion: "QuestionQuestion",
	TokAt:               "At",
	TokAtAt:             "AtAt",
	TokAtAtAt:           "AtAtAt",
	TokAtStar:           "AtStar",
	TokTilde:            "Tilde",
	TokTildeTilde:       "TildeTilde",
	TokSingleQuote:      "SingleQuote",
	TokSemi:             "Semi",
	TokSemiSemi:         "SemiSemi",

	TokUnder:           "Under",
	TokUnderUnder:      "UnderUnder",
	TokUnderUnderUnder: "UnderUnderUnder",
	TokUnderDot:        "UnderDot",
	TokHash:            "Hash",
	TokHashHash:        "HashHash",
	TokPercent:         "Percent",
	TokPercentPercent:  "PercentPercent",

	TokOpenParen:   "OpenParen",
	TokCloseParen:  "CloseParen",
	TokOpenSquare:  "OpenSquare",
	TokCloseSquare: "CloseSquare",
	TokOpenCurly:   "OpenCurly",
	TokCloseCurly:  "CloseCurly",
	TokComma:       "Comma",

	TokLinearSyntaxBang: "LinearSyntaxBang",

	TokLongNameRule:               "LongNameRule",
	TokLongNameRuleDelayed:        "LongNameRuleDelayed",
	TokLongNameTimes:              "LongNameTimes",
	TokLongNameDivide:             "LongNameDivide",
	TokLongNameAnd:                "LongNameAnd",
	TokLongNameOr:                 "LongNameOr",
	TokLongNameNot:                "LongNameNot",
	TokLongNameElement:            "LongNameElement",
	TokLongNameEqual:              "LongNameEqual",
	TokLongNameNotEqual:           "LongNameNotEqual",
	TokLongNameLessEqual:          "LongNameLessEqual",
	TokLongNameGreaterEqual:       "LongNameGreaterEqual",
	TokLongNameFunction:           "LongNameFunction",
	TokLongNamePlusMinus:          "LongNamePlusMinus",
	TokLongNameMinus:              "LongNameMinus",
	TokLongNameSqrt:               "LongNameSqrt",
	TokLongNameCenterDot:          "LongNameCenterDot",
	TokLongNameCross:              "LongNameCross",
	TokLongNameCirclePlus:         "LongNameCirclePlus",
	TokLongNameCircleTimes:        "LongNameCircleTimes",
	TokLongNameInvisibleTimes:     "LongNameInvisibleTimes",
	TokLongNameInvisibleComma:     "LongNameInvisibleComma",
	TokLongNameImplicitPlus:       "LongNameImplicitPlus",
	TokLongNameLeftAngleBracket:   "LongNameLeftAngleBracket",
	TokLongNameRightAngleBracket:  "LongNameRightAngleBracket",
	TokLongNameLeftCeiling:        "LongNameLeftCeiling",
	TokLongNameRightCeiling:       "LongNameRightCeiling",
	TokLongNameLeftFloor:          "LongNameLeftFloor",
	TokLongNameRightFloor:         "LongNameRightFloor",
	TokLongNameLeftDoubleBracket:  "LongNameLeftDoubleBracket",
	TokLongNameRightDoubleBracket: "LongNameRightDoubleBracket",
	TokLongNameLeftAssociation:    "LongNameLeftAssociation",
	TokLongNameRightAssociation:   "LongNameRightAssociation",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) && tokenKindNames[k] != "" {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", uint16(k))
}
