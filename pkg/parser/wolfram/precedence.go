package wolfram

import "github.com/daig/wolfram-parse/pkg/wlast"

// Precedence orders operators for the Pratt parser. Several operators share
// a value; such ties are settled by associativity, which is encoded in the
// right-hand floor a parselet chooses: a right-associative operator recurses
// at prec-1, a left-associative one at prec.
type Precedence int

const (
	PrecLowest Precedence = 0

	PrecComma        Precedence = 10
	PrecSemi         Precedence = 20
	PrecPut          Precedence = 30
	PrecSet          Precedence = 40
	PrecAssignOp     Precedence = 45
	PrecFunctionAmp  Precedence = 50
	PrecSlashSlash   Precedence = 60
	PrecReplaceAll   Precedence = 70
	PrecRule         Precedence = 80
	PrecCondition    Precedence = 90
	PrecStringExpr   Precedence = 100
	PrecPattern      Precedence = 110
	PrecAlternatives Precedence = 120
	PrecRepeated     Precedence = 130
	PrecOr           Precedence = 140
	PrecAnd          Precedence = 150
	PrecNot          Precedence = 160
	PrecElement      Precedence = 170
	PrecSameQ        Precedence = 180
	PrecInequality   Precedence = 190
	PrecSpan         Precedence = 200
	PrecPlus         Precedence = 210
	PrecPlusMinus    Precedence = 215
	PrecTimes        Precedence = 220
	PrecDivide       Precedence = 230
	PrecStarStar     Precedence = 240
	PrecCircle       Precedence = 245
	PrecDot          Precedence = 250
	PrecPrefixMinus  Precedence = 260
	PrecPower        Precedence = 270
	PrecComposition  Precedence = 280
	PrecMap          Precedence = 290
	PrecAt           Precedence = 295
	PrecPatternTest  Precedence = 300
	PrecPostfix      Precedence = 310
	PrecDerivative   Precedence = 320
	PrecMessageName  Precedence = 330
	PrecCall         Precedence = 340

	PrecHighest Precedence = 350
)

// infixForm says how an infix parselet combines operands.
type infixForm int

const (
	formBinary infixForm = iota
	formFlat
	formPostfix
	formCall
	formSpecial
)

// infixInfo is the infix parselet table entry for a token kind.
type infixInfo struct {
	prec       Precedence
	form       infixForm
	op         wlast.Operator
	rightAssoc bool
}

// infixInfoFor is the infix half of the parselet table: at most one infix
// parselet per token kind. Implicit multiplication is resolved by the caller
// when the next token could begin an expression.
func infixInfoFor(kind wlast.TokenKind) (infixInfo, bool) {
	switch kind {
	// Flat chains.
	case wlast.TokPlus, wlast.TokMinus, wlast.TokLongNameImplicitPlus:
		return infixInfo{prec: PrecPlus, form: formFlat, op: wlast.OpPlus}, true
	case wlast.TokStar, wlast.TokLongNameTimes, wlast.TokLongNameInvisibleTimes:
		return infixInfo{prec: PrecTimes, form: formFlat, op: wlast.OpTimes}, true
	case wlast.TokAmpAmp, wlast.TokLongNameAnd:
		return infixInfo{prec: PrecAnd, form: formFlat, op: wlast.OpAnd}, true
	case wlast.TokBarBar, wlast.TokLongNameOr:
		return infixInfo{prec: PrecOr, form: formFlat, op: wlast.OpOr}, true
	case wlast.TokBar:
		return infixInfo{prec: PrecAlternatives, form: formFlat, op: wlast.OpAlternatives}, true
	case wlast.TokLessGreater:
		return infixInfo{prec: PrecStringExpr, form: formFlat, op: wlast.OpStringJoin}, true
	case wlast.TokTildeTilde:
		return infixInfo{prec: PrecStringExpr, form: formFlat, op: wlast.OpStringExpression}, true
	case wlast.TokDot:
		return infixInfo{prec: PrecDot, form: formFlat, op: wlast.OpDot}, true
	case wlast.TokStarStar:
		return infixInfo{prec: PrecStarStar, form: formFlat, op: wlast.OpNonCommutativeMultiply}, true
	case wlast.TokEqualEqualEqual:
		return infixInfo{prec: PrecSameQ, form: formFlat, op: wlast.OpSameQ}, true
	case wlast.TokEqualBangEqual:
		return infixInfo{prec: PrecSameQ, form: formFlat, op: wlast.OpUnsameQ}, true
	case wlast.TokAtStar:
		return infixInfo{prec: PrecComposition, form: formFlat, op: wlast.OpComposition}, true
	case wlast.TokSlashStar:
		return infixInfo{prec: PrecComposition, form: formFlat, op: wlast.OpRightComposition}, true
	case wlast.TokLongNameElement:
		return infixInfo{prec: PrecElement, form: formFlat, op: wlast.OpElement}, true
	case wlast.TokEqualEqual, wlast.TokBangEqual, wlast.TokLess, wlast.TokGreater,
		wlast.TokLessEqual, wlast.TokGreaterEqual,
		wlast.TokLongNameEqual, wlast.TokLongNameNotEqual,
		wlast.TokLongNameLessEqual, wlast.TokLongNameGreaterEqual:
		return infixInfo{prec: PrecInequality, form: formFlat, op: wlast.OpInfixInequality}, true
	case wlast.TokLongNameCenterDot:
		return infixInfo{prec: PrecCircle, form: formFlat, op: wlast.OpCenterDot}, true
	case wlast.TokLongNameCross:
		return infixInfo{prec: PrecCircle, form: formFlat, op: wlast.OpCross}, true
	case wlast.TokLongNameCirclePlus:
		return infixInfo{prec: PrecCircle, form: formFlat, op: wlast.OpCirclePlus}, true
	case wlast.TokLongNameCircleTimes:
		return infixInfo{prec: PrecCircle, form: formFlat, op: wlast.OpCircleTimes}, true

	// Binary.
	case wlast.TokSlash, wlast.TokLongNameDivide:
		return infixInfo{prec: PrecDivide, form: formBinary, op: wlast.OpDivide}, true
	case wlast.TokCaret:
		return infixInfo{prec: PrecPower, form: formBinary, op: wlast.OpPower, rightAssoc: true}, true
	case wlast.TokMinusGreater, wlast.TokLongNameRule:
		return infixInfo{prec: PrecRule, form: formBinary, op: wlast.OpRule, rightAssoc: true}, true
	case wlast.TokColonGreater, wlast.TokLongNameRuleDelayed:
		return infixInfo{prec: PrecRule, form: formBinary, op: wlast.OpRuleDelayed, rightAssoc: true}, true
	case wlast.TokLessMinusGreater:
		return infixInfo{prec: PrecRule, form: formBinary, op: wlast.OpTwoWayRule, rightAssoc: true}, true
	case wlast.TokSlashDot:
		return infixInfo{prec: PrecReplaceAll, form: formBinary, op: wlast.OpReplaceAll}, true
	case wlast.TokSlashSlashDot:
		return infixInfo{prec: PrecReplaceAll, form: formBinary, op: wlast.OpReplaceRepeated}, true
	case wlast.TokSlashSemi:
		return infixInfo{prec: PrecCondition, form: formBinary, op: wlast.OpCondition}, true
	case wlast.TokSlashAt:
		return infixInfo{prec: PrecMap, form: formBinary, op: wlast.OpMap, rightAssoc: true}, true
	case wlast.TokSlashSlashAt:
		return infixInfo{prec: PrecMap, form: formBinary, op: wlast.OpMapAll, rightAssoc: true}, true
	case wlast.TokAtAt:
		return infixInfo{prec: PrecMap, form: formBinary, op: wlast.OpApply, rightAssoc: true}, true
	case wlast.TokAtAtAt:
		return infixInfo{prec: PrecMap, form: formBinary, op: wlast.OpMapApply, rightAssoc: true}, true
	case wlast.TokAt:
		return infixInfo{prec: PrecAt, form: formBinary, op: wlast.OpBinaryAt, rightAssoc: true}, true
	case wlast.TokSlashSlash:
		return infixInfo{prec: PrecSlashSlash, form: formBinary, op: wlast.OpBinarySlashSlash}, true
	case wlast.TokSlashSlashEqual:
		return infixInfo{prec: PrecAssignOp, form: formBinary, op: wlast.OpApplyTo, rightAssoc: true}, true
	case wlast.TokQuestion:
		return infixInfo{prec: PrecPatternTest, form: formBinary, op: wlast.OpPatternTest}, true
	case wlast.TokBarMinusGreater, wlast.TokLongNameFunction:
		return infixInfo{prec: PrecRule, form: formBinary, op: wlast.OpFunctionArrow, rightAssoc: true}, true
	case wlast.TokPlusEqual:
		return infixInfo{prec: PrecAssignOp, form: formBinary, op: wlast.OpAddTo, rightAssoc: true}, true
	case wlast.TokMinusEqual:
		return infixInfo{prec: PrecAssignOp, form: formBinary, op: wlast.OpSubtractFrom, rightAssoc: true}, true
	case wlast.TokStarEqual:
		return infixInfo{prec: PrecAssignOp, form: formBinary, op: wlast.OpTimesBy, rightAssoc: true}, true
	case wlast.TokSlashEqual:
		return infixInfo{prec: PrecAssignOp, form: formBinary, op: wlast.OpDivideBy, rightAssoc: true}, true
	case wlast.TokColonEqual:
		return infixInfo{prec: PrecSet, form: formBinary, op: wlast.OpSetDelayed, rightAssoc: true}, true
	case wlast.TokCaretEqual:
		return infixInfo{prec: PrecSet, form: formBinary, op: wlast.OpUpSet, rightAssoc: true}, true
	case wlast.TokCaretColonEqual:
		return infixInfo{prec: PrecSet, form: formBinary, op: wlast.OpUpSetDelayed, rightAssoc: true}, true
	case wlast.TokLongNamePlusMinus:
		return infixInfo{prec: PrecPlusMinus, form: formBinary, op: wlast.OpPlusMinus}, true

	// Postfix.
	case wlast.TokAmp:
		return infixInfo{prec: PrecFunctionAmp, form: formPostfix, op: wlast.OpFunction}, true
	case wlast.TokBang:
		return infixInfo{prec: PrecPostfix, form: formPostfix, op: wlast.OpFactorial}, true
	case wlast.TokBangBang:
		return infixInfo{prec: PrecPostfix, form: formPostfix, op: wlast.OpFactorial2}, true
	case wlast.TokDotDot:
		return infixInfo{prec: PrecRepeated, form: formPostfix, op: wlast.OpRepeated}, true
	case wlast.TokDotDotDot:
		return infixInfo{prec: PrecRepeated, form: formPostfix, op: wlast.OpRepeatedNull}, true
	case wlast.TokPlusPlus:
		return infixInfo{prec: PrecPostfix, form: formPostfix, op: wlast.OpIncrement}, true
	case wlast.TokMinusMinus:
		return infixInfo{prec: PrecPostfix, form: formPostfix, op: wlast.OpDecrement}, true
	case wlast.TokSingleQuote:
		return infixInfo{prec: PrecDerivative, form: formPostfix, op: wlast.OpDerivative}, true

	// Calls.
	case wlast.TokOpenSquare, wlast.TokLongNameLeftDoubleBracket:
		return infixInfo{prec: PrecCall, form: formCall}, true

	// Forms with their own parselets.
	case wlast.TokEqual, wlast.TokEqualDot, wlast.TokSemi, wlast.TokSemiSemi,
		wlast.TokComma, wlast.TokLongNameInvisibleComma, wlast.TokColon,
		wlast.TokColonColon, wlast.TokTilde, wlast.TokSlashColon,
		wlast.TokGreaterGreater, wlast.TokGreaterGreaterGreater:
		return infixInfo{prec: specialPrec(kind), form: formSpecial}, true
	}
	return infixInfo{}, false
}

func specialPrec(kind wlast.TokenKind) Precedence {
	switch kind {
	case wlast.TokEqual, wlast.TokEqualDot:
		return PrecSet
	case wlast.TokSemi:
		return PrecSemi
	case wlast.TokSemiSemi:
		return PrecSpan
	case wlast.TokComma, wlast.TokLongNameInvisibleComma:
		return PrecComma
	case wlast.TokColon:
		return PrecPattern
	case wlast.TokColonColon:
		return PrecMessageName
	case wlast.TokTilde:
		return PrecStringExpr
	case wlast.TokSlashColon:
		return PrecSet
	case wlast.TokGreaterGreater, wlast.TokGreaterGreaterGreater:
		return PrecPut
	default:
		return PrecLowest
	}
}

// prefixPrecedenceFor is the prefix half of the table for operator tokens.
func prefixPrecedenceFor(kind wlast.TokenKind) (Precedence, wlast.Operator, bool) {
	switch kind {
	case wlast.TokMinus, wlast.TokLongNameMinus:
		return PrecPrefixMinus, wlast.OpMinusPrefix, true
	case wlast.TokPlus:
		return PrecPrefixMinus, wlast.OpPlusPrefix, true
	case wlast.TokBang, wlast.TokLongNameNot:
		return PrecNot, wlast.OpNot, true
	case wlast.TokBangBang:
		return PrecNot, wlast.OpNot, true
	case wlast.TokPlusPlus:
		return PrecPostfix, wlast.OpPreIncrement, true
	case wlast.TokMinusMinus:
		return PrecPostfix, wlast.OpPreDecrement, true
	case wlast.TokLongNameSqrt:
		return PrecPower, wlast.OpSqrt, true
	case wlast.TokLongNamePlusMinus:
		return PrecPlusMinus, wlast.OpPlusMinus, true
	case wlast.TokLinearSyntaxBang:
		return PrecHighest, wlast.OpLinearSyntaxBang, true
	default:
		return PrecLowest, wlast.OpNone, false
	}
}

// groupOperatorFor maps an opener token to its group operator and closer.
func groupOperatorFor(kind wlast.TokenKind) (wlast.Operator, wlast.TokenKind, bool) {
	switch kind {
	case wlast.TokOpenParen:
		return wlast.OpGroupParen, wlast.TokCloseParen, true
	case wlast.TokOpenSquare:
		return wlast.OpGroupSquare, wlast.TokCloseSquare, true
	case wlast.TokOpenCurly:
		return wlast.OpList, wlast.TokCloseCurly, true
	case wlast.TokLessBar:
		return wlast.OpAssociation, wlast.TokBarGreater, true
	case wlast.TokLongNameLeftAngleBracket:
		return wlast.OpAngleBracket, wlast.TokLongNameRightAngleBracket, true
	case wlast.TokLongNameLeftCeiling:
		return wlast.OpCeiling, wlast.TokLongNameRightCeiling, true
	case wlast.TokLongNameLeftFloor:
		return wlast.OpFloor, wlast.TokLongNameRightFloor, true
	case wlast.TokLongNameLeftDoubleBracket:
		return wlast.OpGroupDoubleBracket, wlast.TokLongNameRightDoubleBracket, true
	case wlast.TokLongNameLeftAssociation:
		return wlast.OpAssociation, wlast.TokLongNameRightAssociation, true
	default:
		return wlast.OpNone, wlast.TokUnknown, false
	}
}
