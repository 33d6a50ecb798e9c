package wolfram

import (
	"fmt"

	"github.com/daig/wolfram-parse/pkg/wlast"
)

// applyInfix dispatches an infix token to its parselet. The leading trivia
// scanned by the climb is still in the buffer; each parselet consumes it
// into its own children.
func (p *parser) applyInfix(node wlast.Cst, tok wlast.Token, info infixInfo, implicit bool) wlast.Cst {
	switch info.form {
	case formBinary:
		return p.applyBinary(node, info)
	case formFlat:
		return p.applyFlat(node, info, implicit)
	case formPostfix:
		return p.applyPostfix(node, info)
	case formCall:
		return p.applyCall(node)
	default:
		return p.applySpecial(node, tok)
	}
}

func (p *parser) applyBinary(node wlast.Cst, info infixInfo) wlast.Cst {
	children := []wlast.Cst{node}
	p.consumeTrivia(&children)
	children = append(children, p.b.TokenNode(p.nextRaw()))

	if info.op == wlast.OpPut || info.op == wlast.OpPutAppend {
		p.appendFileOperand(&children)
		return p.b.OperatorNode(wlast.FormBinary, info.op, children)
	}

	p.consumeTrivia(&children)
	floor := info.prec
	if info.rightAssoc {
		floor--
	}
	children = append(children, p.parseExpr(floor))
	return p.b.OperatorNode(wlast.FormBinary, info.op, children)
}

// applyFlat collects a chain of one operator into a single flat node:
// `a + b - c` or `a * b c`. Operands parse at the chain's own precedence so
// the chain is left-grouped; implicit multiplication inserts a zero-width
// fake token where the operator would be.
func (p *parser) applyFlat(node wlast.Cst, info infixInfo, implicit bool) wlast.Cst {
	children := []wlast.Cst{node}
	for {
		p.consumeTrivia(&children)
		if implicit {
			children = append(children, p.b.TokenNode(p.fakeTokenHere(wlast.TokFakeImplicitTimes)))
		} else {
			children = append(children, p.b.TokenNode(p.nextRaw()))
			p.consumeTrivia(&children)
		}
		children = append(children, p.parseExpr(info.prec))

		k, hard := p.triviaRun()
		if hard {
			break
		}
		next := p.peekRaw(k)
		if flatContinues(next.Kind, info) {
			implicit = false
			continue
		}
		if info.op == wlast.OpTimes && next.IsPossibleBeginning() {
			if _, ok := infixInfoFor(next.Kind); ok {
				// The next token means something as an operator; the climb
				// decides, with the Times chain as its left-hand side.
				break
			}
			implicit = true
			continue
		}
		break
	}
	return p.b.OperatorNode(wlast.FormInfix, info.op, children)
}

// flatContinues reports whether kind extends the same flat chain: `-` keeps
// a `+` chain going, `\[Times]` keeps a `*` chain going.
func flatContinues(kind wlast.TokenKind, info infixInfo) bool {
	next, ok := infixInfoFor(kind)
	return ok && next.form == formFlat && next.op == info.op
}

func (p *parser) applyPostfix(node wlast.Cst, info infixInfo) wlast.Cst {
	children := []wlast.Cst{node}
	p.consumeTrivia(&children)
	children = append(children, p.b.TokenNode(p.nextRaw()))
	return p.b.OperatorNode(wlast.FormPostfix, info.op, children)
}

// applyCall handles `head[args]` and `head[[args]]`: the bracket parses as
// a group and attaches to the already-parsed head. Two immediately adjacent
// square brackets open a Part-style double bracket.
func (p *parser) applyCall(node wlast.Cst) wlast.Cst {
	head := []wlast.Cst{node}
	p.consumeTrivia(&head)
	openTok := p.nextRaw()
	if openTok.Kind == wlast.TokOpenSquare {
		if second := p.peekRaw(0); second.Kind == wlast.TokOpenSquare &&
			second.Offset == openTok.End() {
			body := p.parseDoubleBracket(openTok, p.nextRaw())
			return p.b.CallNode(head, body)
		}
	}
	body := p.parseGroup(openTok)
	return p.b.CallNode(head, body)
}

// parseDoubleBracket parses the body of `a[[...]]` from its two opening
// brackets through the `]]` pair.
func (p *parser) parseDoubleBracket(first, second wlast.Token) wlast.Cst {
	p.pushContext(groupContext{opener: first.Kind, closer: wlast.TokCloseSquare, span: first.Span})
	children := []wlast.Cst{p.b.TokenNode(first), p.b.TokenNode(second)}

	for {
		p.consumeTrivia(&children)
		tok := p.peekRaw(0)

		switch {
		case tok.Kind == wlast.TokCloseSquare:
			children = append(children, p.b.TokenNode(p.nextRaw()))
			p.popContext()
			if k, hard := p.triviaRun(); !hard && p.peekRaw(k).Kind == wlast.TokCloseSquare {
				p.consumeTrivia(&children)
				children = append(children, p.b.TokenNode(p.nextRaw()))
				return p.b.GroupNode(wlast.OpGroupDoubleBracket, false, children)
			}
			p.missingCloserIssue(first, wlast.TokCloseSquare, p.peekRaw(0))
			return p.b.GroupNode(wlast.OpGroupDoubleBracket, true, children)

		case tok.Kind == wlast.TokEndOfFile:
			p.popContext()
			p.missingCloserIssue(first, wlast.TokCloseSquare, tok)
			return p.b.GroupNode(wlast.OpGroupDoubleBracket, true, children)

		case tok.IsCloser():
			if p.closerExpectedByOuter(tok.Kind) {
				p.popContext()
				p.missingCloserIssue(first, wlast.TokCloseSquare, tok)
				return p.b.GroupNode(wlast.OpGroupDoubleBracket, true, children)
			}
			p.addIssue(wlast.TagUnexpectedCloser,
				fmt.Sprintf("unexpected %s inside double bracket", tok.Kind),
				wlast.SeverityError, tok.Span)
			stray := p.nextRaw()
			stray.Kind = wlast.TokErrorUnexpectedCloser
			children = append(children, p.b.TokenNode(stray))

		default:
			children = append(children, p.parseExpr(PrecLowest))
			if cur := p.peekRaw(0); cur.Kind == tok.Kind && cur.Offset == tok.Offset &&
				!cur.IsTrivia() && cur.Kind != wlast.TokEndOfFile {
				p.addIssue(wlast.TagExpectedOperand,
					fmt.Sprintf("unexpected %s", cur.Kind), wlast.SeverityError, cur.Span)
				children = append(children, p.b.TokenNode(p.nextRaw()))
			}
		}
	}
}

// applySpecial dispatches the token kinds whose parselets need context or
// extra structure.
func (p *parser) applySpecial(node wlast.Cst, tok wlast.Token) wlast.Cst {
	switch tok.Kind {
	case wlast.TokEqual, wlast.TokEqualDot:
		return p.applySet(node)
	case wlast.TokSemi:
		return p.applyCompoundExpression(node)
	case wlast.TokSemiSemi:
		return p.applySpan(node)
	case wlast.TokComma, wlast.TokLongNameInvisibleComma:
		return p.applyComma(node)
	case wlast.TokColon:
		return p.applyColon(node)
	case wlast.TokColonColon:
		return p.applyMessageName(node)
	case wlast.TokTilde:
		return p.applyTilde(node)
	case wlast.TokSlashColon:
		return p.applyTagForm(node)
	default: // TokGreaterGreater, TokGreaterGreaterGreater
		info := infixInfo{prec: PrecPut, form: formBinary, op: wlast.OpPut}
		if tok.Kind == wlast.TokGreaterGreaterGreater {
			info.op = wlast.OpPutAppend
		}
		return p.applyBinary(node, info)
	}
}

// applySet handles `a = b`, `a =.`, and `a = .`: the `.` makes it Unset.
func (p *parser) applySet(node wlast.Cst) wlast.Cst {
	children := []wlast.Cst{node}
	p.consumeTrivia(&children)
	opTok := p.nextRaw()
	children = append(children, p.b.TokenNode(opTok))

	if opTok.Kind == wlast.TokEqualDot {
		return p.b.OperatorNode(wlast.FormPostfix, wlast.OpUnset, children)
	}

	k, hard := p.triviaRun()
	if !hard && p.peekRaw(k).Kind == wlast.TokDot {
		p.consumeTrivia(&children)
		children = append(children, p.b.TokenNode(p.nextRaw()))
		return p.b.OperatorNode(wlast.FormPostfix, wlast.OpUnset, children)
	}

	p.consumeTrivia(&children)
	children = append(children, p.parseExpr(PrecSet-1))
	return p.b.OperatorNode(wlast.FormBinary, wlast.OpSet, children)
}

// applyCompoundExpression collects `a; b; c`, inserting an implicit Null
// after a trailing or doubled semicolon.
func (p *parser) applyCompoundExpression(node wlast.Cst) wlast.Cst {
	children := []wlast.Cst{node}
	for {
		p.consumeTrivia(&children)
		children = append(children, p.b.TokenNode(p.nextRaw()))

		k, hard := p.triviaRun()
		next := p.peekRaw(k)
		if !hard && next.IsPossibleBeginning() && next.Kind != wlast.TokSemi {
			p.consumeTrivia(&children)
			children = append(children, p.parseExpr(PrecSemi))
		} else {
			children = append(children, p.b.TokenNode(p.fakeTokenHere(wlast.TokFakeImplicitNull)))
		}

		k, hard = p.triviaRun()
		if hard || p.peekRaw(k).Kind != wlast.TokSemi {
			break
		}
	}
	return p.b.OperatorNode(wlast.FormInfix, wlast.OpCompoundExpression, children)
}

// applySpan handles `a ;; b` and `a ;; b ;; c` with implicit operands:
// an omitted end is All.
func (p *parser) applySpan(node wlast.Cst) wlast.Cst {
	children := []wlast.Cst{node}
	p.consumeTrivia(&children)
	children = append(children, p.b.TokenNode(p.nextRaw()))
	p.appendSpanOperand(&children)

	k, hard := p.triviaRun()
	if !hard && p.peekRaw(k).Kind == wlast.TokSemiSemi {
		p.consumeTrivia(&children)
		children = append(children, p.b.TokenNode(p.nextRaw()))
		p.appendSpanOperand(&children)
		return p.b.OperatorNode(wlast.FormTernary, wlast.OpSpan, children)
	}
	return p.b.OperatorNode(wlast.FormBinary, wlast.OpSpan, children)
}

func (p *parser) appendSpanOperand(children *[]wlast.Cst) {
	k, hard := p.triviaRun()
	next := p.peekRaw(k)
	if !hard && next.IsPossibleBeginning() && next.Kind != wlast.TokSemiSemi {
		p.consumeTrivia(children)
		*children = append(*children, p.parseExpr(PrecSpan))
		return
	}
	*children = append(*children, p.b.TokenNode(p.fakeTokenHere(wlast.TokFakeImplicitAll)))
}

// applyComma collects a comma-separated sequence. Consecutive, leading, and
// trailing commas produce distinguished null tokens that abstraction turns
// into Null.
func (p *parser) applyComma(node wlast.Cst) wlast.Cst {
	children := []wlast.Cst{node}
	for {
		p.consumeTrivia(&children)
		commaTok := p.nextRaw()
		children = append(children, p.b.TokenNode(commaTok))

		k, hard := p.triviaRun()
		next := p.peekRaw(k)
		if !hard && next.IsPossibleBeginning() {
			p.consumeTrivia(&children)
			children = append(children, p.parseExpr(PrecComma))
		} else {
			p.addIssue(wlast.TagExpectedOperand,
				"comma with no adjacent expression; treated as Null",
				wlast.SeverityWarning, commaTok.Span)
			children = append(children, p.b.TokenNode(p.fakeTokenHere(wlast.TokErrorInfixImplicitNull)))
		}

		k, hard = p.triviaRun()
		if hard {
			break
		}
		if kind := p.peekRaw(k).Kind; kind != wlast.TokComma && kind != wlast.TokLongNameInvisibleComma {
			break
		}
	}
	return p.b.OperatorNode(wlast.FormInfix, wlast.OpCommaSequence, children)
}

// applyColon is context-sensitive: `x:pat` names a pattern when x is a
// symbol, `x_:v` gives a pattern a default when x is a blank form, and
// anything else is a syntax error.
func (p *parser) applyColon(node wlast.Cst) wlast.Cst {
	children := []wlast.Cst{node}
	p.consumeTrivia(&children)
	children = append(children, p.b.TokenNode(p.nextRaw()))
	p.consumeTrivia(&children)

	// Operands parse at the colon's own precedence so a second colon stays
	// available for the optional-default form.
	switch {
	case isSymbolNode(node):
		children = append(children, p.parseExpr(PrecPattern))
		pattern := p.b.OperatorNode(wlast.FormBinary, wlast.OpPattern, children)

		// `x:pat:default` is Optional[Pattern[x, pat], default].
		k, hard := p.triviaRun()
		if !hard && p.peekRaw(k).Kind == wlast.TokColon {
			outer := []wlast.Cst{pattern}
			p.consumeTrivia(&outer)
			outer = append(outer, p.b.TokenNode(p.nextRaw()))
			p.consumeTrivia(&outer)
			outer = append(outer, p.parseExpr(PrecPattern))
			return p.b.OperatorNode(wlast.FormTernary, wlast.OpOptionalPattern, outer)
		}
		return pattern

	case isBlankishNode(node):
		children = append(children, p.parseExpr(PrecPattern))
		return p.b.OperatorNode(wlast.FormBinary, wlast.OpOptional, children)

	default:
		p.addIssue(wlast.TagExpectedSymbol,
			"the left-hand side of : must be a symbol or a pattern",
			wlast.SeverityError, node.Span())
		children = append(children, p.parseExpr(PrecPattern))
		return p.b.SyntaxErrorNode(wlast.SyntaxErrorExpectedSymbol, children)
	}
}

func isSymbolNode(node wlast.Cst) bool {
	tok, ok := node.(wlast.TokenNode)
	return ok && tok.Token.Kind == wlast.TokSymbol
}

func isBlankishNode(node wlast.Cst) bool {
	switch n := node.(type) {
	case wlast.TokenNode:
		switch n.Token.Kind {
		case wlast.TokUnder, wlast.TokUnderUnder, wlast.TokUnderUnderUnder, wlast.TokUnderDot:
			return true
		}
	case wlast.CompoundNode:
		switch n.Op {
		case wlast.OpBlank, wlast.OpBlankSequence, wlast.OpBlankNullSequence,
			wlast.OpPatternBlank, wlast.OpPatternBlankSequence,
			wlast.OpPatternBlankNullSequence, wlast.OpPatternOptionalDefault:
			return true
		}
	}
	return false
}

// applyMessageName handles `sym::tag` and `sym::tag::lang`. Tags are
// stringified by the tokenizer, never parsed as expressions, and must be
// adjacent to the `::`.
func (p *parser) applyMessageName(node wlast.Cst) wlast.Cst {
	children := []wlast.Cst{node}
	for {
		p.consumeTrivia(&children)
		children = append(children, p.b.TokenNode(p.nextRaw()))
		tag := p.directToken(p.t.NextAsTag)
		children = append(children, p.b.TokenNode(tag))

		k, hard := p.triviaRun()
		if hard || p.peekRaw(k).Kind != wlast.TokColonColon {
			break
		}
	}
	return p.b.OperatorNode(wlast.FormInfix, wlast.OpMessageName, children)
}

// applyTilde handles `a ~f~ b`. A missing second tilde wraps the partial
// parse in a syntax-error node.
func (p *parser) applyTilde(node wlast.Cst) wlast.Cst {
	children := []wlast.Cst{node}
	p.consumeTrivia(&children)
	children = append(children, p.b.TokenNode(p.nextRaw()))
	p.consumeTrivia(&children)
	// The middle operand binds tightly, so a second ~ is never swallowed.
	children = append(children, p.parseExpr(PrecStringExpr))

	k, hard := p.triviaRun()
	if hard || p.peekRaw(k).Kind != wlast.TokTilde {
		at := p.peekRaw(k)
		p.addIssue(wlast.TagExpectedTilde,
			fmt.Sprintf("expected ~ to complete the infix form, found %s", at.Kind),
			wlast.SeverityError, wlast.Point(at.Span.Start))
		return p.b.SyntaxErrorNode(wlast.SyntaxErrorExpectedTilde, children)
	}
	p.consumeTrivia(&children)
	children = append(children, p.b.TokenNode(p.nextRaw()))
	p.consumeTrivia(&children)
	children = append(children, p.parseExpr(PrecStringExpr))
	return p.b.OperatorNode(wlast.FormTernary, wlast.OpTernaryTilde, children)
}

// applyTagForm handles `a /: b = c`, `a /: b := c`, and `a /: b =.`. The
// second operator decides the form; anything else is a syntax error.
func (p *parser) applyTagForm(node wlast.Cst) wlast.Cst {
	children := []wlast.Cst{node}
	p.consumeTrivia(&children)
	children = append(children, p.b.TokenNode(p.nextRaw()))
	p.consumeTrivia(&children)
	children = append(children, p.parseExpr(PrecSet))

	k, _ := p.triviaRun()
	next := p.peekRaw(k)
	switch next.Kind {
	case wlast.TokEqual:
		p.consumeTrivia(&children)
		children = append(children, p.b.TokenNode(p.nextRaw()))
		if k2, hard2 := p.triviaRun(); !hard2 && p.peekRaw(k2).Kind == wlast.TokDot {
			p.consumeTrivia(&children)
			children = append(children, p.b.TokenNode(p.nextRaw()))
			return p.b.OperatorNode(wlast.FormTernary, wlast.OpTagUnset, children)
		}
		p.consumeTrivia(&children)
		children = append(children, p.parseExpr(PrecSet-1))
		return p.b.OperatorNode(wlast.FormTernary, wlast.OpTagSet, children)
	case wlast.TokEqualDot:
		p.consumeTrivia(&children)
		children = append(children, p.b.TokenNode(p.nextRaw()))
		return p.b.OperatorNode(wlast.FormTernary, wlast.OpTagUnset, children)
	case wlast.TokColonEqual:
		p.consumeTrivia(&children)
		children = append(children, p.b.TokenNode(p.nextRaw()))
		p.consumeTrivia(&children)
		children = append(children, p.parseExpr(PrecSet-1))
		return p.b.OperatorNode(wlast.FormTernary, wlast.OpTagSetDelayed, children)
	default:
		p.addIssue(wlast.TagExpectedSet,
			"expected =, :=, or =. to complete the /: form",
			wlast.SeverityError, wlast.Point(next.Span.Start))
		return p.b.SyntaxErrorNode(wlast.SyntaxErrorExpectedSet, children)
	}
}
