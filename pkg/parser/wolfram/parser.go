package wolfram

import (
	"fmt"

	"github.com/daig/wolfram-parse/internal/logging"
	"github.com/daig/wolfram-parse/pkg/wlast"
)

// parser drives the Pratt parse. It pulls tokens from the tokenizer through
// a small lookahead buffer, dispatches each token to its prefix or infix
// parselet, and tracks a stack of open-group contexts for closer recovery.
//
// Trivia discipline: every call site that parses an operand consumes pending
// trivia into the surrounding node's children first, so a node's children
// tile its span exactly. Trivia the current construct does not own is left
// in the buffer for the enclosing construct.
type parser struct {
	t    *Tokenizer
	b    wlast.Builder
	opts *Options

	buf      []wlast.Token
	issues   []wlast.Issue
	contexts []groupContext
}

// groupContext is one open group awaiting its closer.
type groupContext struct {
	opener wlast.TokenKind
	closer wlast.TokenKind
	span   wlast.Span
}

func newParser(input []byte, opts *Options, builder wlast.Builder) *parser {
	opts = opts.orDefault()
	return &parser{
		t:    NewTokenizer(input, opts),
		b:    builder,
		opts: opts,
	}
}

func (p *parser) addIssue(tag wlast.IssueTag, msg string, sev wlast.Severity, span wlast.Span) {
	p.issues = append(p.issues, wlast.NewIssue(tag, msg, sev, span))
	logging.Default().Debug("parse issue", "tag", string(tag), "span", span.String())
}

//--------------------------------------
// Token access
//--------------------------------------

// peekRaw returns the i-th unconsumed token, trivia included.
func (p *parser) peekRaw(i int) wlast.Token {
	for len(p.buf) <= i {
		p.buf = append(p.buf, p.t.Next())
	}
	return p.buf[i]
}

func (p *parser) nextRaw() wlast.Token {
	tok := p.peekRaw(0)
	p.buf = p.buf[1:]
	return tok
}

// triviaRun counts the leading trivia tokens. A toplevel newline is a hard
// break: it terminates the enclosing expression, so the run stops there and
// hard is reported.
func (p *parser) triviaRun() (n int, hard bool) {
	for {
		tok := p.peekRaw(n)
		if !tok.IsTrivia() {
			return n, false
		}
		if tok.Kind == wlast.TokToplevelNewline {
			return n, true
		}
		n++
	}
}

// consumeTrivia moves leading trivia tokens into children. It stops at the
// first non-trivia token.
func (p *parser) consumeTrivia(children *[]wlast.Cst) {
	for p.peekRaw(0).IsTrivia() {
		*children = append(*children, p.b.TokenNode(p.nextRaw()))
	}
}

// fakeTokenHere synthesizes a zero-width token at the current position.
func (p *parser) fakeTokenHere(kind wlast.TokenKind) wlast.Token {
	next := p.peekRaw(0)
	return wlast.Token{
		Kind:   kind,
		Offset: next.Offset,
		Span:   wlast.Point(next.Span.Start),
	}
}

// directToken asks the tokenizer for a token outside the normal stream (tag
// or file stringification). The lookahead buffer must be empty; a non-empty
// buffer here is a parser bug, reported as an invariant violation rather
// than a crash.
func (p *parser) directToken(lex func() wlast.Token) wlast.Token {
	if len(p.buf) > 0 {
		p.addIssue(wlast.TagInternalEmptyContextStack,
			"internal: lookahead buffer not empty before stringified token",
			wlast.SeverityFatal, p.peekRaw(0).Span)
		return p.nextRaw()
	}
	return lex()
}

//--------------------------------------
// Context stack
//--------------------------------------

func (p *parser) pushContext(ctx groupContext) {
	p.contexts = append(p.contexts, ctx)
}

// popContext removes the innermost context. Popping an empty stack is a
// programming error, surfaced as an invariant-violation issue.
func (p *parser) popContext() {
	if len(p.contexts) == 0 {
		p.addIssue(wlast.TagInternalEmptyContextStack,
			"internal: context stack empty on pop", wlast.SeverityFatal,
			p.peekRaw(0).Span)
		return
	}
	p.contexts = p.contexts[:len(p.contexts)-1]
}

// closerExpectedByOuter reports whether any context besides the innermost
// expects this closer. A match means the innermost group is missing its
// closer and should give way.
func (p *parser) closerExpectedByOuter(kind wlast.TokenKind) bool {
	for i := 0; i < len(p.contexts)-1; i++ {
		if p.contexts[i].closer == kind {
			return true
		}
	}
	return false
}

// closerExpectedByAny reports whether any open context expects this closer.
func (p *parser) closerExpectedByAny(kind wlast.TokenKind) bool {
	for _, ctx := range p.contexts {
		if ctx.closer == kind {
			return true
		}
	}
	return false
}

//--------------------------------------
// Toplevel driver
//--------------------------------------

// parseSeq parses the whole input as a sequence of top-level expressions
// interleaved with trivia nodes. The sequence tiles the input.
func (p *parser) parseSeq() []wlast.Cst {
	var nodes []wlast.Cst
	for {
		tok := p.peekRaw(0)
		if tok.Kind == wlast.TokEndOfFile {
			break
		}
		if tok.IsTrivia() {
			nodes = append(nodes, p.b.TokenNode(p.nextRaw()))
			continue
		}
		nodes = append(nodes, p.parseExpr(PrecLowest))

		// A parselet that declines to consume its token would loop
		// forever; force progress.
		if cur := p.peekRaw(0); cur.Kind == tok.Kind && cur.Offset == tok.Offset &&
			cur.Kind != wlast.TokEndOfFile && !cur.IsTrivia() {
			p.addIssue(wlast.TagExpectedOperand,
				fmt.Sprintf("unexpected %s", cur.Kind), wlast.SeverityError, cur.Span)
			nodes = append(nodes, p.b.TokenNode(p.nextRaw()))
		}
	}
	return nodes
}

// parseExpr parses one expression: a prefix dispatch followed by the infix
// climb while the next operator binds tighter than floor.
func (p *parser) parseExpr(floor Precedence) wlast.Cst {
	node := p.parsePrefix()
	return p.parseInfixLoop(node, floor)
}

func (p *parser) parseInfixLoop(node wlast.Cst, floor Precedence) wlast.Cst {
	for {
		k, hard := p.triviaRun()
		if hard {
			return node
		}
		tok := p.peekRaw(k)

		info, ok := infixInfoFor(tok.Kind)
		implicit := false
		if !ok {
			if !tok.IsPossibleBeginning() {
				return node
			}
			// Adjacent operand: implicit multiplication.
			info = infixInfo{prec: PrecTimes, form: formFlat, op: wlast.OpTimes}
			implicit = true
		}
		if info.prec <= floor {
			return node
		}
		node = p.applyInfix(node, tok, info, implicit)
	}
}

//--------------------------------------
// Prefix dispatch
//--------------------------------------

// parsePrefix dispatches on the next token in operand position. It always
// returns a node; when the token cannot begin an expression it synthesizes
// a zero-width missing-operand token, leaving recoverable tokens in place
// for the infix machinery or an enclosing group.
func (p *parser) parsePrefix() wlast.Cst {
	tok := p.peekRaw(0)

	switch tok.Kind {
	case wlast.TokSymbol:
		return p.parseSymbolOperand()

	case wlast.TokInteger, wlast.TokReal, wlast.TokString, wlast.TokLinearSyntaxBlob,
		wlast.TokPercentPercent,
		wlast.TokErrorUnterminatedString, wlast.TokErrorUnterminatedComment,
		wlast.TokErrorUnterminatedLinearSyntaxBlob, wlast.TokErrorNumber,
		wlast.TokErrorExpectedLetterlike, wlast.TokErrorUnhandledCharacter,
		wlast.TokErrorUnsafeCharacterEncoding:
		return p.b.TokenNode(p.nextRaw())

	case wlast.TokUnder, wlast.TokUnderUnder, wlast.TokUnderUnderUnder:
		return p.parseBlank()

	case wlast.TokUnderDot:
		return p.b.TokenNode(p.nextRaw())

	case wlast.TokHash, wlast.TokHashHash:
		return p.parseSlot()

	case wlast.TokPercent:
		return p.parseOut()

	case wlast.TokLessLess:
		return p.parseGet()

	case wlast.TokSemiSemi:
		return p.parsePrefixSpan()

	case wlast.TokComma, wlast.TokLongNameInvisibleComma:
		// A leading comma is an empty argument slot.
		return p.b.TokenNode(p.fakeTokenHere(wlast.TokErrorPrefixImplicitNull))

	case wlast.TokEndOfFile:
		p.addIssue(wlast.TagExpectedOperand, "unexpected end of input",
			wlast.SeverityError, tok.Span)
		return p.b.TokenNode(p.fakeTokenHere(wlast.TokErrorExpectedOperand))
	}

	if prec, op, ok := prefixPrecedenceFor(tok.Kind); ok {
		return p.parsePrefixOp(prec, op)
	}

	if _, _, ok := groupOperatorFor(tok.Kind); ok {
		return p.parseGroup(p.nextRaw())
	}

	if tok.IsCloser() {
		if p.closerExpectedByAny(tok.Kind) {
			// The enclosing group handles it; report the hole here.
			p.addIssue(wlast.TagExpectedOperand,
				fmt.Sprintf("expected an operand before %s", tok.Kind),
				wlast.SeverityError, wlast.Point(tok.Span.Start))
			return p.b.TokenNode(p.fakeTokenHere(wlast.TokErrorExpectedOperand))
		}
		p.addIssue(wlast.TagUnexpectedCloser,
			fmt.Sprintf("unexpected %s with no open group", tok.Kind),
			wlast.SeverityError, tok.Span)
		closer := p.nextRaw()
		closer.Kind = wlast.TokErrorUnexpectedCloser
		return p.b.TokenNode(closer)
	}

	// Anything else in operand position is a missing operand. The token is
	// left in place: if it is an infix operator the climb applies it to the
	// synthesized operand, which is exactly the retry the recovery wants.
	p.addIssue(wlast.TagExpectedOperand,
		fmt.Sprintf("expected an operand, found %s", tok.Kind),
		wlast.SeverityError, wlast.Point(tok.Span.Start))
	return p.b.TokenNode(p.fakeTokenHere(wlast.TokErrorExpectedOperand))
}

// parseSymbolOperand handles the context-sensitive stitching of `x_`,
// `x__`, `x___`, `x_head`, and `x_.`: the blank must be immediately
// adjacent, with no trivia between.
func (p *parser) parseSymbolOperand() wlast.Cst {
	symTok := p.nextRaw()
	symNode := p.b.TokenNode(symTok)

	next := p.peekRaw(0)
	if next.Offset != symTok.End() {
		return symNode
	}
	switch next.Kind {
	case wlast.TokUnder, wlast.TokUnderUnder, wlast.TokUnderUnderUnder:
		blankKind := next.Kind
		blank := p.parseBlank()
		return p.b.OperatorNode(wlast.FormCompound, patternBlankOp(blankKind),
			[]wlast.Cst{symNode, blank})
	case wlast.TokUnderDot:
		dot := p.b.TokenNode(p.nextRaw())
		return p.b.OperatorNode(wlast.FormCompound, wlast.OpPatternOptionalDefault,
			[]wlast.Cst{symNode, dot})
	}
	return symNode
}

func patternBlankOp(kind wlast.TokenKind) wlast.Operator {
	switch kind {
	case wlast.TokUnderUnder:
		return wlast.OpPatternBlankSequence
	case wlast.TokUnderUnderUnder:
		return wlast.OpPatternBlankNullSequence
	default:
		return wlast.OpPatternBlank
	}
}

func blankOp(kind wlast.TokenKind) wlast.Operator {
	switch kind {
	case wlast.TokUnderUnder:
		return wlast.OpBlankSequence
	case wlast.TokUnderUnderUnder:
		return wlast.OpBlankNullSequence
	default:
		return wlast.OpBlank
	}
}

// parseBlank handles `_`, `__`, `___`, and the headed forms `_h`, `__h`,
// `___h`. The head symbol must be immediately adjacent.
func (p *parser) parseBlank() wlast.Cst {
	underTok := p.nextRaw()
	next := p.peekRaw(0)
	if next.Kind == wlast.TokSymbol && next.Offset == underTok.End() {
		head := p.b.TokenNode(p.nextRaw())
		return p.b.OperatorNode(wlast.FormCompound, blankOp(underTok.Kind),
			[]wlast.Cst{p.b.TokenNode(underTok), head})
	}
	return p.b.TokenNode(underTok)
}

// parseSlot handles `#`, `#n`, `#name`, `#"name"`, `##`, and `##n`.
func (p *parser) parseSlot() wlast.Cst {
	hashTok := p.nextRaw()
	op := wlast.OpSlot
	if hashTok.Kind == wlast.TokHashHash {
		op = wlast.OpSlotSequence
	}
	next := p.peekRaw(0)
	if next.Offset == hashTok.End() {
		switch next.Kind {
		case wlast.TokInteger, wlast.TokSymbol, wlast.TokString:
			arg := p.b.TokenNode(p.nextRaw())
			return p.b.OperatorNode(wlast.FormCompound, op,
				[]wlast.Cst{p.b.TokenNode(hashTok), arg})
		}
	}
	return p.b.TokenNode(hashTok)
}

// parseOut handles `%` and `%n`. A run of percents is a single token.
func (p *parser) parseOut() wlast.Cst {
	percentTok := p.nextRaw()
	next := p.peekRaw(0)
	if next.Kind == wlast.TokInteger && next.Offset == percentTok.End() {
		arg := p.b.TokenNode(p.nextRaw())
		return p.b.OperatorNode(wlast.FormCompound, wlast.OpOut,
			[]wlast.Cst{p.b.TokenNode(percentTok), arg})
	}
	return p.b.TokenNode(percentTok)
}

// parsePrefixOp builds `op operand` with the operand parsed at the
// operator's precedence.
func (p *parser) parsePrefixOp(prec Precedence, op wlast.Operator) wlast.Cst {
	opTok := p.nextRaw()
	children := []wlast.Cst{p.b.TokenNode(opTok)}
	p.consumeTrivia(&children)
	children = append(children, p.parseExpr(prec))
	return p.b.OperatorNode(wlast.FormPrefix, op, children)
}

// parseGet handles `<< file`: the operand is stringified as a file, never
// parsed as an expression.
func (p *parser) parseGet() wlast.Cst {
	children := []wlast.Cst{p.b.TokenNode(p.nextRaw())}
	p.appendFileOperand(&children)
	return p.b.OperatorNode(wlast.FormPrefix, wlast.OpGet, children)
}

// appendFileOperand collects leading whitespace and then the stringified
// file token.
func (p *parser) appendFileOperand(children *[]wlast.Cst) {
	for {
		tok := p.directToken(p.t.NextAsFile)
		*children = append(*children, p.b.TokenNode(tok))
		if !tok.IsTrivia() {
			return
		}
	}
}

// parsePrefixSpan handles `;;` in operand position: the first operand is an
// implicit 1.
func (p *parser) parsePrefixSpan() wlast.Cst {
	one := p.b.TokenNode(p.fakeTokenHere(wlast.TokFakeImplicitOne))
	semiTok := p.nextRaw()
	children := []wlast.Cst{one, p.b.TokenNode(semiTok)}
	k, hard := p.triviaRun()
	next := p.peekRaw(k)
	if !hard && next.IsPossibleBeginning() && next.Kind != wlast.TokSemiSemi {
		p.consumeTrivia(&children)
		children = append(children, p.parseExpr(PrecSpan))
	} else {
		children = append(children, p.b.TokenNode(p.fakeTokenHere(wlast.TokFakeImplicitAll)))
	}
	return p.b.OperatorNode(wlast.FormBinary, wlast.OpSpan, children)
}

//--------------------------------------
// Groups
//--------------------------------------

// parseGroup parses a bracketed group from its already-consumed opener.
// Recovery: a matching closer closes normally; at end of input or at a closer
// belonging to an outer context the group is returned as missing its closer,
// with no closer token added, and a fatal issue whose code action inserts the
// expected closer is emitted; a stray closer is absorbed as an error token.
func (p *parser) parseGroup(openTok wlast.Token) wlast.Cst {
	op, closer, _ := groupOperatorFor(openTok.Kind)
	p.pushContext(groupContext{opener: openTok.Kind, closer: closer, span: openTok.Span})
	children := []wlast.Cst{p.b.TokenNode(openTok)}

	for {
		p.consumeTrivia(&children)
		tok := p.peekRaw(0)

		switch {
		case tok.Kind == closer:
			children = append(children, p.b.TokenNode(p.nextRaw()))
			p.popContext()
			return p.b.GroupNode(op, false, children)

		case tok.Kind == wlast.TokEndOfFile:
			p.popContext()
			p.missingCloserIssue(openTok, closer, tok)
			return p.b.GroupNode(op, true, children)

		case tok.IsCloser():
			if p.closerExpectedByOuter(tok.Kind) {
				// This group is missing its closer; give way to the
				// context that owns the one in the stream.
				p.popContext()
				p.missingCloserIssue(openTok, closer, tok)
				return p.b.GroupNode(op, true, children)
			}
			p.addIssue(wlast.TagUnexpectedCloser,
				fmt.Sprintf("unexpected %s inside %s group", tok.Kind, op),
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

func (p *parser) missingCloserIssue(openTok wlast.Token, closer wlast.TokenKind, at wlast.Token) {
	issue := wlast.NewIssue(wlast.TagMissingCloser,
		fmt.Sprintf("missing %s to match %s", closerText(closer), string(openTok.Text)),
		wlast.SeverityFatal,
		wlast.SpanFrom(openTok.Span.Start, at.Span.Start))
	issue.Actions = []wlast.CodeAction{{
		Label:           fmt.Sprintf("insert %s", closerText(closer)),
		Span:            wlast.Point(at.Span.Start),
		ReplacementText: closerText(closer),
	}}
	p.issues = append(p.issues, issue)
	logging.Default().Debug("missing closer", "expected", closer.String())
}

// closerText spells a closer kind for messages and code actions.
func closerText(kind wlast.TokenKind) string {
	switch kind {
	case wlast.TokCloseParen:
		return ")"
	case wlast.TokCloseSquare:
		return "]"
	case wlast.TokCloseCurly:
		return "}"
	case wlast.TokBarGreater:
		return "|>"
	case wlast.TokLongNameRightAngleBracket:
		return "\\[RightAngleBracket]"
	case wlast.TokLongNameRightCeiling:
		return "\\[RightCeiling]"
	case wlast.TokLongNameRightFloor:
		return "\\[RightFloor]"
	case wlast.TokLongNameRightDoubleBracket:
		return "\\[RightDoubleBracket]"
	case wlast.TokLongNameRightAssociation:
		return "\\[RightAssociation]"
	default:
		return kind.String()
	}
}
