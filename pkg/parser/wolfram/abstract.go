package wolfram

import (
	"strconv"
	"strings"

	"github.com/daig/wolfram-parse/pkg/wlast"
)

// AbstractCst rewrites a concrete syntax tree into head/argument form. The
// pass discards trivia, collapses operator chains, applies the per-operator
// normalization rules, and carries error nodes through unchanged in span and
// classification. It never raises an error node's severity and never fails:
// every CST has an AST.
func AbstractCst(node wlast.Cst, quirks QuirkSettings) wlast.Ast {
	a := &abstractor{quirks: quirks}
	return a.abstract(node)
}

type abstractor struct {
	quirks QuirkSettings
}

// operands returns the non-trivia children.
func operands(children []wlast.Cst) []wlast.Cst {
	var out []wlast.Cst
	for _, child := range children {
		if tok, ok := child.(wlast.TokenNode); ok && tok.Token.IsTrivia() {
			continue
		}
		out = append(out, child)
	}
	return out
}

// isOperandNode reports whether a CST child is an operand (as opposed to a
// raw operator token). Fake implicit tokens count as operators for Times and
// as operands for Span.
func isOperandNode(child wlast.Cst) bool {
	tok, ok := child.(wlast.TokenNode)
	if !ok {
		return true
	}
	switch tok.Token.Kind {
	case wlast.TokSymbol, wlast.TokString, wlast.TokInteger, wlast.TokReal,
		wlast.TokLinearSyntaxBlob, wlast.TokUnder, wlast.TokUnderUnder,
		wlast.TokUnderUnderUnder, wlast.TokUnderDot, wlast.TokHash,
		wlast.TokHashHash, wlast.TokPercent, wlast.TokPercentPercent,
		wlast.TokFakeImplicitOne, wlast.TokFakeImplicitAll, wlast.TokFakeImplicitNull,
		wlast.TokErrorPrefixImplicitNull, wlast.TokErrorInfixImplicitNull:
		return true
	}
	return tok.Token.IsError()
}

func (a *abstractor) abstract(node wlast.Cst) wlast.Ast {
	switch n := node.(type) {
	case wlast.TokenNode:
		return a.abstractToken(n)
	case wlast.PrefixNode:
		return a.abstractPrefix(n)
	case wlast.InfixNode:
		return a.abstractInfix(n)
	case wlast.PostfixNode:
		return a.abstractPostfix(n)
	case wlast.BinaryNode:
		return a.abstractBinary(n)
	case wlast.TernaryNode:
		return a.abstractTernary(n)
	case wlast.CompoundNode:
		return a.abstractCompound(n)
	case wlast.GroupNode:
		return a.abstractGroup(n, false)
	case wlast.GroupMissingCloserNode:
		return a.abstractGroup(wlast.GroupNode{OperatorNode: n.OperatorNode}, true)
	case wlast.CallNode:
		return a.abstractCall(n)
	case wlast.SyntaxErrorNode:
		return a.abstractSyntaxError(n)
	default:
		return wlast.AstError{Kind: wlast.TokUnknown, Src: node.Span()}
	}
}

func (a *abstractor) abstractToken(n wlast.TokenNode) wlast.Ast {
	tok := n.Token
	span := tok.Span
	switch tok.Kind {
	case wlast.TokSymbol, wlast.TokString, wlast.TokInteger, wlast.TokReal,
		wlast.TokLinearSyntaxBlob:
		return wlast.AstLeaf{Kind: tok.Kind, Value: string(tok.Text), Src: span}
	case wlast.TokUnder:
		return callAt(span, wlast.Symbol("Blank"))
	case wlast.TokUnderUnder:
		return callAt(span, wlast.Symbol("BlankSequence"))
	case wlast.TokUnderUnderUnder:
		return callAt(span, wlast.Symbol("BlankNullSequence"))
	case wlast.TokUnderDot:
		return callAt(span, wlast.Symbol("Optional"), callAt(span, wlast.Symbol("Blank")))
	case wlast.TokHash:
		return callAt(span, wlast.Symbol("Slot"), wlast.AstLeaf{Kind: wlast.TokInteger, Value: "1", Src: span})
	case wlast.TokHashHash:
		return callAt(span, wlast.Symbol("SlotSequence"), wlast.AstLeaf{Kind: wlast.TokInteger, Value: "1", Src: span})
	case wlast.TokPercent:
		return callAt(span, wlast.Symbol("Out"))
	case wlast.TokPercentPercent:
		n := len(tok.Text)
		return callAt(span, wlast.Symbol("Out"),
			wlast.AstLeaf{Kind: wlast.TokInteger, Value: strconv.Itoa(-n), Src: span})
	case wlast.TokFakeImplicitOne:
		return wlast.AstLeaf{Kind: wlast.TokInteger, Value: "1", Src: span}
	case wlast.TokFakeImplicitAll:
		return wlast.AstLeaf{Kind: wlast.TokSymbol, Value: "All", Src: span}
	case wlast.TokFakeImplicitNull, wlast.TokErrorPrefixImplicitNull, wlast.TokErrorInfixImplicitNull:
		return wlast.AstLeaf{Kind: wlast.TokSymbol, Value: "Null", Src: span}
	default:
		return wlast.AstError{Kind: tok.Kind, Value: string(tok.Text), Src: span}
	}
}

func (a *abstractor) abstractPrefix(n wlast.PrefixNode) wlast.Ast {
	parts := operands(n.Children)
	span := n.Span()
	if len(parts) < 2 {
		return wlast.AstError{Kind: wlast.TokUnknown, Src: span}
	}
	operand := a.abstract(parts[len(parts)-1])
	switch n.Op {
	case wlast.OpMinusPrefix:
		return reSpan(a.negate(operand), span)
	case wlast.OpPlusPrefix:
		// `+x` has no effect on the abstract syntax.
		return reSpan(operand, span)
	case wlast.OpNot:
		return callSpanned(span, wlast.Symbol("Not"), operand)
	case wlast.OpSqrt:
		return callSpanned(span, wlast.Symbol("Sqrt"), operand)
	case wlast.OpPreIncrement:
		return callSpanned(span, wlast.Symbol("PreIncrement"), operand)
	case wlast.OpPreDecrement:
		return callSpanned(span, wlast.Symbol("PreDecrement"), operand)
	case wlast.OpGet:
		return callSpanned(span, wlast.Symbol("Get"), quoteIfBare(operand))
	case wlast.OpPlusMinus:
		return callSpanned(span, wlast.Symbol("PlusMinus"), operand)
	default:
		return callSpanned(span, wlast.Symbol(n.Op.String()), operand)
	}
}

// negate applies unary minus: numeric literals fold the sign into the
// literal, a Plus call distributes the sign over the flattened arguments,
// and everything else multiplies by -1.
func (a *abstractor) negate(operand wlast.Ast) wlast.Ast {
	switch v := operand.(type) {
	case wlast.AstLeaf:
		if v.Kind == wlast.TokInteger || v.Kind == wlast.TokReal {
			return wlast.AstLeaf{Kind: v.Kind, Value: "-" + v.Value, Src: v.Src}
		}
	case wlast.AstCall:
		if head, ok := v.Head.(wlast.AstLeaf); ok {
			switch {
			case head.Kind == wlast.TokSymbol && head.Value == "Plus":
				args := make([]wlast.Ast, len(v.Args))
				for i, arg := range v.Args {
					args[i] = a.negate(arg)
				}
				out := wlast.Call(wlast.Symbol("Plus"), args...)
				out.Src = v.Src
				return out
			case head.Kind == wlast.TokSymbol && head.Value == "Times" &&
				a.quirks.Enabled(QuirkFlattenTimes):
				args := append([]wlast.Ast{wlast.IntegerLeaf(-1)}, v.Args...)
				out := wlast.Call(wlast.Symbol("Times"), args...)
				out.Src = v.Src
				return out
			}
		}
	}
	return wlast.Call(wlast.Symbol("Times"), wlast.IntegerLeaf(-1), operand)
}

func (a *abstractor) abstractInfix(n wlast.InfixNode) wlast.Ast {
	parts := operands(n.Children)
	span := n.Span()

	switch n.Op {
	case wlast.OpPlus:
		return a.abstractPlusChain(parts, span)
	case wlast.OpInfixInequality:
		return a.abstractInequalityChain(parts, span)
	case wlast.OpMessageName:
		return a.abstractMessageName(parts, span)
	case wlast.OpCommaSequence:
		// A comma sequence that reaches abstraction was not consumed by a
		// group or call, so it is a syntax error at top level.
		var children []wlast.Ast
		for _, part := range parts {
			if isOperandNode(part) {
				children = append(children, a.abstract(part))
			}
		}
		return wlast.AstSyntaxError{Kind: wlast.AstErrCommaTopLevel, Children: children, Src: span}
	}

	var args []wlast.Ast
	for _, part := range parts {
		if isOperandNode(part) {
			args = append(args, a.abstract(part))
		}
	}
	if n.Op == wlast.OpTimes && a.quirks.Enabled(QuirkFlattenTimes) {
		args = flattenTimesArgs(args)
	}
	return callSpanned(span, wlast.Symbol(n.Op.String()), args...)
}

// flattenTimesArgs merges nested Times calls into one argument list.
func flattenTimesArgs(args []wlast.Ast) []wlast.Ast {
	var out []wlast.Ast
	for _, arg := range args {
		if call, ok := arg.(wlast.AstCall); ok {
			if head, ok := call.Head.(wlast.AstLeaf); ok &&
				head.Kind == wlast.TokSymbol && head.Value == "Times" {
				out = append(out, call.Args...)
				continue
			}
		}
		out = append(out, arg)
	}
	return out
}

// abstractPlusChain folds `a + b - c` into Plus[a, b, Times[-1, c]],
// negating each operand introduced by a minus.
func (a *abstractor) abstractPlusChain(parts []wlast.Cst, span wlast.Span) wlast.Ast {
	var args []wlast.Ast
	negateNext := false
	for _, part := range parts {
		if tok, ok := part.(wlast.TokenNode); ok && !isOperandNode(part) {
			switch tok.Token.Kind {
			case wlast.TokMinus, wlast.TokLongNameMinus:
				negateNext = true
			default:
				negateNext = false
			}
			continue
		}
		arg := a.abstract(part)
		if negateNext {
			arg = a.negate(arg)
			negateNext = false
		}
		args = append(args, arg)
	}
	return callSpanned(span, wlast.Symbol("Plus"), args...)
}

// inequalityHead maps an inequality token to its symbol.
func inequalityHead(kind wlast.TokenKind) string {
	switch kind {
	case wlast.TokEqualEqual, wlast.TokLongNameEqual:
		return "Equal"
	case wlast.TokBangEqual, wlast.TokLongNameNotEqual:
		return "Unequal"
	case wlast.TokLess:
		return "Less"
	case wlast.TokGreater:
		return "Greater"
	case wlast.TokLessEqual, wlast.TokLongNameLessEqual:
		return "LessEqual"
	case wlast.TokGreaterEqual, wlast.TokLongNameGreaterEqual:
		return "GreaterEqual"
	default:
		return "Inequality"
	}
}

// abstractInequalityChain collapses `a == b == c` into Equal[a, b, c] when
// all operators agree, and into Inequality[a, Less, b, LessEqual, c] when
// they mix.
func (a *abstractor) abstractInequalityChain(parts []wlast.Cst, span wlast.Span) wlast.Ast {
	var args []wlast.Ast
	var heads []string
	for _, part := range parts {
		if tok, ok := part.(wlast.TokenNode); ok && !isOperandNode(part) {
			heads = append(heads, inequalityHead(tok.Token.Kind))
			continue
		}
		args = append(args, a.abstract(part))
	}
	uniform := true
	for _, h := range heads[1:] {
		if h != heads[0] {
			uniform = false
			break
		}
	}
	if uniform && len(heads) > 0 {
		return callSpanned(span, wlast.Symbol(heads[0]), args...)
	}
	var mixed []wlast.Ast
	for i, arg := range args {
		if i > 0 && i-1 < len(heads) {
			mixed = append(mixed, wlast.Symbol(heads[i-1]))
		}
		mixed = append(mixed, arg)
	}
	return callSpanned(span, wlast.Symbol("Inequality"), mixed...)
}

func (a *abstractor) abstractMessageName(parts []wlast.Cst, span wlast.Span) wlast.Ast {
	var args []wlast.Ast
	for i, part := range parts {
		if !isOperandNode(part) {
			continue
		}
		node := a.abstract(part)
		if i > 0 {
			node = quoteIfBare(node)
		}
		args = append(args, node)
	}
	return callSpanned(span, wlast.Symbol("MessageName"), args...)
}

// quoteIfBare turns a bare stringified token (a message tag or file name)
// into a proper string leaf.
func quoteIfBare(node wlast.Ast) wlast.Ast {
	leaf, ok := node.(wlast.AstLeaf)
	if !ok || leaf.Kind != wlast.TokString {
		return node
	}
	if strings.HasPrefix(leaf.Value, `"`) {
		return leaf
	}
	leaf.Value = `"` + leaf.Value + `"`
	return leaf
}

func (a *abstractor) abstractPostfix(n wlast.PostfixNode) wlast.Ast {
	parts := operands(n.Children)
	span := n.Span()
	if len(parts) < 1 {
		return wlast.AstError{Kind: wlast.TokUnknown, Src: span}
	}
	operand := a.abstract(parts[0])
	switch n.Op {
	case wlast.OpDerivative:
		// f'' nests: Derivative[2][f].
		if call, ok := operand.(wlast.AstCall); ok {
			if inner, ok := call.Head.(wlast.AstCall); ok {
				if head, ok := inner.Head.(wlast.AstLeaf); ok && head.Value == "Derivative" &&
					len(inner.Args) == 1 && len(call.Args) == 1 {
					if count, ok := inner.Args[0].(wlast.AstLeaf); ok && count.Kind == wlast.TokInteger {
						bumped := wlast.Call(
							wlast.Call(wlast.Symbol("Derivative"),
								wlast.AstLeaf{Kind: wlast.TokInteger, Value: incrementDecimal(count.Value), Src: count.Src}),
							call.Args[0])
						bumped.Src = span
						return bumped
					}
				}
			}
		}
		out := wlast.Call(wlast.Call(wlast.Symbol("Derivative"), wlast.IntegerLeaf(1)), operand)
		out.Src = span
		return out
	default:
		return callSpanned(span, wlast.Symbol(n.Op.String()), operand)
	}
}

func (a *abstractor) abstractBinary(n wlast.BinaryNode) wlast.Ast {
	parts := operands(n.Children)
	span := n.Span()
	if len(parts) < 3 {
		return wlast.AstError{Kind: wlast.TokUnknown, Src: span}
	}
	lhs := a.abstract(parts[0])
	rhs := a.abstract(parts[len(parts)-1])

	switch n.Op {
	case wlast.OpDivide:
		power := wlast.Call(wlast.Symbol("Power"), rhs, wlast.IntegerLeaf(-1))
		if a.quirks.Enabled(QuirkFlattenTimes) {
			if call, ok := lhs.(wlast.AstCall); ok {
				if head, ok := call.Head.(wlast.AstLeaf); ok && head.Value == "Times" {
					args := append(append([]wlast.Ast{}, call.Args...), power)
					return callSpanned(span, wlast.Symbol("Times"), args...)
				}
			}
		}
		return callSpanned(span, wlast.Symbol("Times"), lhs, power)
	case wlast.OpBinaryAt:
		out := wlast.Call(lhs, rhs)
		out.Src = span
		return out
	case wlast.OpBinarySlashSlash:
		out := wlast.Call(rhs, lhs)
		out.Src = span
		return out
	case wlast.OpMapApply:
		if a.quirks.Enabled(QuirkOldAtAtAt) {
			level := wlast.Call(wlast.Symbol("List"), wlast.IntegerLeaf(1))
			return callSpanned(span, wlast.Symbol("Apply"), lhs, rhs, level)
		}
		return callSpanned(span, wlast.Symbol("MapApply"), lhs, rhs)
	case wlast.OpPut, wlast.OpPutAppend:
		return callSpanned(span, wlast.Symbol(n.Op.String()), lhs, quoteIfBare(rhs))
	case wlast.OpOptional:
		return callSpanned(span, wlast.Symbol("Optional"), lhs, rhs)
	case wlast.OpFunctionArrow:
		return callSpanned(span, wlast.Symbol("Function"), lhs, rhs)
	default:
		return callSpanned(span, wlast.Symbol(n.Op.String()), lhs, rhs)
	}
}

func (a *abstractor) abstractTernary(n wlast.TernaryNode) wlast.Ast {
	parts := operands(n.Children)
	span := n.Span()
	var args []wlast.Ast
	for _, part := range parts {
		if isOperandNode(part) {
			args = append(args, a.abstract(part))
		}
	}
	switch n.Op {
	case wlast.OpTernaryTilde:
		if len(args) == 3 {
			out := wlast.Call(args[1], args[0], args[2])
			out.Src = span
			return out
		}
	case wlast.OpOptionalPattern:
		if len(args) == 2 {
			return callSpanned(span, wlast.Symbol("Optional"), args[0], args[1])
		}
	case wlast.OpTagUnset:
		return callSpanned(span, wlast.Symbol("TagUnset"), args...)
	}
	return callSpanned(span, wlast.Symbol(n.Op.String()), args...)
}

func (a *abstractor) abstractCompound(n wlast.CompoundNode) wlast.Ast {
	parts := operands(n.Children)
	span := n.Span()
	if len(parts) != 2 {
		return wlast.AstError{Kind: wlast.TokUnknown, Src: span}
	}
	switch n.Op {
	case wlast.OpBlank, wlast.OpBlankSequence, wlast.OpBlankNullSequence:
		head := a.abstract(parts[1])
		return callSpanned(span, wlast.Symbol(n.Op.String()), head)
	case wlast.OpPatternBlank, wlast.OpPatternBlankSequence, wlast.OpPatternBlankNullSequence:
		sym := a.abstract(parts[0])
		blank := a.abstract(parts[1])
		return callSpanned(span, wlast.Symbol("Pattern"), sym, blank)
	case wlast.OpPatternOptionalDefault:
		sym := a.abstract(parts[0])
		pattern := wlast.Call(wlast.Symbol("Pattern"), sym,
			callAt(parts[1].Span(), wlast.Symbol("Blank")))
		return callSpanned(span, wlast.Symbol("Optional"), pattern)
	case wlast.OpSlot, wlast.OpSlotSequence:
		arg := a.abstract(parts[1])
		if leaf, ok := arg.(wlast.AstLeaf); ok && leaf.Kind == wlast.TokSymbol {
			arg = wlast.AstLeaf{Kind: wlast.TokString, Value: `"` + leaf.Value + `"`, Src: leaf.Src}
		}
		return callSpanned(span, wlast.Symbol(n.Op.String()), arg)
	case wlast.OpOut:
		return callSpanned(span, wlast.Symbol("Out"), a.abstract(parts[1]))
	default:
		return wlast.AstError{Kind: wlast.TokUnknown, Src: span}
	}
}

// groupContents returns the abstracted elements of a group body: the
// brackets are dropped and a single comma sequence unwraps into the
// argument list.
func (a *abstractor) groupContents(children []wlast.Cst, skipBrackets bool) []wlast.Ast {
	parts := operands(children)
	if skipBrackets {
		// Double brackets contribute two opener and two closer tokens.
		for len(parts) > 0 {
			if _, ok := parts[0].(wlast.TokenNode); ok && !isOperandNode(parts[0]) {
				parts = parts[1:]
				continue
			}
			break
		}
		for len(parts) > 0 {
			if tok, ok := parts[len(parts)-1].(wlast.TokenNode); ok && tok.Token.IsCloser() {
				parts = parts[:len(parts)-1]
				continue
			}
			break
		}
	}
	var out []wlast.Ast
	for _, part := range parts {
		if seq, ok := part.(wlast.InfixNode); ok && seq.Op == wlast.OpCommaSequence {
			for _, sub := range operands(seq.Children) {
				if isOperandNode(sub) {
					out = append(out, a.abstract(sub))
				}
			}
			continue
		}
		if !isOperandNode(part) {
			continue
		}
		out = append(out, a.abstract(part))
	}
	return out
}

func (a *abstractor) abstractGroup(n wlast.GroupNode, missingCloser bool) wlast.Ast {
	span := n.Span()
	contents := a.groupContents(n.Children, true)

	if missingCloser {
		return wlast.AstSyntaxError{Kind: wlast.AstErrGroupMissingCloser, Children: contents, Src: span}
	}

	switch n.Op {
	case wlast.OpGroupParen:
		if len(contents) == 1 {
			return reSpan(contents[0], span)
		}
		return wlast.AstSyntaxError{Kind: wlast.AstErrUnexpectedGroup, Children: contents, Src: span}
	case wlast.OpList:
		return callSpanned(span, wlast.Symbol("List"), contents...)
	case wlast.OpAssociation:
		return callSpanned(span, wlast.Symbol("Association"), contents...)
	case wlast.OpAngleBracket:
		return callSpanned(span, wlast.Symbol("AngleBracket"), contents...)
	case wlast.OpCeiling:
		return callSpanned(span, wlast.Symbol("Ceiling"), contents...)
	case wlast.OpFloor:
		return callSpanned(span, wlast.Symbol("Floor"), contents...)
	default:
		// A bare `[x]` or `[[x]]` with no head never means anything.
		return wlast.AstSyntaxError{Kind: wlast.AstErrUnexpectedGroup, Children: contents, Src: span}
	}
}

func (a *abstractor) abstractCall(n wlast.CallNode) wlast.Ast {
	span := n.Span()
	headParts := operands(n.Head)
	if len(headParts) == 0 {
		return wlast.AstError{Kind: wlast.TokUnknown, Src: span}
	}
	head := a.abstract(headParts[0])

	switch body := n.Body.(type) {
	case wlast.GroupNode:
		args := a.groupContents(body.Children, true)
		switch body.Op {
		case wlast.OpGroupDoubleBracket:
			out := wlast.Call(wlast.Symbol("Part"), append([]wlast.Ast{head}, args...)...)
			out.Src = span
			return out
		default:
			out := wlast.Call(head, args...)
			out.Src = span
			return out
		}
	case wlast.GroupMissingCloserNode:
		args := a.groupContents(body.Children, true)
		return wlast.AstSyntaxError{
			Kind:     wlast.AstErrGroupMissingCloser,
			Children: append([]wlast.Ast{head}, args...),
			Src:      span,
		}
	default:
		return wlast.AstError{Kind: wlast.TokUnknown, Src: span}
	}
}

func (a *abstractor) abstractSyntaxError(n wlast.SyntaxErrorNode) wlast.Ast {
	var children []wlast.Ast
	for _, part := range operands(n.Children) {
		if isOperandNode(part) {
			children = append(children, a.abstract(part))
		}
	}
	kind := wlast.AstErrExpectedSymbol
	switch n.Kind {
	case wlast.SyntaxErrorExpectedSet:
		kind = wlast.AstErrExpectedSet
	case wlast.SyntaxErrorExpectedTilde:
		kind = wlast.AstErrExpectedTilde
	}
	return wlast.AstSyntaxError{Kind: kind, Children: children, Src: n.Span()}
}

//--------------------------------------
// Small helpers
//--------------------------------------

func callAt(span wlast.Span, head wlast.Ast, args ...wlast.Ast) wlast.Ast {
	out := wlast.Call(head, args...)
	out.Src = span
	return out
}

func callSpanned(span wlast.Span, head wlast.Ast, args ...wlast.Ast) wlast.Ast {
	out := wlast.Call(head, args...)
	out.Src = span
	return out
}

func reSpan(node wlast.Ast, span wlast.Span) wlast.Ast {
	switch v := node.(type) {
	case wlast.AstLeaf:
		v.Src = span
		return v
	case wlast.AstCall:
		v.Src = span
		return v
	case wlast.AstError:
		v.Src = span
		return v
	case wlast.AstSyntaxError:
		v.Src = span
		return v
	default:
		return node
	}
}

func incrementDecimal(value string) string {
	n, err := strconv.Atoi(value)
	if err != nil {
		return value
	}
	return strconv.Itoa(n + 1)
}
