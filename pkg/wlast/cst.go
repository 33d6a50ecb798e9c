package wlast

// Cst is one node of a concrete syntax tree. The CST preserves every token of
// the input, trivia included: a node's span is exactly the union of its
// children's spans, with no gaps and no overlaps.
//
// Nodes form a tree, never a DAG. Ownership runs parent to children and the
// whole tree is released together.
type Cst interface {
	Span() Span
	cstNode()
}

// TokenNode wraps a single token as a leaf.
type TokenNode struct {
	Token Token
}

func (n TokenNode) Span() Span { return n.Token.Span }
func (n TokenNode) cstNode()   {}

// OperatorNode is the common shape of every interior operator node: an
// operator tag and the ordered children, operator tokens and trivia included.
type OperatorNode struct {
	Op       Operator
	Children []Cst
}

// Span of an operator node covers from its first child to its last.
func (n OperatorNode) Span() Span {
	return SpanOf(n.Children)
}

func (n OperatorNode) cstNode() {}

// PrefixNode is `op operand`, e.g. `-x`.
type PrefixNode struct{ OperatorNode }

// InfixNode is a flat chain `a op b op c`, e.g. `a + b + c`.
type InfixNode struct{ OperatorNode }

// PostfixNode is `operand op`, e.g. `x!`.
type PostfixNode struct{ OperatorNode }

// BinaryNode is strictly two operands, e.g. `a -> b`.
type BinaryNode struct{ OperatorNode }

// TernaryNode is three operands with two operator tokens, e.g. `a /: b = c`.
type TernaryNode struct{ OperatorNode }

// CompoundNode is a cluster of adjacent tokens lexed in one parse step with
// no trivia between them, e.g. `name_head`, `#2`, `%%`.
type CompoundNode struct{ OperatorNode }

// GroupNode is a bracketed group with both its opener and closer present.
type GroupNode struct{ OperatorNode }

// GroupMissingCloserNode is a group whose closer was missing. It holds no
// closer token; a fatal issue whose code action inserts the expected closer
// is recorded.
type GroupMissingCloserNode struct{ OperatorNode }

// CallNode is `head[args]`: a head sequence (the head node plus any trailing
// trivia) applied to a bracketed group body.
type CallNode struct {
	Head []Cst
	Body Cst
}

func (n CallNode) Span() Span {
	return SpanOf(n.Head).Union(n.Body.Span())
}

func (n CallNode) cstNode() {}

// SyntaxErrorKind classifies a structural parse error that recovery wrapped
// into a node instead of discarding.
type SyntaxErrorKind int

const (
	SyntaxErrorExpectedSymbol SyntaxErrorKind = iota
	SyntaxErrorExpectedSet
	SyntaxErrorExpectedTilde
)

func (k SyntaxErrorKind) String() string {
	switch k {
	case SyntaxErrorExpectedSymbol:
		return "ExpectedSymbol"
	case SyntaxErrorExpectedSet:
		return "ExpectedSet"
	case SyntaxErrorExpectedTilde:
		return "ExpectedTilde"
	default:
		return "SyntaxError"
	}
}

// SyntaxErrorNode wraps the partial children of a failed construct.
type SyntaxErrorNode struct {
	Kind     SyntaxErrorKind
	Children []Cst
}

func (n SyntaxErrorNode) Span() Span { return SpanOf(n.Children) }
func (n SyntaxErrorNode) cstNode()   {}

// SpanOf returns the union span of a node sequence, skipping zero-width
// synthetic leaves so fake tokens never stretch a span.
func SpanOf(nodes []Cst) Span {
	var out Span
	seen := false
	for _, node := range nodes {
		s := node.Span()
		if s.IsEmpty() && seen {
			continue
		}
		if !seen {
			out = s
			seen = true
			continue
		}
		out = out.Union(s)
	}
	return out
}
