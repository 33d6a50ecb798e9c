package wolfram_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wolfram "github.com/daig/wolfram-parse/pkg/parser/wolfram"
	"github.com/daig/wolfram-parse/pkg/wlast"
)

func fullForm(t *testing.T, input string) string {
	t.Helper()
	result, err := wolfram.ParseAst([]byte(input), nil)
	require.NoError(t, err, "input %q", input)
	return wlast.FullForm(result.Syntax)
}

func TestParseAst_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "Plus[1, Times[2, 3]]"},
		{"f[x_, y_] := x + y",
			"SetDelayed[f[Pattern[x, Blank[]], Pattern[y, Blank[]]], Plus[x, y]]"},
		{"a /. b -> c", "ReplaceAll[a, Rule[b, c]]"},
		{"a - b", "Plus[a, Times[-1, b]]"},
		{"a / b", "Times[a, Power[b, -1]]"},
		{"-x", "Times[-1, x]"},
		{"-3", "-3"},
		{"-(a + b)", "Plus[Times[-1, a], Times[-1, b]]"},
		{"16^^FF", "16^^FF"},
		{"x_h", "Pattern[x, Blank[h]]"},
		{"x_", "Pattern[x, Blank[]]"},
		{"_h", "Blank[h]"},
		{"x__", "Pattern[x, BlankSequence[]]"},
		{"x___h", "Pattern[x, BlankNullSequence[h]]"},
		{"x_.", "Optional[Pattern[x, Blank[]]]"},
		{"x_:1", "Optional[Pattern[x, Blank[]], 1]"},
		{"x:1", "Pattern[x, 1]"},
		{"x:p:d", "Optional[Pattern[x, p], d]"},
		{"a;;b;;c", "Span[a, b, c]"},
		{"a;;b", "Span[a, b]"},
		{"a;;", "Span[a, All]"},
		{";;b", "Span[1, b]"},
		{"a b c", "Times[a, b, c]"},
		{"2x", "Times[2, x]"},
		{"{1, 2}", "List[1, 2]"},
		{"{}", "List[]"},
		{"{1, , 2}", "List[1, Null, 2]"},
		{"<|a -> 1|>", "Association[Rule[a, 1]]"},
		{"a && b && c", "And[a, b, c]"},
		{"a || b", "Or[a, b]"},
		{"!a", "Not[a]"},
		{"a | b | c", "Alternatives[a, b, c]"},
		{"a <> b <> c", "StringJoin[a, b, c]"},
		{"a == b == c", "Equal[a, b, c]"},
		{"a < b <= c", "Inequality[a, Less, b, LessEqual, c]"},
		{"a != b", "Unequal[a, b]"},
		{"a === b", "SameQ[a, b]"},
		{"a =!= b", "UnsameQ[a, b]"},
		{"a = b", "Set[a, b]"},
		{"a =.", "Unset[a]"},
		{"a = .", "Unset[a]"},
		{"a += b", "AddTo[a, b]"},
		{"a /: b = c", "TagSet[a, b, c]"},
		{"a /: b := c", "TagSetDelayed[a, b, c]"},
		{"a /: b =.", "TagUnset[a, b]"},
		{"a ~f~ b", "f[a, b]"},
		{"f @ x", "f[x]"},
		{"x // f", "f[x]"},
		{"f @@ x", "Apply[f, x]"},
		{"f /@ x", "Map[f, x]"},
		{"a; b; c", "CompoundExpression[a, b, c]"},
		{"a;", "CompoundExpression[a, Null]"},
		{"#", "Slot[1]"},
		{"#2", "Slot[2]"},
		{`#name`, `Slot["name"]`},
		{"##", "SlotSequence[1]"},
		{"##3", "SlotSequence[3]"},
		{"%", "Out[]"},
		{"%%", "Out[-2]"},
		{"%5", "Out[5]"},
		{"a!", "Factorial[a]"},
		{"a ..", "Repeated[a]"},
		{"a...", "RepeatedNull[a]"},
		{"f'", "Derivative[1][f]"},
		{"f''", "Derivative[2][f]"},
		{"body &", "Function[body]"},
		{"x |-> x", "Function[x, x]"},
		{"a? b", "PatternTest[a, b]"},
		{"m[[1]]", "Part[m, 1]"},
		{"a::b", `MessageName[a, "b"]`},
		{"a::b::c", `MessageName[a, "b", "c"]`},
		{"(x)", "x"},
		{"f[g[x]]", "f[g[x]]"},
		{"f[x][y]", "f[x][y]"},
		{"a -> b -> c", "Rule[a, Rule[b, c]]"},
		{"a ^ b ^ c", "Power[a, Power[b, c]]"},
		{"-a^b", "Times[-1, Power[a, b]]"},
		{"a // b // c", "c[b[a]]"},
		{"a @ b @ c", "a[b[c]]"},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, fullForm(t, testCase.input))
		})
	}
}

func TestParseAst_StringValue(t *testing.T) {
	t.Parallel()

	result, err := wolfram.ParseAst([]byte(`"hello\nworld"`), nil)
	require.NoError(t, err)

	leaf, ok := result.Syntax.(wlast.AstLeaf)
	require.True(t, ok, "expected a leaf, got %T", result.Syntax)
	value, err := leaf.StringValue()
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", value)
}

func TestParseAst_IntegerValue(t *testing.T) {
	t.Parallel()

	result, err := wolfram.ParseAst([]byte("16^^FF"), nil)
	require.NoError(t, err)

	leaf, ok := result.Syntax.(wlast.AstLeaf)
	require.True(t, ok)
	value, err := leaf.IntegerValue()
	require.NoError(t, err)
	assert.EqualValues(t, 255, value.Int64())
}

func TestParseAst_BaseOutOfRange(t *testing.T) {
	t.Parallel()

	result, err := wolfram.ParseAst([]byte("37^^1"), nil)
	require.NoError(t, err)

	_, ok := result.Syntax.(wlast.AstError)
	assert.True(t, ok, "expected an error node, got %T", result.Syntax)

	found := false
	for _, issue := range result.Issues() {
		if issue.Tag == wlast.TagInvalidBase {
			found = true
		}
	}
	assert.True(t, found, "expected an InvalidBase issue")
}

func TestParseCst_MissingCloser(t *testing.T) {
	t.Parallel()

	result, err := wolfram.ParseCst([]byte("(1 + 2"), nil)
	require.NoError(t, err)

	assert.False(t, result.IsOK(), "expected a fatal issue")
	require.NotEmpty(t, result.FatalIssues)
	assert.Equal(t, wlast.TagMissingCloser, result.FatalIssues[0].Tag)
	require.NotEmpty(t, result.FatalIssues[0].Actions)
	assert.Equal(t, ")", result.FatalIssues[0].Actions[0].ReplacementText)

	_, ok := result.Syntax.(wlast.GroupMissingCloserNode)
	assert.True(t, ok, "expected GroupMissingCloserNode, got %T", result.Syntax)

	// The AST carries the error node.
	ast, err := wolfram.ParseAst([]byte("(1 + 2"), nil)
	require.NoError(t, err)
	syntaxErr, ok := ast.Syntax.(wlast.AstSyntaxError)
	require.True(t, ok, "expected AstSyntaxError, got %T", ast.Syntax)
	assert.Equal(t, wlast.AstErrGroupMissingCloser, syntaxErr.Kind)
}

func TestParseCst_StrayCloser(t *testing.T) {
	t.Parallel()

	result := wolfram.ParseCstSeq([]byte("{a, (b}"), nil)
	assert.False(t, result.IsOK())

	// The curly group still closes: the paren group gave way.
	found := false
	for _, issue := range result.FatalIssues {
		if issue.Tag == wlast.TagMissingCloser {
			found = true
		}
	}
	assert.True(t, found, "expected MissingCloser for the paren group")
}

func TestParseCst_MissingOperandRecovers(t *testing.T) {
	t.Parallel()

	result := wolfram.ParseCstSeq([]byte("a + * b"), nil)

	found := false
	for _, issue := range result.NonFatalIssues {
		if issue.Tag == wlast.TagExpectedOperand {
			found = true
		}
	}
	assert.True(t, found, "expected an ExpectedOperand issue")

	// Recovery still produces a full tree over the input.
	exprs := 0
	for _, node := range result.Syntax {
		if tok, ok := node.(wlast.TokenNode); ok && tok.Token.IsTrivia() {
			continue
		}
		exprs++
	}
	assert.Equal(t, 1, exprs, "expected a single recovered expression")
}

func TestParseCst_SpanTiling(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"1 + 2 * 3",
		"f[x_, y_] := x + y",
		"{a, {b, c}, d}",
		"a /. b -> c // f",
		"(* note *) x + (* mid *) y",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			result := wolfram.ParseCstSeq([]byte(input), nil)
			require.True(t, result.IsOK(), "issues: %v", result.Issues())

			span := wlast.SpanOf(result.Syntax)
			assert.Equal(t, wlast.LineColumn(1, 1), span.Start)
			assert.EqualValues(t, len(input)+1, span.End.Column,
				"root span should cover the whole single-line input")
		})
	}
}

func TestParseCst_Associativity(t *testing.T) {
	t.Parallel()

	// Right-associative: a -> b -> c nests on the right.
	right, err := wolfram.ParseCst([]byte("a -> b -> c"), nil)
	require.NoError(t, err)
	rule, ok := right.Syntax.(wlast.BinaryNode)
	require.True(t, ok)
	_, nested := rule.Children[len(rule.Children)-1].(wlast.BinaryNode)
	assert.True(t, nested, "expected right-nested Rule")

	// Left-associative: a // b // c nests on the left.
	left, err := wolfram.ParseCst([]byte("a // b // c"), nil)
	require.NoError(t, err)
	slash, ok := left.Syntax.(wlast.BinaryNode)
	require.True(t, ok)
	_, nestedLeft := slash.Children[0].(wlast.BinaryNode)
	assert.True(t, nestedLeft, "expected left-nested //")
}

func TestParseCstSeq_ToplevelNewlines(t *testing.T) {
	t.Parallel()

	result := wolfram.ParseCstSeq([]byte("a + b\nc"), nil)
	require.True(t, result.IsOK())

	var exprs []wlast.Cst
	for _, node := range result.Syntax {
		if tok, ok := node.(wlast.TokenNode); ok && tok.Token.IsTrivia() {
			continue
		}
		exprs = append(exprs, node)
	}
	assert.Len(t, exprs, 2, "a toplevel newline separates expressions")
}

func TestParseAst_Seq(t *testing.T) {
	t.Parallel()

	result := wolfram.ParseAstSeq([]byte("1 + 1\nf[2]"), nil)
	require.Len(t, result.Syntax, 2)
	assert.Equal(t, "Plus[1, 1]", wlast.FullForm(result.Syntax[0]))
	assert.Equal(t, "f[2]", wlast.FullForm(result.Syntax[1]))
}

func TestParseAst_Idempotent(t *testing.T) {
	t.Parallel()

	input := []byte(`f[x_ := {1, , "open`)
	first := wolfram.ParseAstSeq(input, nil)
	second := wolfram.ParseAstSeq(input, nil)

	require.Equal(t, len(first.Issues()), len(second.Issues()))
	for i := range first.Issues() {
		assert.Equal(t, first.Issues()[i].String(), second.Issues()[i].String())
	}
	require.Equal(t, len(first.Syntax), len(second.Syntax))
	for i := range first.Syntax {
		assert.Equal(t, wlast.FullForm(first.Syntax[i]), wlast.FullForm(second.Syntax[i]))
	}
}

func TestParseAst_Quirks(t *testing.T) {
	t.Parallel()

	opts := wolfram.DefaultOptions()
	opts.Quirks = wolfram.QuirkSettings{wolfram.QuirkFlattenTimes: true}

	result, err := wolfram.ParseAst([]byte("a b / c"), opts)
	require.NoError(t, err)
	assert.Equal(t, "Times[a, b, Power[c, -1]]", wlast.FullForm(result.Syntax))

	plain, err := wolfram.ParseAst([]byte("a b / c"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Times[a, Times[b, Power[c, -1]]]", wlast.FullForm(plain.Syntax))
}

func TestParse_Get(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `Get["somefile.wl"]`, fullForm(t, "<< somefile.wl"))
	assert.Equal(t, `Put[a, "out.wl"]`, fullForm(t, "a >> out.wl"))
	assert.Equal(t, `PutAppend[a, "out.wl"]`, fullForm(t, "a >>> out.wl"))
}

func TestParse_SafeString(t *testing.T) {
	t.Parallel()

	s, err := wolfram.SafeString([]byte("2 + 2"), nil)
	require.NoError(t, err)
	assert.Equal(t, "2 + 2", s)

	_, err = wolfram.SafeString([]byte{0xFF, 0xFE, 0x00}, nil)
	assert.Error(t, err)
}

// countingBuilder proves the parser is polymorphic over the builder
// capability set: it wraps the CST builder and tallies every construction.
type countingBuilder struct {
	wlast.CstBuilder
	tokens, operators, calls, groups, errors int
}

func (c *countingBuilder) TokenNode(tok wlast.Token) wlast.Cst {
	c.tokens++
	return c.CstBuilder.TokenNode(tok)
}

func (c *countingBuilder) OperatorNode(form wlast.NodeForm, op wlast.Operator, children []wlast.Cst) wlast.Cst {
	c.operators++
	return c.CstBuilder.OperatorNode(form, op, children)
}

func (c *countingBuilder) CallNode(head []wlast.Cst, body wlast.Cst) wlast.Cst {
	c.calls++
	return c.CstBuilder.CallNode(head, body)
}

func (c *countingBuilder) GroupNode(op wlast.Operator, missingCloser bool, children []wlast.Cst) wlast.Cst {
	c.groups++
	return c.CstBuilder.GroupNode(op, missingCloser, children)
}

func (c *countingBuilder) SyntaxErrorNode(kind wlast.SyntaxErrorKind, children []wlast.Cst) wlast.Cst {
	c.errors++
	return c.CstBuilder.SyntaxErrorNode(kind, children)
}

func TestParseSeqWithBuilder_Counting(t *testing.T) {
	t.Parallel()

	builder := &countingBuilder{}
	result := wolfram.ParseSeqWithBuilder([]byte("f[1 + 2]"), nil, builder)
	require.True(t, result.IsOK())

	assert.Equal(t, 1, builder.calls)
	assert.Equal(t, 1, builder.groups)
	assert.Equal(t, 1, builder.operators, "the Plus chain")
	assert.Greater(t, builder.tokens, 4)
	assert.Zero(t, builder.errors)
}
