package wolfram

import (
	"errors"
	"fmt"

	"github.com/daig/wolfram-parse/internal/logging"
	"github.com/daig/wolfram-parse/pkg/wlast"
	"github.com/daig/wolfram-parse/pkg/wlchar"
)

// Tokenize covers input with a contiguous token sequence. Trivia tokens are
// included; the concatenation of every token's text reproduces the input
// byte for byte.
func Tokenize(input []byte, opts *Options) *wlast.Result[wlast.NodeSeq[wlast.Token]] {
	t := NewTokenizer(input, opts)
	var tokens wlast.NodeSeq[wlast.Token]
	for {
		tok := t.Next()
		if tok.Kind == wlast.TokEndOfFile {
			break
		}
		tokens = append(tokens, tok)
	}
	return newResult(tokens, t.Issues(), t.Encoding())
}

// ParseCstSeq parses input into a sequence of top-level concrete syntax
// trees, interleaved with the trivia nodes between them. The sequence tiles
// the input.
func ParseCstSeq(input []byte, opts *Options) *wlast.Result[wlast.NodeSeq[wlast.Cst]] {
	return ParseSeqWithBuilder(input, opts, wlast.CstBuilder{})
}

// ParseSeqWithBuilder runs the parser against a caller-supplied builder.
// The parser only ever constructs nodes through the builder capability set,
// so instrumented or counting builders drop in without touching the parser.
func ParseSeqWithBuilder(input []byte, opts *Options, builder wlast.Builder) *wlast.Result[wlast.NodeSeq[wlast.Cst]] {
	p := newParser(input, opts, builder)
	nodes := wlast.NodeSeq[wlast.Cst](p.parseSeq())
	logging.Default().Debug("parsed concrete syntax", "toplevel", len(nodes))
	issues := append(p.t.Issues(), p.issues...)
	return newResult(nodes, issues, p.t.Encoding())
}

// ParseCst parses input that holds exactly one expression into its concrete
// syntax tree. Inputs with zero or several top-level expressions return an
// error; use ParseCstSeq for those.
func ParseCst(input []byte, opts *Options) (*wlast.Result[wlast.Cst], error) {
	seq := ParseCstSeq(input, opts)
	expr, err := exprNodes(seq.Syntax).Single()
	if err != nil {
		return nil, fmt.Errorf("parse cst: %w", err)
	}
	return mapResult(seq, expr), nil
}

// ParseAstSeq parses input into a sequence of abstract syntax trees, one
// per top-level expression. Trivia is discarded.
func ParseAstSeq(input []byte, opts *Options) *wlast.Result[wlast.NodeSeq[wlast.Ast]] {
	opts = opts.orDefault()
	seq := ParseCstSeq(input, opts)
	var out wlast.NodeSeq[wlast.Ast]
	for _, node := range exprNodes(seq.Syntax) {
		out = append(out, AbstractCst(node, opts.Quirks))
	}
	return mapResult(seq, out)
}

// ParseAst parses input that holds exactly one expression into its abstract
// syntax tree.
func ParseAst(input []byte, opts *Options) (*wlast.Result[wlast.Ast], error) {
	seq := ParseAstSeq(input, opts)
	expr, err := seq.Syntax.Single()
	if err != nil {
		return nil, fmt.Errorf("parse ast: %w", err)
	}
	return mapResult(seq, expr), nil
}

// SafeString scans input purely for encoding problems and returns it as a
// string when it is safe UTF-8.
func SafeString(input []byte, opts *Options) (string, error) {
	opts = opts.orDefault()
	reader := wlchar.NewReader(input, opts.SourceConvention, opts.TabWidth,
		opts.EncodingMode == EncodingStrictASCII)
	for {
		if reader.Next().IsEndOfInput() {
			break
		}
	}
	if flag := reader.Encoding(); flag != wlast.EncodingOK {
		return "", errors.New("input is not safe to interpret as a string: " + flag.String())
	}
	return string(input), nil
}

// exprNodes filters the trivia nodes out of a top-level sequence.
func exprNodes(nodes wlast.NodeSeq[wlast.Cst]) wlast.NodeSeq[wlast.Cst] {
	var out wlast.NodeSeq[wlast.Cst]
	for _, node := range nodes {
		if tok, ok := node.(wlast.TokenNode); ok && tok.Token.IsTrivia() {
			continue
		}
		out = append(out, node)
	}
	return out
}

// newResult splits issues into the fatal and non-fatal streams, each in
// deterministic source order.
func newResult[T any](syntax T, issues []wlast.Issue, encoding wlast.UnsafeEncoding) *wlast.Result[T] {
	var fatal, nonFatal []wlast.Issue
	for _, issue := range issues {
		if issue.IsFatal() {
			fatal = append(fatal, issue)
		} else {
			nonFatal = append(nonFatal, issue)
		}
	}
	wlast.SortIssues(fatal)
	wlast.SortIssues(nonFatal)
	return &wlast.Result[T]{
		Syntax:         syntax,
		FatalIssues:    fatal,
		NonFatalIssues: nonFatal,
		UnsafeEncoding: encoding,
	}
}

// mapResult carries the issue streams and encoding flag of from onto a new
// syntax value.
func mapResult[A, B any](from *wlast.Result[A], syntax B) *wlast.Result[B] {
	return &wlast.Result[B]{
		Syntax:         syntax,
		FatalIssues:    from.FatalIssues,
		NonFatalIssues: from.NonFatalIssues,
		UnsafeEncoding: from.UnsafeEncoding,
	}
}
