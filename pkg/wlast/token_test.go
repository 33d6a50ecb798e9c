package wlast_test

import (
	"testing"

	"github.com/daig/wolfram-parse/pkg/wlast"
)

func TestToken_IsTrivia(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     wlast.TokenKind
		expected bool
	}{
		{wlast.TokWhitespace, true},
		{wlast.TokInternalNewline, true},
		{wlast.TokToplevelNewline, true},
		{wlast.TokComment, true},
		{wlast.TokLineContinuation, true},
		{wlast.TokShebang, true},
		{wlast.TokSymbol, false},
		{wlast.TokPlus, false},
		{wlast.TokEndOfFile, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.kind.String(), func(t *testing.T) {
			t.Parallel()

			tok := wlast.Token{Kind: testCase.kind}
			if tok.IsTrivia() != testCase.expected {
				t.Errorf("IsTrivia(%s): expected %v", testCase.kind, testCase.expected)
			}
		})
	}
}

func TestToken_IsError(t *testing.T) {
	t.Parallel()

	if !(wlast.Token{Kind: wlast.TokErrorExpectedOperand}).IsError() {
		t.Error("expected ErrorExpectedOperand to be an error token")
	}
	if !(wlast.Token{Kind: wlast.TokErrorUnterminatedString}).IsError() {
		t.Error("expected ErrorUnterminatedString to be an error token")
	}
	if (wlast.Token{Kind: wlast.TokSymbol}).IsError() {
		t.Error("expected Symbol to not be an error token")
	}
}

func TestTokenKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     wlast.TokenKind
		expected string
	}{
		{wlast.TokSymbol, "Symbol"},
		{wlast.TokInteger, "Integer"},
		{wlast.TokMinusGreater, "MinusGreater"},
		{wlast.TokSlashSlashDot, "SlashSlashDot"},
		{wlast.TokLongNameRule, "LongNameRule"},
		{wlast.TokErrorNumber, "ErrorNumber"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()

			if tt.kind.String() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.kind.String())
			}
		})
	}
}

func TestValidateTokens(t *testing.T) {
	t.Parallel()

	tok := func(start, end int) wlast.Token {
		return wlast.Token{Kind: wlast.TokSymbol, Text: make([]byte, end-start), Offset: start}
	}

	tests := []struct {
		name     string
		tokens   []wlast.Token
		inputLen int
		expected bool
	}{
		{"empty", nil, 0, true},
		{"empty tokens non-empty input", nil, 5, false},
		{"single covering token", []wlast.Token{tok(0, 5)}, 5, true},
		{"contiguous", []wlast.Token{tok(0, 3), tok(3, 5)}, 5, true},
		{"gap", []wlast.Token{tok(0, 2), tok(3, 5)}, 5, false},
		{"short", []wlast.Token{tok(0, 3)}, 5, false},
		{
			"fake tokens are skipped",
			[]wlast.Token{tok(0, 3), {Kind: wlast.TokFakeImplicitTimes, Offset: 3}, tok(3, 5)},
			5,
			true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := wlast.ValidateTokens(testCase.tokens, testCase.inputLen)
			if got != testCase.expected {
				t.Errorf("expected %v, got %v", testCase.expected, got)
			}
		})
	}
}

func TestSpan_Union(t *testing.T) {
	t.Parallel()

	a := wlast.SpanFrom(wlast.LineColumn(1, 1), wlast.LineColumn(1, 4))
	b := wlast.SpanFrom(wlast.LineColumn(1, 6), wlast.LineColumn(2, 2))

	union := a.Union(b)
	if union.Start != wlast.LineColumn(1, 1) || union.End != wlast.LineColumn(2, 2) {
		t.Errorf("unexpected union %s", union)
	}

	// Union is symmetric.
	if b.Union(a) != union {
		t.Error("expected union to be order-independent")
	}
}

func TestLocation_Before(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     wlast.Location
		expected bool
	}{
		{"same line earlier column", wlast.LineColumn(1, 2), wlast.LineColumn(1, 5), true},
		{"earlier line later column", wlast.LineColumn(1, 9), wlast.LineColumn(2, 1), true},
		{"equal", wlast.LineColumn(3, 3), wlast.LineColumn(3, 3), false},
		{"after", wlast.LineColumn(4, 1), wlast.LineColumn(3, 9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.a.Before(tt.b) != tt.expected {
				t.Errorf("Before(%s, %s): expected %v", tt.a, tt.b, tt.expected)
			}
		})
	}
}

func TestSortIssues(t *testing.T) {
	t.Parallel()

	issues := []wlast.Issue{
		wlast.NewIssue(wlast.TagMissingCloser, "b", wlast.SeverityFatal,
			wlast.SpanFrom(wlast.LineColumn(2, 1), wlast.LineColumn(2, 2))),
		wlast.NewIssue(wlast.TagExpectedOperand, "a", wlast.SeverityError,
			wlast.SpanFrom(wlast.LineColumn(1, 1), wlast.LineColumn(1, 2))),
	}

	wlast.SortIssues(issues)

	if issues[0].Tag != wlast.TagExpectedOperand {
		t.Errorf("expected issues sorted by location, got %v first", issues[0].Tag)
	}
}
