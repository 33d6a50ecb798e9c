package wolfram_test

import (
	"bytes"
	"testing"

	wolfram "github.com/daig/wolfram-parse/pkg/parser/wolfram"
	"github.com/daig/wolfram-parse/pkg/wlast"
)

func tokenize(t *testing.T, input string) wlast.NodeSeq[wlast.Token] {
	t.Helper()
	return wolfram.Tokenize([]byte(input), nil).Syntax
}

func kinds(tokens []wlast.Token) []wlast.TokenKind {
	out := make([]wlast.TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, input string, expected ...wlast.TokenKind) {
	t.Helper()
	got := kinds(tokenize(t, input))
	if len(got) != len(expected) {
		t.Fatalf("%q: expected %v, got %v", input, expected, got)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Fatalf("%q: token %d: expected %s, got %s", input, i, expected[i], got[i])
		}
	}
}

func TestTokenize_Basic(t *testing.T) {
	t.Parallel()

	assertKinds(t, "2 + 2",
		wlast.TokInteger, wlast.TokWhitespace, wlast.TokPlus,
		wlast.TokWhitespace, wlast.TokInteger)
}

func TestTokenize_CoversInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"1 + 2 * 3",
		"f[x_, y_] := x + y",
		`"hello\nworld"`,
		"(* comment (* nested *) *) x",
		"a /. b -> c",
		"16^^FF + 37^^1",
		"1.5`20.3*^-10",
		"a;;b;;c",
		"<<Some`Package`",
		"a::tag::\"lang\"",
		"{1, , 2,}",
		"x \\[Alpha]y \\:00AB",
		"a\r\nb\rc\nd",
		"#2 + ## & /@ {%, %%, %42}",
		"\\(box \\(inner\\)\\)",
		"\"unterminated",
		"(* unterminated",
		"bad ` backtick",
		"|||>",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			tokens := tokenize(t, input)
			if !wlast.ValidateTokens(tokens, len(input)) {
				t.Fatalf("tokens do not tile input %q", input)
			}
			var buf bytes.Buffer
			for _, tok := range tokens {
				buf.Write(tok.Text)
			}
			if buf.String() != input {
				t.Errorf("token concatenation %q != input %q", buf.String(), input)
			}
		})
	}
}

func TestTokenize_Numbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected wlast.TokenKind
	}{
		{"0", wlast.TokInteger},
		{"12345", wlast.TokInteger},
		{"1.5", wlast.TokReal},
		{"1.", wlast.TokReal},
		{".5", wlast.TokReal},
		{"16^^FF", wlast.TokInteger},
		{"2^^101", wlast.TokInteger},
		{"16^^de.ad", wlast.TokReal},
		{"1`", wlast.TokReal},
		{"1.5`20", wlast.TokReal},
		{"1.5``20", wlast.TokReal},
		{"1.5``-3", wlast.TokReal},
		{"2*^10", wlast.TokReal},
		{"1.2*^-5", wlast.TokReal},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			tokens := tokenize(t, testCase.input)
			if len(tokens) != 1 {
				t.Fatalf("expected a single token, got %v", kinds(tokens))
			}
			if tokens[0].Kind != testCase.expected {
				t.Errorf("expected %s, got %s", testCase.expected, tokens[0].Kind)
			}
			if string(tokens[0].Text) != testCase.input {
				t.Errorf("expected text %q, got %q", testCase.input, tokens[0].Text)
			}
		})
	}
}

func TestTokenize_NumberErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		tag   wlast.IssueTag
	}{
		{"base out of range", "37^^1", wlast.TagInvalidBase},
		{"base too small", "1^^0", wlast.TagInvalidBase},
		{"empty base digits", "16^^", wlast.TagExpectedDigit},
		{"digit out of base", "2^^12", wlast.TagExpectedDigit},
		{"empty exponent", "1*^", wlast.TagExpectedDigit},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := wolfram.Tokenize([]byte(testCase.input), nil)
			tokens := result.Syntax
			if len(tokens) == 0 || tokens[0].Kind != wlast.TokErrorNumber {
				t.Fatalf("expected ErrorNumber token, got %v", kinds(tokens))
			}
			found := false
			for _, issue := range result.Issues() {
				if issue.Tag == testCase.tag {
					found = true
				}
			}
			if !found {
				t.Errorf("expected issue %s, got %v", testCase.tag, result.Issues())
			}
		})
	}
}

func TestTokenize_DotDisambiguation(t *testing.T) {
	t.Parallel()

	// `1..` is the integer 1 followed by the Repeated operator.
	assertKinds(t, "1..", wlast.TokInteger, wlast.TokDotDot)
	// `a=.5` assigns the real .5; `a=.` unsets.
	assertKinds(t, "a=.5", wlast.TokSymbol, wlast.TokEqual, wlast.TokReal)
	assertKinds(t, "a=.", wlast.TokSymbol, wlast.TokEqualDot)
	// `a/.5` divides by .5; `a/.b` replaces.
	assertKinds(t, "a/.5", wlast.TokSymbol, wlast.TokSlash, wlast.TokReal)
	assertKinds(t, "a/.b", wlast.TokSymbol, wlast.TokSlashDot, wlast.TokSymbol)
}

func TestTokenize_OperatorPrefixes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected []wlast.TokenKind
	}{
		{"=", []wlast.TokenKind{wlast.TokEqual}},
		{"==", []wlast.TokenKind{wlast.TokEqualEqual}},
		{"===", []wlast.TokenKind{wlast.TokEqualEqualEqual}},
		{"=!=", []wlast.TokenKind{wlast.TokEqualBangEqual}},
		{"::", []wlast.TokenKind{wlast.TokColonColon}},
		{":=", []wlast.TokenKind{wlast.TokColonEqual}},
		{":>", []wlast.TokenKind{wlast.TokColonGreater}},
		{"->", []wlast.TokenKind{wlast.TokMinusGreater}},
		{"--", []wlast.TokenKind{wlast.TokMinusMinus}},
		{"...", []wlast.TokenKind{wlast.TokDotDotDot}},
		{"<=", []wlast.TokenKind{wlast.TokLessEqual}},
		{"<>", []wlast.TokenKind{wlast.TokLessGreater}},
		{"<<", []wlast.TokenKind{wlast.TokLessLess}},
		{"<|", []wlast.TokenKind{wlast.TokLessBar}},
		{"<->", []wlast.TokenKind{wlast.TokLessMinusGreater}},
		{"|->", []wlast.TokenKind{wlast.TokBarMinusGreater}},
		{"||", []wlast.TokenKind{wlast.TokBarBar}},
		{"|>", []wlast.TokenKind{wlast.TokBarGreater}},
		{"//.", []wlast.TokenKind{wlast.TokSlashSlashDot}},
		{"//@", []wlast.TokenKind{wlast.TokSlashSlashAt}},
		{"^:=", []wlast.TokenKind{wlast.TokCaretColonEqual}},
		{"@@@", []wlast.TokenKind{wlast.TokAtAtAt}},
		{">>>", []wlast.TokenKind{wlast.TokGreaterGreaterGreater}},
		{"___", []wlast.TokenKind{wlast.TokUnderUnderUnder}},
		{"_.", []wlast.TokenKind{wlast.TokUnderDot}},
		// Near misses resolve to the shorter operator.
		{"=!", []wlast.TokenKind{wlast.TokEqual, wlast.TokBang}},
		{"|-", []wlast.TokenKind{wlast.TokBar, wlast.TokMinus}},
		{"^:", []wlast.TokenKind{wlast.TokCaret, wlast.TokColon}},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()
			assertKinds(t, testCase.input, testCase.expected...)
		})
	}
}

func TestTokenize_Comments(t *testing.T) {
	t.Parallel()

	assertKinds(t, "(* hi *)", wlast.TokComment)
	assertKinds(t, "(* a (* b *) c *)", wlast.TokComment)

	result := wolfram.Tokenize([]byte("(* open (* nested *)"), nil)
	if result.Syntax[0].Kind != wlast.TokErrorUnterminatedComment {
		t.Fatalf("expected unterminated comment token, got %s", result.Syntax[0].Kind)
	}
	if result.IsOK() {
		t.Error("expected a fatal issue for unterminated comment")
	}
}

func TestTokenize_Strings(t *testing.T) {
	t.Parallel()

	assertKinds(t, `"abc"`, wlast.TokString)
	assertKinds(t, `"a\"b"`, wlast.TokString)
	assertKinds(t, `"\\"`, wlast.TokString)

	result := wolfram.Tokenize([]byte(`"oops`), nil)
	if result.Syntax[0].Kind != wlast.TokErrorUnterminatedString {
		t.Fatalf("expected unterminated string token, got %s", result.Syntax[0].Kind)
	}
	if result.IsOK() {
		t.Error("expected a fatal issue for unterminated string")
	}
	if len(result.FatalIssues) == 0 || len(result.FatalIssues[0].Actions) == 0 {
		t.Error("expected a code action synthesizing the closing quote")
	}
}

func TestTokenize_Newlines(t *testing.T) {
	t.Parallel()

	// Toplevel newlines and newlines inside groups are distinct kinds.
	assertKinds(t, "a\nb",
		wlast.TokSymbol, wlast.TokToplevelNewline, wlast.TokSymbol)
	assertKinds(t, "{a\nb}",
		wlast.TokOpenCurly, wlast.TokSymbol, wlast.TokInternalNewline,
		wlast.TokSymbol, wlast.TokCloseCurly)
}

func TestTokenize_Symbols(t *testing.T) {
	t.Parallel()

	assertKinds(t, "abc", wlast.TokSymbol)
	assertKinds(t, "$var2", wlast.TokSymbol)
	assertKinds(t, "Context`name", wlast.TokSymbol)
	assertKinds(t, "a`b`c", wlast.TokSymbol)
	assertKinds(t, "`relative", wlast.TokSymbol)

	// A dangling backtick is an invalid symbol shape, not a truncation.
	result := wolfram.Tokenize([]byte("a`"), nil)
	if result.Syntax[0].Kind != wlast.TokErrorExpectedLetterlike {
		t.Fatalf("expected ErrorExpectedLetterlike, got %s", result.Syntax[0].Kind)
	}
}

func TestTokenize_NamedCharacterOperators(t *testing.T) {
	t.Parallel()

	assertKinds(t, `a\[Rule]b`, wlast.TokSymbol, wlast.TokLongNameRule, wlast.TokSymbol)
	assertKinds(t, `a\[Times]b`, wlast.TokSymbol, wlast.TokLongNameTimes, wlast.TokSymbol)
	// Letterlike named characters extend symbols.
	assertKinds(t, `x\[Alpha]`, wlast.TokSymbol)
}

func TestTokenize_Shebang(t *testing.T) {
	t.Parallel()

	opts := wolfram.DefaultOptions()
	opts.FirstLineBehavior = wolfram.FirstLineCheck
	result := wolfram.Tokenize([]byte("#!/usr/bin/env wolframscript\n2+2"), opts)
	if result.Syntax[0].Kind != wlast.TokShebang {
		t.Fatalf("expected shebang trivia, got %s", result.Syntax[0].Kind)
	}

	// Without the option the #! lexes as slot-and-bang.
	plain := wolfram.Tokenize([]byte("#!x"), nil)
	if plain.Syntax[0].Kind == wlast.TokShebang {
		t.Error("expected no shebang handling in normal mode")
	}
}

func TestTokenize_LinearSyntax(t *testing.T) {
	t.Parallel()

	assertKinds(t, `\(box\)`, wlast.TokLinearSyntaxBlob)
	assertKinds(t, `\(a \(b\) c\)`, wlast.TokLinearSyntaxBlob)

	result := wolfram.Tokenize([]byte(`\(open`), nil)
	if result.Syntax[0].Kind != wlast.TokErrorUnterminatedLinearSyntaxBlob {
		t.Fatalf("expected unterminated blob, got %s", result.Syntax[0].Kind)
	}
	if result.IsOK() {
		t.Error("expected fatal issue")
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	t.Parallel()

	input := []byte(`f[x_] := "unterminated`)
	first := wolfram.Tokenize(input, nil)
	second := wolfram.Tokenize(input, nil)

	if len(first.Issues()) != len(second.Issues()) {
		t.Fatalf("issue counts differ: %d vs %d", len(first.Issues()), len(second.Issues()))
	}
	for i := range first.Issues() {
		if first.Issues()[i].String() != second.Issues()[i].String() {
			t.Errorf("issue %d differs between runs", i)
		}
	}
}
