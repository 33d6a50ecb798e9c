package wlast_test

import (
	"testing"

	"github.com/daig/wolfram-parse/pkg/wlast"
)

func TestFullForm(t *testing.T) {
	t.Parallel()

	node := wlast.Call(wlast.Symbol("Plus"),
		wlast.IntegerLeaf(1),
		wlast.Call(wlast.Symbol("Times"), wlast.IntegerLeaf(2), wlast.IntegerLeaf(3)),
	)

	expected := "Plus[1, Times[2, 3]]"
	if got := wlast.FullForm(node); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestFullForm_EmptyCall(t *testing.T) {
	t.Parallel()

	node := wlast.Call(wlast.Symbol("Blank"))
	if got := wlast.FullForm(node); got != "Blank[]" {
		t.Errorf("expected Blank[], got %q", got)
	}
}

func TestAstLeaf_IntegerValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		expected int64
		wantErr  bool
	}{
		{"decimal", "42", 42, false},
		{"negative", "-7", -7, false},
		{"hex base", "16^^FF", 255, false},
		{"binary base", "2^^1010", 10, false},
		{"base 36", "36^^z", 35, false},
		{"negative base literal", "-16^^10", -16, false},
		{"base out of range", "37^^1", 0, true},
		{"garbage", "1x", 0, true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			leaf := wlast.AstLeaf{Kind: wlast.TokInteger, Value: testCase.value}
			got, err := leaf.IntegerValue()
			if testCase.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", testCase.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Int64() != testCase.expected {
				t.Errorf("expected %d, got %s", testCase.expected, got)
			}
		})
	}
}

func TestAstLeaf_StringValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{"plain", `"hello"`, "hello"},
		{"newline escape", `"hello\nworld"`, "hello\nworld"},
		{"tab escape", `"a\tb"`, "a\tb"},
		{"escaped quote", `"say \"hi\""`, `say "hi"`},
		{"escaped backslash", `"a\\b"`, `a\b`},
		{"hex four", `"\:0041"`, "A"},
		{"hex two", `"\.41"`, "A"},
		{"unknown escape kept", `"a\qb"`, `a\qb`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			leaf := wlast.AstLeaf{Kind: wlast.TokString, Value: testCase.value}
			got, err := leaf.StringValue()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != testCase.expected {
				t.Errorf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestCall_RecordsArgSpans(t *testing.T) {
	t.Parallel()

	arg1 := wlast.AstLeaf{Kind: wlast.TokInteger, Value: "1",
		Src: wlast.SpanFrom(wlast.LineColumn(1, 3), wlast.LineColumn(1, 4))}
	arg2 := wlast.AstLeaf{Kind: wlast.TokInteger, Value: "2",
		Src: wlast.SpanFrom(wlast.LineColumn(1, 6), wlast.LineColumn(1, 7))}

	call := wlast.Call(wlast.Symbol("f"), arg1, arg2)

	if len(call.ArgSpans) != 2 {
		t.Fatalf("expected 2 argument spans, got %d", len(call.ArgSpans))
	}
	if call.ArgSpans[0] != arg1.Src || call.ArgSpans[1] != arg2.Src {
		t.Error("argument spans do not match the arguments")
	}
}

func TestNodeSeq_Single(t *testing.T) {
	t.Parallel()

	var empty wlast.NodeSeq[int]
	if _, err := empty.Single(); err == nil {
		t.Error("expected error for empty sequence")
	}

	one := wlast.NodeSeq[int]{7}
	got, err := one.Single()
	if err != nil || got != 7 {
		t.Errorf("expected 7, got %d (err %v)", got, err)
	}

	many := wlast.NodeSeq[int]{1, 2}
	if _, err := many.Single(); err == nil {
		t.Error("expected error for multi-element sequence")
	}
}
