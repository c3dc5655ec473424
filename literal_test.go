package rdm

import (
	"testing"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		name string
		text string
		want any
	}{
		{name: "integer", text: "42", want: int64(42)},
		{name: "negative integer", text: "-7", want: int64(-7)},
		{name: "float", text: "2.5", want: 2.5},
		{name: "float with exponent", text: "1e-2", want: 0.01},
		{name: "double quoted text", text: `"hello"`, want: "hello"},
		{name: "single quoted text", text: "'hello'", want: "hello"},
		{name: "escapes", text: `"a\nb\t\"c\""`, want: "a\nb\t\"c\""},
		{name: "hash inside quotes", text: `"a#b"`, want: "a#b"},
		{name: "true", text: "true", want: true},
		{name: "capitalized True", text: "True", want: true},
		{name: "false", text: "false", want: false},
		{name: "none", text: "none", want: nil},
		{name: "capitalized None", text: "None", want: nil},
		{name: "empty sequence", text: "[]", want: []any(nil)},
		{name: "sequence", text: "[1, 2, 3]", want: []any{int64(1), int64(2), int64(3)}},
		{name: "nested sequence", text: `[[1], ["a"]]`, want: []any{[]any{int64(1)}, []any{"a"}}},
		{name: "tuple", text: "(1, 2)", want: Tuple{int64(1), int64(2)}},
		{name: "set", text: "{1, 2}", want: Set{int64(1): {}, int64(2): {}}},
		{name: "mapping", text: `{"a": 1, "b": 2}`, want: map[any]any{"a": int64(1), "b": int64(2)}},
		{name: "empty braces are a mapping", text: "{}", want: map[any]any{}},
		{name: "trailing comma", text: "[1, 2,]", want: []any{int64(1), int64(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLiteral(tt.text)
			if err != nil {
				t.Fatalf("parseLiteral(%q) returned error: %v", tt.text, err)
			}
			if !valueEqual(got, tt.want) {
				t.Errorf("parseLiteral(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseLiteral_Errors(t *testing.T) {
	bad := []string{
		"",
		`"unterminated`,
		"[1, 2",
		"{1: }",
		"1 2",
		"hello",
		"[1; 2]",
		"{[1]: 2}",
	}
	for _, text := range bad {
		if _, err := parseLiteral(text); err == nil {
			t.Errorf("parseLiteral(%q) succeeded, want error", text)
		}
	}
}

func TestEmitLiteral(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "integer", value: int64(42), want: "42"},
		{name: "float keeps decimal point", value: 3.0, want: "3.0"},
		{name: "float", value: 2.5, want: "2.5"},
		{name: "text quoted", value: "hi", want: `"hi"`},
		{name: "bool", value: true, want: "true"},
		{name: "none", value: nil, want: "none"},
		{name: "sequence", value: []any{int64(1), "a"}, want: `[1, "a"]`},
		{name: "tuple", value: Tuple{int64(1), int64(2)}, want: "(1, 2)"},
		{name: "set sorted", value: Set{int64(2): {}, int64(1): {}}, want: "{1, 2}"},
		{name: "empty set", value: Set{}, want: "{}"},
		{name: "mapping sorted", value: map[any]any{"b": int64(2), "a": int64(1)}, want: `{"a": 1, "b": 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := emitLiteral(tt.value, reg)
			if err != nil {
				t.Fatalf("emitLiteral(%#v) returned error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("emitLiteral(%#v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
