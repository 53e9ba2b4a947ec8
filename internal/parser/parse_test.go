package parser_test

import (
	"testing"

	"ctfmt/internal/diag"
	"ctfmt/internal/formatter"
	"ctfmt/internal/parser"
	"ctfmt/internal/types"
)

func typesOf(args ...any) []types.Type {
	out := make([]types.Type, 0, len(args))
	for _, a := range args {
		out = append(out, types.FromValue(a))
	}
	return out
}

func TestValid(t *testing.T) {
	tests := []struct {
		text string
		args []any
		want bool
	}{
		{"", nil, true},
		{"plain", nil, true},
		{"{{", nil, true},
		{"}}", nil, true},
		{"{}", []any{1}, true},
		{"{0}{0}", []any{1}, true},
		{"{1}{0}", []any{1, "s"}, true},
		{"{:{}}", []any{"s", 3}, true},
		{"{0:{1}.{2}}", []any{1.5, 3, uint8(2)}, true},
		{"{", nil, false},
		{"}", nil, false},
		{"{}", nil, false},
		{"{33:}", []any{1}, false},
		{"{}{0}", []any{1}, false},
		{"{0}{}", []any{1}, false},
		{"{:", []any{1}, false},
		{"{:d", []any{1}, false},
		{"{}", []any{struct{}{}}, false},
		{"{:{}}", []any{"s", "w"}, false},
	}
	for _, tt := range tests {
		if got := parser.Valid(tt.text, typesOf(tt.args...)); got != tt.want {
			t.Errorf("Valid(%q, %d args) = %v, want %v", tt.text, len(tt.args), got, tt.want)
		}
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		args []any
		want []parser.Token
	}{
		{
			name: "text coalesced",
			text: "abc",
			want: []parser.Token{{Kind: parser.TokenText, Offset: 0, Size: 3}},
		},
		{
			name: "single char",
			text: "a",
			want: []parser.Token{{Kind: parser.TokenChar, Offset: 0, Size: 1}},
		},
		{
			name: "escapes split text",
			text: "{{ab}}c",
			want: []parser.Token{
				{Kind: parser.TokenChar, Offset: 0, Size: 1},
				{Kind: parser.TokenText, Offset: 2, Size: 3},
				{Kind: parser.TokenChar, Offset: 6, Size: 1},
			},
		},
		{
			name: "field",
			text: "x={}!",
			args: []any{1},
			want: []parser.Token{
				{Kind: parser.TokenText, Offset: 0, Size: 2},
				{Kind: parser.TokenField, Offset: 2, Size: 2, Index: 0},
				{Kind: parser.TokenChar, Offset: 4, Size: 1},
			},
		},
		{
			name: "manual fields",
			text: "{1:>4}{0}",
			args: []any{1, 2},
			want: []parser.Token{
				{Kind: parser.TokenField, Offset: 0, Size: 6, Index: 1},
				{Kind: parser.TokenField, Offset: 6, Size: 3, Index: 0},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, d := parser.Parse(tt.text, typesOf(tt.args...))
			if d != nil {
				t.Fatalf("unexpected diagnostic: %s", d.Message)
			}
			if len(plan.Tokens) != len(tt.want) {
				t.Fatalf("tokens = %v, want %v", plan.Tokens, tt.want)
			}
			for i, got := range plan.Tokens {
				w := tt.want[i]
				if got.Kind != w.Kind || got.Offset != w.Offset || got.Size != w.Size || got.Index != w.Index {
					t.Errorf("token %d = %v, want %v", i, got, w)
				}
			}
		})
	}
}

func TestAppend(t *testing.T) {
	tests := []struct {
		text string
		args []any
		want string
	}{
		{"{{}}", nil, "{}"},
		{"a{{b}}c", nil, "a{b}c"},
		{"{} + {} = {}", []any{1, 2, 3}, "1 + 2 = 3"},
		{"{1} {0} {1}", []any{"a", "b"}, "b a b"},
		{"[{:>{}}]", []any{"x", 3}, "[  x]"},
		{"{0:.{1}f}|{0:e}", []any{2.5, 2}, "2.50|2.500000e+00"},
		{"{}", []any{[]int{1, 2, 3}}, "[1, 2, 3]"},
	}
	for _, tt := range tests {
		plan, d := parser.Parse(tt.text, typesOf(tt.args...))
		if d != nil {
			t.Fatalf("%q: unexpected diagnostic: %s", tt.text, d.Message)
		}
		if got := string(plan.Append(nil, tt.args, formatter.Env{})); got != tt.want {
			t.Errorf("%q = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		text string
		args []any
		code diag.Code
		want string
	}{
		{
			name: "lone close",
			text: "ab}c",
			code: diag.FmtUnmatchedClose,
			want: "expected '}' in escape sequence\n" +
				"ab}c\n" +
				"  ^\n" +
				"  }\n",
		},
		{
			name: "unterminated field",
			text: "test tilde location {",
			code: diag.FmtUnexpectedEnd,
			want: "unexpected end of the format string\n" +
				"test tilde location {\n" +
				"                    ~^\n" +
				"                     {     -> an escaped {\n" +
				"                     }     -> the end of the replacement-field\n" +
				"                     :     -> start of the format-specifier\n" +
				"                     [0-9] -> an arg-id\n",
		},
		{
			name: "unexpected char after arg-id",
			text: "{0a}",
			args: []any{1},
			code: diag.FmtUnexpectedChar,
			want: "unexpected character in the format string\n" +
				"{0a}\n" +
				"~~^\n" +
				"  }     -> the end of the replacement-field\n" +
				"  :     -> start of the format-specifier\n" +
				"  [0-9] -> continuation of the arg-id\n",
		},
		{
			name: "no arguments",
			text: "{}",
			code: diag.IdxOutOfBounds,
			want: "using the first argument while zero arguments are available\n" +
				"{}\n" +
				"~^\n",
		},
		{
			name: "manual out of bounds",
			text: "{33:}",
			args: []any{1},
			code: diag.IdxOutOfBounds,
			want: "using the 34-th argument while one argument is available\n" +
				"{33:}\n" +
				" ~~^\n",
		},
		{
			name: "leading zero",
			text: "{0:{0001}}",
			args: []any{"s", 1},
			code: diag.IdxLeadingZero,
			want: "the argument index has a leading zero\n" +
				"{0:{0001}}\n" +
				"    ~^~~\n",
		},
		{
			name: "not formattable",
			text: "x{}",
			args: []any{struct{}{}},
			code: diag.TypNotFormattable,
			want: "the supplied type for the argument is not formattable\n" +
				"x{}\n" +
				" ~^\n",
		},
		{
			name: "missing close after spec",
			text: "{:d",
			args: []any{1},
			code: diag.FmtUnexpectedEnd,
			want: "unexpected end of the format string\n" +
				"{:d\n" +
				"~~~^\n" +
				"   }     -> the end of the replacement-field\n",
		},
		{
			name: "trailing characters",
			text: "{:5zz}",
			args: []any{1},
			code: diag.SpcTrailing,
			want: "the format specification contains unexpected trailing characters\n" +
				"{:5zz}\n" +
				"   ^~\n",
		},
		{
			name: "width arg not integer",
			text: "{:{}}",
			args: []any{"s", 1.5},
			code: diag.TypArgIDNotInteger,
			want: "the type of the arg-id is not a standard signed or unsigned integer type\n" +
				"{:{}}\n" +
				"  ~^\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, d := parser.Parse(tt.text, typesOf(tt.args...))
			if d == nil {
				t.Fatal("expected diagnostic")
			}
			if d.Code != tt.code {
				t.Errorf("code = %s, want %s", d.Code.ID(), tt.code.ID())
			}
			if got := d.Render(); got != tt.want {
				t.Errorf("render mismatch\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestFirstErrorWins(t *testing.T) {
	_, d := parser.Parse("{:+} }", typesOf("s"))
	if d == nil || d.Code != diag.TypOptionNotAllowed {
		t.Fatalf("got %v", d)
	}
}
