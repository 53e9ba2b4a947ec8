package diag_test

import (
	"strings"
	"testing"

	"ctfmt/internal/diag"
	"ctfmt/internal/source"
)

func TestRenderCaretLayout(t *testing.T) {
	tests := []struct {
		name   string
		tpl    string
		begin  uint32
		caret  uint32
		end    uint32
		fixits []string
		want   string
	}{
		{
			name:   "unterminated field",
			tpl:    "test tilde location {",
			begin:  20,
			caret:  21,
			end:    21,
			fixits: []string{"{     -> an escaped {", "}     -> the end of the replacement-field"},
			want: "msg\n" +
				"test tilde location {\n" +
				"                    ~^\n" +
				"                     {     -> an escaped {\n" +
				"                     }     -> the end of the replacement-field\n",
		},
		{
			name:  "caret only",
			tpl:   "}",
			begin: 0,
			caret: 0,
			end:   0,
			want:  "msg\n}\n^\n",
		},
		{
			name:  "tildes after the caret",
			tpl:   "{0:{0001}}",
			begin: 4,
			caret: 5,
			end:   7,
			want:  "msg\n{0:{0001}}\n    ~^~~\n",
		},
		{
			name:  "control bytes are escaped",
			tpl:   "at {:\x80}",
			begin: 5,
			caret: 5,
			end:   5,
			want:  "msg\nat {:<80>}\n     ^\n",
		},
		{
			name:  "caret after escaped byte",
			tpl:   "{:\xC0#}",
			begin: 2,
			caret: 3,
			end:   3,
			want:  "msg\n{:<C0>#}\n  ~~~~^\n",
		},
		{
			name:  "wide runes take two cells",
			tpl:   "ᄀ{",
			begin: 3,
			caret: 4,
			end:   4,
			want:  "msg\nᄀ{\n  ~^\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := diag.New(diag.FmtUnexpectedEnd, source.MustTemplate(tt.tpl), tt.begin, tt.caret, tt.end, "msg")
			d.WithFixit(tt.fixits...)
			if got := d.Render(); got != tt.want {
				t.Errorf("Render() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestNewNormalisesOffsets(t *testing.T) {
	d := diag.New(diag.FmtUnexpectedChar, source.MustTemplate("abc"), 2, 1, 0, "m")
	if d.Begin != 1 || d.Caret != 1 || d.End != 1 {
		t.Errorf("offsets = %d/%d/%d, want 1/1/1", d.Begin, d.Caret, d.End)
	}
}

func TestErrorDropsTrailingNewline(t *testing.T) {
	d := diag.At(diag.FmtUnmatchedClose, source.MustTemplate("}"), 0, "expected '}' in escape sequence")
	if got := d.Error(); strings.HasSuffix(got, "\n") {
		t.Errorf("Error() ends with newline: %q", got)
	}
}

func TestRenderIsBounded(t *testing.T) {
	long := strings.Repeat("x", 3000) + "{" + strings.Repeat("y", 3000)
	d := diag.New(diag.FmtUnexpectedChar, source.MustTemplate(long), 3000, 3001, 3001, "unexpected character in the format string")
	d.WithFixit("{     -> an escaped {")
	got := d.Render()
	if len(got) > diag.MaxRendered {
		t.Fatalf("rendered %d bytes, limit %d", len(got), diag.MaxRendered)
	}
	lines := strings.Split(got, "\n")
	if lines[0] != "unexpected character in the format string" {
		t.Errorf("message line lost: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "…") || !strings.HasSuffix(lines[1], "…") {
		t.Errorf("template window not marked with ellipsis")
	}
	if strings.Count(lines[2], "^") != 1 {
		t.Errorf("caret line lost: %q", lines[2])
	}
	// Каретка должна стоять под '{' в окне.
	col := strings.Index(lines[2], "^")
	echo := []rune(lines[1])
	if col < 1 || col > len(echo) || echo[col-1] != '{' {
		t.Errorf("caret column %d does not point after '{'", col)
	}
	if strings.Contains(got, "an escaped") {
		t.Errorf("fix-its should be dropped first")
	}
}

func TestRenderCapsLongMessage(t *testing.T) {
	msg := strings.Repeat("bad spec ", 600)
	d := diag.New(diag.SpcCustom, source.MustTemplate("value={:xyz}"), 8, 8, 10, msg)
	got := d.Render()
	if len(got) > diag.MaxRendered {
		t.Fatalf("rendered %d bytes, limit %d", len(got), diag.MaxRendered)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(msg, strings.TrimSuffix(lines[0], "…")) || !strings.HasSuffix(lines[0], "…") {
		t.Errorf("message not cut with an ellipsis: %q", lines[0][len(lines[0])-16:])
	}
	if lines[1] != "value={:xyz}" {
		t.Errorf("template line = %q", lines[1])
	}
	if lines[2] != "        ^~~" {
		t.Errorf("caret line = %q", lines[2])
	}
}

func TestRenderDropsFixitsBeforeWindowing(t *testing.T) {
	tpl := strings.Repeat("a", 2000) + "{"
	d := diag.New(diag.FmtUnexpectedEnd, source.MustTemplate(tpl), 2000, 2001, 2001, "m")
	d.WithFixit("{     -> an escaped {")
	got := d.Render()
	if len(got) > diag.MaxRendered {
		t.Fatalf("rendered %d bytes", len(got))
	}
	if strings.Contains(got, "…") {
		t.Errorf("template should not be windowed when dropping fix-its suffices")
	}
	if strings.Contains(got, "escaped") {
		t.Errorf("fix-its should be dropped")
	}
}

func TestCodeIDs(t *testing.T) {
	tests := []struct {
		code diag.Code
		want string
	}{
		{diag.FmtUnexpectedEnd, "FMT1001"},
		{diag.IdxOutOfBounds, "IDX2005"},
		{diag.TypNotFormattable, "TYP3001"},
		{diag.EncInvalidLead, "ENC4002"},
		{diag.SpcTrailing, "SPC5005"},
		{diag.UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
	if diag.Code(9999).Title() != diag.UnknownCode.Title() {
		t.Errorf("unknown code should fall back to the generic title")
	}
}
