package argid_test

import (
	"testing"

	"ctfmt/internal/argid"
	"ctfmt/internal/diag"
	"ctfmt/internal/source"
)

func state(t *testing.T, mode argid.Mode, next, count int32) argid.State {
	t.Helper()
	st, err := argid.NewState(int(count))
	if err != nil {
		t.Fatal(err)
	}
	st.Mode = mode
	st.Next = next
	return st
}

func TestParseSuccess(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		off    uint32
		st     argid.State
		index  int32
		offset uint32
		mode   argid.Mode
		next   int32
	}{
		{"automatic first", "{}", 1, argid.State{Count: 1}, 0, 1, argid.Automatic, 1},
		{"automatic colon", "{:x}", 1, argid.State{Mode: argid.Automatic, Next: 1, Count: 2}, 1, 1, argid.Automatic, 2},
		{"manual", "{1}", 1, argid.State{Count: 2}, 1, 2, argid.Manual, 0},
		{"manual zero", "{0:}", 1, argid.State{Mode: argid.Manual, Count: 1}, 0, 2, argid.Manual, 0},
		{"manual two digits", "{12}", 1, argid.State{Count: 13}, 12, 3, argid.Manual, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, d := argid.Parse(source.MustTemplate(tt.text), tt.off, tt.st)
			if d != nil {
				t.Fatalf("unexpected diagnostic: %s", d.Message)
			}
			if !r.Found() || r.Index != tt.index || r.Offset != tt.offset {
				t.Errorf("result = %+v, want index %d offset %d", r, tt.index, tt.offset)
			}
			if r.State.Mode != tt.mode || r.State.Next != tt.next {
				t.Errorf("state = %+v, want mode %v next %d", r.State, tt.mode, tt.next)
			}
		})
	}
}

func TestParseNotTerminated(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset uint32
	}{
		{"letter", "{a}", 1},
		{"digit then letter", "{0a}", 2},
		{"end", "{12", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, d := argid.Parse(source.MustTemplate(tt.text), 1, argid.State{Count: 20})
			if d != nil {
				t.Fatalf("unexpected diagnostic: %s", d.Message)
			}
			if r.Found() || r.Offset != tt.offset {
				t.Errorf("result = %+v, want not found at %d", r, tt.offset)
			}
		})
	}
}

func TestParseDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		off   uint32
		st    argid.State
		code  diag.Code
		msg   string
		begin uint32
		caret uint32
		end   uint32
	}{
		{
			name: "manual in automatic", text: "{} {42:foo}", off: 4,
			st:   argid.State{Mode: argid.Automatic, Next: 1, Count: 1},
			code: diag.IdxManualInAutomatic, msg: "using a manual argument id while in automatic index mode",
			begin: 4, caret: 6, end: 6,
		},
		{
			name: "automatic in manual", text: "{0} {}", off: 5,
			st:   argid.State{Mode: argid.Manual, Count: 1},
			code: diag.IdxAutomaticInManual, msg: "using an automatic argument id while in manual index mode",
			begin: 4, caret: 5, end: 5,
		},
		{
			name: "no arguments", text: "{}", off: 1,
			st:   argid.State{},
			code: diag.IdxOutOfBounds, msg: "using the first argument while zero arguments are available",
			begin: 0, caret: 1, end: 1,
		},
		{
			name: "second of one", text: "{} {}", off: 4,
			st:   argid.State{Mode: argid.Automatic, Next: 1, Count: 1},
			code: diag.IdxOutOfBounds, msg: "using the second argument while one argument is available",
			begin: 3, caret: 4, end: 4,
		},
		{
			name: "manual out of bounds", text: "{10:bar}", off: 1,
			st:   argid.State{Count: 2},
			code: diag.IdxOutOfBounds, msg: "using the 11-th argument while two arguments are available",
			begin: 1, caret: 3, end: 3,
		},
		{
			name: "leading zero", text: "{0001}", off: 1,
			st:   argid.State{Count: 5},
			code: diag.IdxLeadingZero, msg: "the argument index has a leading zero",
			begin: 1, caret: 2, end: 4,
		},
		{
			name: "overflow", text: "{2147483648}", off: 1,
			st:   argid.State{Count: 5},
			code: diag.IdxOverflow, msg: "the value of the argument index is larger than the implementation supports (2147483647)",
			begin: 1, caret: 10, end: 10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, d := argid.Parse(source.MustTemplate(tt.text), tt.off, tt.st)
			if d == nil {
				t.Fatalf("expected diagnostic")
			}
			if d.Code != tt.code || d.Message != tt.msg {
				t.Errorf("got %s %q, want %s %q", d.Code.ID(), d.Message, tt.code.ID(), tt.msg)
			}
			if d.Begin != tt.begin || d.Caret != tt.caret || d.End != tt.end {
				t.Errorf("offsets = %d/%d/%d, want %d/%d/%d", d.Begin, d.Caret, d.End, tt.begin, tt.caret, tt.end)
			}
		})
	}
}

func TestModeIsSticky(t *testing.T) {
	tpl := source.MustTemplate("{}{0}")
	st := state(t, argid.Unknown, 0, 2)
	r, d := argid.Parse(tpl, 1, st)
	if d != nil || r.State.Mode != argid.Automatic {
		t.Fatalf("first field: %+v %v", r, d)
	}
	if _, d := argid.Parse(tpl, 3, r.State); d == nil || d.Code != diag.IdxManualInAutomatic {
		t.Errorf("mixing automatic then manual must fail, got %v", d)
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{argid.Ordinal(0), "first"},
		{argid.Ordinal(7), "eighth"},
		{argid.Ordinal(9), "tenth"},
		{argid.Ordinal(10), "11-th"},
		{argid.Cardinal(0), "zero"},
		{argid.Cardinal(9), "nine"},
		{argid.Cardinal(10), "10"},
		{argid.OutOfBoundsMessage(2, 1), "using the third argument while one argument is available"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
