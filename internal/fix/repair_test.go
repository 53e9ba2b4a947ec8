package fix_test

import (
	"testing"

	"ctfmt/internal/diag"
	"ctfmt/internal/fix"
	"ctfmt/internal/types"
)

func TestRepairTemplate(t *testing.T) {
	ints := []types.Type{types.Of(types.Int64)}
	tests := []struct {
		name    string
		text    string
		args    []types.Type
		want    string
		fixed   bool
		applied int
	}{
		{"valid", "{}", ints, "{}", true, 0},
		{"missing close", "{0", ints, "{0}", true, 1},
		{"lone close", "a}b", nil, "a}}b", true, 1},
		{"stray open", "a {b", nil, "a {{b", true, 1},
		{"two rounds", "} {", nil, "}} {{", true, 2},
		{"no edit offered", "{5}", ints, "{5}", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := fix.RepairTemplate(tt.text, tt.args, 0)
			if rep.Template != tt.want {
				t.Fatalf("template = %q, want %q", rep.Template, tt.want)
			}
			if rep.Fixed() != tt.fixed {
				t.Fatalf("fixed = %v, remaining = %v", rep.Fixed(), rep.Remaining)
			}
			if len(rep.Applied) != tt.applied {
				t.Fatalf("applied = %d, want %d", len(rep.Applied), tt.applied)
			}
		})
	}
}

func TestRepairStopsAfterRounds(t *testing.T) {
	rep := fix.RepairTemplate("} } }", nil, 1)
	if rep.Fixed() {
		t.Fatalf("expected remaining diagnostic after one round, got %q", rep.Template)
	}
	if rep.Remaining.Code != diag.FmtUnmatchedClose {
		t.Fatalf("remaining = %s", rep.Remaining.Code.ID())
	}
}
