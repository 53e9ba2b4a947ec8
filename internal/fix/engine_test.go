package fix

import (
	"errors"
	"testing"

	"ctfmt/internal/diag"
	"ctfmt/internal/source"
)

func insertAt(tpl string, off uint32, label, text string) *diag.Diagnostic {
	d := diag.At(diag.FmtUnexpectedEnd, source.MustTemplate(tpl), off, "unexpected end of the format string")
	return d.WithEdit(label, source.Point(off), text)
}

func TestApplyOnce(t *testing.T) {
	d := insertAt("{0", 2, "}", "}")
	res, err := Apply("{0", []*diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeOnce})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Template != "{0}" {
		t.Fatalf("template = %q, want %q", res.Template, "{0}")
	}
	if len(res.Applied) != 1 || res.Applied[0].Code != diag.FmtUnexpectedEnd {
		t.Fatalf("applied = %+v", res.Applied)
	}
}

func TestApplyTakesFirstAlternative(t *testing.T) {
	tpl := source.MustTemplate("a {b")
	d := diag.At(diag.FmtUnexpectedChar, tpl, 3, "unexpected character in the format string").
		WithEdit("{", source.Point(2), "{").
		WithEdit("}", source.Point(3), "}").
		WithFixit(":")

	res, err := Apply(tpl.Text(), []*diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Template != "a {{b" {
		t.Fatalf("template = %q", res.Template)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "alternative to an earlier suggestion" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestApplyAllSkipsConflicts(t *testing.T) {
	tpl := "x{y"
	a := insertAt(tpl, 1, "first", "{")
	b := insertAt(tpl, 1, "second", "}")
	c := insertAt(tpl, 3, "third", "}")

	res, err := Apply(tpl, []*diag.Diagnostic{c, b, a}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Template != "x}{y}" {
		t.Fatalf("template = %q", res.Template)
	}
	if len(res.Applied) != 2 {
		t.Fatalf("applied = %d, want 2", len(res.Applied))
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Label != "first" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestApplyNoFixes(t *testing.T) {
	d := diag.At(diag.IdxOutOfBounds, source.MustTemplate("{1}"), 1, "out of bounds").WithFixit("[0-9]")
	res, err := Apply("{1}", []*diag.Diagnostic{d}, ApplyOptions{})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	if res.Template != "{1}" {
		t.Fatalf("template changed: %q", res.Template)
	}
}

func TestApplyForeignTemplate(t *testing.T) {
	d := insertAt("{0", 2, "}", "}")
	res, err := Apply("{1", []*diag.Diagnostic{d}, ApplyOptions{})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	if len(res.Skipped) != 1 {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}
