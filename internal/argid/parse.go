package argid

import (
	"ctfmt/internal/diag"
	"ctfmt/internal/scan"
	"ctfmt/internal/source"
)

// Result of resolving one arg-id.
type Result struct {
	// Offset is just past the arg-id (at the ':' or '}' on success).
	Offset uint32
	// Index is -1 when the arg-id is not followed by ':' or '}'; the caller
	// reports that with its own context.
	Index int32
	State State
}

// Found reports whether an index was resolved.
func (r Result) Found() bool {
	return r.Index >= 0
}

// Parse resolves the arg-id starting at off, the offset just inside '{'.
// It is used both for replacement fields and for nested width/precision
// arg-ids.
func Parse(tpl source.Template, off uint32, st State) (Result, *diag.Diagnostic) {
	if scan.IsDigit(tpl.At(off)) {
		return parseManual(tpl, off, st)
	}
	return parseAutomatic(tpl, off, st)
}

func parseManual(tpl source.Template, off uint32, st State) (Result, *diag.Diagnostic) {
	// Число разбирается целиком, чтобы подчеркнуть его полностью.
	n := scan.Decimal(tpl, off)
	if st.Mode == Automatic {
		return Result{}, diag.New(diag.IdxManualInAutomatic, tpl, off, n.End, n.End,
			"using a manual argument id while in automatic index mode")
	}
	if n.Overflow {
		return Result{}, diag.New(diag.IdxOverflow, tpl, off, n.OverflowAt, n.End-1,
			"the value of the argument index is larger than the implementation supports (2147483647)")
	}

	next := st.withMode(Manual)
	if c := tpl.At(n.End); c != ':' && c != '}' {
		return Result{Offset: n.End, Index: -1, State: next}, nil
	}
	if tpl.At(off) == '0' && n.End != off+1 {
		return Result{}, diag.New(diag.IdxLeadingZero, tpl, off, off+1, n.End-1,
			"the argument index has a leading zero")
	}
	if n.Value >= st.Count {
		return Result{}, diag.New(diag.IdxOutOfBounds, tpl, off, n.End, n.End,
			OutOfBoundsMessage(n.Value, st.Count))
	}
	return Result{Offset: n.End, Index: n.Value, State: next}, nil
}

func parseAutomatic(tpl source.Template, off uint32, st State) (Result, *diag.Diagnostic) {
	open := off
	if open > 0 {
		open--
	}
	if st.Mode == Manual {
		return Result{}, diag.New(diag.IdxAutomaticInManual, tpl, open, off, off,
			"using an automatic argument id while in manual index mode")
	}

	next := st.withMode(Automatic)
	if c := tpl.At(off); c != ':' && c != '}' {
		return Result{Offset: off, Index: -1, State: next}, nil
	}
	if st.Next >= st.Count {
		return Result{}, diag.New(diag.IdxOutOfBounds, tpl, open, off, off,
			OutOfBoundsMessage(st.Next, st.Count))
	}
	return Result{Offset: off, Index: st.Next, State: next.advance()}, nil
}
