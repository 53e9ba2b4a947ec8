package diag

import (
	"fmt"

	"ctfmt/internal/source"
)

// New builds a diagnostic. Offsets out of order are normalised so that
// Begin <= Caret <= End.
func New(code Code, tpl source.Template, begin, caret, end uint32, msg string) *Diagnostic {
	if begin > caret {
		begin = caret
	}
	if end < caret {
		end = caret
	}
	return &Diagnostic{
		Code:     code,
		Message:  msg,
		Template: tpl.Text(),
		Begin:    begin,
		Caret:    caret,
		End:      end,
	}
}

// At is New with the whole selection on a single offset.
func At(code Code, tpl source.Template, off uint32, msg string) *Diagnostic {
	return New(code, tpl, off, off, off, msg)
}

// Newf formats the message.
func Newf(code Code, tpl source.Template, begin, caret, end uint32, format string, args ...any) *Diagnostic {
	return New(code, tpl, begin, caret, end, fmt.Sprintf(format, args...))
}

// WithFixit appends a suggestion without an edit.
func (d *Diagnostic) WithFixit(labels ...string) *Diagnostic {
	for _, l := range labels {
		d.Fixits = append(d.Fixits, Fixit{Label: l})
	}
	return d
}

// WithEdit appends a suggestion that can be applied mechanically.
func (d *Diagnostic) WithEdit(label string, sp source.Span, newText string) *Diagnostic {
	d.Fixits = append(d.Fixits, Fixit{Label: label, Edit: &Edit{Span: sp, NewText: newText}})
	return d
}

// WithOrigin returns a copy tagged with origin.
func (d *Diagnostic) WithOrigin(origin string) *Diagnostic {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Origin = origin
	return &cp
}

// Edits returns the mechanically applicable fix-its.
func (d *Diagnostic) Edits() []Edit {
	var out []Edit
	for _, f := range d.Fixits {
		if f.Edit != nil {
			out = append(out, *f.Edit)
		}
	}
	return out
}
