package cache

import (
	"time"

	"ctfmt/internal/diag"
	"ctfmt/internal/source"
)

// Entry is the cached outcome of one template check.
type Entry struct {
	Schema    uint16
	Template  string
	ArgTypes  []string
	Valid     bool
	CheckedAt time.Time

	// Diagnostic, only when !Valid.
	Code    uint16
	Message string
	Begin   uint32
	Caret   uint32
	End     uint32
	Fixits  []Fixit
}

// Fixit mirrors diag.Fixit; an edit is present when HasEdit is set.
type Fixit struct {
	Label     string
	HasEdit   bool
	EditStart uint32
	EditEnd   uint32
	NewText   string
}

// NewEntry records the outcome of checking template. d is nil for a valid
// template.
func NewEntry(template string, argTypes []string, d *diag.Diagnostic) *Entry {
	e := &Entry{
		Template:  template,
		ArgTypes:  append([]string(nil), argTypes...),
		Valid:     d == nil,
		CheckedAt: time.Now().UTC(),
	}
	if d == nil {
		return e
	}
	e.Code = uint16(d.Code)
	e.Message = d.Message
	e.Begin, e.Caret, e.End = d.Begin, d.Caret, d.End
	for _, f := range d.Fixits {
		cf := Fixit{Label: f.Label}
		if f.Edit != nil {
			cf.HasEdit = true
			cf.EditStart = f.Edit.Span.Start
			cf.EditEnd = f.Edit.Span.End
			cf.NewText = f.Edit.NewText
		}
		e.Fixits = append(e.Fixits, cf)
	}
	return e
}

// Diagnostic rebuilds the stored diagnostic, nil for a valid template.
func (e *Entry) Diagnostic() *diag.Diagnostic {
	if e == nil || e.Valid {
		return nil
	}
	d := &diag.Diagnostic{
		Code:     diag.Code(e.Code),
		Message:  e.Message,
		Template: e.Template,
		Begin:    e.Begin,
		Caret:    e.Caret,
		End:      e.End,
	}
	for _, f := range e.Fixits {
		if f.HasEdit {
			d.WithEdit(f.Label, source.Span{Start: f.EditStart, End: f.EditEnd}, f.NewText)
			continue
		}
		d.WithFixit(f.Label)
	}
	return d
}
