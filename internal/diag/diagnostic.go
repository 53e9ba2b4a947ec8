package diag

import (
	"ctfmt/internal/source"
)

// Edit is a textual replacement in the template.
type Edit struct {
	Span    source.Span
	NewText string
}

// Fixit is one legal continuation shown under the caret.
// Edit is optional: only some suggestions can be applied mechanically.
type Fixit struct {
	Label string
	Edit  *Edit
}

// Diagnostic describes the first problem found in a template.
//
// Begin, Caret and End are byte offsets into Template. The underline covers
// Begin..Caret with tildes, the caret itself, and tildes up to End.
type Diagnostic struct {
	Code     Code
	Message  string
	Template string
	Begin    uint32
	Caret    uint32
	End      uint32
	Fixits   []Fixit
	// Origin names where the template came from (manifest entry, file:line).
	// Empty for templates compiled through the library API.
	Origin string
}

// Primary returns the underlined range as a span.
func (d *Diagnostic) Primary() source.Span {
	end := d.End
	if end < d.Caret {
		end = d.Caret
	}
	return source.Span{Start: d.Begin, End: end + 1}
}

// Error renders the diagnostic; a *Diagnostic is an error.
func (d *Diagnostic) Error() string {
	out := d.Render()
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	return out
}
