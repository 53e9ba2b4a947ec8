// Package field finds the brace structure of replacement fields without
// interpreting their contents.
package field

import (
	"ctfmt/internal/diag"
	"ctfmt/internal/source"
)

// Field is one replacement field: Open is the '{', Close the matching '}'.
// Colon equals Close when the field has no format-spec.
type Field struct {
	Open  uint32
	Colon uint32
	Close uint32
}

// HasSpec reports whether the field has a ':' before its closing brace.
func (f Field) HasSpec() bool {
	return f.Colon < f.Close
}

// Spec returns the span of the format-spec text (empty without a colon).
func (f Field) Spec() source.Span {
	if !f.HasSpec() {
		return source.Point(f.Close)
	}
	return source.Span{Start: f.Colon + 1, End: f.Close}
}

// Span covers the whole field including both braces.
func (f Field) Span() source.Span {
	return source.Span{Start: f.Open, End: f.Close + 1}
}

// Scan finds the extent of the field whose '{' is at open.
func Scan(tpl source.Template, open uint32) (Field, *diag.Diagnostic) {
	f := Field{Open: open}
	colon := false
	depth := 0
	for off := open + 1; off < tpl.Len(); off++ {
		switch tpl.At(off) {
		case ':':
			if depth == 0 && !colon {
				colon = true
				f.Colon = off
			}
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
				continue
			}
			f.Close = off
			if !colon {
				f.Colon = off
			}
			return f, nil
		}
	}
	end := tpl.Len()
	d := diag.New(diag.FmtUnexpectedEnd, tpl, open, end, end, "unexpected end of the format string")
	d.WithEdit("}     -> the end of the replacement-field", source.Point(end), "}")
	return Field{}, d
}

// SpecEnd returns the offset of the '}' that closes a format-spec starting
// at begin, or tpl.Len() when there is none.
func SpecEnd(tpl source.Template, begin uint32) uint32 {
	depth := 0
	for off := begin; off < tpl.Len(); off++ {
		switch tpl.At(off) {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return off
			}
			depth--
		}
	}
	return tpl.Len()
}
