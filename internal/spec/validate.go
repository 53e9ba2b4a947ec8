package spec

import (
	"strings"

	"ctfmt/internal/diag"
)

// CheckType rejects display types outside allowed. The empty display type
// is always accepted. noun completes "not valid for ...".
func (s Spec) CheckType(in Input, allowed, noun string) *diag.Diagnostic {
	if s.Type == 0 || strings.IndexByte(allowed, s.Type) >= 0 {
		return nil
	}
	return diag.New(diag.TypDisplayType, in.Tpl, s.Begin, s.TypeAt, s.TypeAt,
		"the display type is not valid for "+noun)
}

// CheckPresentation rejects sign, '#' and '0' for display types that print
// text rather than a number.
func (s Spec) CheckPresentation(in Input) *diag.Diagnostic {
	reject := func(off uint32, option string) *diag.Diagnostic {
		return diag.New(diag.TypPresentation, in.Tpl, s.Begin, off, off,
			"the "+option+" option is not valid for the "+Describe(s.Type)+" display type")
	}
	switch {
	case s.Sign != SignDefault:
		return reject(s.SignAt, "sign")
	case s.Alternate:
		return reject(s.AltAt, "alternate form")
	case s.Align == AlignZeroPadding:
		return reject(s.ZeroAt, "zero-padding")
	}
	return nil
}
