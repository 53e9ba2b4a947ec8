package formatter

import (
	"strconv"
	"unicode/utf8"

	"ctfmt/internal/argid"
	"ctfmt/internal/diag"
	"ctfmt/internal/spec"
	"ctfmt/internal/types"
)

type charFormatter struct{}

func (charFormatter) Fields() spec.Fields {
	return spec.Integral
}

func (f charFormatter) Create(in spec.Input, _ types.Type, begin uint32, st argid.State, ctx Context) (Result, *diag.Diagnostic) {
	status, d := spec.Parse(in, begin, f.Fields(), st, spec.Defaults())
	if d != nil {
		return Result{}, d
	}
	s := status.Spec
	if d := s.CheckType(in, "bBcdoxX?", "a char argument"); d != nil {
		return Result{}, d
	}
	switch s.Type {
	case 0, 'c', '?':
		if d := s.CheckPresentation(in); d != nil {
			return Result{}, d
		}
	}
	if s.Type == 0 && ctx.InRange {
		s.Type = '?'
	}
	return result(status, charFormat{spec: s}), nil
}

type charFormat struct {
	spec spec.Spec
}

func (c charFormat) Append(dst []byte, arg any, env Env) []byte {
	neg, mag := integerOf(arg)
	s := c.spec
	switch s.Type {
	case 0, 'c':
		s.Type = 'c'
		return appendInteger(dst, neg, mag, s, env)
	case '?':
		r := rune(mag)
		if neg || mag > utf8.MaxRune {
			r = utf8.RuneError
		}
		return pad(dst, []byte(strconv.QuoteRune(r)), s, widthOf(s, env), spec.AlignLeft)
	}
	return appendInteger(dst, neg, mag, s, env)
}
