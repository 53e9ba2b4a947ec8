package formatter

import (
	"ctfmt/internal/argid"
	"ctfmt/internal/diag"
	"ctfmt/internal/spec"
	"ctfmt/internal/types"
)

type boolFormatter struct{}

func (boolFormatter) Fields() spec.Fields {
	return spec.Integral
}

func (f boolFormatter) Create(in spec.Input, _ types.Type, begin uint32, st argid.State, _ Context) (Result, *diag.Diagnostic) {
	status, d := spec.Parse(in, begin, f.Fields(), st, spec.Defaults())
	if d != nil {
		return Result{}, d
	}
	s := status.Spec
	if d := s.CheckType(in, "sbBdoxX", "a bool argument"); d != nil {
		return Result{}, d
	}
	if s.Type == 0 || s.Type == 's' {
		if d := s.CheckPresentation(in); d != nil {
			return Result{}, d
		}
	}
	return result(status, boolFormat{spec: s}), nil
}

type boolFormat struct {
	spec spec.Spec
}

func (c boolFormat) Append(dst []byte, arg any, env Env) []byte {
	_, mag := integerOf(arg)
	if c.spec.Type != 0 && c.spec.Type != 's' {
		return appendInteger(dst, false, mag, c.spec, env)
	}
	text := "false"
	if mag != 0 {
		text = "true"
	}
	return pad(dst, []byte(text), c.spec, widthOf(c.spec, env), spec.AlignLeft)
}
