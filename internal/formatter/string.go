package formatter

import (
	"strconv"

	"ctfmt/internal/argid"
	"ctfmt/internal/diag"
	"ctfmt/internal/spec"
	"ctfmt/internal/types"
)

type stringFormatter struct{}

func (stringFormatter) Fields() spec.Fields {
	return spec.Text
}

func (f stringFormatter) Create(in spec.Input, _ types.Type, begin uint32, st argid.State, ctx Context) (Result, *diag.Diagnostic) {
	status, d := spec.Parse(in, begin, f.Fields(), st, spec.Defaults())
	if d != nil {
		return Result{}, d
	}
	s := status.Spec
	if d := s.CheckType(in, "s?", "a string argument"); d != nil {
		return Result{}, d
	}
	if s.Type == 0 && ctx.InRange {
		s.Type = '?'
	}
	return result(status, stringFormat{spec: s}), nil
}

type stringFormat struct {
	spec spec.Spec
}

func (c stringFormat) Append(dst []byte, arg any, env Env) []byte {
	text := stringOf(arg)
	var body []byte
	if c.spec.Type == '?' {
		body = strconv.AppendQuote(nil, text)
	} else {
		body = []byte(text)
	}
	body = truncate(body, precisionOf(c.spec, env))
	return pad(dst, body, c.spec, widthOf(c.spec, env), spec.AlignLeft)
}
