// Package parser turns a template into a plan of tokens, validating every
// replacement field against the argument types.
package parser

import (
	"ctfmt/internal/argid"
	"ctfmt/internal/diag"
	"ctfmt/internal/field"
	"ctfmt/internal/formatter"
	"ctfmt/internal/source"
	"ctfmt/internal/spec"
	"ctfmt/internal/types"
)

// status is threaded by value through the scanner loop.
type status struct {
	off    uint32
	st     argid.State
	tokens []Token
}

// Parse compiles text for the given argument types. The first problem found
// is returned as a diagnostic.
func Parse(text string, args []types.Type) (*Plan, *diag.Diagnostic) {
	tpl, err := source.NewTemplate(text)
	if err != nil {
		return nil, &diag.Diagnostic{
			Code:    diag.FmtTemplateTooLarge,
			Message: "the template is larger than the implementation supports",
		}
	}
	st, err := argid.NewState(len(args))
	if err != nil {
		return nil, diag.At(diag.IdxOverflow, tpl, 0,
			"the number of arguments is larger than the implementation supports (2147483647)")
	}

	in := spec.Input{Tpl: tpl, Args: args}
	s := status{st: st}
	for s.off < tpl.Len() {
		var d *diag.Diagnostic
		switch tpl.At(s.off) {
		case '{':
			if tpl.At(s.off+1) == '{' {
				s = s.char(s.off).advance(2)
				continue
			}
			s, d = s.field(in)
		case '}':
			if tpl.At(s.off+1) != '}' {
				return nil, diag.At(diag.FmtUnmatchedClose, tpl, s.off, "expected '}' in escape sequence").
					WithEdit("}", source.Point(s.off), "}")
			}
			s = s.char(s.off).advance(2)
		default:
			s = s.char(s.off).advance(1)
		}
		if d != nil {
			return nil, d
		}
	}
	return &Plan{Template: tpl, Args: args, Tokens: s.tokens}, nil
}

// Valid reports whether text compiles for args.
func Valid(text string, args []types.Type) bool {
	_, d := Parse(text, args)
	return d == nil
}

func (s status) advance(n uint32) status {
	s.off += n
	return s
}

// char appends the byte at off, extending the previous token when it ends
// right before off.
func (s status) char(off uint32) status {
	if n := len(s.tokens); n > 0 {
		last := &s.tokens[n-1]
		if last.Kind != TokenField && last.Offset+last.Size == off {
			last.Kind = TokenText
			last.Size++
			return s
		}
	}
	s.tokens = append(s.tokens, Token{Kind: TokenChar, Offset: off, Size: 1})
	return s
}

func (s status) field(in spec.Input) (status, *diag.Diagnostic) {
	tpl := in.Tpl
	open := s.off
	r, d := argid.Parse(tpl, open+1, s.st)
	if d != nil {
		return s, d
	}
	if !r.Found() {
		return s, structural(tpl, open, r.Offset)
	}

	t := in.Args[r.Index]
	fc, ok := formatter.For(t)
	if !ok {
		return s, diag.New(diag.TypNotFormattable, tpl, open, r.Offset, r.Offset,
			"the supplied type for the argument is not formattable")
	}
	begin := r.Offset
	if tpl.At(begin) == ':' {
		begin++
	}
	if tpl.AtEnd(begin) {
		return s, unexpectedEnd(tpl, open)
	}

	res, d := fc.Create(in, t, begin, r.State, formatter.Context{})
	if d != nil {
		return s, d
	}
	if tpl.At(res.Offset) != '}' {
		if tpl.AtEnd(res.Offset) {
			return s, unexpectedEnd(tpl, open)
		}
		return s, diag.New(diag.FmtUnterminatedSpec, tpl, open, res.Offset, res.Offset,
			"unable to find the end of the format-spec")
	}
	if fld, d := field.Scan(tpl, open); d != nil || fld.Close != res.Offset {
		return s, diag.New(diag.FmtUnbalancedSpec, tpl, open, res.Offset, res.Offset,
			"the format-spec does not end at the closing brace of the replacement-field")
	}

	s.tokens = append(s.tokens, Token{
		Kind:      TokenField,
		Offset:    open,
		Size:      res.Offset + 1 - open,
		Index:     r.Index,
		Type:      t,
		Formatter: res.Compiled,
	})
	s.st = res.State
	s.off = res.Offset + 1
	return s, nil
}

// structural reports the character after an arg-id that is neither ':' nor
// '}'.
func structural(tpl source.Template, open, off uint32) *diag.Diagnostic {
	code, msg := diag.FmtUnexpectedChar, "unexpected character in the format string"
	if tpl.AtEnd(off) {
		code, msg = diag.FmtUnexpectedEnd, "unexpected end of the format string"
	}
	d := diag.New(code, tpl, open, off, off, msg)
	if off == open+1 {
		d.WithEdit("{     -> an escaped {", source.Point(open), "{")
	}
	d.WithEdit("}     -> the end of the replacement-field", source.Point(off), "}")
	d.WithFixit(":     -> start of the format-specifier")
	if off == open+1 {
		return d.WithFixit("[0-9] -> an arg-id")
	}
	return d.WithFixit("[0-9] -> continuation of the arg-id")
}

func unexpectedEnd(tpl source.Template, open uint32) *diag.Diagnostic {
	end := tpl.Len()
	return diag.New(diag.FmtUnexpectedEnd, tpl, open, end, end, "unexpected end of the format string").
		WithEdit("}     -> the end of the replacement-field", source.Point(end), "}")
}
