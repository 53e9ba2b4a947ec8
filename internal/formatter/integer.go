package formatter

import (
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/number"

	"ctfmt/internal/argid"
	"ctfmt/internal/diag"
	"ctfmt/internal/spec"
	"ctfmt/internal/types"
)

const integerTypes = "bBcdoxX"

type integerFormatter struct{}

func (integerFormatter) Fields() spec.Fields {
	return spec.Integral
}

func (f integerFormatter) Create(in spec.Input, _ types.Type, begin uint32, st argid.State, _ Context) (Result, *diag.Diagnostic) {
	status, d := spec.Parse(in, begin, f.Fields(), st, spec.Defaults())
	if d != nil {
		return Result{}, d
	}
	s := status.Spec
	if d := s.CheckType(in, integerTypes, "an integer argument"); d != nil {
		return Result{}, d
	}
	if s.Type == 'c' {
		if d := s.CheckPresentation(in); d != nil {
			return Result{}, d
		}
	}
	return result(status, integerFormat{spec: s}), nil
}

type integerFormat struct {
	spec spec.Spec
}

func (c integerFormat) Append(dst []byte, arg any, env Env) []byte {
	neg, mag := integerOf(arg)
	return appendInteger(dst, neg, mag, c.spec, env)
}

// appendInteger renders an integer in one of the integer display types. It
// serves integers, chars and bools alike.
func appendInteger(dst []byte, neg bool, mag uint64, s spec.Spec, env Env) []byte {
	width := widthOf(s, env)
	if s.Type == 'c' {
		r := rune(mag)
		if neg || mag > utf8.MaxRune {
			r = utf8.RuneError
		}
		return pad(dst, utf8.AppendRune(nil, r), s, width, spec.AlignLeft)
	}

	var prefix []byte
	switch {
	case neg:
		prefix = append(prefix, '-')
	case s.Sign == spec.SignPlus:
		prefix = append(prefix, '+')
	case s.Sign == spec.SignSpace:
		prefix = append(prefix, ' ')
	}

	base := 10
	switch s.Type {
	case 'b', 'B':
		base = 2
	case 'o':
		base = 8
	case 'x', 'X':
		base = 16
	}
	if s.Alternate {
		switch s.Type {
		case 'b', 'B', 'x', 'X':
			prefix = append(prefix, '0', s.Type)
		case 'o':
			if mag != 0 {
				prefix = append(prefix, '0')
			}
		}
	}

	var digits []byte
	if s.Locale && base == 10 && env.Locale != nil {
		digits = []byte(env.Locale.Sprint(number.Decimal(mag)))
	} else {
		digits = strconv.AppendUint(nil, mag, base)
	}
	if s.Type == 'X' {
		upper(digits)
	}
	return padNumber(dst, prefix, digits, s, width)
}

func upper(b []byte) {
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
}
