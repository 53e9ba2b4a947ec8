package formatter

import (
	"bytes"
	"math"
	"strconv"

	"golang.org/x/text/number"

	"ctfmt/internal/argid"
	"ctfmt/internal/diag"
	"ctfmt/internal/spec"
	"ctfmt/internal/types"
)

type floatFormatter struct{}

func (floatFormatter) Fields() spec.Fields {
	return spec.Floating
}

func (f floatFormatter) Create(in spec.Input, t types.Type, begin uint32, st argid.State, _ Context) (Result, *diag.Diagnostic) {
	status, d := spec.Parse(in, begin, f.Fields(), st, spec.Defaults())
	if d != nil {
		return Result{}, d
	}
	s := status.Spec
	if d := s.CheckType(in, "aAeEfFgG", "a floating-point argument"); d != nil {
		return Result{}, d
	}
	bitSize := 64
	if t.Kind == types.Float32 {
		bitSize = 32
	}
	return result(status, floatFormat{spec: s, bitSize: bitSize}), nil
}

type floatFormat struct {
	spec    spec.Spec
	bitSize int
}

func (c floatFormat) Append(dst []byte, arg any, env Env) []byte {
	return appendFloat(dst, floatOf(arg), c.bitSize, c.spec, env)
}

func isUpperType(c byte) bool {
	return c == 'A' || c == 'E' || c == 'F' || c == 'G'
}

func appendFloat(dst []byte, f float64, bitSize int, s spec.Spec, env Env) []byte {
	width := widthOf(s, env)
	prec := precisionOf(s, env)

	var prefix []byte
	switch {
	case math.Signbit(f):
		prefix = append(prefix, '-')
	case s.Sign == spec.SignPlus:
		prefix = append(prefix, '+')
	case s.Sign == spec.SignSpace:
		prefix = append(prefix, ' ')
	}
	abs := math.Abs(f)

	if math.IsInf(f, 0) || math.IsNaN(f) {
		text := "inf"
		if math.IsNaN(f) {
			text = "nan"
		}
		body := append(prefix, text...)
		if isUpperType(s.Type) {
			upper(body)
		}
		// Бесконечность и NaN нулями не дополняются.
		if s.Align == spec.AlignZeroPadding {
			s.Align = spec.AlignRight
			s.Fill = ' '
		}
		return pad(dst, body, s, width, spec.AlignRight)
	}

	var digits []byte
	if s.Locale && env.Locale != nil && (s.Type == 0 || s.Type == 'f' || s.Type == 'F') {
		digits = localized(abs, prec, s.Type, env)
	} else {
		digits = floatDigits(abs, bitSize, prec, s.Type)
		if s.Alternate {
			digits = withPoint(digits)
		}
	}
	if isUpperType(s.Type) {
		upper(digits)
	}
	return padNumber(dst, prefix, digits, s, width)
}

func floatDigits(abs float64, bitSize, prec int, typ byte) []byte {
	switch typ {
	case 'e', 'E':
		if prec < 0 {
			prec = 6
		}
		return strconv.AppendFloat(nil, abs, 'e', prec, bitSize)
	case 'f', 'F':
		if prec < 0 {
			prec = 6
		}
		return strconv.AppendFloat(nil, abs, 'f', prec, bitSize)
	case 'g', 'G':
		if prec < 0 {
			prec = 6
		}
		return strconv.AppendFloat(nil, abs, 'g', prec, bitSize)
	case 'a', 'A':
		return hexFloat(strconv.AppendFloat(nil, abs, 'x', prec, bitSize))
	}
	if prec >= 0 {
		return strconv.AppendFloat(nil, abs, 'g', prec, bitSize)
	}
	// Кратчайшее представление; при равной длине побеждает фиксированное.
	fixed := strconv.AppendFloat(nil, abs, 'f', -1, bitSize)
	sci := strconv.AppendFloat(nil, abs, 'e', -1, bitSize)
	if len(sci) < len(fixed) {
		return sci
	}
	return fixed
}

// hexFloat turns "0x1.8p+01" into "1.8p+1".
func hexFloat(b []byte) []byte {
	b = bytes.TrimPrefix(b, []byte("0x"))
	p := bytes.IndexByte(b, 'p')
	if p < 0 || p+2 >= len(b) {
		return b
	}
	exp := b[p+2:]
	i := 0
	for i < len(exp)-1 && exp[i] == '0' {
		i++
	}
	return append(b[:p+2], exp[i:]...)
}

// withPoint makes sure the mantissa has a decimal point.
func withPoint(b []byte) []byte {
	if bytes.IndexByte(b, '.') >= 0 {
		return b
	}
	at := bytes.IndexAny(b, "ep")
	if at < 0 {
		return append(b, '.')
	}
	out := make([]byte, 0, len(b)+1)
	out = append(out, b[:at]...)
	out = append(out, '.')
	return append(out, b[at:]...)
}

func localized(abs float64, prec int, typ byte, env Env) []byte {
	if prec < 0 && typ != 0 {
		prec = 6
	}
	if prec < 0 {
		return []byte(env.Locale.Sprint(number.Decimal(abs)))
	}
	return []byte(env.Locale.Sprint(number.Decimal(abs, number.Scale(prec))))
}
