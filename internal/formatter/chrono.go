package formatter

import (
	"strconv"
	"strings"
	"time"

	"ctfmt/internal/argid"
	"ctfmt/internal/diag"
	"ctfmt/internal/spec"
	"ctfmt/internal/types"
)

// defaultChrono is used when a time value has no chrono-specs.
const defaultChrono = "%F %T"

// chronoConversions lists the supported conversion specifiers.
const chronoConversions = "aAbBCdDeFhHIjmMnpRStTuwyYzZ%"

type timeFormatter struct{}

// Fields omits Type and ConsumeAll; the chrono-specs follow the standard
// options.
func (timeFormatter) Fields() spec.Fields {
	return spec.FillAlign | spec.LocaleSpecificForm
}

func (f timeFormatter) Create(in spec.Input, _ types.Type, begin uint32, st argid.State, _ Context) (Result, *diag.Diagnostic) {
	status, d := spec.Parse(in, begin, f.Fields(), st, spec.Defaults())
	if d != nil {
		return Result{}, d
	}
	tpl := in.Tpl
	off := status.Offset
	layout := defaultChrono
	switch c := tpl.At(off); {
	case tpl.AtEnd(off), c == '}':
	case c != '%':
		return Result{}, diag.New(diag.SpcChrono, tpl, status.Spec.Begin, off, off,
			"the chrono-specs must start with a '%'")
	default:
		start := off
		if off, d = scanChrono(in, off); d != nil {
			return Result{}, d
		}
		layout = tpl.Text()[start:off]
	}
	return Result{Offset: off, State: status.State, Compiled: timeFormat{spec: status.Spec, layout: layout}}, nil
}

// scanChrono validates chrono-specs up to the closing brace.
func scanChrono(in spec.Input, off uint32) (uint32, *diag.Diagnostic) {
	tpl := in.Tpl
	for !tpl.AtEnd(off) {
		switch tpl.At(off) {
		case '}':
			return off, nil
		case '{':
			return 0, diag.At(diag.SpcChrono, tpl, off, "the chrono-specs may not contain a '{'")
		case '%':
			c := tpl.At(off + 1)
			if tpl.AtEnd(off + 1) {
				return off + 1, nil
			}
			if strings.IndexByte(chronoConversions, c) < 0 {
				return 0, diag.New(diag.SpcChrono, tpl, off, off+1, off+1,
					"the chrono conversion specifier is not supported")
			}
			off += 2
		default:
			off++
		}
	}
	return off, nil
}

type timeFormat struct {
	spec   spec.Spec
	layout string
}

func (c timeFormat) Append(dst []byte, arg any, env Env) []byte {
	t, _ := arg.(time.Time)
	body := appendChrono(nil, t, c.layout)
	return pad(dst, body, c.spec, widthOf(c.spec, env), spec.AlignLeft)
}

func appendPadded(dst []byte, v, n int, fill byte) []byte {
	s := strconv.Itoa(v)
	for i := len(s); i < n; i++ {
		dst = append(dst, fill)
	}
	return append(dst, s...)
}

func appendChrono(dst []byte, t time.Time, layout string) []byte {
	for i := 0; i < len(layout); i++ {
		if layout[i] != '%' || i+1 >= len(layout) {
			dst = append(dst, layout[i])
			continue
		}
		i++
		switch layout[i] {
		case 'Y':
			dst = appendPadded(dst, t.Year(), 4, '0')
		case 'y':
			dst = appendPadded(dst, t.Year()%100, 2, '0')
		case 'C':
			dst = appendPadded(dst, t.Year()/100, 2, '0')
		case 'm':
			dst = appendPadded(dst, int(t.Month()), 2, '0')
		case 'd':
			dst = appendPadded(dst, t.Day(), 2, '0')
		case 'e':
			dst = appendPadded(dst, t.Day(), 2, ' ')
		case 'H':
			dst = appendPadded(dst, t.Hour(), 2, '0')
		case 'I':
			h := t.Hour() % 12
			if h == 0 {
				h = 12
			}
			dst = appendPadded(dst, h, 2, '0')
		case 'M':
			dst = appendPadded(dst, t.Minute(), 2, '0')
		case 'S':
			dst = appendPadded(dst, t.Second(), 2, '0')
		case 'p':
			if t.Hour() < 12 {
				dst = append(dst, "AM"...)
			} else {
				dst = append(dst, "PM"...)
			}
		case 'j':
			dst = appendPadded(dst, t.YearDay(), 3, '0')
		case 'a':
			dst = append(dst, t.Weekday().String()[:3]...)
		case 'A':
			dst = append(dst, t.Weekday().String()...)
		case 'b', 'h':
			dst = append(dst, t.Month().String()[:3]...)
		case 'B':
			dst = append(dst, t.Month().String()...)
		case 'u':
			wd := int(t.Weekday())
			if wd == 0 {
				wd = 7
			}
			dst = strconv.AppendInt(dst, int64(wd), 10)
		case 'w':
			dst = strconv.AppendInt(dst, int64(t.Weekday()), 10)
		case 'F':
			dst = appendChrono(dst, t, "%Y-%m-%d")
		case 'T':
			dst = appendChrono(dst, t, "%H:%M:%S")
		case 'R':
			dst = appendChrono(dst, t, "%H:%M")
		case 'D':
			dst = appendChrono(dst, t, "%m/%d/%y")
		case 'z':
			dst = t.AppendFormat(dst, "-0700")
		case 'Z':
			dst = t.AppendFormat(dst, "MST")
		case 'n':
			dst = append(dst, '\n')
		case 't':
			dst = append(dst, '\t')
		default:
			dst = append(dst, layout[i])
		}
	}
	return dst
}
