package spec

import (
	"fmt"
	"math/bits"
	"unicode/utf8"

	"ctfmt/internal/argid"
	"ctfmt/internal/diag"
	"ctfmt/internal/scan"
)

// parser is local to one Parse call; the caller's state is never touched.
type parser struct {
	in     Input
	begin  uint32
	off    uint32
	fields Fields
	st     argid.State
	spec   Spec
}

// Parse reads the options permitted by fields starting at begin, the first
// character after ':' (or the '}' when there is none).
func Parse(in Input, begin uint32, fields Fields, st argid.State, defaults Spec) (Status, *diag.Diagnostic) {
	p := parser{in: in, begin: begin, off: begin, fields: fields, st: st, spec: defaults}
	p.spec.Begin = begin
	if in.Tpl.AtEnd(begin) {
		return Status{Offset: begin, State: st, Spec: p.spec}, nil
	}
	steps := []func() *diag.Diagnostic{
		p.fillAlign,
		p.sign,
		p.alternate,
		p.zero,
		p.width,
		p.precision,
		p.locale,
		p.clearBrackets,
		p.displayType,
		p.consumeAll,
	}
	for _, step := range steps {
		if d := step(); d != nil {
			return Status{}, d
		}
	}
	return Status{Offset: p.off, State: p.st, Spec: p.spec}, nil
}

func (p *parser) at(off uint32) byte {
	return p.in.Tpl.At(off)
}

func alignOf(c byte) (Align, bool) {
	switch c {
	case '<':
		return AlignLeft, true
	case '^':
		return AlignCenter, true
	case '>':
		return AlignRight, true
	}
	return AlignDefault, false
}

func (p *parser) fillAlign() *diag.Diagnostic {
	if !p.fields.Has(FillAlign) {
		return nil
	}
	c := p.at(p.off)
	if c != '{' && c != '}' {
		n, d := p.fillLength()
		if d != nil {
			return d
		}
		if a, ok := alignOf(p.at(p.off + n)); ok {
			r, _ := utf8.DecodeRuneInString(p.in.Tpl.Text()[p.off : p.off+n])
			p.spec.Fill = r
			p.spec.Align = a
			p.off += n + 1
			return nil
		}
	}
	if a, ok := alignOf(c); ok {
		p.spec.Align = a
		p.off++
	}
	return nil
}

// fillLength validates the UTF-8 code point at the cursor and returns its
// length in bytes.
func (p *parser) fillLength() (uint32, *diag.Diagnostic) {
	tpl := p.in.Tpl
	start := p.off
	lead := p.at(start)
	ones := uint32(bits.LeadingZeros8(^lead))
	switch {
	case ones == 0:
		return 1, nil
	case ones == 1:
		return 0, diag.At(diag.EncContinuationStart, tpl, start,
			"the UTF-8 code point starts with a continuation code unit")
	case ones > 4:
		return 0, diag.At(diag.EncInvalidLead, tpl, start,
			"the UTF-8 code point starts with an invalid code unit")
	}
	for i := uint32(1); i < ones; i++ {
		if p.at(start+i)&0xC0 != 0x80 {
			return 0, diag.New(diag.EncExpectedContinuation, tpl, start, start+i, start+i,
				"expected UTF-8 continuation code unit")
		}
	}
	if r, size := utf8.DecodeRuneInString(tpl.Text()[start : start+ones]); r == utf8.RuneError && size <= 1 {
		return 0, diag.New(diag.EncInvalidScalar, tpl, start, start, start+ones-1,
			"the UTF-8 code point is not a valid Unicode scalar value")
	}
	return ones, nil
}

func (p *parser) notAllowed(off uint32, option string) *diag.Diagnostic {
	return diag.New(diag.TypOptionNotAllowed, p.in.Tpl, p.begin, off, off,
		"the format specification does not allow the "+option+" option")
}

func (p *parser) sign() *diag.Diagnostic {
	var s SignMode
	switch p.at(p.off) {
	case '-':
		s = SignMinus
	case '+':
		s = SignPlus
	case ' ':
		s = SignSpace
	default:
		return nil
	}
	if !p.fields.Has(Sign) {
		return p.notAllowed(p.off, "sign")
	}
	p.spec.Sign = s
	p.spec.SignAt = p.off
	p.off++
	return nil
}

func (p *parser) alternate() *diag.Diagnostic {
	if p.at(p.off) != '#' {
		return nil
	}
	if !p.fields.Has(AlternateForm) {
		return p.notAllowed(p.off, "alternate form")
	}
	p.spec.Alternate = true
	p.spec.AltAt = p.off
	p.off++
	return nil
}

func (p *parser) zero() *diag.Diagnostic {
	if p.at(p.off) != '0' {
		return nil
	}
	if !p.fields.Has(ZeroPadding) {
		return p.notAllowed(p.off, "zero-padding")
	}
	// Явное выравнивание отменяет заполнение нулями.
	if p.spec.Align == AlignDefault {
		p.spec.Align = AlignZeroPadding
	}
	p.spec.ZeroAt = p.off
	p.off++
	return nil
}

func (p *parser) width() *diag.Diagnostic {
	tpl := p.in.Tpl
	start := p.off
	switch c := p.at(start); {
	case c == '0':
		return diag.At(diag.SpcWidthLeadingZero, tpl, start,
			"the width option should not have a leading zero")
	case c == '{':
		idx, d := p.nested()
		if d != nil {
			return d
		}
		p.spec.WidthArg = idx
	case scan.IsDigit(c):
		n := scan.Decimal(tpl, start)
		if n.Overflow {
			return diag.New(diag.SpcWidthOverflow, tpl, start, n.OverflowAt, n.End-1,
				"the value of the width option is larger than the implementation supports (2147483647)")
		}
		p.spec.Width = n.Value
		p.off = n.End
	}
	return nil
}

func (p *parser) precision() *diag.Diagnostic {
	tpl := p.in.Tpl
	dot := p.off
	if p.at(dot) != '.' {
		return nil
	}
	if !p.fields.Has(Precision) {
		return p.notAllowed(dot, "precision")
	}
	p.off++
	switch c := p.at(p.off); {
	case c == '{':
		idx, d := p.nested()
		if d != nil {
			return d
		}
		p.spec.PrecisionArg = idx
	case scan.IsDigit(c):
		n := scan.Decimal(tpl, p.off)
		if n.Overflow {
			return diag.New(diag.SpcPrecisionOverflow, tpl, p.off, n.OverflowAt, n.End-1,
				"the value of the precision option is larger than the implementation supports (2147483647)")
		}
		p.spec.Precision = n.Value
		p.off = n.End
	default:
		return diag.New(diag.SpcPrecisionMissing, tpl, dot, p.off, p.off,
			"the precision option does not contain a value or an argument index").
			WithFixit("[0-9] -> a precision value", "{     -> an arg-id")
	}
	return nil
}

// nested resolves a '{arg-id}' used as width or precision.
func (p *parser) nested() (int32, *diag.Diagnostic) {
	tpl := p.in.Tpl
	open := p.off
	if p.at(open+1) == '-' {
		return 0, diag.New(diag.IdxNegative, tpl, open, open+1, open+1,
			"the argument index may not be a negative value")
	}
	r, d := argid.Parse(tpl, open+1, p.st)
	if d != nil {
		return 0, d
	}
	if p.at(r.Offset) != '}' {
		code, msg := diag.IdxUnexpectedChar, "unexpected character in the arg-id"
		if tpl.AtEnd(r.Offset) {
			code, msg = diag.IdxUnexpectedEnd, "unexpected end of the format string"
		}
		d := diag.New(code, tpl, open, r.Offset, r.Offset, msg).
			WithFixit("}     -> the end of the arg-id")
		if r.Offset == open+1 {
			return 0, d.WithFixit("[0-9] -> an arg-id")
		}
		return 0, d.WithFixit("[0-9] -> continuation of the arg-id")
	}
	if arg := p.in.Args[r.Index]; !arg.IsStandardInteger() {
		return 0, diag.New(diag.TypArgIDNotInteger, tpl, open, r.Offset, r.Offset,
			"the type of the arg-id is not a standard signed or unsigned integer type")
	}
	p.st = r.State
	p.off = r.Offset + 1
	return r.Index, nil
}

func (p *parser) locale() *diag.Diagnostic {
	if p.at(p.off) != 'L' {
		return nil
	}
	if !p.fields.Has(LocaleSpecificForm) {
		return p.notAllowed(p.off, "locale-specific form")
	}
	p.spec.Locale = true
	p.off++
	return nil
}

func (p *parser) clearBrackets() *diag.Diagnostic {
	if p.at(p.off) != 'n' {
		return nil
	}
	if !p.fields.Has(ClearBrackets) {
		return p.notAllowed(p.off, "clear brackets")
	}
	p.spec.ClearBrackets = true
	p.off++
	return nil
}

// IsDisplayType reports whether c is one of the display type characters.
func IsDisplayType(c byte) bool {
	switch c {
	case 'A', 'B', 'E', 'F', 'G', 'X', 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'o', 'p', 'P', 's', 'x', '?':
		return true
	}
	return false
}

func (p *parser) displayType() *diag.Diagnostic {
	if !p.fields.Has(Type) {
		return nil
	}
	if c := p.at(p.off); IsDisplayType(c) {
		p.spec.Type = c
		p.spec.TypeAt = p.off
		p.off++
	}
	return nil
}

func (p *parser) consumeAll() *diag.Diagnostic {
	if !p.fields.Has(ConsumeAll) {
		return nil
	}
	return Trailing(p.in, p.off)
}

// Trailing reports characters left between off and the closing brace. The
// end of the template is left to the caller.
func Trailing(in Input, off uint32) *diag.Diagnostic {
	tpl := in.Tpl
	if tpl.AtEnd(off) || tpl.At(off) == '}' {
		return nil
	}
	end := tpl.IndexFrom(off, '}')
	if end > off {
		end--
	}
	return diag.New(diag.SpcTrailing, tpl, off, off, end,
		"the format specification contains unexpected trailing characters")
}

// Describe names a display type for messages.
func Describe(c byte) string {
	if c == 0 {
		return "default"
	}
	return fmt.Sprintf("'%c'", c)
}
