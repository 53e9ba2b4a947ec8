package ctfmt

import (
	"fmt"
	"reflect"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ctfmt/internal/formatter"
	"ctfmt/internal/parser"
)

// Plan is a compiled template. It is immutable and safe for concurrent use.
type Plan struct {
	plan    *parser.Plan
	goTypes []reflect.Type
	locale  *message.Printer
}

// Template returns the source text.
func (p *Plan) Template() string {
	return p.plan.Template.Text()
}

// WithLocale returns a copy of p whose 'L' fields group digits the way tag
// does. Without a locale 'L' changes nothing.
func (p *Plan) WithLocale(tag language.Tag) *Plan {
	cp := *p
	cp.locale = message.NewPrinter(tag)
	return &cp
}

// Token describes one step of a plan.
type Token struct {
	// Kind is "char", "text" or "field".
	Kind   string `json:"kind" msgpack:"kind"`
	Offset int    `json:"offset" msgpack:"offset"`
	Size   int    `json:"size" msgpack:"size"`
	// Text is the template source of the token.
	Text string `json:"text" msgpack:"text"`
	// Arg and Type are set for fields.
	Arg  int    `json:"arg,omitempty" msgpack:"arg,omitempty"`
	Type string `json:"type,omitempty" msgpack:"type,omitempty"`
}

// Tokens returns the plan for inspection.
func (p *Plan) Tokens() []Token {
	text := p.plan.Template.Text()
	out := make([]Token, 0, len(p.plan.Tokens))
	for _, tok := range p.plan.Tokens {
		t := Token{
			Kind:   tok.Kind.String(),
			Offset: int(tok.Offset),
			Size:   int(tok.Size),
			Text:   text[tok.Offset : tok.Offset+tok.Size],
		}
		if tok.Kind == parser.TokenField {
			t.Arg = int(tok.Index)
			t.Type = tok.Type.String()
		}
		out = append(out, t)
	}
	return out
}

// Append renders p with args onto dst. args must have the types p was
// compiled for.
func (p *Plan) Append(dst []byte, args ...any) ([]byte, error) {
	if err := p.check(args); err != nil {
		return dst, err
	}
	return p.plan.Append(dst, args, formatter.Env{Locale: p.locale}), nil
}

// Format renders p into a new string.
func (p *Plan) Format(args ...any) (string, error) {
	b, err := p.Append(nil, args...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MustFormat is Format that panics on error.
func (p *Plan) MustFormat(args ...any) string {
	s, err := p.Format(args...)
	if err != nil {
		panic(err)
	}
	return s
}

func (p *Plan) check(args []any) error {
	if len(args) != len(p.goTypes) {
		return fmt.Errorf("%w: got %d, plan expects %d", ErrArgCount, len(args), len(p.goTypes))
	}
	for i, a := range args {
		got, want := reflect.TypeOf(a), p.goTypes[i]
		if want != nil && want.Kind() == reflect.Interface {
			if got == nil || got.Implements(want) {
				continue
			}
		} else if got == want {
			continue
		}
		return fmt.Errorf("%w: argument %d is %v, plan expects %v", ErrArgType, i, got, want)
	}
	return nil
}
