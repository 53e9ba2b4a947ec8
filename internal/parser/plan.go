package parser

import (
	"ctfmt/internal/formatter"
	"ctfmt/internal/source"
	"ctfmt/internal/types"
)

// Plan is the compiled form of a template.
type Plan struct {
	Template source.Template
	Args     []types.Type
	Tokens   []Token
}

// Append renders the plan. args must match Args; the caller checks that.
func (p *Plan) Append(dst []byte, args []any, env formatter.Env) []byte {
	env.Args = args
	text := p.Template.Text()
	for _, tok := range p.Tokens {
		switch tok.Kind {
		case TokenChar:
			dst = append(dst, text[tok.Offset])
		case TokenText:
			dst = append(dst, text[tok.Offset:tok.Offset+tok.Size]...)
		case TokenField:
			dst = tok.Formatter.Append(dst, args[tok.Index], env)
		}
	}
	return dst
}
