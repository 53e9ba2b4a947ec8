package a

import (
	"io"

	"ctfmt"
)

type celsius float64

func (c celsius) String() string { return "" }

func f(w io.Writer, name string, n int, x float64, v any, tpl string, args []any) {
	_, _ = ctfmt.Sprintf("hello {}", name)
	_, _ = ctfmt.Sprintf("{0:>{1}}", name, n)
	_, _ = ctfmt.Sprintf("{:c}", ctfmt.Char('x'))
	_, _ = ctfmt.Sprintf("{:s}", celsius(1))

	_, _ = ctfmt.Sprintf("hello {", name)   // want `unexpected end of the format string \(FMT1001\)`
	_, _ = ctfmt.Fprintf(w, "{}}", n)       // want `expected '}' in escape sequence \(FMT1003\)`
	_, _ = ctfmt.Sprintf("{1}", n)          // want `using the .* argument while one argument is available \(IDX2005\)`
	_, _ = ctfmt.Sprintf("{:d}", name)      // want `display type is not valid for a string argument`
	_, _ = ctfmt.CompileFor("{:x}", x)      // want `display type is not valid for a floating-point argument`
	_, _ = ctfmt.Append(nil, "{:{}}", x, x) // want `TYP3003`

	// Not checked: dynamic template, interface argument, spread arguments.
	_, _ = ctfmt.Sprintf(tpl, n)
	_, _ = ctfmt.Sprintf("{:d}", v)
	_, _ = ctfmt.Sprintf("{5}", args...)
}
