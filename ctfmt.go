// Package ctfmt compiles format templates once and renders them many times.
//
// A template mixes literal text with replacement fields:
//
//	{arg-id:format-spec}
//
// Compile validates every field against the argument types and returns a
// Plan; a template that fails to compile yields an *Error whose text points
// at the offending character with a caret. Sprintf and friends compile on
// first use and memoize the plan per template and argument types.
//
// Constant templates can be checked at build time with cmd/ctfmt-vet.
package ctfmt

import (
	"reflect"

	"ctfmt/internal/parser"
	"ctfmt/internal/types"
)

// Char formats as a single character; a plain rune is an integer.
type Char = types.Char

// Formattable is implemented by types that parse their own format-spec.
// ParseFormat is called on the zero value when a template is compiled; its
// result is passed to AppendFormat on every render.
type Formattable = types.Formattable

func normalise(argTypes []reflect.Type) []types.Type {
	out := make([]types.Type, len(argTypes))
	for i, t := range argTypes {
		out[i] = types.FromReflect(t)
	}
	return out
}

// Compile validates template for arguments of the given types. A nil
// reflect.Type stands for an untyped nil argument.
func Compile(template string, argTypes ...reflect.Type) (*Plan, error) {
	p, d := parser.Parse(template, normalise(argTypes))
	if d != nil {
		return nil, &Error{diag: d}
	}
	return &Plan{plan: p, goTypes: argTypes}, nil
}

// MustCompile is Compile that panics on error.
func MustCompile(template string, argTypes ...reflect.Type) *Plan {
	p, err := Compile(template, argTypes...)
	if err != nil {
		panic(err)
	}
	return p
}

// CompileFor compiles template for the dynamic types of samples.
func CompileFor(template string, samples ...any) (*Plan, error) {
	return Compile(template, typesOf(samples)...)
}

// Valid reports whether template compiles for the given types.
func Valid(template string, argTypes ...reflect.Type) bool {
	return parser.Valid(template, normalise(argTypes))
}

func typesOf(args []any) []reflect.Type {
	out := make([]reflect.Type, len(args))
	for i, a := range args {
		out[i] = reflect.TypeOf(a)
	}
	return out
}
