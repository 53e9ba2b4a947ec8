// Package formatter holds one capability per canonical argument kind. A
// capability parses the format-spec at compile time and returns a Compiled
// value that renders arguments of that kind.
package formatter

import (
	"golang.org/x/text/message"

	"ctfmt/internal/argid"
	"ctfmt/internal/diag"
	"ctfmt/internal/spec"
	"ctfmt/internal/types"
)

// Context tells a capability where its spec appears.
type Context struct {
	// InRange is set for the elements of ranges and maps: strings and chars
	// then default to the debug presentation.
	InRange bool
}

// Env is the render-time environment shared by all fields of one call.
type Env struct {
	// Args are all arguments of the call; nested width and precision
	// indices point into it.
	Args []any
	// Locale is used by the 'L' option; nil means no grouping.
	Locale *message.Printer
}

// Compiled renders one argument.
type Compiled interface {
	Append(dst []byte, arg any, env Env) []byte
}

// Result of Create. Offset is the first character the capability did not
// consume; for a well-formed field it is the closing '}'.
type Result struct {
	Offset   uint32
	State    argid.State
	Compiled Compiled
}

// Capability is the formatter of one kind.
type Capability interface {
	Fields() spec.Fields
	Create(in spec.Input, t types.Type, begin uint32, st argid.State, ctx Context) (Result, *diag.Diagnostic)
}

var registry = map[types.Kind]Capability{
	types.Bool:     boolFormatter{},
	types.KindChar: charFormatter{},
	types.Int:      integerFormatter{},
	types.Int64:    integerFormatter{},
	types.Uint:     integerFormatter{},
	types.Uint64:   integerFormatter{},
	types.Float32:  floatFormatter{},
	types.Float64:  floatFormatter{},
	types.String:   stringFormatter{},
	types.Pointer:  pointerFormatter{},
	types.Range:    rangeFormatter{},
	types.Map:      mapFormatter{},
	types.Time:     timeFormatter{},
	types.Custom:   customFormatter{},
}

// For returns the capability for t. ok is false for types.Invalid.
func For(t types.Type) (Capability, bool) {
	c, ok := registry[t.Kind]
	return c, ok
}

// Create looks up the capability of t and runs it.
func Create(in spec.Input, t types.Type, begin uint32, st argid.State, ctx Context) (Result, *diag.Diagnostic) {
	c, ok := For(t)
	if !ok {
		return Result{}, diag.At(diag.TypNotFormattable, in.Tpl, begin,
			"the supplied type for the argument is not formattable")
	}
	return c.Create(in, t, begin, st, ctx)
}

func result(st spec.Status, c Compiled) Result {
	return Result{Offset: st.Offset, State: st.State, Compiled: c}
}
