package types

import (
	"reflect"
	"strings"
)

// Char is the argument type formatted as a single character. A plain rune is
// an int32 and formats as an integer.
type Char rune

// Formattable is implemented by user types with their own format-spec
// language. ParseFormat is called on the zero value at compile time with the
// raw spec text; the value it returns is handed back to AppendFormat on every
// render.
type Formattable interface {
	ParseFormat(spec string) (any, error)
	AppendFormat(dst []byte, compiled any) []byte
}

// Type describes one argument after normalisation.
type Type struct {
	Kind Kind
	// Name is the Go spelling of the original type.
	Name string
	// Elem is the element type of a Range and the value type of a Map.
	Elem *Type
	// Key is the key type of a Map.
	Key *Type
	// Go is the runtime type; nil for types built from go/types.
	Go reflect.Type
}

// Of returns the descriptor of a basic kind.
func Of(k Kind) Type {
	return Type{Kind: k, Name: k.String()}
}

// RangeOf builds a Range descriptor.
func RangeOf(elem Type) Type {
	if elem.Kind == Invalid {
		return Type{Kind: Invalid, Name: "[]" + elem.Name}
	}
	return Type{Kind: Range, Name: "[]" + elem.Name, Elem: &elem}
}

// MapOf builds a Map descriptor.
func MapOf(key, elem Type) Type {
	name := "map[" + key.Name + "]" + elem.Name
	if key.Kind == Invalid || elem.Kind == Invalid {
		return Type{Kind: Invalid, Name: name}
	}
	return Type{Kind: Map, Name: name, Key: &key, Elem: &elem}
}

// IsStandardInteger reports whether values of t may be used as a nested
// width or precision argument.
func (t Type) IsStandardInteger() bool {
	return t.Kind.IsInteger()
}

// Formattable reports whether a formatter exists for t.
func (t Type) Formattable() bool {
	return t.Kind != Invalid
}

func (t Type) String() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Kind.String()
}

// Signature joins the names of ts; it is stable for identical lists.
func Signature(ts []Type) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, t := range ts {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
	}
	b.WriteByte(')')
	return b.String()
}
