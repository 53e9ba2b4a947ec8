package types

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

var (
	charType        = reflect.TypeFor[Char]()
	timeType        = reflect.TypeFor[time.Time]()
	formattableType = reflect.TypeFor[Formattable]()
	stringerType    = reflect.TypeFor[fmt.Stringer]()
	errorType       = reflect.TypeFor[error]()
)

// maxDepth bounds recursion through self-referencing slice and map types.
const maxDepth = 16

// FromReflect normalises a runtime type. A nil type is an untyped nil
// argument and formats as a pointer.
func FromReflect(t reflect.Type) Type {
	return fromReflect(t, 0)
}

// FromValue is FromReflect of the dynamic type of v.
func FromValue(v any) Type {
	return FromReflect(reflect.TypeOf(v))
}

func fromReflect(t reflect.Type, depth int) Type {
	if t == nil {
		return Type{Kind: Pointer, Name: "nil"}
	}
	name := t.String()
	if depth > maxDepth {
		return Type{Kind: Invalid, Name: name, Go: t}
	}
	if t.Kind() == reflect.Interface {
		// Для интерфейса известен только набор методов.
		if t.Implements(stringerType) || t.Implements(errorType) {
			return Type{Kind: String, Name: name, Go: t}
		}
		return Type{Kind: Invalid, Name: name, Go: t}
	}
	switch {
	case t.Implements(formattableType):
		return Type{Kind: Custom, Name: name, Go: t}
	case t == timeType:
		return Type{Kind: Time, Name: name, Go: t}
	case t == charType:
		return Type{Kind: KindChar, Name: name, Go: t}
	case t.Implements(stringerType), t.Implements(errorType):
		return Type{Kind: String, Name: name, Go: t}
	}

	k := Invalid
	switch t.Kind() {
	case reflect.Bool:
		k = Bool
	case reflect.Int8, reflect.Int16, reflect.Int32:
		k = Int
	case reflect.Int:
		k = Int64
		if strconv.IntSize == 32 {
			k = Int
		}
	case reflect.Int64:
		k = Int64
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		k = Uint
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		k = Uint64
		if t.Kind() == reflect.Uint && strconv.IntSize == 32 {
			k = Uint
		}
	case reflect.Float32:
		k = Float32
	case reflect.Float64:
		k = Float64
	case reflect.String:
		k = String
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan, reflect.Func:
		k = Pointer
	case reflect.Slice, reflect.Array:
		if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
			k = String
			break
		}
		r := RangeOf(fromReflect(t.Elem(), depth+1))
		r.Name, r.Go = name, t
		return r
	case reflect.Map:
		m := MapOf(fromReflect(t.Key(), depth+1), fromReflect(t.Elem(), depth+1))
		m.Name, m.Go = name, t
		return m
	}
	return Type{Kind: k, Name: name, Go: t}
}
