package types

import (
	"go/token"
	"go/types"
)

// charPath is where Char is declared; the public ctfmt.Char is an alias.
const charPath = "ctfmt/internal/types"

// Method sets mirrored from fmt.Stringer, error and Formattable.
var (
	anyType          = types.NewInterfaceType(nil, nil).Complete()
	stringerIface    = iface(method("String", nil, []types.Type{types.Typ[types.String]}))
	errorIface       = types.Universe.Lookup("error").Type().Underlying().(*types.Interface)
	formattableIface = iface(
		method("ParseFormat", []types.Type{types.Typ[types.String]},
			[]types.Type{anyType, types.Universe.Lookup("error").Type()}),
		method("AppendFormat", []types.Type{types.NewSlice(types.Typ[types.Byte]), anyType},
			[]types.Type{types.NewSlice(types.Typ[types.Byte])}),
	)
)

// FromGo normalises a type seen by the type checker. ok is false when the
// type is an interface: its dynamic type is unknown until run time.
func FromGo(t types.Type) (Type, bool) {
	return fromGo(t, 0)
}

func fromGo(t types.Type, depth int) (Type, bool) {
	name := types.TypeString(t, nil)
	if depth > maxDepth {
		return Type{Kind: Invalid, Name: name}, true
	}
	if types.IsInterface(t) {
		return Type{Name: name}, false
	}
	switch {
	case types.Implements(t, formattableIface):
		return Type{Kind: Custom, Name: name}, true
	case isNamed(t, "time", "Time"):
		return Type{Kind: Time, Name: name}, true
	case isChar(t):
		return Type{Kind: KindChar, Name: name}, true
	case types.Implements(t, stringerIface), types.Implements(t, errorIface):
		return Type{Kind: String, Name: name}, true
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		return Type{Kind: basicKind(u), Name: name}, true
	case *types.Pointer, *types.Chan, *types.Signature:
		return Type{Kind: Pointer, Name: name}, true
	case *types.Slice:
		if b, ok := u.Elem().Underlying().(*types.Basic); ok && b.Kind() == types.Byte {
			return Type{Kind: String, Name: name}, true
		}
		elem, ok := fromGo(u.Elem(), depth+1)
		r := RangeOf(elem)
		r.Name = name
		return r, ok
	case *types.Array:
		elem, ok := fromGo(u.Elem(), depth+1)
		r := RangeOf(elem)
		r.Name = name
		return r, ok
	case *types.Map:
		key, okK := fromGo(u.Key(), depth+1)
		elem, okE := fromGo(u.Elem(), depth+1)
		m := MapOf(key, elem)
		m.Name = name
		return m, okK && okE
	}
	return Type{Kind: Invalid, Name: name}, true
}

func basicKind(b *types.Basic) Kind {
	switch b.Kind() {
	case types.Bool, types.UntypedBool:
		return Bool
	case types.Int8, types.Int16, types.Int32, types.UntypedRune:
		return Int
	case types.Int, types.Int64, types.UntypedInt:
		return Int64
	case types.Uint8, types.Uint16, types.Uint32:
		return Uint
	case types.Uint, types.Uint64, types.Uintptr:
		return Uint64
	case types.Float32:
		return Float32
	case types.Float64, types.UntypedFloat:
		return Float64
	case types.String, types.UntypedString:
		return String
	case types.UnsafePointer, types.UntypedNil:
		return Pointer
	}
	return Invalid
}

func isNamed(t types.Type, pkg, name string) bool {
	n, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	obj := n.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == pkg && obj.Name() == name
}

func isChar(t types.Type) bool {
	n, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	obj := n.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == charPath && obj.Name() == "Char"
}

func iface(methods ...*types.Func) *types.Interface {
	return types.NewInterfaceType(methods, nil).Complete()
}

func method(name string, params, results []types.Type) *types.Func {
	sig := types.NewSignatureType(nil, nil, nil, tuple(params), tuple(results), false)
	return types.NewFunc(token.NoPos, nil, name, sig)
}

func tuple(ts []types.Type) *types.Tuple {
	vars := make([]*types.Var, len(ts))
	for i, t := range ts {
		vars[i] = types.NewParam(token.NoPos, nil, "", t)
	}
	return types.NewTuple(vars...)
}
