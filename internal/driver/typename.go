package driver

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unsafe"

	"ctfmt"
)

var namedTypes = map[string]reflect.Type{
	"bool":           reflect.TypeFor[bool](),
	"char":           reflect.TypeFor[ctfmt.Char](),
	"int":            reflect.TypeFor[int](),
	"int8":           reflect.TypeFor[int8](),
	"int16":          reflect.TypeFor[int16](),
	"int32":          reflect.TypeFor[int32](),
	"rune":           reflect.TypeFor[rune](),
	"int64":          reflect.TypeFor[int64](),
	"uint":           reflect.TypeFor[uint](),
	"uint8":          reflect.TypeFor[uint8](),
	"byte":           reflect.TypeFor[byte](),
	"uint16":         reflect.TypeFor[uint16](),
	"uint32":         reflect.TypeFor[uint32](),
	"uint64":         reflect.TypeFor[uint64](),
	"uintptr":        reflect.TypeFor[uintptr](),
	"float32":        reflect.TypeFor[float32](),
	"float64":        reflect.TypeFor[float64](),
	"string":         reflect.TypeFor[string](),
	"error":          reflect.TypeFor[error](),
	"time.Time":      reflect.TypeFor[time.Time](),
	"time.Duration":  reflect.TypeFor[time.Duration](),
	"unsafe.Pointer": reflect.TypeFor[unsafe.Pointer](),
	"any":            reflect.TypeFor[any](),
}

// ParseType resolves a Go-like type expression used in manifests:
// predeclared names, char, time.Time, time.Duration, unsafe.Pointer and
// the composites *T, []T, [N]T and map[K]V.
func ParseType(expr string) (reflect.Type, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return nil, fmt.Errorf("empty type")
	}
	if t, ok := namedTypes[s]; ok {
		return t, nil
	}
	switch {
	case strings.HasPrefix(s, "*"):
		elem, err := ParseType(s[1:])
		if err != nil {
			return nil, err
		}
		return reflect.PointerTo(elem), nil
	case strings.HasPrefix(s, "[]"):
		elem, err := ParseType(s[2:])
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil
	case strings.HasPrefix(s, "["):
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return nil, fmt.Errorf("type %q: missing ']'", expr)
		}
		n, err := strconv.Atoi(s[1:end])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("type %q: invalid array length", expr)
		}
		elem, err := ParseType(s[end+1:])
		if err != nil {
			return nil, err
		}
		return reflect.ArrayOf(n, elem), nil
	case strings.HasPrefix(s, "map["):
		end := matchBracket(s, 3)
		if end < 0 {
			return nil, fmt.Errorf("type %q: missing ']'", expr)
		}
		key, err := ParseType(s[4:end])
		if err != nil {
			return nil, err
		}
		if !key.Comparable() {
			return nil, fmt.Errorf("type %q: invalid map key type %s", expr, key)
		}
		val, err := ParseType(s[end+1:])
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(key, val), nil
	}
	return nil, fmt.Errorf("unknown type %q", expr)
}

// ParseTypes resolves every name of args.
func ParseTypes(args []string) ([]reflect.Type, error) {
	out := make([]reflect.Type, 0, len(args))
	for i, a := range args {
		t, err := ParseType(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// matchBracket returns the index of the ']' matching the '[' at open.
func matchBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
