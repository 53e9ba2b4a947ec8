// Package types maps Go argument types onto the small set of canonical kinds
// the formatters understand.
package types

// Kind is the canonical category of an argument.
type Kind uint8

const (
	// Invalid marks a type with no formatter.
	Invalid Kind = iota
	Bool
	KindChar
	Int
	Int64
	Uint
	Uint64
	Float32
	Float64
	String
	Pointer
	Range
	Map
	Time
	Custom
)

var kindNames = [...]string{
	Invalid:  "invalid",
	Bool:     "bool",
	KindChar: "char",
	Int:      "int",
	Int64:    "int64",
	Uint:     "uint",
	Uint64:   "uint64",
	Float32:  "float32",
	Float64:  "float64",
	String:   "string",
	Pointer:  "pointer",
	Range:    "range",
	Map:      "map",
	Time:     "time",
	Custom:   "custom",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsInteger reports whether k is one of the four integer kinds.
func (k Kind) IsInteger() bool {
	switch k {
	case Int, Int64, Uint, Uint64:
		return true
	}
	return false
}

// IsSigned is true for Int and Int64.
func (k Kind) IsSigned() bool {
	return k == Int || k == Int64
}

// IsFloat is true for Float32 and Float64.
func (k Kind) IsFloat() bool {
	return k == Float32 || k == Float64
}
