package types_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	gotypes "go/types"
	"reflect"
	"testing"

	"ctfmt/internal/types"
)

// The same declarations are compiled below and type-checked from source.
type (
	goodString int64
	badString  int64
	badError   int64
	halfCustom int64
	custom     int64
)

func (goodString) String() string { return "" }
func (badString) String() int     { return 0 }
func (badError) Error() []byte    { return nil }

func (halfCustom) ParseFormat(string) (any, error)       { return nil, nil }
func (halfCustom) AppendFormat(dst []byte, _ any) string { return "" }
func (custom) ParseFormat(string) (any, error)           { return nil, nil }
func (custom) AppendFormat(dst []byte, _ any) []byte     { return dst }

const declSrc = `package p

type (
	goodString int64
	badString  int64
	badError   int64
	halfCustom int64
	custom     int64
)

func (goodString) String() string { return "" }
func (badString) String() int     { return 0 }
func (badError) Error() []byte    { return nil }

func (halfCustom) ParseFormat(string) (any, error)       { return nil, nil }
func (halfCustom) AppendFormat(dst []byte, _ any) string { return "" }
func (custom) ParseFormat(string) (any, error)           { return nil, nil }
func (custom) AppendFormat(dst []byte, _ any) []byte     { return dst }
`

func TestFromGoMatchesFromReflect(t *testing.T) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", declSrc, 0)
	if err != nil {
		t.Fatal(err)
	}
	pkg, err := new(gotypes.Config).Check("p", fset, []*ast.File{f}, nil)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		rt   reflect.Type
		kind types.Kind
	}{
		{"goodString", reflect.TypeFor[goodString](), types.String},
		{"badString", reflect.TypeFor[badString](), types.Int64},
		{"badError", reflect.TypeFor[badError](), types.Int64},
		{"halfCustom", reflect.TypeFor[halfCustom](), types.Int64},
		{"custom", reflect.TypeFor[custom](), types.Custom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := types.FromGo(pkg.Scope().Lookup(tt.name).Type())
			if !ok {
				t.Fatal("reported as interface")
			}
			if got.Kind != tt.kind {
				t.Errorf("FromGo = %v, want %v", got.Kind, tt.kind)
			}
			if rk := types.FromReflect(tt.rt).Kind; rk != got.Kind {
				t.Errorf("FromReflect = %v, FromGo = %v", rk, got.Kind)
			}
		})
	}
}
