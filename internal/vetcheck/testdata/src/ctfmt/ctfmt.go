package ctfmt

import (
	"io"

	"ctfmt/internal/types"
)

type Char = types.Char

type Plan struct{}

func Sprintf(template string, args ...any) (string, error)           { return "", nil }
func Append(dst []byte, template string, args ...any) ([]byte, error) { return dst, nil }
func Fprintf(w io.Writer, template string, args ...any) (int, error)  { return 0, nil }
func CompileFor(template string, samples ...any) (*Plan, error)       { return nil, nil }
