package formatter

import (
	"reflect"
	"strconv"

	"ctfmt/internal/argid"
	"ctfmt/internal/diag"
	"ctfmt/internal/spec"
	"ctfmt/internal/types"
)

type pointerFormatter struct{}

func (pointerFormatter) Fields() spec.Fields {
	return spec.Address
}

func (f pointerFormatter) Create(in spec.Input, _ types.Type, begin uint32, st argid.State, _ Context) (Result, *diag.Diagnostic) {
	status, d := spec.Parse(in, begin, f.Fields(), st, spec.Defaults())
	if d != nil {
		return Result{}, d
	}
	if d := status.Spec.CheckType(in, "pP", "a pointer argument"); d != nil {
		return Result{}, d
	}
	return result(status, pointerFormat{spec: status.Spec}), nil
}

type pointerFormat struct {
	spec spec.Spec
}

func addressOf(v any) uint64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan, reflect.Func, reflect.Map, reflect.Slice:
		return uint64(rv.Pointer())
	}
	return 0
}

func (c pointerFormat) Append(dst []byte, arg any, env Env) []byte {
	prefix := []byte("0x")
	digits := strconv.AppendUint(nil, addressOf(arg), 16)
	if c.spec.Type == 'P' {
		prefix[1] = 'X'
		upper(digits)
	}
	return padNumber(dst, prefix, digits, c.spec, widthOf(c.spec, env))
}
