package formatter

import (
	"reflect"

	"ctfmt/internal/argid"
	"ctfmt/internal/diag"
	"ctfmt/internal/field"
	"ctfmt/internal/spec"
	"ctfmt/internal/types"
)

// customFormatter hands the raw spec text to the type's own ParseFormat.
type customFormatter struct{}

func (customFormatter) Fields() spec.Fields {
	return 0
}

func (customFormatter) Create(in spec.Input, t types.Type, begin uint32, st argid.State, _ Context) (Result, *diag.Diagnostic) {
	tpl := in.Tpl
	end := field.SpecEnd(tpl, begin)
	if tpl.AtEnd(end) || t.Go == nil {
		// Без типа времени исполнения проверяется только граница.
		return Result{Offset: end, State: st}, nil
	}
	raw := tpl.Text()[begin:end]
	compiled, err := zeroOf(t.Go).ParseFormat(raw)
	if err != nil {
		last := end
		if last > begin {
			last--
		}
		return Result{}, diag.New(diag.SpcCustom, tpl, begin, begin, last, err.Error())
	}
	return Result{Offset: end, State: st, Compiled: customFormat{compiled: compiled}}, nil
}

func zeroOf(t reflect.Type) types.Formattable {
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface().(types.Formattable)
	}
	return reflect.Zero(t).Interface().(types.Formattable)
}

type customFormat struct {
	compiled any
}

func (c customFormat) Append(dst []byte, arg any, _ Env) []byte {
	f, ok := arg.(types.Formattable)
	if !ok {
		return dst
	}
	return f.AppendFormat(dst, c.compiled)
}
