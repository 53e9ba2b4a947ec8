package formatter

import (
	"bytes"
	"reflect"
	"sort"

	"ctfmt/internal/argid"
	"ctfmt/internal/diag"
	"ctfmt/internal/spec"
	"ctfmt/internal/types"
)

type rangeFormatter struct{}

// Fields omits ConsumeAll: an optional ":element-spec" may follow.
func (rangeFormatter) Fields() spec.Fields {
	return spec.FillAlign | spec.ClearBrackets | spec.Type
}

func (f rangeFormatter) Create(in spec.Input, t types.Type, begin uint32, st argid.State, _ Context) (Result, *diag.Diagnostic) {
	status, d := spec.Parse(in, begin, f.Fields(), st, spec.Defaults())
	if d != nil {
		return Result{}, d
	}
	s := status.Spec
	allowed := ""
	if t.Elem != nil && t.Elem.Kind == types.KindChar {
		allowed = "s"
	}
	if d := s.CheckType(in, allowed, "a range argument"); d != nil {
		return Result{}, d
	}
	elem, d := element(in, *t.Elem, status)
	if d != nil {
		return Result{}, d
	}
	return Result{Offset: elem.Offset, State: elem.State, Compiled: rangeFormat{spec: s, elem: elem.Compiled}}, nil
}

// element compiles the element formatter: from ":element-spec" when
// present, with defaults otherwise.
func element(in spec.Input, t types.Type, status spec.Status) (Result, *diag.Diagnostic) {
	off := status.Offset
	switch {
	case in.Tpl.AtEnd(off):
		return Result{Offset: off, State: status.State}, nil
	case in.Tpl.At(off) == ':':
		return Create(in, t, off+1, status.State, Context{InRange: true})
	}
	if d := spec.Trailing(in, off); d != nil {
		return Result{}, d
	}
	return Create(in, t, off, status.State, Context{InRange: true})
}

type rangeFormat struct {
	spec spec.Spec
	elem Compiled
}

func (c rangeFormat) Append(dst []byte, arg any, env Env) []byte {
	rv := reflect.ValueOf(arg)
	var body []byte
	if c.spec.Type == 's' {
		for i := 0; i < rv.Len(); i++ {
			body = appendRune(body, rv.Index(i).Interface())
		}
		return pad(dst, body, c.spec, widthOf(c.spec, env), spec.AlignLeft)
	}
	if !c.spec.ClearBrackets {
		body = append(body, '[')
	}
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			body = append(body, ", "...)
		}
		body = c.elem.Append(body, rv.Index(i).Interface(), env)
	}
	if !c.spec.ClearBrackets {
		body = append(body, ']')
	}
	return pad(dst, body, c.spec, widthOf(c.spec, env), spec.AlignLeft)
}

func appendRune(dst []byte, v any) []byte {
	s := spec.Defaults()
	s.Type = 'c'
	neg, mag := integerOf(v)
	return appendInteger(dst, neg, mag, s, Env{})
}

type mapFormatter struct{}

func (mapFormatter) Fields() spec.Fields {
	return spec.FillAlign | spec.ClearBrackets | spec.ConsumeAll
}

func (f mapFormatter) Create(in spec.Input, t types.Type, begin uint32, st argid.State, _ Context) (Result, *diag.Diagnostic) {
	status, d := spec.Parse(in, begin, f.Fields(), st, spec.Defaults())
	if d != nil {
		return Result{}, d
	}
	c := mapFormat{spec: status.Spec}
	// Ключи и значения форматируются по умолчанию, спецификация после них
	// не разбирается.
	if !in.Tpl.AtEnd(status.Offset) {
		key, d := Create(in, *t.Key, status.Offset, status.State, Context{InRange: true})
		if d != nil {
			return Result{}, d
		}
		val, d := Create(in, *t.Elem, status.Offset, status.State, Context{InRange: true})
		if d != nil {
			return Result{}, d
		}
		c.key, c.val = key.Compiled, val.Compiled
	}
	return result(status, c), nil
}

type mapFormat struct {
	spec spec.Spec
	key  Compiled
	val  Compiled
}

func (c mapFormat) Append(dst []byte, arg any, env Env) []byte {
	rv := reflect.ValueOf(arg)
	type entry struct{ key, val []byte }
	entries := make([]entry, 0, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		entries = append(entries, entry{
			key: c.key.Append(nil, it.Key().Interface(), env),
			val: c.val.Append(nil, it.Value().Interface(), env),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].key, entries[j].key) < 0
	})

	var body []byte
	if !c.spec.ClearBrackets {
		body = append(body, '{')
	}
	for i, e := range entries {
		if i > 0 {
			body = append(body, ", "...)
		}
		body = append(body, e.key...)
		body = append(body, ": "...)
		body = append(body, e.val...)
	}
	if !c.spec.ClearBrackets {
		body = append(body, '}')
	}
	return pad(dst, body, c.spec, widthOf(c.spec, env), spec.AlignLeft)
}
