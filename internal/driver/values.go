package driver

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"ctfmt"
)

var (
	charType     = reflect.TypeFor[ctfmt.Char]()
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
	errorType    = reflect.TypeFor[error]()
)

// ParseValue converts a command-line literal into a value of type t.
//
// Slices and arrays take comma separated elements, optionally wrapped in
// brackets; maps take k=v pairs. Pointers accept "nil" or a literal of
// the element type. Time values use RFC 3339.
func ParseValue(t reflect.Type, s string) (any, error) {
	v, err := parseValue(t, s)
	if err != nil {
		return nil, fmt.Errorf("parse %q as %s: %w", s, t, err)
	}
	return v.Interface(), nil
}

// ParseValues parses one literal per type.
func ParseValues(ts []reflect.Type, literals []string) ([]any, error) {
	if len(ts) != len(literals) {
		return nil, fmt.Errorf("%d values for %d argument types", len(literals), len(ts))
	}
	out := make([]any, len(ts))
	for i, t := range ts {
		v, err := ParseValue(t, literals[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseValue(t reflect.Type, s string) (reflect.Value, error) {
	v := reflect.New(t).Elem()
	switch t {
	case charType:
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 || size != len(s) || r == utf8.RuneError {
			return v, errors.New("want exactly one character")
		}
		v.SetInt(int64(r))
		return v, nil
	case timeType:
		tm, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return v, err
		}
		v.Set(reflect.ValueOf(tm))
		return v, nil
	case durationType:
		d, err := time.ParseDuration(s)
		if err != nil {
			return v, err
		}
		v.SetInt(int64(d))
		return v, nil
	case errorType:
		v.Set(reflect.ValueOf(errors.New(s)))
		return v, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return v, err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 0, t.Bits())
		if err != nil {
			return v, err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(s, 0, t.Bits())
		if err != nil {
			return v, err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return v, err
		}
		v.SetFloat(f)
	case reflect.String:
		v.SetString(s)
	case reflect.Pointer:
		if s == "nil" {
			return v, nil
		}
		elem, err := parseValue(t.Elem(), s)
		if err != nil {
			return v, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(elem)
		v.Set(p)
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			v.SetBytes([]byte(s))
			return v, nil
		}
		parts := splitList(s)
		v.Set(reflect.MakeSlice(t, len(parts), len(parts)))
		for i, p := range parts {
			ev, err := parseValue(t.Elem(), p)
			if err != nil {
				return v, err
			}
			v.Index(i).Set(ev)
		}
	case reflect.Array:
		parts := splitList(s)
		if len(parts) != t.Len() {
			return v, fmt.Errorf("want %d elements, got %d", t.Len(), len(parts))
		}
		for i, p := range parts {
			ev, err := parseValue(t.Elem(), p)
			if err != nil {
				return v, err
			}
			v.Index(i).Set(ev)
		}
	case reflect.Map:
		v.Set(reflect.MakeMap(t))
		for _, p := range splitList(s) {
			k, val, ok := strings.Cut(p, "=")
			if !ok {
				return v, fmt.Errorf("map entry %q: want key=value", p)
			}
			kv, err := parseValue(t.Key(), strings.TrimSpace(k))
			if err != nil {
				return v, err
			}
			vv, err := parseValue(t.Elem(), strings.TrimSpace(val))
			if err != nil {
				return v, err
			}
			v.SetMapIndex(kv, vv)
		}
	default:
		return v, fmt.Errorf("values of kind %s cannot be given on the command line", t.Kind())
	}
	return v, nil
}

func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
