package formatter

import (
	"fmt"
	"math"
	"reflect"

	"ctfmt/internal/scan"
	"ctfmt/internal/spec"
	"ctfmt/internal/types"
)

// signed splits i into sign and magnitude; MinInt64 is handled.
func signed(i int64) (bool, uint64) {
	if i < 0 {
		return true, uint64(-(i + 1)) + 1
	}
	return false, uint64(i)
}

// integerOf extracts an integer from any integer-like argument.
func integerOf(v any) (neg bool, mag uint64) {
	switch x := v.(type) {
	case int:
		return signed(int64(x))
	case int8:
		return signed(int64(x))
	case int16:
		return signed(int64(x))
	case int32:
		return signed(int64(x))
	case int64:
		return signed(x)
	case uint:
		return false, uint64(x)
	case uint8:
		return false, uint64(x)
	case uint16:
		return false, uint64(x)
	case uint32:
		return false, uint64(x)
	case uint64:
		return false, x
	case uintptr:
		return false, uint64(x)
	case types.Char:
		return signed(int64(x))
	case bool:
		if x {
			return false, 1
		}
		return false, 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signed(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return false, rv.Uint()
	case reflect.Bool:
		if rv.Bool() {
			return false, 1
		}
	}
	return false, 0
}

// floatOf extracts a float64 from a float argument.
func floatOf(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64 {
		return rv.Float()
	}
	return math.NaN()
}

// stringOf extracts the text of a string-like argument.
func stringOf(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.String:
		return rv.String()
	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8:
		return string(rv.Bytes())
	}
	return ""
}

// dimension turns an argument used as width or precision into a value in
// [0, MaxValue].
func dimension(v any) int {
	neg, mag := integerOf(v)
	switch {
	case neg:
		return 0
	case mag > scan.MaxValue:
		return scan.MaxValue
	}
	return int(mag)
}

func resolve(literal, arg int32, env Env) int {
	if arg == spec.NoArg {
		return int(literal)
	}
	if int(arg) >= len(env.Args) {
		return 0
	}
	return dimension(env.Args[arg])
}

// widthOf returns the effective width, 0 when none.
func widthOf(s spec.Spec, env Env) int {
	return resolve(s.Width, s.WidthArg, env)
}

// precisionOf returns the effective precision, -1 when none.
func precisionOf(s spec.Spec, env Env) int {
	if s.PrecisionArg == spec.NoArg {
		return int(s.Precision)
	}
	return resolve(0, s.PrecisionArg, env)
}
