package driver_test

import (
	"reflect"
	"testing"
	"time"

	"ctfmt"
	"ctfmt/internal/driver"
)

func TestParseValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	seven := 7
	tests := []struct {
		typ  string
		lit  string
		want any
	}{
		{"bool", "true", true},
		{"int8", "-12", int8(-12)},
		{"uint16", "0x10", uint16(16)},
		{"float32", "1.5", float32(1.5)},
		{"string", "a, b", "a, b"},
		{"char", "é", ctfmt.Char('é')},
		{"time.Time", "2024-03-01T12:30:00Z", ts},
		{"time.Duration", "1m30s", 90 * time.Second},
		{"[]int", "[1, 2, 3]", []int{1, 2, 3}},
		{"[2]string", "a,b", [2]string{"a", "b"}},
		{"[]byte", "hi", []byte("hi")},
		{"map[string]int", "a=1, b=2", map[string]int{"a": 1, "b": 2}},
		{"*int", "7", &seven},
		{"*int", "nil", (*int)(nil)},
		{"[]int", "", []int{}},
	}
	for _, tt := range tests {
		typ, err := driver.ParseType(tt.typ)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", tt.typ, err)
		}
		got, err := driver.ParseValue(typ, tt.lit)
		if err != nil {
			t.Errorf("ParseValue(%s, %q): %v", tt.typ, tt.lit, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseValue(%s, %q) = %#v, want %#v", tt.typ, tt.lit, got, tt.want)
		}
	}
}

func TestParseValueErrors(t *testing.T) {
	tests := []struct{ typ, lit string }{
		{"int8", "300"},
		{"char", "ab"},
		{"char", ""},
		{"bool", "maybe"},
		{"[2]int", "1"},
		{"map[string]int", "a"},
		{"any", "x"},
	}
	for _, tt := range tests {
		typ, err := driver.ParseType(tt.typ)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", tt.typ, err)
		}
		if _, err := driver.ParseValue(typ, tt.lit); err == nil {
			t.Errorf("ParseValue(%s, %q) succeeded", tt.typ, tt.lit)
		}
	}
}

func TestParseValuesCount(t *testing.T) {
	if _, err := driver.ParseValues([]reflect.Type{reflect.TypeFor[int]()}, nil); err == nil {
		t.Errorf("ParseValues accepted a missing value")
	}
}
