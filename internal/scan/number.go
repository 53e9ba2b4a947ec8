package scan

import (
	"ctfmt/internal/source"
)

// MaxValue is the largest number accepted for arg-ids, widths and precisions.
const MaxValue = 2147483647

// Number is the result of scanning a decimal literal.
type Number struct {
	Value int32
	// End is the offset just past the last digit. On overflow scanning
	// continues, so End still covers the whole malformed literal.
	End uint32
	// Overflow is set when the literal does not fit MaxValue; OverflowAt is
	// the offset of the first digit that did not fit.
	Overflow   bool
	OverflowAt uint32
}

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Continue accumulates digits starting at off onto value, the value of the
// digit(s) the caller has already consumed.
func Continue(tpl source.Template, off uint32, value int32) Number {
	n := Number{Value: value}
	for ; IsDigit(tpl.At(off)); off++ {
		if n.Overflow {
			continue
		}
		v := int32(tpl.At(off) - '0')
		if value < MaxValue/10 || (value == MaxValue/10 && v <= MaxValue%10) {
			value = value*10 + v
			continue
		}
		n.Overflow = true
		n.OverflowAt = off
	}
	n.End = off
	if !n.Overflow {
		n.Value = value
	} else {
		n.Value = -1
	}
	return n
}

// Decimal scans a literal whose first digit is at start.
func Decimal(tpl source.Template, start uint32) Number {
	return Continue(tpl, start+1, int32(tpl.At(start)-'0'))
}
