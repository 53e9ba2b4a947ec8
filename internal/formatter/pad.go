package formatter

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"ctfmt/internal/spec"
)

// columns estimates the display width of b in terminal cells.
func columns(b []byte) int {
	return runewidth.StringWidth(string(b))
}

func appendFill(dst []byte, fill rune, n int) []byte {
	for range n {
		dst = utf8.AppendRune(dst, fill)
	}
	return dst
}

// pad appends body aligned in width cells. def is used when the spec has no
// alignment; zero padding is not handled here.
func pad(dst, body []byte, s spec.Spec, width int, def spec.Align) []byte {
	n := width - columns(body)
	if n <= 0 {
		return append(dst, body...)
	}
	align := s.Align
	if align == spec.AlignDefault || align == spec.AlignZeroPadding {
		align = def
	}
	fill := s.Fill
	if s.Align == spec.AlignZeroPadding {
		fill = ' '
	}
	switch align {
	case spec.AlignLeft:
		dst = append(dst, body...)
		return appendFill(dst, fill, n)
	case spec.AlignCenter:
		dst = appendFill(dst, fill, n/2)
		dst = append(dst, body...)
		return appendFill(dst, fill, n-n/2)
	default:
		dst = appendFill(dst, fill, n)
		return append(dst, body...)
	}
}

// padNumber is pad for numbers: with zero padding the zeros go between the
// sign/prefix and the digits.
func padNumber(dst, prefix, digits []byte, s spec.Spec, width int) []byte {
	if s.Align == spec.AlignZeroPadding {
		dst = append(dst, prefix...)
		for n := width - len(prefix) - columns(digits); n > 0; n-- {
			dst = append(dst, '0')
		}
		return append(dst, digits...)
	}
	body := make([]byte, 0, len(prefix)+len(digits))
	body = append(body, prefix...)
	body = append(body, digits...)
	return pad(dst, body, s, width, spec.AlignRight)
}

// truncate cuts b to at most prec display cells.
func truncate(b []byte, prec int) []byte {
	if prec < 0 {
		return b
	}
	used := 0
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		w := runewidth.RuneWidth(r)
		if used+w > prec {
			return b[:i]
		}
		used += w
		i += size
	}
	return b
}
