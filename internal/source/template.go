package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Template is an immutable format string.
//
// Reading one byte past the last one yields 0, which plays the role of the
// terminator: scanners compare against it instead of checking the length
// on every step.
type Template struct {
	text string
	size uint32
}

// NewTemplate wraps text. Templates longer than 4GiB are rejected.
func NewTemplate(text string) (Template, error) {
	size, err := safecast.Conv[uint32](len(text))
	if err != nil {
		return Template{}, fmt.Errorf("template length overflow: %w", err)
	}
	return Template{text: text, size: size}, nil
}

// MustTemplate is NewTemplate that panics, for tests and constants.
func MustTemplate(text string) Template {
	t, err := NewTemplate(text)
	if err != nil {
		panic(err)
	}
	return t
}

// At returns the byte at off or 0 when off is at or past the end.
func (t Template) At(off uint32) byte {
	if off >= t.size {
		return 0
	}
	return t.text[off]
}

// AtEnd reports whether off points at the terminator.
func (t Template) AtEnd(off uint32) bool {
	return off >= t.size
}

func (t Template) Len() uint32 {
	return t.size
}

func (t Template) Text() string {
	return t.text
}

// Slice returns the text covered by sp, clamped to the template.
func (t Template) Slice(sp Span) string {
	start, end := sp.Start, sp.End
	if end > t.size {
		end = t.size
	}
	if start > end {
		start = end
	}
	return t.text[start:end]
}

// IndexFrom returns the offset of the first c at or after off, or Len().
func (t Template) IndexFrom(off uint32, c byte) uint32 {
	for ; off < t.size; off++ {
		if t.text[off] == c {
			return off
		}
	}
	return t.size
}
