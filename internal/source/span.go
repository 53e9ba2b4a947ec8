package source

import "strconv"

// Span is the half-open byte range [Start, End) of a template. An empty
// span is an insertion point.
type Span struct {
	Start uint32
	End   uint32
}

// Point is the insertion point before byte off.
func Point(off uint32) Span {
	return Span{Start: off, End: off}
}

func (s Span) IsPoint() bool { return s.Start == s.End }

func (s Span) Len() uint32 { return s.End - s.Start }

// Contains reports whether byte off lies inside the span.
func (s Span) Contains(off uint32) bool {
	return s.Start <= off && off < s.End
}

// Overlaps reports whether edits at s and o would touch the same text. Two
// insertion points at one offset overlap: their order is ambiguous.
func (s Span) Overlaps(o Span) bool {
	switch {
	case s.IsPoint() && o.IsPoint():
		return s.Start == o.Start
	case s.IsPoint():
		return o.Contains(s.Start)
	case o.IsPoint():
		return s.Contains(o.Start)
	}
	return s.Start < o.End && o.Start < s.End
}

// In reports whether the span fits a text of n bytes.
func (s Span) In(n int) bool {
	return s.Start <= s.End && int(s.End) <= n
}

func (s Span) String() string {
	if s.IsPoint() {
		return "@" + strconv.FormatUint(uint64(s.Start), 10)
	}
	return strconv.FormatUint(uint64(s.Start), 10) + "-" + strconv.FormatUint(uint64(s.End), 10)
}
