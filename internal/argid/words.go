package argid

import "strconv"

var ordinals = [...]string{
	"first", "second", "third", "fourth", "fifth",
	"sixth", "seventh", "eighth", "ninth", "tenth",
}

var cardinals = [...]string{
	"zero", "one", "two", "three", "four",
	"five", "six", "seven", "eight", "nine",
}

// Ordinal names the zero-based index i: 0 -> "first", 10 -> "11-th".
func Ordinal(i int32) string {
	if i >= 0 && int(i) < len(ordinals) {
		return ordinals[i]
	}
	return strconv.FormatInt(int64(i)+1, 10) + "-th"
}

// Cardinal names a count: 0 -> "zero", 12 -> "12".
func Cardinal(n int32) string {
	if n >= 0 && int(n) < len(cardinals) {
		return cardinals[n]
	}
	return strconv.FormatInt(int64(n), 10)
}

// OutOfBoundsMessage is shared by every place that resolves an index.
func OutOfBoundsMessage(index, count int32) string {
	verb := " arguments are"
	if count == 1 {
		verb = " argument is"
	}
	return "using the " + Ordinal(index) + " argument while " + Cardinal(count) + verb + " available"
}
