package diag

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// MaxRendered bounds the size of a rendered diagnostic in bytes.
const MaxRendered = 4096

// maxMessage bounds the message line so the template and caret always fit.
const maxMessage = MaxRendered / 2

const ellipsis = "…"

// Render produces the caret-anchored text:
//
//	message
//	template
//	<begin spaces>~~~^~~
//	<caret spaces>fix-it
//
// Control characters and invalid UTF-8 in the echoed template are shown as
// <XX>; columns are counted in terminal cells. A message longer than half of
// MaxRendered is cut with an ellipsis. When the result would still exceed
// MaxRendered the fix-its are dropped first, then the template is windowed
// around the caret and finally the text is cut with an ellipsis.
func (d *Diagnostic) Render() string {
	n := len(d.Template)
	msg := capMessage(d.Message)
	if out := d.layout(msg, 0, n, true); len(out) <= MaxRendered {
		return out
	}
	if out := d.layout(msg, 0, n, false); len(out) <= MaxRendered {
		return out
	}

	// Каждый байт шаблона может занять до 4 колонок в эхо и в подчёркивании.
	budget := (MaxRendered - len(msg) - 32) / 8
	if budget < 16 {
		budget = 16
	}
	caret := min(int(d.Caret), n)
	ws := max(0, caret-budget/2)
	we := min(n, ws+budget)
	ws = max(0, we-budget)
	for ws > 0 && !utf8.RuneStart(d.Template[ws]) {
		ws--
	}
	for we < n && !utf8.RuneStart(d.Template[we]) {
		we++
	}
	return truncate(d.layout(msg, ws, we, false))
}

func (d *Diagnostic) layout(msg string, ws, we int, withFixits bool) string {
	echo, cols := echoTemplate(d.Template[ws:we], ws > 0, we < len(d.Template))
	col := func(off uint32) int {
		o := int(off)
		switch {
		case o < ws:
			return cols[0]
		case o > we && we == len(d.Template):
			return cols[we-ws] + (o - we)
		case o > we:
			return cols[we-ws]
		}
		return cols[o-ws]
	}
	begin, caret, end := col(d.Begin), col(d.Caret), col(d.End)
	if begin > caret {
		begin = caret
	}

	var sb strings.Builder
	sb.WriteString(msg)
	sb.WriteByte('\n')
	sb.WriteString(echo)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", begin))
	sb.WriteString(strings.Repeat("~", caret-begin))
	sb.WriteByte('^')
	if end > caret {
		sb.WriteString(strings.Repeat("~", end-caret))
	}
	sb.WriteByte('\n')
	if withFixits {
		for _, f := range d.Fixits {
			sb.WriteString(strings.Repeat(" ", caret))
			sb.WriteString(f.Label)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// echoTemplate returns the printable form of s and the display column of
// every byte offset in s (plus one entry for len(s)).
func echoTemplate(s string, prefix, suffix bool) (string, []int) {
	var out strings.Builder
	cols := make([]int, len(s)+1)
	col := 0
	if prefix {
		out.WriteString(ellipsis)
		col = 1
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && size == 1) || unicode.IsControl(r) {
			for k := 0; k < size; k++ {
				cols[i+k] = col
				fmt.Fprintf(&out, "<%02X>", s[i+k])
				col += 4
			}
			i += size
			continue
		}
		for k := 0; k < size; k++ {
			cols[i+k] = col
		}
		out.WriteString(s[i : i+size])
		col += runewidth.RuneWidth(r)
		i += size
	}
	cols[len(s)] = col
	if suffix {
		out.WriteString(ellipsis)
	}
	return out.String(), cols
}

func capMessage(m string) string {
	if len(m) <= maxMessage {
		return m
	}
	cut := maxMessage - len(ellipsis)
	for cut > 0 && !utf8.RuneStart(m[cut]) {
		cut--
	}
	return m[:cut] + ellipsis
}

func truncate(s string) string {
	if len(s) <= MaxRendered {
		return s
	}
	cut := MaxRendered - len(ellipsis) - 1
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + ellipsis + "\n"
}
