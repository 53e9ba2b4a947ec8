package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"ctfmt/internal/diag"
)

type palette struct {
	header *color.Color
	code   *color.Color
	origin *color.Color
	caret  *color.Color
	fixit  *color.Color
	note   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		header: color.New(color.FgRed, color.Bold),
		code:   color.New(color.FgYellow),
		origin: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgGreen, color.Bold),
		fixit:  color.New(color.FgCyan),
		note:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.header, p.code, p.origin, p.caret, p.fixit, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty prints each diagnostic as a colored header followed by the
// caret-anchored rendering:
//
//	origin: error[FMT1001]: message
//	    template
//	    ~~~^
//	    fix-it
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	p := newPalette(opts.Color)
	items := bag.Items()
	shown := len(items)
	if opts.Max > 0 && shown > opts.Max {
		shown = opts.Max
	}

	var sb strings.Builder
	for i, d := range items[:shown] {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writePretty(&sb, p, d, opts)
	}
	if rest := len(items) - shown; rest > 0 {
		sb.WriteString(p.note.Sprintf("... and %d more diagnostic(s)\n", rest))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writePretty(sb *strings.Builder, p palette, d *diag.Diagnostic, opts PrettyOpts) {
	if d.Origin != "" {
		sb.WriteString(p.origin.Sprint(d.Origin))
		sb.WriteString(": ")
	}
	sb.WriteString(p.header.Sprint("error"))
	sb.WriteString(p.code.Sprintf("[%s]", d.Code.ID()))
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	sb.WriteByte('\n')

	lines := strings.Split(strings.TrimSuffix(d.Render(), "\n"), "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			continue
		case i == 1:
			fmt.Fprintf(sb, "    %s\n", line)
		case i == 2:
			fmt.Fprintf(sb, "    %s\n", p.caret.Sprint(line))
		case opts.ShowFixits:
			fmt.Fprintf(sb, "    %s\n", p.fixit.Sprint(line))
		}
	}
	if opts.ShowPreview {
		if fixed, ok := preview(d); ok {
			sb.WriteString(p.note.Sprintf("    = fixed: %s\n", fixed))
		}
	}
}
