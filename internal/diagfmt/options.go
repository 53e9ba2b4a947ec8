package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"ctfmt/internal/diag"
)

// Format selects the output of Write.
type Format uint8

const (
	FormatPretty Format = iota
	FormatShort
	FormatJSON
	FormatSarif
)

func (f Format) String() string {
	switch f {
	case FormatShort:
		return "short"
	case FormatJSON:
		return "json"
	case FormatSarif:
		return "sarif"
	default:
		return "pretty"
	}
}

// ParseFormat maps a CLI flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty":
		return FormatPretty, nil
	case "short":
		return FormatShort, nil
	case "json":
		return FormatJSON, nil
	case "sarif":
		return FormatSarif, nil
	}
	return FormatPretty, fmt.Errorf("unknown diagnostics format %q", s)
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	ShowFixits  bool
	ShowPreview bool // шаблон после применения первой правки
	Max         int  // 0 - без ограничения
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	Max             int // обрезка вывода, не Bag
	IncludeFixits   bool
	IncludePreviews bool
	IncludeRendered bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}

// Options bundles the per-format settings for Write.
type Options struct {
	Pretty PrettyOpts
	JSON   JSONOpts
	Sarif  SarifRunMeta
}

// Write renders bag in the requested format.
func Write(w io.Writer, bag *diag.Bag, f Format, opts Options) error {
	switch f {
	case FormatShort:
		return Short(w, bag)
	case FormatJSON:
		return JSON(w, bag, opts.JSON)
	case FormatSarif:
		return Sarif(w, bag, opts.Sarif)
	default:
		return Pretty(w, bag, opts.Pretty)
	}
}
