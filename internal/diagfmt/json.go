package diagfmt

import (
	"encoding/json"
	"io"

	"ctfmt/internal/diag"
)

// LocationJSON holds the underline of a diagnostic as byte offsets.
type LocationJSON struct {
	Begin uint32 `json:"begin"`
	Caret uint32 `json:"caret"`
	End   uint32 `json:"end"`
}

// EditJSON представляет одно редактирование для JSON
type EditJSON struct {
	Start   uint32 `json:"start"`
	End     uint32 `json:"end"`
	NewText string `json:"new_text"`
	Preview string `json:"preview,omitempty"`
}

// FixitJSON представляет подсказку под кареткой
type FixitJSON struct {
	Label string    `json:"label"`
	Edit  *EditJSON `json:"edit,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Origin   string       `json:"origin,omitempty"`
	Template string       `json:"template"`
	Location LocationJSON `json:"location"`
	Fixits   []FixitJSON  `json:"fixits,omitempty"`
	Rendered string       `json:"rendered,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Truncated   int              `json:"truncated,omitempty"`
}

// BuildDiagnosticsOutput converts bag into its JSON form.
func BuildDiagnosticsOutput(bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0)}
	if bag == nil {
		return out
	}
	items := bag.Items()
	shown := len(items)
	if opts.Max > 0 && shown > opts.Max {
		shown = opts.Max
	}
	for _, d := range items[:shown] {
		out.Diagnostics = append(out.Diagnostics, diagnosticJSON(d, opts))
	}
	out.Count = len(out.Diagnostics)
	out.Truncated = len(items) - shown
	return out
}

func diagnosticJSON(d *diag.Diagnostic, opts JSONOpts) DiagnosticJSON {
	dj := DiagnosticJSON{
		Code:     d.Code.ID(),
		Title:    d.Code.Title(),
		Message:  d.Message,
		Origin:   d.Origin,
		Template: d.Template,
		Location: LocationJSON{Begin: d.Begin, Caret: d.Caret, End: d.End},
	}
	if opts.IncludeFixits {
		for _, f := range d.Fixits {
			fj := FixitJSON{Label: f.Label}
			if f.Edit != nil {
				fj.Edit = &EditJSON{Start: f.Edit.Span.Start, End: f.Edit.Span.End, NewText: f.Edit.NewText}
				if opts.IncludePreviews {
					if fixed, ok := previewFixit(d, f); ok {
						fj.Edit.Preview = fixed
					}
				}
			}
			dj.Fixits = append(dj.Fixits, fj)
		}
	}
	if opts.IncludeRendered {
		dj.Rendered = d.Render()
	}
	return dj
}

// JSON writes bag as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, opts))
}
