package diagfmt

import (
	"ctfmt/internal/diag"
	"ctfmt/internal/fix"
)

// preview returns the template after the first mechanical fix-it.
func preview(d *diag.Diagnostic) (string, bool) {
	return fix.Preview(d)
}

// previewFixit applies a single fix-it of d, ignoring its siblings.
func previewFixit(d *diag.Diagnostic, f diag.Fixit) (string, bool) {
	if f.Edit == nil {
		return "", false
	}
	only := *d
	only.Fixits = []diag.Fixit{f}
	return fix.Preview(&only)
}
