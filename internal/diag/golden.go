package diag

import (
	"fmt"
	"sort"
	"strings"
)

// FormatShort renders diagnostics one per line, sorted, in the form
//
//	CODE origin:offset message
//
// Used for golden files and the `--format short` CLI output.
func FormatShort(diags []*Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	sorted := make([]*Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i], sorted[j]
		if di.Origin != dj.Origin {
			return di.Origin < dj.Origin
		}
		if di.Caret != dj.Caret {
			return di.Caret < dj.Caret
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range sorted {
		origin := d.Origin
		if origin == "" {
			origin = "<template>"
		}
		fmt.Fprintf(&b, "%s %s:%d %s", d.Code.ID(), origin, d.Caret, d.Message)
		if i < len(sorted)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
