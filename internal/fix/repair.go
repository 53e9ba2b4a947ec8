package fix

import (
	"ctfmt/internal/diag"
	"ctfmt/internal/parser"
	"ctfmt/internal/types"
)

// DefaultRounds bounds Repair when the caller passes zero.
const DefaultRounds = 8

// Repair holds the outcome of repeated parse and fix rounds.
type Repair struct {
	Template string
	Applied  []AppliedFix
	// Remaining is the diagnostic that stopped the loop, nil when the
	// template compiles.
	Remaining *diag.Diagnostic
}

// Fixed reports whether the repaired template compiles.
func (r *Repair) Fixed() bool {
	return r.Remaining == nil
}

// RepairTemplate parses text, applies the first mechanical fix-it and parses
// again until the template is valid, no edit is offered or rounds run out.
func RepairTemplate(text string, args []types.Type, rounds int) *Repair {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	rep := &Repair{Template: text}
	for range rounds {
		_, d := parser.Parse(rep.Template, args)
		if d == nil {
			rep.Remaining = nil
			return rep
		}
		rep.Remaining = d
		res, err := Apply(rep.Template, []*diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeOnce})
		if err != nil {
			return rep
		}
		rep.Template = res.Template
		rep.Applied = append(rep.Applied, res.Applied...)
	}
	_, rep.Remaining = parser.Parse(rep.Template, args)
	return rep
}
