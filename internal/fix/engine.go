package fix

import (
	"errors"
	"fmt"
	"sort"

	"ctfmt/internal/diag"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first edit of the first diagnostic.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies the first edit of every diagnostic unless it
	// overlaps an earlier one.
	ApplyModeAll
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode ApplyMode
}

// AppliedFix records a successfully applied edit.
type AppliedFix struct {
	Code    diag.Code
	Message string
	Label   string
	Edit    diag.Edit
}

// SkippedFix captures a skipped edit with a reason.
type SkippedFix struct {
	Label  string
	Reason string
}

// ApplyResult holds the rewritten template and what happened to every edit.
type ApplyResult struct {
	Template string
	Applied  []AppliedFix
	Skipped  []SkippedFix
}

type candidate struct {
	diag  *diag.Diagnostic
	fixit diag.Fixit
	order int
}

// Apply rewrites template with the edits carried by diagnostics.
// Diagnostics produced for another template are skipped.
func Apply(template string, diagnostics []*diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Template: template,
		Applied:  make([]AppliedFix, 0),
		Skipped:  make([]SkippedFix, 0),
	}

	candidates, skips := gatherCandidates(template, diagnostics)
	result.Skipped = append(result.Skipped, skips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	selected := candidates
	if opts.Mode == ApplyModeOnce {
		selected = candidates[:1]
		for _, c := range candidates[1:] {
			result.Skipped = append(result.Skipped, SkippedFix{Label: c.fixit.Label, Reason: "only one fix applied per round"})
		}
	}

	accepted := make([]candidate, 0, len(selected))
	for _, c := range selected {
		if conflictsWithExisting(accepted, c) {
			result.Skipped = append(result.Skipped, SkippedFix{
				Label:  c.fixit.Label,
				Reason: "conflicts with previously applied edits",
			})
			continue
		}
		accepted = append(accepted, c)
	}

	out, err := applyEdits(template, accepted)
	if err != nil {
		return result, err
	}
	result.Template = out
	for _, c := range accepted {
		result.Applied = append(result.Applied, AppliedFix{
			Code:    c.diag.Code,
			Message: c.diag.Message,
			Label:   c.fixit.Label,
			Edit:    *c.fixit.Edit,
		})
	}
	return result, nil
}

// Preview returns the template of d with its first edit applied.
func Preview(d *diag.Diagnostic) (string, bool) {
	if d == nil {
		return "", false
	}
	res, err := Apply(d.Template, []*diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeOnce})
	if err != nil {
		return "", false
	}
	return res.Template, true
}

func gatherCandidates(template string, diagnostics []*diag.Diagnostic) ([]candidate, []SkippedFix) {
	cands := make([]candidate, 0)
	skips := make([]SkippedFix, 0)
	order := 0
	for _, d := range diagnostics {
		if d == nil {
			continue
		}
		taken := false
		for _, f := range d.Fixits {
			switch {
			case f.Edit == nil:
				continue
			case d.Template != template:
				skips = append(skips, SkippedFix{Label: f.Label, Reason: "diagnostic belongs to another template"})
			case taken:
				// Fix-its of one diagnostic are alternatives.
				skips = append(skips, SkippedFix{Label: f.Label, Reason: "alternative to an earlier suggestion"})
			default:
				cands = append(cands, candidate{diag: d, fixit: f, order: order})
				order++
				taken = true
			}
		}
	}
	return cands, skips
}

// sortCandidates orders by caret, then by insertion order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Caret != dj.Caret {
			return di.Caret < dj.Caret
		}
		return candidates[i].order < candidates[j].order
	})
}

func conflictsWithExisting(existing []candidate, c candidate) bool {
	for _, prev := range existing {
		if prev.fixit.Edit.Span.Overlaps(c.fixit.Edit.Span) {
			return true
		}
	}
	return false
}

// applyEdits rewrites right to left so earlier offsets stay valid.
func applyEdits(template string, accepted []candidate) (string, error) {
	edits := make([]diag.Edit, 0, len(accepted))
	for _, c := range accepted {
		edits = append(edits, *c.fixit.Edit)
	}
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Span.Start == edits[j].Span.Start {
			return edits[i].Span.End > edits[j].Span.End
		}
		return edits[i].Span.Start > edits[j].Span.Start
	})
	working := []byte(template)
	for _, e := range edits {
		if !e.Span.In(len(working)) {
			return template, fmt.Errorf("fix: edit span %s out of range", e.Span)
		}
		start, end := int(e.Span.Start), int(e.Span.End)
		suffix := append([]byte(nil), working[end:]...)
		working = append(append(working[:start], e.NewText...), suffix...)
	}
	return string(working), nil
}
