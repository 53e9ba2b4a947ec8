package diagfmt

import (
	"encoding/json"
	"io"
	"sort"
	"strings"

	"ctfmt/internal/diag"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	CommandLine         string `json:"commandLine,omitempty"`
	ExecutionSuccessful bool   `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	ByteOffset uint32        `json:"byteOffset"`
	ByteLength uint32        `json:"byteLength"`
	Snippet    *sarifMessage `json:"snippet,omitempty"`
}

type sarifFix struct {
	Description     sarifMessage          `json:"description"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArtifact      `json:"artifactLocation"`
	Replacements     []sarifReplacement `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifRegion  `json:"deletedRegion"`
	InsertedContent sarifMessage `json:"insertedContent"`
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0).
// Offsets are relative to the template; the artifact URI is the origin.
func Sarif(w io.Writer, bag *diag.Bag, meta SarifRunMeta) error {
	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: meta.ToolName, Version: meta.ToolVersion}},
		Results: make([]sarifResult, 0),
	}
	if run.Tool.Driver.Name == "" {
		run.Tool.Driver.Name = "ctfmt"
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{
			CommandLine:         strings.Join(meta.InvocationArgs, " "),
			ExecutionSuccessful: true,
		}}
	}

	rules := make(map[diag.Code]bool)
	if bag != nil {
		for _, d := range bag.Items() {
			rules[d.Code] = true
			run.Results = append(run.Results, sarifResultOf(d))
		}
	}
	codes := make([]diag.Code, 0, len(rules))
	for c := range rules {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	for _, c := range codes {
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
			ID:               c.ID(),
			ShortDescription: sarifMessage{Text: c.Title()},
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{Version: sarifVersion, Schema: sarifSchema, Runs: []sarifRun{run}})
}

func sarifResultOf(d *diag.Diagnostic) sarifResult {
	uri := d.Origin
	if uri == "" {
		uri = "template"
	}
	sp := d.Primary()
	res := sarifResult{
		RuleID:  d.Code.ID(),
		Level:   "error",
		Message: sarifMessage{Text: d.Message},
		Locations: []sarifLocation{{PhysicalLocation: sarifPhysical{
			ArtifactLocation: sarifArtifact{URI: uri},
			Region: sarifRegion{
				ByteOffset: sp.Start,
				ByteLength: sp.Len(),
				Snippet:    &sarifMessage{Text: d.Template},
			},
		}}},
	}
	for _, f := range d.Fixits {
		if f.Edit == nil {
			continue
		}
		res.Fixes = append(res.Fixes, sarifFix{
			Description: sarifMessage{Text: strings.TrimSpace(f.Label)},
			ArtifactChanges: []sarifArtifactChange{{
				ArtifactLocation: sarifArtifact{URI: uri},
				Replacements: []sarifReplacement{{
					DeletedRegion:   sarifRegion{ByteOffset: f.Edit.Span.Start, ByteLength: f.Edit.Span.Len()},
					InsertedContent: sarifMessage{Text: f.Edit.NewText},
				}},
			}},
		})
	}
	return res
}
