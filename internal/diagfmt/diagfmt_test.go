package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"ctfmt/internal/diag"
	"ctfmt/internal/diagfmt"
	"ctfmt/internal/source"
)

func missingClose() *diag.Diagnostic {
	tpl := source.MustTemplate("x {0")
	return diag.New(diag.FmtUnexpectedEnd, tpl, 2, 4, 4, "unexpected end of the format string").
		WithEdit("}     -> the end of the replacement-field", source.Point(4), "}").
		WithFixit("[0-9] -> continuation of the arg-id").
		WithOrigin("greeting")
}

func bagOf(ds ...*diag.Diagnostic) *diag.Bag {
	b := diag.NewBag(len(ds) + 1)
	for _, d := range ds {
		b.Add(d)
	}
	return b
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	opts := diagfmt.PrettyOpts{ShowFixits: true, ShowPreview: true}
	if err := diagfmt.Pretty(&buf, bagOf(missingClose()), opts); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "greeting: error[FMT1001]: unexpected end of the format string\n" +
		"    x {0\n" +
		"      ~~^\n" +
		"        }     -> the end of the replacement-field\n" +
		"        [0-9] -> continuation of the arg-id\n" +
		"    = fixed: x {0}\n"
	if got := buf.String(); got != want {
		t.Errorf("Pretty mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyHidesFixitsAndTruncates(t *testing.T) {
	var buf bytes.Buffer
	if err := diagfmt.Pretty(&buf, bagOf(missingClose(), missingClose()), diagfmt.PrettyOpts{Max: 1}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "replacement-field") {
		t.Errorf("fix-its printed without ShowFixits:\n%s", out)
	}
	if !strings.HasSuffix(out, "... and 1 more diagnostic(s)\n") {
		t.Errorf("missing truncation note:\n%s", out)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	opts := diagfmt.JSONOpts{IncludeFixits: true, IncludePreviews: true}
	if err := diagfmt.JSON(&buf, bagOf(missingClose()), opts); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "FMT1001" || d.Origin != "greeting" || d.Location.Caret != 4 || d.Location.Begin != 2 {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if len(d.Fixits) != 2 || d.Fixits[0].Edit == nil || d.Fixits[1].Edit != nil {
		t.Fatalf("fixits = %+v", d.Fixits)
	}
	if d.Fixits[0].Edit.Preview != "x {0}" {
		t.Errorf("preview = %q", d.Fixits[0].Edit.Preview)
	}
}

func TestShort(t *testing.T) {
	var buf bytes.Buffer
	if err := diagfmt.Short(&buf, bagOf(missingClose())); err != nil {
		t.Fatalf("Short: %v", err)
	}
	want := "FMT1001 greeting:4 unexpected end of the format string\n"
	if buf.String() != want {
		t.Errorf("Short = %q, want %q", buf.String(), want)
	}
}

func TestSarif(t *testing.T) {
	var buf bytes.Buffer
	meta := diagfmt.SarifRunMeta{ToolName: "ctfmt", ToolVersion: "test", InvocationArgs: []string{"ctfmt", "check"}}
	if err := diagfmt.Sarif(&buf, bagOf(missingClose()), meta); err != nil {
		t.Fatalf("Sarif: %v", err)
	}
	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID string `json:"ruleId"`
				Fixes  []any  `json:"fixes"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log %+v", log)
	}
	run := log.Runs[0]
	if len(run.Tool.Driver.Rules) != 1 || run.Tool.Driver.Rules[0].ID != "FMT1001" {
		t.Errorf("rules = %+v", run.Tool.Driver.Rules)
	}
	if len(run.Results) != 1 || run.Results[0].RuleID != "FMT1001" || len(run.Results[0].Fixes) != 1 {
		t.Errorf("results = %+v", run.Results)
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"pretty", "short", "json", "sarif"} {
		f, err := diagfmt.ParseFormat(name)
		if err != nil || f.String() != name {
			t.Errorf("ParseFormat(%q) = %v, %v", name, f, err)
		}
	}
	if _, err := diagfmt.ParseFormat("xml"); err == nil {
		t.Errorf("ParseFormat(xml) succeeded")
	}
}
