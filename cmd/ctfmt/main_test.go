package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

// execute runs the root command with a fresh output buffer.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--color", "off"}, args...))
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRenderCommand(t *testing.T) {
	out, _, err := execute(t, "render", "-n=false", "{:>5}|{:x}|{}", "int:42", "uint8:255", "[]string:a,b")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `   42|ff|["a", "b"]` + "\n"; out != want {
		t.Errorf("render = %q, want %q", out, want)
	}
}

func TestRenderReportsDiagnostic(t *testing.T) {
	_, errOut, err := execute(t, "render", "{:d}", "string:x")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.Contains(errOut, "error[TYP3004]") || !strings.Contains(errOut, "^") {
		t.Errorf("stderr lacks diagnostic:\n%s", errOut)
	}
}

func TestPlanCommand(t *testing.T) {
	out, _, err := execute(t, "plan", "--format", "json", "-o", "", "a{}b", "int")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	var dump planDump
	if err := json.Unmarshal([]byte(out), &dump); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(dump.Tokens) != 3 || dump.Tokens[1].Kind != "field" || !strings.HasPrefix(dump.Tokens[1].Type, "int") {
		t.Errorf("tokens = %+v", dump.Tokens)
	}

	path := filepath.Join(t.TempDir(), "plan.mp")
	if _, _, err := execute(t, "plan", "--format", "msgpack", "-o", path, "a{}b", "int"); err != nil {
		t.Fatalf("plan msgpack: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var back planDump
	if err := msgpack.Unmarshal(raw, &back); err != nil {
		t.Fatalf("msgpack decode: %v", err)
	}
	if !reflect.DeepEqual(back, dump) {
		t.Errorf("msgpack dump = %+v, want %+v", back, dump)
	}
}

func TestPlanTable(t *testing.T) {
	out, _, err := execute(t, "plan", "--format", "pretty", "-o", "", "x={}", "string")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	for _, want := range []string{"KIND", "field", `"x="`, "string"} {
		if !strings.Contains(out, want) {
			t.Errorf("table lacks %q:\n%s", want, out)
		}
	}
	if h, f := strings.Index(out, "KIND"), strings.Index(out, "field"); h > f {
		t.Errorf("header after first data row:\n%s", out)
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "m.yaml")
	content := "templates:\n  - name: good\n    text: \"{}\"\n    args: [int]\n  - name: bad\n    text: \"{0\"\n    args: [int]\n"
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, "check", "--format", "short", "--fix", "--ui", "off", manifest)
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.Contains(out, "FMT1001 "+manifest+":bad:2 ") {
		t.Errorf("short output:\n%s", out)
	}
	if !strings.Contains(out, manifest+`:bad: fixed: "{0}"`) {
		t.Errorf("repair output:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil || payload.Tool != "ctfmt" {
		t.Errorf("payload = %+v, err = %v", payload, err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	if err := os.WriteFile(good, []byte("locale = \"de\"\njobs = 3\n[cache]\nenabled = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(good, true)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Locale != "de" || cfg.Jobs != 3 || !cfg.Cache.Enabled {
		t.Errorf("cfg = %+v", cfg)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[cache]\nsize = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(bad, true); err == nil || !strings.Contains(err.Error(), "cache.size") {
		t.Errorf("unknown key not reported: %v", err)
	}

	missing := filepath.Join(dir, "missing.toml")
	if _, err := loadConfig(missing, false); err != nil {
		t.Errorf("implicit missing config: %v", err)
	}
	if _, err := loadConfig(missing, true); err == nil {
		t.Errorf("explicit missing config accepted")
	}
}

func TestParseRenderArgs(t *testing.T) {
	types, lits, err := parseRenderArgs([]string{"int:1", "time.Time:2024-01-02T03:04:05Z", "map[string]int:a=1"})
	if err != nil {
		t.Fatalf("parseRenderArgs: %v", err)
	}
	if len(types) != 3 || lits[1] != "2024-01-02T03:04:05Z" || lits[2] != "a=1" {
		t.Errorf("types=%v lits=%q", types, lits)
	}
	if _, _, err := parseRenderArgs([]string{"42"}); err == nil {
		t.Errorf("missing type accepted")
	}
}

func TestParseSwitch(t *testing.T) {
	for in, want := range map[string]switchValue{"": switchAuto, "ON": switchOn, " off ": switchOff, "never": switchOff} {
		got, err := parseSwitch("ui", in)
		if err != nil || got != want {
			t.Errorf("parseSwitch(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := parseSwitch("ui", "sometimes"); err == nil || !strings.Contains(err.Error(), "--ui") {
		t.Errorf("invalid value accepted: %v", err)
	}
	called := false
	if !switchAuto.enabled(func() bool { called = true; return true }) || !called {
		t.Errorf("auto did not consult the detector")
	}
	if switchOff.enabled(func() bool { t.Fatal("detector called for off"); return true }) {
		t.Errorf("off enabled")
	}
}

func TestResolveColor(t *testing.T) {
	if on, err := resolveColor("always", os.Stdout); err != nil || !on {
		t.Errorf("always = %v, %v", on, err)
	}
	if _, err := resolveColor("rainbow", os.Stdout); err == nil {
		t.Errorf("invalid color accepted")
	}
}
