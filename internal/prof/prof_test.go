package prof_test

import (
	"os"
	"path/filepath"
	"testing"

	"ctfmt/internal/prof"
)

func TestProfilerWritesFiles(t *testing.T) {
	dir := t.TempDir()
	paths := prof.Paths{
		CPU:   filepath.Join(dir, "cpu.pprof"),
		Mem:   filepath.Join(dir, "mem.pprof"),
		Trace: filepath.Join(dir, "run.trace"),
	}
	if !paths.Enabled() {
		t.Fatal("paths reported disabled")
	}
	p, err := prof.Start(paths)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	for _, path := range []string{paths.CPU, paths.Mem, paths.Trace} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s: %v", filepath.Base(path), err)
		}
	}
}

func TestStartBadPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no", "such", "cpu.pprof")
	if _, err := prof.Start(prof.Paths{CPU: missing}); err == nil {
		t.Fatal("Start accepted an unwritable path")
	}
	var nilProfiler *prof.Profiler
	if err := nilProfiler.Stop(); err != nil {
		t.Fatalf("nil Stop: %v", err)
	}
}
