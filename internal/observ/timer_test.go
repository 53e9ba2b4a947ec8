package observ_test

import (
	"strings"
	"sync"
	"testing"

	"ctfmt/internal/observ"
)

func TestTimerReport(t *testing.T) {
	tm := observ.NewTimer()
	stopLoad := tm.Start("load")
	stopLoad(2, "manifests")
	stopLoad(99, "ignored")
	tm.Start("compile")(10, "")
	tm.Start("render")

	r := tm.Report()
	if len(r.Phases) != 3 || r.Phases[0].Name != "load" || r.Phases[1].Items != 10 {
		t.Fatalf("report = %+v", r)
	}
	if r.Phases[0].Items != 2 || r.Phases[0].Note != "manifests" {
		t.Errorf("second stop overwrote the phase: %+v", r.Phases[0])
	}
	if r.Phases[0].Open || !r.Phases[2].Open {
		t.Errorf("open flags: %+v", r.Phases)
	}
	s := r.Summary()
	for _, want := range []string{"timings:", "load", "// manifests", "items", "(running)", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary lacks %q:\n%s", want, s)
		}
	}
}

func TestTimerConcurrent(t *testing.T) {
	tm := observ.NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Start("compile")(1, "")
		}()
	}
	wg.Wait()
	r := tm.Report()
	if len(r.Phases) != 8 {
		t.Fatalf("phases = %d", len(r.Phases))
	}
	for _, p := range r.Phases {
		if p.Open || p.Items != 1 {
			t.Errorf("phase = %+v", p)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := observ.NewTimer().Report(); r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Errorf("report = %+v", r)
	}
}
