// Package observ measures the phases of a ctfmt command for --timings.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Timer collects phases: loading manifests, compiling templates, writing
// the report. Safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []phase
}

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	items int
	note  string
	done  bool
}

// Stop ends a phase; items counts what it processed (templates, files).
type Stop func(items int, note string)

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{} }

// Start opens a phase. Calling the returned Stop more than once keeps the
// first measurement.
func (t *Timer) Start(name string) Stop {
	t.mu.Lock()
	t.phases = append(t.phases, phase{name: name, start: time.Now()})
	idx := len(t.phases) - 1
	t.mu.Unlock()

	return func(items int, note string) {
		t.mu.Lock()
		defer t.mu.Unlock()
		p := &t.phases[idx]
		if p.done {
			return
		}
		p.done = true
		p.dur = time.Since(p.start)
		p.items, p.note = items, note
	}
}

// PhaseReport: фаза в виде, пригодном для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Items      int     `json:"items,omitempty"`
	PerItemUS  float64 `json:"per_item_us,omitempty"`
	Note       string  `json:"note,omitempty"`
	Open       bool    `json:"open,omitempty"`
}

// Report: все фазы и суммарное время.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report снимает копию фаз. Unfinished phases are reported as open with
// their duration so far.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	report := Report{Phases: make([]PhaseReport, 0, len(t.phases))}
	var total time.Duration
	for _, p := range t.phases {
		dur := p.dur
		if !p.done {
			dur = time.Since(p.start)
		}
		total += dur
		pr := PhaseReport{Name: p.name, DurationMS: millis(dur), Items: p.items, Note: p.note, Open: !p.done}
		if p.items > 0 {
			pr.PerItemUS = float64(dur) / float64(time.Microsecond) / float64(p.items)
		}
		report.Phases = append(report.Phases, pr)
	}
	report.TotalMS = millis(total)
	return report
}

// Summary renders the report as an aligned table.
func (report Report) Summary() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.3f ms", p.Name, p.DurationMS)
		if p.Items > 0 {
			fmt.Fprintf(&sb, "  %6d items  %8.1f µs/item", p.Items, p.PerItemUS)
		}
		if p.Open {
			sb.WriteString("  (running)")
		}
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-12s %9.3f ms\n", "total", report.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
