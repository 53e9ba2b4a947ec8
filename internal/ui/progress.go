package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"ctfmt/internal/driver"
)

// maxVisible bounds the template list; finished entries scroll away first.
const maxVisible = 12

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []templateItem
	index   map[string]int
	note    string
	width   int
	done    bool
}

type templateItem struct {
	origin string
	status driver.Status
	cached bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders check progress.
// Templates appear as their queued events arrive.
func NewProgressModel(title string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		index:   make(map[string]int),
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	statusStyles = map[driver.Status]lipgloss.Style{
		driver.StatusQueued:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		driver.StatusWorking: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		driver.StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		driver.StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

const statusWidth = 12

// tally counts finished, failed and cached templates.
type tally struct{ finished, failed, cached int }

func (m *progressModel) tally() tally {
	var t tally
	for _, item := range m.items {
		if !item.status.Final() {
			continue
		}
		t.finished++
		if item.status == driver.StatusError {
			t.failed++
		}
		if item.cached {
			t.cached++
		}
	}
	return t
}

func (m *progressModel) View() string {
	header := m.title
	if m.note != "" {
		header += " (" + m.note + ")"
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	vis := m.visible()
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range vis {
		label := item.status.String()
		if item.cached && item.status.Final() {
			label += "*"
		}
		cell := statusStyles[item.status].Render(fmt.Sprintf("%*s", statusWidth, label))
		fmt.Fprintf(&b, "  %s %s\n", cell, truncate(item.origin, nameWidth))
	}
	if hidden := len(m.items) - len(vis); hidden > 0 {
		fmt.Fprintf(&b, "  %*s %d more\n", statusWidth, "", hidden)
	}

	t := m.tally()
	fmt.Fprintf(&b, "\n  %d/%d checked, %d failed, %d cached\n", t.finished, len(m.items), t.failed, t.cached)
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

// visible prefers templates still in flight, then failures, then the rest.
func (m *progressModel) visible() []templateItem {
	if len(m.items) <= maxVisible {
		return m.items
	}
	out := make([]templateItem, 0, maxVisible)
	for _, want := range []driver.Status{driver.StatusWorking, driver.StatusError, driver.StatusQueued, driver.StatusDone} {
		for _, item := range m.items {
			if len(out) == maxVisible {
				return out
			}
			if item.status == want {
				out = append(out, item)
			}
		}
	}
	return out
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// applyEvent records ev; a final status is never replaced by a later one.
func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.Origin == "" {
		if ev.Note != "" {
			m.note = ev.Note
		}
		return nil
	}
	idx, ok := m.index[ev.Origin]
	if !ok {
		idx = len(m.items)
		m.index[ev.Origin] = idx
		m.items = append(m.items, templateItem{origin: ev.Origin})
	}
	if item := &m.items[idx]; !item.status.Final() {
		item.status, item.cached = ev.Status, ev.Cached
	}
	return m.prog.SetPercent(float64(m.tally().finished) / float64(len(m.items)))
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}
