package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"ctfmt/internal/driver"
)

// RunCheck drives the progress view while work produces events; work must
// close the channel (driver.Check does) and its result is returned after
// the view exits.
func RunCheck[T any](out io.Writer, title string, work func(events chan<- driver.Event) (T, error)) (T, error) {
	events := make(chan driver.Event, 256)
	type outcome struct {
		res T
		err error
	}
	outcomeCh := make(chan outcome, 1)
	go func() {
		res, err := work(events)
		outcomeCh <- outcome{res: res, err: err}
	}()

	program := tea.NewProgram(NewProgressModel(title, events), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	// дочитываем, если окно закрыли раньше
	go func() {
		for range events {
		}
	}()
	o := <-outcomeCh
	if uiErr != nil {
		return o.res, uiErr
	}
	return o.res, o.err
}
