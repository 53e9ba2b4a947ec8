package argid

import (
	"fmt"

	"fortio.org/safecast"
)

// Mode is the indexing mode of a template. Once a template picked Manual or
// Automatic it keeps it.
type Mode uint8

const (
	Unknown Mode = iota
	Manual
	Automatic
)

func (m Mode) String() string {
	switch m {
	case Unknown:
		return "unknown"
	case Manual:
		return "manual"
	case Automatic:
		return "automatic"
	}
	return "invalid"
}

// State is threaded by value through the parser; every transition returns
// a new State.
type State struct {
	Mode Mode
	// Next is the next automatic index; meaningless in manual mode.
	Next int32
	// Count is the number of supplied arguments.
	Count int32
}

// NewState returns the initial state for count arguments.
func NewState(count int) (State, error) {
	c, err := safecast.Conv[int32](count)
	if err != nil {
		return State{}, fmt.Errorf("argument count overflow: %w", err)
	}
	return State{Mode: Unknown, Count: c}, nil
}

func (s State) withMode(m Mode) State {
	s.Mode = m
	return s
}

func (s State) advance() State {
	s.Next++
	return s
}
