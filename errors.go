package ctfmt

import (
	"errors"

	"ctfmt/internal/diag"
)

var (
	// ErrArgCount is returned when a plan is rendered with the wrong number
	// of arguments.
	ErrArgCount = errors.New("ctfmt: argument count mismatch")
	// ErrArgType is returned when an argument's type differs from the one
	// the plan was compiled for.
	ErrArgType = errors.New("ctfmt: argument type mismatch")
)

// Error is a template that failed to compile. Error() renders the message,
// the template and a caret line.
type Error struct {
	diag *diag.Diagnostic
}

func (e *Error) Error() string {
	return e.diag.Error()
}

// Message is the first line of the diagnostic.
func (e *Error) Message() string {
	return e.diag.Message
}

// Offset is the byte offset of the caret in the template.
func (e *Error) Offset() int {
	return int(e.diag.Caret)
}

// Code is the stable diagnostic id, e.g. "IDX2005".
func (e *Error) Code() string {
	return e.diag.Code.ID()
}

// Fixits lists the suggestions printed under the caret.
func (e *Error) Fixits() []string {
	out := make([]string, 0, len(e.diag.Fixits))
	for _, f := range e.diag.Fixits {
		out = append(out, f.Label)
	}
	return out
}

// Diagnostic exposes the full diagnostic to the tools of this module.
func (e *Error) Diagnostic() *diag.Diagnostic {
	return e.diag
}
