package driver

// Status reports what happened to a template.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "checking"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	default:
		return ""
	}
}

// Final reports whether the template was checked, successfully or not.
func (s Status) Final() bool {
	return s == StatusDone || s == StatusError
}

// Event is sent on Options.Events as templates move through Check.
// An empty Origin carries a manifest-level status in Note.
type Event struct {
	Origin string
	Status Status
	Cached bool
	Note   string
}

type emitter chan<- Event

func (e emitter) send(ev Event) {
	if e != nil {
		e <- ev
	}
}
