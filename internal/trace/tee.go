package trace

import "errors"

// tee sends every event to all of its tracers.
type tee struct {
	level Level
	out   []Tracer
}

// Tee combines tracers. Each one gets its own copy of an event.
func Tee(level Level, tracers ...Tracer) Tracer {
	if len(tracers) == 1 {
		return tracers[0]
	}
	return &tee{level: level, out: tracers}
}

func (t *tee) Emit(ev *Event) {
	for _, tr := range t.out {
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *tee) Flush() error {
	var errs []error
	for _, tr := range t.out {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *tee) Close() error {
	var errs []error
	for _, tr := range t.out {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

func (t *tee) Level() Level  { return t.level }
func (t *tee) Enabled() bool { return t.level > LevelOff }

// FindBuffer returns the Buffer inside t, if any.
func FindBuffer(t Tracer) (*Buffer, bool) {
	switch v := t.(type) {
	case *Buffer:
		return v, true
	case *tee:
		for _, inner := range v.out {
			if b, ok := FindBuffer(inner); ok {
				return b, true
			}
		}
	}
	return nil, false
}
