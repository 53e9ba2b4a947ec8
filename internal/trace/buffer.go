package trace

import (
	"io"
	"sync"
)

// Buffer keeps the most recent events in memory and dumps them on demand.
type Buffer struct {
	mu     sync.Mutex
	level  Level
	size   int
	events []Event
	next   int // slot to overwrite once events is full
}

// NewBuffer keeps up to size events; size <= 0 means 4096.
func NewBuffer(size int, level Level) *Buffer {
	if size <= 0 {
		size = 4096
	}
	return &Buffer{level: level, size: size, events: make([]Event, 0, min(size, 256))}
}

func (b *Buffer) Emit(ev *Event) {
	if !b.level.ShouldEmit(ev.Scope) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	stored := *ev
	stored.Seq = NextSeq()
	if len(b.events) < b.size {
		b.events = append(b.events, stored)
		return
	}
	b.events[b.next] = stored
	b.next = (b.next + 1) % b.size
}

// Events returns the kept events, oldest first.
func (b *Buffer) Events() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Event, 0, len(b.events))
	out = append(out, b.events[b.next:]...)
	return append(out, b.events[:b.next]...)
}

// Dump writes the kept events to w.
func (b *Buffer) Dump(w io.Writer, format Format) error {
	for _, ev := range b.Events() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (b *Buffer) Flush() error  { return nil }
func (b *Buffer) Close() error  { return nil }
func (b *Buffer) Level() Level  { return b.level }
func (b *Buffer) Enabled() bool { return b.level > LevelOff }
