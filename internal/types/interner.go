package types

import (
	"reflect"
	"sync"
)

// Interner hands out small stable ids for runtime types. Ids start at 1.
type Interner struct {
	mu  sync.RWMutex
	ids map[reflect.Type]uint32
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{ids: make(map[reflect.Type]uint32)}
}

// Intern returns the id of t, assigning one on first use. nil maps to 0.
func (in *Interner) Intern(t reflect.Type) uint32 {
	if t == nil {
		return 0
	}
	in.mu.RLock()
	id, ok := in.ids[t]
	in.mu.RUnlock()
	if ok {
		return id
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok = in.ids[t]; ok {
		return id
	}
	id = uint32(len(in.ids)) + 1
	in.ids[t] = id
	return id
}

// Len returns the number of interned types.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.ids)
}
