package ctfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"ctfmt/internal/types"
)

type memoEntry struct {
	plan *Plan
	err  error
}

var (
	interner = types.NewInterner()
	plans    sync.Map // string -> memoEntry
	inflight singleflight.Group
)

// memoKey identifies a template together with the dynamic argument types.
func memoKey(template string, args []any) string {
	var b strings.Builder
	b.Grow(len(template) + 4*len(args) + 1)
	for i, t := range typesOf(args) {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(interner.Intern(t)), 10))
	}
	b.WriteByte(0)
	b.WriteString(template)
	return b.String()
}

// lookup returns the plan of template for args, compiling it once.
func lookup(template string, args []any) (*Plan, error) {
	key := memoKey(template, args)
	if e, ok := plans.Load(key); ok {
		me := e.(memoEntry)
		return me.plan, me.err
	}
	v, _, _ := inflight.Do(key, func() (any, error) {
		p, err := CompileFor(template, args...)
		me := memoEntry{plan: p, err: err}
		plans.Store(key, me)
		return me, nil
	})
	me := v.(memoEntry)
	return me.plan, me.err
}

// Sprintf compiles template for the types of args (once per template and
// type list) and renders it.
func Sprintf(template string, args ...any) (string, error) {
	p, err := lookup(template, args)
	if err != nil {
		return "", err
	}
	return p.Format(args...)
}

// Append is Sprintf appending to dst.
func Append(dst []byte, template string, args ...any) ([]byte, error) {
	p, err := lookup(template, args)
	if err != nil {
		return dst, err
	}
	return p.Append(dst, args...)
}

// Fprintf is Sprintf writing to w.
func Fprintf(w io.Writer, template string, args ...any) (int, error) {
	b, err := Append(nil, template, args...)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	if err != nil {
		return n, fmt.Errorf("ctfmt: write: %w", err)
	}
	return n, nil
}
