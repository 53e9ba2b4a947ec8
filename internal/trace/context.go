package trace

import "context"

type nop struct{}

func (nop) Emit(*Event)   {}
func (nop) Flush() error  { return nil }
func (nop) Close() error  { return nil }
func (nop) Level() Level  { return LevelOff }
func (nop) Enabled() bool { return false }

// Nop drops every event.
var Nop Tracer = nop{}

type ctxKey struct{}

// carrier is what a context holds: the tracer and the innermost open span.
type carrier struct {
	t      Tracer
	parent uint64
	depth  uint8
}

func fromContext(ctx context.Context) carrier {
	if ctx != nil {
		if c, ok := ctx.Value(ctxKey{}).(carrier); ok {
			return c
		}
	}
	return carrier{t: Nop}
}

// WithTracer attaches t to ctx. A nil t means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, carrier{t: t})
}

// FromContext returns the tracer of ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return fromContext(ctx).t
}

// Parent returns the ID of the span opened by the nearest Start, or 0.
func Parent(ctx context.Context) uint64 {
	return fromContext(ctx).parent
}

// Start opens a span under the span of ctx and returns a context in which
// it is the parent. When the scope is filtered out by the level, ctx is
// returned unchanged.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	c := fromContext(ctx)
	s := begin(c.t, scope, name, c.parent, c.depth)
	if s == nil {
		return ctx, nil
	}
	c.parent = s.ID()
	c.depth++
	return context.WithValue(ctx, ctxKey{}, c), s
}
