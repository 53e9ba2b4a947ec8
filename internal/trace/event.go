package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	// KindPoint is an instant event (cache hit, diagnostic found).
	KindPoint
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string { return enumName(kindNames[:], int(k)) }

// Scope is the granularity of an event; lower values are coarser.
type Scope uint8

const (
	// ScopeDriver is a whole CLI command.
	ScopeDriver Scope = iota + 1
	// ScopeManifest is one manifest file.
	ScopeManifest
	// ScopeTemplate is one template compile.
	ScopeTemplate
	// ScopeField is one replacement field.
	ScopeField
)

var scopeNames = [...]string{
	ScopeDriver:   "driver",
	ScopeManifest: "manifest",
	ScopeTemplate: "template",
	ScopeField:    "field",
}

func (s Scope) String() string { return enumName(scopeNames[:], int(s)) }

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // global, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Depth    uint8  // nesting under Start
	Name     string // e.g. "check", "manifest:api.toml", "template:greet"
	Detail   string
	Elapsed  time.Duration // span end only
	Extra    map[string]string
}
