package trace

import "time"

// Kind is the event type.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	return nameOf(uint8(k), "begin", "end", "point")
}

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeDriver  Scope = iota + 1 // whole CLI command
	ScopePass                     // collect, load, lint, baseline, fix
	ScopeFile                     // one host file
	ScopeLiteral                  // one regex literal
)

func (s Scope) String() string {
	return nameOf(uint8(s), "driver", "pass", "file", "literal")
}

// nameOf maps a 1-based enum value onto names.
func nameOf(v uint8, names ...string) string {
	if v == 0 || int(v) > len(names) {
		return "unknown"
	}
	return names[v-1]
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Name     string // e.g. "lint", "file:src/a.php"
	Detail   string
	Dur      time.Duration // end events only
	Extra    map[string]string
}
