package trace

import (
	"maps"
	"sync/atomic"
	"time"
)

var seqCounter, spanCounter atomic.Uint64

// NextSeq returns the next global event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span ID.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// Span is an open operation. The zero Span and spans from a disabled tracer
// are valid and record nothing.
type Span struct {
	t      Tracer
	base   Event
	extras map[string]string
}

func recording(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && accepts(t.Level(), scope)
}

// Begin emits a begin event and returns the span; parent is 0 for roots.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !recording(t, scope) {
		return &Span{}
	}
	s := &Span{t: t, base: Event{
		Time:     time.Now(),
		Scope:    scope,
		SpanID:   NextSpanID(),
		ParentID: parent,
		Name:     name,
	}}
	ev := s.base
	ev.Kind = KindSpanBegin
	t.Emit(&ev)
	return s
}

func (s *Span) live() bool {
	return s != nil && s.t != nil && s.t.Enabled()
}

// End emits the end event with detail and the collected extras.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	ev := s.base
	ev.Kind = KindSpanEnd
	ev.Time = time.Now()
	ev.Dur = ev.Time.Sub(s.base.Time)
	ev.Detail = detail
	ev.Extra = maps.Clone(s.extras)
	s.t.Emit(&ev)
	return ev.Dur
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extras == nil {
		s.extras = map[string]string{}
	}
	s.extras[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.base.SpanID
}

// Point emits a single instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !recording(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		SpanID:   NextSpanID(),
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	})
}
