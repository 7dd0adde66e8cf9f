package diag

import "rxlint/internal/source"

// Reporter receives finished diagnostics from the lint passes.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// identity of a diagnostic for UniqueReporter: the same finding reached
// twice, e.g. one literal seen by two extractors.
type identity struct {
	code    Code
	sev     Severity
	primary source.Span
	msg     string
}

// UniqueReporter forwards the first diagnostic of each code, severity,
// primary span and message; later copies are counted and dropped.
type UniqueReporter struct {
	next    Reporter
	seen    map[identity]struct{}
	dropped int
}

// NewUniqueReporter wraps next.
func NewUniqueReporter(next Reporter) *UniqueReporter {
	return &UniqueReporter{next: next, seen: make(map[identity]struct{})}
}

func (r *UniqueReporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	id := identity{code: d.Code, sev: d.Severity, primary: d.Primary, msg: d.Message}
	if _, dup := r.seen[id]; dup {
		r.dropped++
		return
	}
	r.seen[id] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}

// Dropped returns how many duplicates were filtered.
func (r *UniqueReporter) Dropped() int {
	if r == nil {
		return 0
	}
	return r.dropped
}
