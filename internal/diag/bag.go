package diag

import (
	"cmp"
	"math"
	"slices"

	"rxlint/internal/source"
)

// Bag is an ordered, size-limited list of diagnostics. It is not safe for
// concurrent use; the driver keeps one bag per file.
type Bag struct {
	items []Diagnostic
	limit int
}

// NewBag returns a bag that accepts up to limit diagnostics. The limit is
// clamped to [0, 65535].
func NewBag(limit int) *Bag {
	limit = max(0, min(limit, math.MaxUint16))
	return &Bag{items: make([]Diagnostic, 0, min(limit, 64)), limit: limit}
}

// Add appends d unless the bag is full; the result reports whether d was kept.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.limit {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int { return len(b.items) }

// Items exposes the backing slice. Callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports whether any diagnostic is error severity.
func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

// HasWarnings reports whether any diagnostic is warning severity or worse.
func (b *Bag) HasWarnings() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevWarning })
}

// Merge appends other's diagnostics, raising the limit so none are lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil || len(other.items) == 0 {
		return
	}
	b.limit = max(b.limit, min(len(b.items)+len(other.items), math.MaxUint16))
	room := b.limit - len(b.items)
	b.items = append(b.items, other.items[:min(room, len(other.items))]...)
}

// Sort orders by file, start, end, then most severe first and by code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, compareDiagnostics)
}

func compareDiagnostics(x, y Diagnostic) int {
	return cmp.Or(
		cmp.Compare(x.Primary.File, y.Primary.File),
		cmp.Compare(x.Primary.Start, y.Primary.Start),
		cmp.Compare(x.Primary.End, y.Primary.End),
		cmp.Compare(y.Severity, x.Severity),
		cmp.Compare(x.Code.ID(), y.Code.ID()),
	)
}

// Dedup drops diagnostics whose code and primary span were already seen.
// The first occurrence wins.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	seen := make(map[key]struct{}, len(b.items))
	b.Filter(func(d Diagnostic) bool {
		k := key{d.Code, d.Primary}
		if _, ok := seen[k]; ok {
			return false
		}
		seen[k] = struct{}{}
		return true
	})
}

// Filter keeps the diagnostics for which keep returns true, in order.
func (b *Bag) Filter(keep func(Diagnostic) bool) {
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool { return !keep(d) })
}

// Transform replaces every diagnostic with fn(d).
func (b *Bag) Transform(fn func(Diagnostic) Diagnostic) {
	for i, d := range b.items {
		b.items[i] = fn(d)
	}
}
