// Package testkit holds shared test helpers.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rxlint/internal/diag"
	"rxlint/internal/source"
)

// CheckDiagnosticSpans verifies the span invariants of lint output:
//  1. every primary, note and edit span is ordered and inside its file
//  2. a greedy-class diagnostic is non-empty and covered by its first note
//  3. every fix edit's OldText matches the file content under its span
func CheckDiagnosticSpans(fs *source.FileSet, diags []diag.Diagnostic) error {
	if fs == nil {
		return fmt.Errorf("nil file set")
	}
	for i := range diags {
		d := &diags[i]
		if err := checkSpan(fs, d.Primary); err != nil {
			return fmt.Errorf("%s primary: %w", d.Code.ID(), err)
		}
		for _, n := range d.Notes {
			if err := checkSpan(fs, n.Span); err != nil {
				return fmt.Errorf("%s note %q: %w", d.Code.ID(), n.Msg, err)
			}
		}
		if d.Code == diag.RxGreedyClass {
			if d.Primary.Empty() {
				return fmt.Errorf("%s: empty primary span %v", d.Code.ID(), d.Primary)
			}
			if len(d.Notes) == 0 || !d.Notes[0].Span.Contains(d.Primary) {
				return fmt.Errorf("%s: primary %v is not covered by the literal note", d.Code.ID(), d.Primary)
			}
		}
		for _, fx := range d.Fixes {
			for _, e := range fx.Edits {
				if err := checkSpan(fs, e.Span); err != nil {
					return fmt.Errorf("%s fix %q: %w", d.Code.ID(), fx.Title, err)
				}
				if got := fs.Text(e.Span); e.OldText != "" && got != e.OldText {
					return fmt.Errorf("%s fix %q: old text %q, file has %q", d.Code.ID(), fx.Title, e.OldText, got)
				}
			}
		}
	}
	return nil
}

func checkSpan(fs *source.FileSet, sp source.Span) error {
	if int(sp.File) >= fs.Len() {
		return fmt.Errorf("span %v points to unknown file", sp)
	}
	f := fs.Get(sp.File)
	if sp.End < sp.Start {
		return fmt.Errorf("span %v ends before it starts", sp)
	}
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if sp.End > size {
		return fmt.Errorf("span %v beyond content: %d > %d", sp, sp.End, size)
	}
	return nil
}
