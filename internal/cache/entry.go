package cache

import (
	"rxlint/internal/diag"
	"rxlint/internal/source"
)

// Entry stores the diagnostics of one file. Spans are byte offsets into the
// file; the FileID is restored by the reader.
type Entry struct {
	Schema uint16
	Path   string
	Diags  []Diag
}

type Diag struct {
	Code     uint16
	Severity uint8
	Message  string
	Start    uint32
	End      uint32
	Notes    []Note
	Fixes    []Fix
}

type Note struct {
	Start uint32
	End   uint32
	Msg   string
}

type Fix struct {
	Title string
	Edits []Edit
}

type Edit struct {
	Start   uint32
	End     uint32
	NewText string
	OldText string
}

// FromDiagnostics converts the diagnostics of one file into an Entry.
func FromDiagnostics(path string, diags []diag.Diagnostic) *Entry {
	e := &Entry{Schema: schemaVersion, Path: path, Diags: make([]Diag, 0, len(diags))}
	for _, d := range diags {
		cd := Diag{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, Note{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			cf := Fix{Title: f.Title}
			for _, ed := range f.Edits {
				cf.Edits = append(cf.Edits, Edit{
					Start:   ed.Span.Start,
					End:     ed.Span.End,
					NewText: ed.NewText,
					OldText: ed.OldText,
				})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		e.Diags = append(e.Diags, cd)
	}
	return e
}

// Diagnostics rebuilds the diagnostics of the entry for file.
func (e *Entry) Diagnostics(file source.FileID) []diag.Diagnostic {
	span := func(start, end uint32) source.Span {
		return source.Span{File: file, Start: start, End: end}
	}
	out := make([]diag.Diagnostic, 0, len(e.Diags))
	for _, cd := range e.Diags {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), span(cd.Start, cd.End), cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(span(n.Start, n.End), n.Msg)
		}
		for _, f := range cd.Fixes {
			edits := make([]diag.FixEdit, 0, len(f.Edits))
			for _, ed := range f.Edits {
				edits = append(edits, diag.FixEdit{Span: span(ed.Start, ed.End), NewText: ed.NewText, OldText: ed.OldText})
			}
			d = d.WithFix(f.Title, edits...)
		}
		out = append(out, d)
	}
	return out
}
