package testkit

import (
	"strings"
	"testing"

	"rxlint/internal/diag"
	"rxlint/internal/source"
)

func TestCheckDiagnosticSpans(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.php", []byte("<?php\npreg_match('/[\\d\\w]/', $s);\n"))
	literal := source.Span{File: id, Start: 17, End: 27}
	token := source.Span{File: id, Start: 20, End: 22}

	good := diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.RxGreedyClass,
		Primary:  token,
		Notes:    []diag.Note{{Span: literal, Msg: "pattern literal"}},
		Fixes:    []diag.Fix{{Title: `remove \d`, Edits: []diag.FixEdit{{Span: token, OldText: `\d`}}}},
	}

	tests := []struct {
		name   string
		mutate func(d *diag.Diagnostic)
		errSub string
	}{
		{name: "valid"},
		{
			name:   "beyond content",
			mutate: func(d *diag.Diagnostic) { d.Notes[0].Span.End = 400 },
			errSub: "beyond content",
		},
		{
			name:   "reversed",
			mutate: func(d *diag.Diagnostic) { d.Primary = source.Span{File: id, Start: 22, End: 20} },
			errSub: "ends before it starts",
		},
		{
			name:   "not covered by note",
			mutate: func(d *diag.Diagnostic) { d.Notes[0].Span = source.Span{File: id, Start: 0, End: 5} },
			errSub: "not covered",
		},
		{
			name:   "stale old text",
			mutate: func(d *diag.Diagnostic) { d.Fixes[0].Edits[0].OldText = `\w` },
			errSub: "old text",
		},
		{
			name:   "unknown file",
			mutate: func(d *diag.Diagnostic) { d.Primary.File = 7 },
			errSub: "unknown file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := good
			d.Notes = append([]diag.Note(nil), good.Notes...)
			d.Fixes = []diag.Fix{{Title: good.Fixes[0].Title, Edits: append([]diag.FixEdit(nil), good.Fixes[0].Edits...)}}
			if tt.mutate != nil {
				tt.mutate(&d)
			}
			err := CheckDiagnosticSpans(fs, []diag.Diagnostic{d})
			if tt.errSub == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errSub) {
				t.Fatalf("error = %v, want substring %q", err, tt.errSub)
			}
		})
	}
}
