package diag

import (
	"testing"

	"rxlint/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/testdata/golden/sample.php", []byte("a\nb\n"), 0)
	otherFile := fs.Add("/workspace/lib/helper.php", []byte("x\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     RxMalformedClass,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     RxGreedyClass,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
		{
			Severity: SevWarning,
			Code:     RxGreedyClass,
			Message:  "third",
			Primary:  source.Span{File: otherFile, Start: 0, End: 1},
		},
	}

	expected := "warning RX1001 lib/helper.php:1:1 third\n" +
		"error RX1002 testdata/golden/sample.php:1:1 first line second\n" +
		"note RX1002 testdata/golden/sample.php:2:1 note line\n" +
		"warning RX1001 testdata/golden/sample.php:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortDiagnosticsBasename(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	id := fs.Add("/workspace/src/a.php", []byte("<?php\npreg_match('/[\\d\\w]/', $s);\n"), 0)
	diags := []Diagnostic{{
		Severity: SevWarning,
		Code:     RxGreedyClass,
		Message:  "m",
		Primary:  source.Span{File: id, Start: 20, End: 22},
	}}
	want := "warning RX1001 a.php:2:15 m"
	if got := FormatShortDiagnostics(diags, fs, false, "basename"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBagSortFilterDedup(t *testing.T) {
	b := NewBag(10)
	span := func(s, e uint32) source.Span { return source.Span{File: 0, Start: s, End: e} }
	b.Add(New(SevWarning, RxGreedyClass, span(5, 7), "b"))
	b.Add(New(SevWarning, RxGreedyClass, span(1, 3), "a"))
	b.Add(New(SevWarning, RxGreedyClass, span(1, 3), "a"))
	b.Add(NewError(RxMalformedClass, span(9, 10), "c"))

	b.Sort()
	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("expected 3 diagnostics after dedup, got %d", b.Len())
	}
	if got := b.Items()[0].Message; got != "a" {
		t.Fatalf("expected first message 'a', got %q", got)
	}
	if !b.HasErrors() {
		t.Fatalf("expected HasErrors")
	}

	b.Filter(func(d Diagnostic) bool { return d.Severity != SevError })
	if b.HasErrors() || !b.HasWarnings() || b.Len() != 2 {
		t.Fatalf("filter did not drop error: len=%d", b.Len())
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(1)
	if !b.Add(New(SevInfo, RxInfo, source.Span{}, "x")) {
		t.Fatalf("first add must succeed")
	}
	if b.Add(New(SevInfo, RxInfo, source.Span{}, "y")) {
		t.Fatalf("second add must be rejected by limit")
	}
}

func TestUniqueReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewUniqueReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 1, Start: 2, End: 4}
	ReportWarning(r, RxGreedyClass, sp, "dup").WithNote(sp, "n").Emit()
	ReportWarning(r, RxGreedyClass, sp, "dup").Emit()
	b := ReportError(r, RxMalformedClass, sp, "other").
		WithFix("remove", FixEdit{Span: sp, NewText: ""})
	b.Emit()
	b.Emit()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	if r.Dropped() != 1 {
		t.Fatalf("dropped = %d, want 1", r.Dropped())
	}
	if len(bag.Items()[1].Fixes) != 1 {
		t.Fatalf("fix not forwarded")
	}
	var nilReporter *UniqueReporter
	nilReporter.Report(New(SevInfo, RxInfo, sp, "ignored"))
	if nilReporter.Dropped() != 0 {
		t.Fatal("nil reporter must be inert")
	}
}

func TestCodeIDRoundTrip(t *testing.T) {
	for _, c := range []Code{RxGreedyClass, RxMalformedClass, RxBadDelimiter, IOLoadFileError, CfgInvalid, ObsTimings} {
		got, ok := ParseCode(c.ID())
		if !ok || got != c {
			t.Fatalf("ParseCode(%q) = %v, %v", c.ID(), got, ok)
		}
	}
	if RxGreedyClass.ID() != "RX1001" || CfgInvalid.ID() != "CFG5001" {
		t.Fatalf("unexpected ids %s %s", RxGreedyClass.ID(), CfgInvalid.ID())
	}
}
