package fixture

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rxlint/internal/lint"
)

func eaOptions() lint.Options {
	opts := lint.DefaultOptions()
	opts.MessagePrefix = "[EA] "
	return opts
}

func TestParse(t *testing.T) {
	src := "<?php\nf(<error descr=\"a &quot;b&quot;\">'x'</error>, <error descr=\"c\">y\nz</error>);\n"
	fx, err := Parse("f.php", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, want := string(fx.Source), "<?php\nf('x', y\nz);\n"; got != want {
		t.Errorf("clean source = %q, want %q", got, want)
	}
	want := []Expectation{
		{Start: 8, End: 11, Message: `a "b"`, Text: "'x'", Line: 2},
		{Start: 13, End: 16, Message: "c", Text: "y\nz", Line: 2},
	}
	if diff := cmp.Diff(want, fx.Expectations); diff != "" {
		t.Errorf("expectations mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"stray close", "a</error>", "closing tag without opening tag"},
		{"no close", `<error descr="m">x`, "missing </error>"},
		{"no descr end", "<error descr=\"m\nx</error>", "unterminated descr attribute"},
		{"nested", `<error descr="a"><error descr="b">x</error></error>`, "nested markers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("f.php", []byte(tt.src))
			if !errors.Is(err, ErrMarker) {
				t.Fatalf("expected ErrMarker, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseLineNumbers(t *testing.T) {
	src := "a\n<error descr=\"m\">x\ny</error>\n\n<error descr=\"n\">z</error>\n"
	fx, err := Parse("f.php", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Expectation{
		{Start: 2, End: 5, Message: "m", Text: "x\ny", Line: 2},
		{Start: 7, End: 8, Message: "n", Text: "z", Line: 5},
	}
	if diff := cmp.Diff(want, fx.Expectations); diff != "" {
		t.Errorf("expectations mismatch (-want +got):\n%s", diff)
	}

	_, err = Parse("f.php", []byte("a\n<error descr=\"m\">x\ny</error>\nb</error>"))
	if err == nil || !strings.HasPrefix(err.Error(), "f.php:4:") {
		t.Errorf("stray close error = %v, want it at f.php:4", err)
	}
}

func TestAnnotateRoundTrip(t *testing.T) {
	src := "<?php\nf(<error descr=\"x &amp; &lt;y&gt;\">'x'</error>);\n"
	fx, err := Parse("f.php", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := Annotate(fx.Source, fx.Expectations)
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if string(out) != src {
		t.Errorf("round trip mismatch:\n got %q\nwant %q", out, src)
	}
	overlap := []Expectation{{Start: 0, End: 4}, {Start: 2, End: 5}}
	if _, err := Annotate(fx.Source, overlap); err == nil {
		t.Error("expected error for overlapping ranges")
	}
}

func TestRunTestdata(t *testing.T) {
	tests := []struct {
		file    string
		opts    lint.Options
		matched int
	}{
		{"greedy-character-sets.php", eaOptions(), 7},
		{"greedy.go", lint.DefaultOptions(), 2},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			fx, err := Load(filepath.Join("testdata", tt.file))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			res, err := Run(context.Background(), fx, tt.opts)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !res.OK() {
				t.Fatalf("fixture mismatch:\n%s", res.Report())
			}
			if res.Matched != tt.matched {
				t.Errorf("matched = %d, want %d", res.Matched, tt.matched)
			}
		})
	}
}

func TestRunMismatch(t *testing.T) {
	src := "<?php\n" +
		"preg_match(<error descr=\"[EA] wrong\">'/[\\d\\w]/'</error>, '');\n" +
		"preg_match('/[\\D\\W]/', '');\n"
	fx, err := Parse("m.php", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, err := Run(context.Background(), fx, eaOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.OK() || len(res.Missing) != 1 || len(res.Unexpected) != 2 {
		t.Fatalf("unexpected result: missing=%d unexpected=%d", len(res.Missing), len(res.Unexpected))
	}
	report := res.Report()
	for _, want := range []string{`m.php:2: missing: "[EA] wrong"`, `m.php:3:15: unexpected RX1001`} {
		if !strings.Contains(report, want) {
			t.Errorf("report lacks %q:\n%s", want, report)
		}
	}
}

func TestUpdate(t *testing.T) {
	clean := "<?php\npreg_match('/[\\d\\w]/', '');\npreg_match('/[a]/', '');\n"
	fx, err := Parse("u.php", []byte(clean))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, err := Run(context.Background(), fx, eaOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	out, err := res.Update()
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	want := "<?php\npreg_match(<error descr=\"[EA] [\\d\\w] is 'greedy'. Please remove \\d as it's a subset of \\w.\">'/[\\d\\w]/'</error>, '');\npreg_match('/[a]/', '');\n"
	if string(out) != want {
		t.Errorf("Update mismatch:\n got %q\nwant %q", out, want)
	}

	// обновлённый файл должен проходить сам по себе
	fx2, err := Parse("u.php", out)
	if err != nil {
		t.Fatalf("Parse updated: %v", err)
	}
	res2, err := Run(context.Background(), fx2, eaOptions())
	if err != nil {
		t.Fatalf("Run updated: %v", err)
	}
	if !res2.OK() {
		t.Errorf("updated fixture does not pass:\n%s", res2.Report())
	}
}
