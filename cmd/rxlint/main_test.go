package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rxlint/internal/diag"
	"rxlint/internal/fix"
	"rxlint/internal/lint"
	"rxlint/internal/source"
)

const greedyPHP = "<?php\npreg_match('/[\\d\\w]/', $s);\n"

// execute runs the root command with args. Flag values persist between
// calls on the shared rootCmd, so callers pass every flag they rely on.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	postRun(rootCmd, nil)
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestCLI(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.php"), greedyPHP)
	writeFile(t, filepath.Join(dir, "clean.php"), "<?php\npreg_match('/[a-z]+/', $s);\n")
	cfg := filepath.Join(dir, "rxlint.toml")

	t.Run("init", func(t *testing.T) {
		out, _, err := execute(t, "--color", "off", "init", dir)
		if err != nil {
			t.Fatalf("init: %v", err)
		}
		if !strings.Contains(out, "rxlint.toml") {
			t.Fatalf("init output = %q", out)
		}
		if _, err := os.Stat(cfg); err != nil {
			t.Fatalf("config not written: %v", err)
		}
		if _, _, err := execute(t, "--color", "off", "init", dir); err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Fatalf("second init error = %v", err)
		}
	})

	t.Run("check short", func(t *testing.T) {
		out, _, err := execute(t, "--color", "off", "--config", cfg,
			"check", "--format", "short", "--ui", "off", "--no-cache", dir)
		if err != nil {
			t.Fatalf("check: %v", err)
		}
		if !strings.Contains(out, "RX1001") || !strings.Contains(out, "a.php:2:15") {
			t.Fatalf("unexpected output:\n%s", out)
		}
		if !strings.Contains(out, `[\d\w] is 'greedy'. Please remove \d as it's a subset of \w.`) {
			t.Fatalf("message missing:\n%s", out)
		}
		if strings.Contains(out, "clean.php") {
			t.Fatalf("clean file reported:\n%s", out)
		}
	})

	t.Run("check json", func(t *testing.T) {
		out, _, err := execute(t, "--color", "off", "--config", cfg,
			"check", "--format", "json", "--ui", "off", "--no-cache", dir)
		if err != nil {
			t.Fatalf("check: %v", err)
		}
		if !strings.Contains(out, `"code": "RX1001"`) {
			t.Fatalf("unexpected json:\n%s", out)
		}
	})

	t.Run("baseline", func(t *testing.T) {
		bl := filepath.Join(dir, "baseline.yaml")
		_, errOut, err := execute(t, "--color", "off", "--config", cfg,
			"check", "--format", "short", "--ui", "off", "--no-cache", "--baseline", bl, "--write-baseline", dir)
		if err != nil {
			t.Fatalf("write baseline: %v", err)
		}
		if !strings.Contains(errOut, "recorded 1 diagnostic(s)") {
			t.Fatalf("stderr = %q", errOut)
		}
		out, _, err := execute(t, "--color", "off", "--config", cfg,
			"check", "--format", "short", "--ui", "off", "--no-cache", "--baseline", bl, "--write-baseline=false", dir)
		if err != nil {
			t.Fatalf("check with baseline: %v", err)
		}
		if strings.TrimSpace(out) != "" {
			t.Fatalf("baseline did not suppress:\n%s", out)
		}
	})

	t.Run("warnings as errors", func(t *testing.T) {
		_, _, err := execute(t, "--color", "off", "--config", cfg,
			"check", "--format", "short", "--ui", "off", "--no-cache", "--baseline", "", "--warnings-as-errors", dir)
		if !errors.Is(err, errFindings) {
			t.Fatalf("err = %v, want errFindings", err)
		}
	})

	t.Run("fix", func(t *testing.T) {
		_, errOut, err := execute(t, "--color", "off", "--config", cfg,
			"check", "--format", "short", "--ui", "off", "--no-cache", "--baseline", "", "--warnings-as-errors=false", "--fix", dir)
		if err != nil {
			t.Fatalf("check --fix: %v", err)
		}
		if !strings.Contains(errOut, "Applied 1 fix(es)") {
			t.Fatalf("stderr = %q", errOut)
		}
		data, err := os.ReadFile(filepath.Join(dir, "a.php"))
		if err != nil {
			t.Fatal(err)
		}
		if got, want := string(data), "<?php\npreg_match('/[\\w]/', $s);\n"; got != want {
			t.Fatalf("fixed file = %q, want %q", got, want)
		}
	})
}

func TestPatternCommand(t *testing.T) {
	out, _, err := execute(t, "--color", "off", "pattern", "--format", "text", `[\d\w]+`, `[a-z]`)
	if err != nil {
		t.Fatalf("pattern: %v", err)
	}
	want := "warning [\\d\\w]+:2: [\\d\\w] is 'greedy'. Please remove \\d as it's a subset of \\w.\nok [a-z]\n"
	if out != want {
		t.Fatalf("output:\n%q\nwant:\n%q", out, want)
	}

	_, _, err = execute(t, "--color", "off", "pattern", "--format", "text", `x[\d`)
	if !errors.Is(err, errFindings) {
		t.Fatalf("malformed pattern err = %v", err)
	}
}

func TestAnalyzePatterns(t *testing.T) {
	reports, failed := analyzePatterns([]string{`^[\D\W\S]$`, `[é\d\w]`, `a[\d`})
	if !failed {
		t.Fatal("expected failure for unterminated class")
	}
	if len(reports) != 3 {
		t.Fatalf("got %d reports", len(reports))
	}
	if f := reports[0].Findings; len(f) != 1 || f[0].Token != `\D` || f[0].Column != 3 || f[0].Subsuming != `\W` {
		t.Fatalf("negated findings = %+v", f)
	}
	// колонки считаются в символах, не в байтах
	if f := reports[1].Findings; len(f) != 1 || f[0].Column != 3 || f[0].EndColumn != 5 {
		t.Fatalf("unicode findings = %+v", f)
	}
	if got := reports[2].Error; !strings.HasPrefix(got, "malformed character class at column 2") {
		t.Fatalf("error = %q", got)
	}
}

func TestReadModes(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want uiMode
		err  bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	} {
		got, err := readUIMode(tc.in)
		if (err != nil) != tc.err || got != tc.want {
			t.Errorf("readUIMode(%q) = %q, %v", tc.in, got, err)
		}
	}
	for _, f := range []string{"pretty", "json", "short", "sarif"} {
		if _, err := readFormat(f); err != nil {
			t.Errorf("readFormat(%q): %v", f, err)
		}
	}
	if _, err := readFormat("xml"); err == nil {
		t.Error("readFormat(xml) should fail")
	}
	if wantProgressUI(uiModeOn, formatJSON, false) {
		t.Error("progress UI must stay off for json")
	}
	if wantProgressUI(uiModeOn, formatPretty, true) {
		t.Error("progress UI must stay off in quiet mode")
	}
	if !wantProgressUI(uiModeOn, formatPretty, false) {
		t.Error("--ui on should enable the progress UI")
	}
}

func TestPromoteWarningsAndMerge(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.AddVirtual("a.php", []byte(greedyPHP))
	b := fs.AddVirtual("b.php", []byte(greedyPHP))

	bagA := diag.NewBag(10)
	bagA.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.RxGreedyClass, Message: "w", Primary: source.Span{File: a, Start: 20, End: 22}})
	bagB := diag.NewBag(10)
	bagB.Add(diag.Diagnostic{Severity: diag.SevInfo, Code: diag.RxGreedyClass, Message: "i", Primary: source.Span{File: b, Start: 1, End: 2}})
	bagB.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.RxGreedyClass, Message: "w", Primary: source.Span{File: b, Start: 0, End: 1}})

	results := []lint.FileResult{{Path: "a.php", Bag: bagA}, {Path: "b.php", Bag: bagB}, {Path: "c.php"}}
	promoteWarnings(results)

	merged := mergeResults(results)
	if merged.Len() != 3 {
		t.Fatalf("merged %d diagnostics", merged.Len())
	}
	items := merged.Items()
	if items[0].Primary.File != a || items[1].Primary.Start != 0 {
		t.Fatalf("merged bag is not sorted: %+v", items)
	}
	stats := lint.Summarize(results)
	if stats.Errors != 2 || stats.Infos != 1 || stats.Warnings != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestPrintApplyResult(t *testing.T) {
	var buf bytes.Buffer
	if err := printApplyResult(&buf, &fix.ApplyResult{}, fix.ErrNoFixes); err != nil {
		t.Fatalf("ErrNoFixes should not fail: %v", err)
	}
	if got := buf.String(); got != "No applicable fixes found.\n" {
		t.Fatalf("output = %q", got)
	}

	buf.Reset()
	res := &fix.ApplyResult{
		Applied:     []fix.AppliedFix{{ID: "RX1001-a.php-20-0", Title: `remove \d`, PrimaryPath: "a.php", EditCount: 1}},
		FileChanges: []fix.FileChange{{Path: "a.php", EditCount: 1}},
		Skipped:     []fix.SkippedFix{{ID: "RX1001-a.php-24-0", Reason: "edit span out of range"}},
	}
	if err := printApplyResult(&buf, res, nil); err != nil {
		t.Fatal(err)
	}
	want := "Applied 1 fix(es):\n" +
		"  remove \\d [RX1001-a.php-20-0] a.php (1 edits)\n" +
		"Updated files:\n" +
		"  a.php (1 edits)\n" +
		"Skipped fixes:\n" +
		"  [RX1001-a.php-24-0]: edit span out of range\n"
	if got := buf.String(); got != want {
		t.Fatalf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, lint.Stats{Files: 2, Literals: 3, Warnings: 1, Cached: 1})
	want := "checked 2 file(s), 3 regex literal(s): 0 error(s), 1 warning(s) (1 cached, 0 suppressed by baseline)\n"
	if buf.String() != want {
		t.Fatalf("summary = %q", buf.String())
	}
}
