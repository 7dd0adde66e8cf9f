package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"rxlint/internal/diag"
	"rxlint/internal/source"
)

const greedyMsg = `[\d\w] is 'greedy'. Please remove \d as it's a subset of \w.`

// greedySample builds one RX1001 diagnostic the way the linter does.
func greedySample(t *testing.T, path string) (*source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	content := []byte("<?php\npreg_match('/[\\d\\w]/', $s);\n")
	id := fs.AddVirtual(path, content)

	tok := source.Span{File: id, Start: 20, End: 22}
	d := diag.New(diag.SevWarning, diag.RxGreedyClass, tok, greedyMsg).
		WithNote(source.Span{File: id, Start: 17, End: 27}, "in pattern passed to preg_match").
		WithFix(`remove \d`, diag.FixEdit{Span: tok, OldText: `\d`})

	bag := diag.NewBag(10)
	bag.Add(d)
	return fs, bag
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs, bag := greedySample(t, "/home/user/project/src/a.php")

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/a.php:2:15: "},
		{"Relative path", PathModeRelative, "src/a.php:2:15: "},
		{"Basename only", PathModeBasename, "a.php:2:15: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()

			if !strings.HasPrefix(output, tt.contains) {
				t.Errorf("Expected output to start with %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "WARNING RX1001: "+greedyMsg) {
				t.Errorf("Expected severity, code and message in output, got:\n%s", output)
			}
		})
	}
}

func TestPrettySnippetAndCaret(t *testing.T) {
	fs, bag := greedySample(t, "a.php")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	want := "a.php:2:15: WARNING RX1001: " + greedyMsg + "\n" +
		"2 | preg_match('/[\\d\\w]/', $s);\n" +
		"  |               ^^\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n got %q\nwant %q", got, want)
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs, bag := greedySample(t, "a.php")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})
	output := buf.String()
	for _, want := range []string{"1 | <?php\n", "2 | preg_match", "3 | \n"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("preg_match('/日本[\\d\\w]/', $s);")
	id := fs.AddVirtual("w.php", content)
	start := uint32(strings.Index(string(content), `\d`))
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevWarning, diag.RxGreedyClass, source.Span{File: id, Start: start, End: start + 2}, greedyMsg))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	// "preg_match('/" = 13, 日本 = 4 колонки, "[" = 1
	if !strings.Contains(buf.String(), "  | "+strings.Repeat(" ", 18)+"^^\n") {
		t.Errorf("caret misplaced:\n%s", buf.String())
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs, bag := greedySample(t, "a.php")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowFixes: true})
	output := buf.String()

	for _, want := range []string{
		"note: a.php:2:12: in pattern passed to preg_match",
		`fix #1: remove \d`,
		`edit a.php:2:15-2:17 apply=""`,
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "preview:") {
		t.Errorf("preview printed without ShowPreview:\n%s", output)
	}
}

func TestPrettyFixPreview(t *testing.T) {
	fs, bag := greedySample(t, "a.php")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowFixes: true, ShowPreview: true})
	output := buf.String()
	for _, want := range []string{
		"preview:",
		`- preg_match('/[\d\w]/', $s);`,
		`+ preg_match('/[\w]/', $s);`,
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestPrettyColor(t *testing.T) {
	fs, bag := greedySample(t, "a.php")

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	Pretty(&colored, bag, fs, PrettyOpts{PathMode: PathModeBasename, Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("escape codes without Color:\n%q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("no escape codes with Color:\n%q", colored.String())
	}
}

func TestPrettyWidth(t *testing.T) {
	fs, bag := greedySample(t, "a.php")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Width: 10})
	if !strings.Contains(buf.String(), "2 | preg_matc…\n") {
		t.Errorf("line not clipped:\n%s", buf.String())
	}
}

func TestParsePathMode(t *testing.T) {
	for _, s := range []string{"auto", "absolute", "relative", "basename"} {
		m, err := ParsePathMode(s)
		if err != nil || m.String() != s {
			t.Errorf("ParsePathMode(%q) = %v, %v", s, m, err)
		}
	}
	if _, err := ParsePathMode("nope"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestShort(t *testing.T) {
	fs, bag := greedySample(t, "/home/user/project/src/a.php")

	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, PathModeRelative, false); err != nil {
		t.Fatalf("Short: %v", err)
	}
	want := "warning RX1001 src/a.php:2:15 " + greedyMsg + "\n"
	if buf.String() != want {
		t.Errorf("Short mismatch:\n got %q\nwant %q", buf.String(), want)
	}
}
