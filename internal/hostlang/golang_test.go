package hostlang

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractGo(t *testing.T) {
	src := "package p\n\n" +
		"import re \"regexp\"\n\n" +
		"var (\n" +
		"\ta = re.MustCompile(`[\\d\\w]`)\n" +
		"\tb = re.MustCompile(\"[\\\\D\\\\W]\")\n" +
		"\tc = re.MustCompile(pattern)\n" +
		"\td, _ = re.MatchString(\"x\\u00e9[\\\\s]\", s)\n" +
		"\te = regexp.MustCompile(`ignored`)\n" +
		")\n"
	fs, res := extractString(t, "p.go", src)
	if len(res.Issues) != 0 {
		t.Fatalf("unexpected issues: %+v", res.Issues)
	}
	want := []litView{
		{Func: "MustCompile", Body: `[\d\w]`, Text: "`[\\d\\w]`"},
		{Func: "MustCompile", Body: `[\D\W]`, Text: `"[\\D\\W]"`},
		{Func: "MatchString", Body: `xé[\s]`, Text: `"x\u00e9[\\s]"`},
	}
	if diff := cmp.Diff(want, views(fs, res.Literals)); diff != "" {
		t.Fatalf("literals mismatch (-want +got):\n%s", diff)
	}

	// \D inside an interpreted string maps back to "\\D".
	if got := fs.Text(res.Literals[1].SourceSpan(1, 3)); got != `\\D` {
		t.Errorf("SourceSpan = %q, want %q", got, `\\D`)
	}
	// 'é' decodes to two bytes that both map to the six-byte escape.
	if got := fs.Text(res.Literals[2].SourceSpan(1, 3)); got != `\u00e9` {
		t.Errorf("SourceSpan = %q, want %q", got, `\u00e9`)
	}
}

func TestExtractGoDotImport(t *testing.T) {
	src := "package p\nimport . \"regexp\"\nvar a = MustCompile(`[\\s\\S]`)\n"
	fs, res := extractString(t, "p.go", src)
	want := []litView{{Func: "MustCompile", Body: `[\s\S]`, Text: "`[\\s\\S]`"}}
	if diff := cmp.Diff(want, views(fs, res.Literals)); diff != "" {
		t.Fatalf("literals mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractGoWithoutRegexpImport(t *testing.T) {
	_, res := extractString(t, "p.go", "package p\nvar a = regexp.MustCompile(`[\\d\\w]`)\n")
	if len(res.Literals) != 0 {
		t.Fatalf("expected no literals without an import, got %+v", res.Literals)
	}
}

func TestExtractGoSyntaxError(t *testing.T) {
	src := "package p\nimport \"regexp\"\nvar a = regexp.MustCompile(`[\\d\\w]`)\nfunc {\n"
	fs := newSet(src)
	res, err := Extract(fs.Get(0))
	if !errors.Is(err, ErrHostSyntax) {
		t.Fatalf("expected ErrHostSyntax, got %v", err)
	}
	if len(res.Literals) != 1 {
		t.Errorf("partial result expected, got %+v", res.Literals)
	}
}

func TestGoLiteral(t *testing.T) {
	tests := []struct {
		lit      string
		body     string
		from, to int
		wantFrom uint32
		wantTo   uint32
	}{
		{"`[\\d\\w]`", `[\d\w]`, 1, 3, 2, 4},
		{`"[\\d\\w]"`, `[\d\w]`, 1, 3, 2, 5},
		{`"\x5b\\d]"`, `[\d]`, 0, 1, 1, 5},
	}
	for _, tt := range tests {
		lit, err := GoLiteral(tt.lit)
		if err != nil {
			t.Fatalf("GoLiteral(%s): %v", tt.lit, err)
		}
		if lit.Body != tt.body {
			t.Errorf("GoLiteral(%s).Body = %q, want %q", tt.lit, lit.Body, tt.body)
		}
		got := lit.SourceSpan(tt.from, tt.to)
		if got.Start != tt.wantFrom || got.End != tt.wantTo {
			t.Errorf("GoLiteral(%s).SourceSpan(%d,%d) = %d..%d, want %d..%d",
				tt.lit, tt.from, tt.to, got.Start, got.End, tt.wantFrom, tt.wantTo)
		}
	}
	if _, err := GoLiteral(`"\q"`); err == nil {
		t.Error("expected error for invalid escape")
	}
	if !IsRegexpFunc("MustCompile") || IsRegexpFunc("QuoteMeta") {
		t.Error("IsRegexpFunc mismatch")
	}
}
