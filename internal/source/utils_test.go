package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "base")
	if err := os.MkdirAll(filepath.Join(base, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	for _, tt := range []struct {
		name   string
		target string
		want   string
	}{
		{"inside stays relative", filepath.Join(base, "nested", "file.php"), "nested/file.php"},
		{"outside falls back to absolute", filepath.Join(tmp, "other", "file.php"), normalizePath(filepath.Join(tmp, "other", "file.php"))},
		{"base itself", base, "."},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RelativePath(tt.target, base)
			if err != nil {
				t.Fatalf("RelativePath: %v", err)
			}
			if got != tt.want {
				t.Errorf("RelativePath(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}

func TestNormalizeCRLF(t *testing.T) {
	for _, tt := range []struct {
		in      string
		want    string
		changed bool
	}{
		{"a\nb", "a\nb", false},
		{"a\r\nb\r\n", "a\nb\n", true},
		{"lone\rcr", "lone\rcr", false},
		{"mix\r\n\r", "mix\n\r", true},
	} {
		got, changed := normalizeCRLF([]byte(tt.in))
		if string(got) != tt.want || changed != tt.changed {
			t.Errorf("normalizeCRLF(%q) = %q, %v; want %q, %v", tt.in, got, changed, tt.want, tt.changed)
		}
	}
}

func TestToLineCol(t *testing.T) {
	idx := buildLineIndex([]byte("ab\n\ncd"))
	for _, tt := range []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // the newline ends line 1
		{3, LineCol{2, 1}},
		{5, LineCol{3, 2}},
	} {
		if got := toLineCol(idx, tt.off); got != tt.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
	if got := toLineCol(nil, 4); got != (LineCol{1, 5}) {
		t.Errorf("single line: %+v", got)
	}
}
