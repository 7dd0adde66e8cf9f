package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rxlint/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "[lint]\nmessage_prefix = \"[EA] \"\nseverity = \"error\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover: ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Errorf("root = %q, want %q", m.Root, root)
	}
	want := Default()
	want.Lint.MessagePrefix = "[EA] "
	want.Lint.Severity = "error"
	if diff := cmp.Diff(want, m.Config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	// файл как стартовая точка
	file := filepath.Join(nested, "a.php")
	writeFile(t, file, "<?php")
	if _, ok, err := Discover(file); err != nil || !ok {
		t.Errorf("Discover from file: ok=%v err=%v", ok, err)
	}
}

func TestDiscoverNotFound(t *testing.T) {
	// TempDir лежит вне любого проекта с rxlint.toml
	m, ok, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if ok || m != nil {
		if _, statErr := os.Stat(filepath.Join(os.TempDir(), FileName)); statErr == nil {
			t.Skip("rxlint.toml present above the temp dir")
		}
		t.Errorf("unexpected manifest: %+v", m)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[lint\n", "failed to parse TOML"},
		{"unknown key", "[lint]\nseverity = \"warning\"\ncolour = true\n", "unknown keys: lint.colour"},
		{"unknown table", "[output]\nformat = \"json\"\n", "unknown keys: output"},
		{"bad severity", "[lint]\nseverity = \"fatal\"\n", "[lint].severity"},
		{"negative max", "[lint]\nmax_diagnostics = -1\n", "max_diagnostics must be >= 0"},
		{"bad extension", "[lint]\nextensions = [\"php\"]\n", "must start with a dot"},
		{"empty extensions", "[lint]\nextensions = []\n", "must not be empty"},
		{"bad encoding", "[lint]\nsource_encoding = \"klingon\"\n", "unknown source encoding"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default()
	cfg.Lint.SourceEncoding = "windows-1251"
	cfg.Rules.MalformedClass = false

	if err := cfg.Write(path, false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Write(path, false); !errors.Is(err, ErrExists) {
		t.Errorf("expected ErrExists, got %v", err)
	}
	if err := cfg.Write(path, true); err != nil {
		t.Errorf("overwrite: %v", err)
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Lint.Severity = "error"
	cfg.Lint.MessagePrefix = "[EA] "
	cfg.Lint.Jobs = 3
	cfg.Lint.Extensions = []string{".phtml"}
	cfg.Lint.SourceEncoding = "latin1"
	cfg.Rules.GreedyClass = false

	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if opts.Severity != diag.SevError || opts.MessagePrefix != "[EA] " || opts.Jobs != 3 {
		t.Errorf("unexpected options: %+v", opts)
	}
	if diff := cmp.Diff([]string{".phtml"}, opts.Extensions); diff != "" {
		t.Errorf("extensions (-want +got):\n%s", diff)
	}
	if opts.Decoder == nil || opts.Decoder.Name() != "windows-1252" {
		t.Errorf("decoder = %v", opts.Decoder)
	}
	if opts.Rules.GreedyClass || !opts.Rules.MalformedClass {
		t.Errorf("rules = %+v", opts.Rules)
	}
}

func TestBaselinePath(t *testing.T) {
	cfg := Default()
	if got := cfg.BaselinePath("/p"); got != "" {
		t.Errorf("empty baseline = %q", got)
	}
	cfg.Lint.Baseline = "ci/rxlint-baseline.yaml"
	if got := cfg.BaselinePath("/p"); got != filepath.Join("/p", "ci", "rxlint-baseline.yaml") {
		t.Errorf("relative baseline = %q", got)
	}
	cfg.Lint.Baseline = "/abs/b.yaml"
	if got := cfg.BaselinePath("/p"); got != "/abs/b.yaml" {
		t.Errorf("absolute baseline = %q", got)
	}
}
