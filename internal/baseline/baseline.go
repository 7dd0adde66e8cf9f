// Package baseline records known diagnostics so that only new ones are
// reported. Entries match by path, code and message, never by line, so a
// baseline survives unrelated edits; Count bounds how many identical
// diagnostics one entry suppresses.
package baseline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"rxlint/internal/diag"
	"rxlint/internal/source"
)

const currentVersion = 1

// Entry is one suppressed diagnostic kind in one file.
type Entry struct {
	Path    string `yaml:"path"`
	Code    string `yaml:"code"`
	Message string `yaml:"message"`
	Count   int    `yaml:"count"`
}

// File is the on-disk baseline document.
type File struct {
	Version int     `yaml:"version"`
	Entries []Entry `yaml:"entries"`
}

type entryKey struct {
	path, code, message string
}

// Load reads a baseline; a missing file yields an empty baseline.
func Load(path string) (*File, error) {
	// #nosec G304 -- path comes from flags or rxlint.toml
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{Version: currentVersion}, nil
		}
		return nil, fmt.Errorf("failed to read baseline: %w", err)
	}
	var b File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to parse baseline %q: %w", path, err)
	}
	if b.Version == 0 {
		b.Version = currentVersion
	}
	if b.Version != currentVersion {
		return nil, fmt.Errorf("baseline %q: unsupported version %d", path, b.Version)
	}
	for i, e := range b.Entries {
		if e.Count <= 0 {
			b.Entries[i].Count = 1
		}
	}
	return &b, nil
}

// Write stores the baseline as YAML.
func (b *File) Write(path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("failed to encode baseline: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

// Len returns the number of suppressed diagnostics.
func (b *File) Len() int {
	n := 0
	for _, e := range b.Entries {
		n += e.Count
	}
	return n
}

// Build creates a baseline that suppresses exactly diags.
func Build(fs *source.FileSet, diags []diag.Diagnostic) *File {
	counts := make(map[entryKey]int)
	for _, d := range diags {
		counts[keyOf(fs, d)]++
	}
	b := &File{Version: currentVersion, Entries: make([]Entry, 0, len(counts))}
	for k, n := range counts {
		b.Entries = append(b.Entries, Entry{Path: k.path, Code: k.code, Message: k.message, Count: n})
	}
	sort.Slice(b.Entries, func(i, j int) bool {
		ei, ej := b.Entries[i], b.Entries[j]
		if ei.Path != ej.Path {
			return ei.Path < ej.Path
		}
		if ei.Code != ej.Code {
			return ei.Code < ej.Code
		}
		return ei.Message < ej.Message
	})
	return b
}

// Filter drops diagnostics covered by the baseline and returns the rest in
// their original order together with the number suppressed.
func (b *File) Filter(fs *source.FileSet, diags []diag.Diagnostic) (kept []diag.Diagnostic, suppressed int) {
	if b == nil || len(b.Entries) == 0 {
		return diags, 0
	}
	budget := make(map[entryKey]int, len(b.Entries))
	for _, e := range b.Entries {
		budget[entryKey{e.Path, e.Code, e.Message}] += max(e.Count, 1)
	}
	kept = make([]diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		k := keyOf(fs, d)
		if budget[k] > 0 {
			budget[k]--
			suppressed++
			continue
		}
		kept = append(kept, d)
	}
	return kept, suppressed
}

func keyOf(fs *source.FileSet, d diag.Diagnostic) entryKey {
	path := ""
	if fs != nil && int(d.Primary.File) < fs.Len() {
		path = filepath.ToSlash(fs.Get(d.Primary.File).FormatPath("relative", fs.BaseDir()))
	}
	return entryKey{path: path, code: d.Code.ID(), message: d.Message}
}
