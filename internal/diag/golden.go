package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"rxlint/internal/source"
)

// line is one rendered entry: "<sev> <code> <path>:<line>:<col> <msg>".
type line struct {
	sev  string
	code string
	path string
	pos  source.LineCol
	msg  string
}

func (l line) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.pos.Line, l.pos.Col, l.msg)
}

// FormatGoldenDiagnostics renders one line per diagnostic (and per note when
// includeNotes is set), with paths relative to the FileSet base directory.
// The output is sorted and has no trailing newline.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return renderLines(diags, fs, includeNotes, "relative")
}

// FormatShortDiagnostics is the same layout with a caller-chosen path mode
// (see source.File.FormatPath).
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool, pathMode string) string {
	return renderLines(diags, fs, includeNotes, pathMode)
}

func renderLines(diags []Diagnostic, fs *source.FileSet, includeNotes bool, pathMode string) string {
	if fs == nil {
		return ""
	}
	base := fs.BaseDir()
	locate := func(sp source.Span) (string, source.LineCol, bool) {
		if int(sp.File) >= fs.Len() {
			return "", source.LineCol{}, false
		}
		f := fs.Get(sp.File)
		if int(sp.Start) > len(f.Content) {
			return "", source.LineCol{}, false
		}
		start, _ := fs.Resolve(sp)
		return cleanPath(f.FormatPath(pathMode, base)), start, true
	}

	var lines []line
	for _, d := range diags {
		code := d.Code.ID()
		if path, pos, ok := locate(d.Primary); ok {
			lines = append(lines, line{severityLabel(d.Severity), code, path, pos, oneLine(d.Message)})
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if path, pos, ok := locate(n.Span); ok {
				lines = append(lines, line{"note", code, path, pos, oneLine(n.Msg)})
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b line) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.msg, b.msg),
		)
	})

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func cleanPath(p string) string {
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	}
	return "info"
}

// oneLine folds line breaks into spaces.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
