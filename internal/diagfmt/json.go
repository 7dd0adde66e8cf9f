package diagfmt

import (
	"encoding/json"
	"io"

	"rxlint/internal/diag"
	"rxlint/internal/source"
)

// JSONReport is the document written by JSON.
type JSONReport struct {
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Count       int              `json:"count"`
}

type JSONDiagnostic struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title,omitempty"`
	Message  string       `json:"message"`
	Location JSONLocation `json:"location"`
	Notes    []JSONNote   `json:"notes,omitempty"`
	Fixes    []JSONFix    `json:"fixes,omitempty"`
}

// JSONLocation always carries the byte range; Start, End and Text are set
// only with JSONOpts.IncludePositions.
type JSONLocation struct {
	Path  string        `json:"path"`
	Bytes [2]uint32     `json:"bytes"`
	Start *JSONPosition `json:"start,omitempty"`
	End   *JSONPosition `json:"end,omitempty"`
	Text  string        `json:"text,omitempty"`
}

type JSONPosition struct {
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

type JSONNote struct {
	Message  string       `json:"message"`
	Location JSONLocation `json:"location"`
}

type JSONFix struct {
	Title string     `json:"title"`
	Edits []JSONEdit `json:"edits,omitempty"`
}

type JSONEdit struct {
	Location JSONLocation `json:"location"`
	Replace  string       `json:"replace"`
	Expect   string       `json:"expect,omitempty"`
	Before   []string     `json:"before,omitempty"`
	After    []string     `json:"after,omitempty"`
}

// JSON writes bag as an indented JSONReport.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildJSONReport(bag, fs, opts))
}

// BuildJSONReport converts bag without encoding it. opts.Max trims the
// output, not the bag.
func BuildJSONReport(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) JSONReport {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	jb := jsonBuilder{fs: fs, opts: opts}
	out := JSONReport{Diagnostics: make([]JSONDiagnostic, 0, len(items))}
	for _, d := range items {
		out.Diagnostics = append(out.Diagnostics, jb.diagnostic(d))
	}
	out.Count = len(out.Diagnostics)
	return out
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (jb jsonBuilder) diagnostic(d diag.Diagnostic) JSONDiagnostic {
	jd := JSONDiagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Title:    d.Code.Title(),
		Message:  d.Message,
		Location: jb.location(d.Primary),
	}
	// timing reports are meaningless without their notes
	if jb.opts.IncludeNotes || d.Code == diag.ObsTimings {
		for _, n := range d.Notes {
			jd.Notes = append(jd.Notes, JSONNote{Message: n.Msg, Location: jb.location(n.Span)})
		}
	}
	if jb.opts.IncludeFixes {
		for _, f := range d.Fixes {
			jf := JSONFix{Title: f.Title}
			for _, e := range f.Edits {
				jf.Edits = append(jf.Edits, jb.edit(e))
			}
			jd.Fixes = append(jd.Fixes, jf)
		}
	}
	return jd
}

func (jb jsonBuilder) edit(e diag.FixEdit) JSONEdit {
	je := JSONEdit{Location: jb.location(e.Span), Replace: e.NewText, Expect: e.OldText}
	if jb.opts.IncludePreviews {
		if p, err := buildFixEditPreview(jb.fs, e); err == nil {
			je.Before, je.After = p.before, p.after
		}
	}
	return je
}

func (jb jsonBuilder) location(sp source.Span) JSONLocation {
	loc := JSONLocation{
		Path:  formatPath(jb.fs, jb.fs.Get(sp.File), jb.opts.PathMode),
		Bytes: [2]uint32{sp.Start, sp.End},
	}
	if !jb.opts.IncludePositions {
		return loc
	}
	start, end := jb.fs.Resolve(sp)
	loc.Start = &JSONPosition{Line: start.Line, Column: start.Col}
	loc.End = &JSONPosition{Line: end.Line, Column: end.Col}
	loc.Text = jb.fs.Text(sp)
	return loc
}
