package fixture

import (
	"context"
	"fmt"
	"strings"

	"rxlint/internal/diag"
	"rxlint/internal/lint"
	"rxlint/internal/source"
)

// Result is the outcome of checking one fixture.
type Result struct {
	Fixture     *Fixture
	FileSet     *source.FileSet
	FileID      source.FileID
	Matched     int
	Missing     []Expectation
	Unexpected  []diag.Diagnostic
	Diagnostics []diag.Diagnostic // everything reported, sorted
}

// OK reports whether every expectation matched and nothing else was found.
func (r *Result) OK() bool {
	return len(r.Missing) == 0 && len(r.Unexpected) == 0
}

// Run lints the clean source of fx with opts and matches the diagnostics
// against its expectations. Each expectation absorbs at most one diagnostic.
func Run(ctx context.Context, fx *Fixture, opts lint.Options) (*Result, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(fx.Path, fx.Source)
	bag, err := lint.LintFile(ctx, fs, id, opts)
	if err != nil {
		return nil, err
	}
	bag.Sort()

	res := &Result{Fixture: fx, FileSet: fs, FileID: id, Diagnostics: bag.Items()}
	used := make([]bool, len(fx.Expectations))
	for _, d := range bag.Items() {
		matched := false
		for i, e := range fx.Expectations {
			if used[i] || e.Message != d.Message {
				continue
			}
			if d.Primary.Start >= e.Start && d.Primary.End <= e.End {
				used[i] = true
				matched = true
				res.Matched++
				break
			}
		}
		if !matched {
			res.Unexpected = append(res.Unexpected, d)
		}
	}
	for i, e := range fx.Expectations {
		if !used[i] {
			res.Missing = append(res.Missing, e)
		}
	}
	return res, nil
}

// Report renders the mismatches of r, one per line.
func (r *Result) Report() string {
	var sb strings.Builder
	for _, e := range r.Missing {
		fmt.Fprintf(&sb, "%s:%d: missing: %q at %q\n", r.Fixture.Path, e.Line, e.Message, e.Text)
	}
	for _, d := range r.Unexpected {
		start, _ := r.FileSet.Resolve(d.Primary)
		fmt.Fprintf(&sb, "%s:%d:%d: unexpected %s: %q at %q\n",
			r.Fixture.Path, start.Line, start.Col, d.Code.ID(), d.Message, r.FileSet.Text(d.Primary))
	}
	return sb.String()
}

// Update returns the clean source annotated with the diagnostics found by
// Run. A marker wraps the pattern literal when the diagnostic carries one as
// its first note, otherwise the primary span. Two diagnostics on the same
// literal cannot be expressed and yield an error.
func (r *Result) Update() ([]byte, error) {
	exps := make([]Expectation, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		span := d.Primary
		if len(d.Notes) > 0 && d.Notes[0].Span.Contains(span) {
			span = d.Notes[0].Span
		}
		exps = append(exps, Expectation{Start: span.Start, End: span.End, Message: d.Message})
	}
	sortExpectations(exps)
	return Annotate(r.Fixture.Source, exps)
}
