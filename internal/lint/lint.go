package lint

import (
	"context"
	"errors"
	"fmt"

	"rxlint/internal/charclass"
	"rxlint/internal/diag"
	"rxlint/internal/fix"
	"rxlint/internal/hostlang"
	"rxlint/internal/observ"
	"rxlint/internal/source"
	"rxlint/internal/trace"
)

// LintFile checks every regex literal of one file already loaded into fs.
func LintFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (*diag.Bag, error) {
	bag, _, err := lintFile(ctx, fs.Get(id), opts, nil)
	return bag, err
}

// lintFile returns the bag and the number of literals seen.
func lintFile(ctx context.Context, file *source.File, opts Options, timer *observ.Timer) (*diag.Bag, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	r := diag.NewUniqueReporter(diag.BagReporter{Bag: bag})
	whole := source.Span{File: file.ID, Start: 0, End: 0}

	extractIdx := timer.Begin("extract")
	res, err := hostlang.Extract(file)
	timer.End(extractIdx, fmt.Sprintf("literals=%d", len(res.Literals)))
	switch {
	case errors.Is(err, hostlang.ErrUnsupported):
		diag.ReportWarning(r, diag.IOUnsupportedFile, whole, "unsupported host file: "+source.BaseName(file.Path)).Emit()
		return bag, 0, nil
	case errors.Is(err, hostlang.ErrHostSyntax):
		// частичный результат всё равно проверяем
		diag.ReportWarning(r, diag.IOHostSyntax, whole, err.Error()).Emit()
	case err != nil:
		return bag, 0, err
	}

	if opts.Rules.MalformedClass {
		for _, is := range res.Issues {
			diag.ReportError(r, diag.RxBadDelimiter, is.Span, opts.MessagePrefix+is.Err.Error()).Emit()
		}
	}

	analyzeIdx := timer.Begin("analyze")
	parent := trace.CurrentSpan(ctx)
	tr := trace.FromContext(ctx)
	for i := range res.Literals {
		lit := &res.Literals[i]
		span := trace.Begin(tr, trace.ScopeLiteral, "literal:"+lit.Func, parent)
		n := lintLiteral(r, file, lit, opts)
		span.WithExtra("body", lit.Body).End(fmt.Sprintf("diagnostics=%d", n))
	}
	timer.End(analyzeIdx, fmt.Sprintf("diagnostics=%d", bag.Len()))
	return bag, len(res.Literals), nil
}

// lintLiteral reports the findings of one literal and returns their count.
func lintLiteral(r diag.Reporter, file *source.File, lit *hostlang.Literal, opts Options) int {
	p := charclass.NewPattern(lit.Body)
	findings, err := charclass.AnalyzePattern(p)
	if err != nil {
		if !opts.Rules.MalformedClass {
			return 0
		}
		span, msg := lit.Span, err.Error()
		var mce *charclass.MalformedClassError
		if errors.As(err, &mce) {
			at := p.ByteOffset(mce.Offset)
			span = lit.SourceSpan(at, at+1)
			msg = mce.Reason
		}
		diag.ReportError(r, diag.RxMalformedClass, span, opts.MessagePrefix+msg).
			WithNote(lit.Span, "in pattern passed to "+lit.Func).
			Emit()
		return 1
	}
	if !opts.Rules.GreedyClass {
		return 0
	}

	for _, f := range findings {
		tok := lit.SourceSpan(p.ByteOffset(f.Start), p.ByteOffset(f.End))
		class := lit.SourceSpan(p.ByteOffset(f.Class.Start), p.ByteOffset(f.Class.End))
		spelling := p.Slice(f.Range)
		diag.Report(r, opts.Severity, diag.RxGreedyClass, tok, opts.MessagePrefix+f.Message).
			WithNote(lit.Span, "in pattern passed to "+lit.Func).
			WithNote(class, "class "+p.Slice(f.Class)).
			WithFixSuggestion(fix.DeleteSpan("remove "+spelling, tok, string(file.Content[tok.Start:tok.End]))).
			Emit()
	}
	return len(findings)
}
