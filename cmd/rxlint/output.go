package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"rxlint/internal/diag"
	"rxlint/internal/diagfmt"
	"rxlint/internal/fix"
	"rxlint/internal/lint"
	"rxlint/internal/source"
	"rxlint/internal/version"
)

type outputFormat string

const (
	formatPretty outputFormat = "pretty"
	formatJSON   outputFormat = "json"
	formatShort  outputFormat = "short"
	formatSarif  outputFormat = "sarif"
)

func readFormat(value string) (outputFormat, error) {
	switch f := outputFormat(value); f {
	case formatPretty, formatJSON, formatShort, formatSarif:
		return f, nil
	}
	return "", fmt.Errorf("unknown format: %s (expected pretty|json|short|sarif)", value)
}

type renderOptions struct {
	Format    outputFormat
	PathMode  diagfmt.PathMode
	WithNotes bool
	Max       int
}

// mergeResults collects every file bag into one sorted bag.
func mergeResults(results []lint.FileResult) *diag.Bag {
	bag := diag.NewBag(0)
	for _, r := range results {
		bag.Merge(r.Bag)
	}
	bag.Sort()
	return bag
}

// promoteWarnings turns warnings into errors for --warnings-as-errors.
func promoteWarnings(results []lint.FileResult) {
	for _, r := range results {
		if r.Bag == nil {
			continue
		}
		r.Bag.Transform(func(d diag.Diagnostic) diag.Diagnostic {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
			return d
		})
	}
}

func renderDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts renderOptions) error {
	switch opts.Format {
	case formatPretty:
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   1,
			PathMode:  opts.PathMode,
			ShowNotes: opts.WithNotes,
			ShowFixes: opts.WithNotes,
		})
		return nil
	case formatShort:
		return diagfmt.Short(w, bag, fs, opts.PathMode, opts.WithNotes)
	case formatJSON:
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         opts.PathMode,
			Max:              opts.Max,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	case formatSarif:
		return diagfmt.Sarif(w, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "rxlint",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args,
			PathMode:       opts.PathMode,
		})
	}
	return fmt.Errorf("unknown format: %s", opts.Format)
}

func printSummary(w io.Writer, stats lint.Stats) {
	fmt.Fprintf(w, "checked %d file(s), %d regex literal(s): %d error(s), %d warning(s)",
		stats.Files, stats.Literals, stats.Errors, stats.Warnings)
	if stats.Infos > 0 {
		fmt.Fprintf(w, ", %d info", stats.Infos)
	}
	if stats.Cached > 0 || stats.Suppressed > 0 {
		fmt.Fprintf(w, " (%d cached, %d suppressed by baseline)", stats.Cached, stats.Suppressed)
	}
	fmt.Fprintln(w)
}

// printApplyResult reports what fix.Apply did. ErrNoFixes is not an error
// for the caller.
func printApplyResult(w io.Writer, res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}
	if len(res.Applied) > 0 {
		fmt.Fprintf(w, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(w, "  %s [%s] %s (%d edits)\n", item.Title, item.ID, location, item.EditCount)
		}
	}
	if len(res.FileChanges) > 0 {
		fmt.Fprintln(w, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(w, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(w, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(w, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(w, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}
	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(w, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}
	if len(res.Applied) == 0 {
		fmt.Fprintln(w, "No fixes applied.")
	}
	return nil
}
