package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rxlint/internal/baseline"
	"rxlint/internal/diagfmt"
	"rxlint/internal/fix"
	"rxlint/internal/lint"
	"rxlint/internal/source"
	"rxlint/internal/trace"
)

// defaultBaselineName is used by --write-baseline when neither the flag nor
// rxlint.toml names a file.
const defaultBaselineName = "rxlint-baseline.yaml"

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file|directory...]",
	Short: "Report greedy and malformed regex character classes",
	Long: `Scan PHP and Go sources for regex literals and report character classes
where one shorthand is a subset of another, e.g. [\d\w]. Directories are walked
recursively; vendor and hidden directories are skipped.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short|sarif)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("fix", false, "apply all safe fixes, then report what remains")
	checkCmd.Flags().Bool("no-cache", false, "do not read or write the disk cache")
	checkCmd.Flags().String("baseline", "", "suppress diagnostics recorded in this baseline file")
	checkCmd.Flags().Bool("write-baseline", false, "record current diagnostics into the baseline and exit")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("with-notes", true, "include notes and fixes in pretty and short output")
}

// runCheck lints the given paths, renders diagnostics in the chosen format
// and returns errFindings when error-severity diagnostics remain.
func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readFormat(formatStr)
	if err != nil {
		return err
	}

	applyFixes, err := cmd.Flags().GetBool("fix")
	if err != nil {
		return fmt.Errorf("failed to get fix flag: %w", err)
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	baselineFlag, err := cmd.Flags().GetString("baseline")
	if err != nil {
		return fmt.Errorf("failed to get baseline flag: %w", err)
	}

	writeBaseline, err := cmd.Flags().GetBool("write-baseline")
	if err != nil {
		return fmt.Errorf("failed to get write-baseline flag: %w", err)
	}

	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}

	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	if writeBaseline && applyFixes {
		return fmt.Errorf("--write-baseline and --fix cannot be used together")
	}

	ctx, span := trace.Start(cmd.Context(), trace.ScopeDriver, "check")
	defer span.End("")

	s, err := loadSettings(cmd, paths)
	if err != nil {
		return err
	}
	opts, err := lintOptions(cmd, s)
	if err != nil {
		return err
	}
	if !noCache {
		opts.Cache = openCache(cmd)
	}

	baselinePath := baselineFlag
	if baselinePath == "" {
		baselinePath = s.Config.BaselinePath(s.Root)
	}
	if writeBaseline {
		if baselinePath == "" {
			baselinePath = filepath.Join(s.Root, defaultBaselineName)
		}
		return runWriteBaseline(cmd, paths, opts, baselinePath)
	}
	if baselinePath != "" {
		b, err := baseline.Load(baselinePath)
		if err != nil {
			return err
		}
		opts.Baseline = b
	}

	run := func() (*source.FileSet, []lint.FileResult, error) {
		if wantProgressUI(mode, format, quiet) {
			return runLintWithUI(ctx, "rxlint check", paths, opts)
		}
		return lint.LintPaths(ctx, paths, opts)
	}

	fs, results, err := run()
	if err != nil {
		dumpTraceRing("check failed")
		return fmt.Errorf("lint failed: %w", err)
	}

	if applyFixes {
		res, applyErr := fix.Apply(fs, lint.Diagnostics(results), fix.ApplyOptions{Mode: fix.ApplyModeAll})
		if err := printApplyResult(cmd.ErrOrStderr(), res, applyErr); err != nil {
			return fmt.Errorf("fix failed: %w", err)
		}
		if res != nil && len(res.FileChanges) > 0 {
			// перепроверяем: исправленные находки пропадают, остальные остаются
			fs, results, err = lint.LintPaths(ctx, paths, opts)
			if err != nil {
				return fmt.Errorf("lint failed: %w", err)
			}
		}
	}

	if warningsAsErrors {
		promoteWarnings(results)
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	bag := mergeResults(results)
	if err := renderDiagnostics(cmd.OutOrStdout(), bag, fs, renderOptions{
		Format:    format,
		PathMode:  pathMode,
		WithNotes: withNotes,
		Max:       0,
	}); err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}

	stats := lint.Summarize(results)
	if !quiet && format == formatPretty {
		printSummary(cmd.ErrOrStderr(), stats)
	}
	if opts.EnableTimings {
		fmt.Fprint(cmd.ErrOrStderr(), lint.Timings(results).Summary())
	}

	if stats.Errors > 0 {
		return errFindings
	}
	return nil
}

// runWriteBaseline lints without a baseline and records every diagnostic.
func runWriteBaseline(cmd *cobra.Command, paths []string, opts lint.Options, path string) error {
	opts.Baseline = nil
	fs, results, err := lint.LintPaths(cmd.Context(), paths, opts)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}
	b := baseline.Build(fs, lint.Diagnostics(results))
	if err := b.Write(path); err != nil {
		return fmt.Errorf("failed to write baseline: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "baseline: recorded %d diagnostic(s) in %s\n", b.Len(), displayPath(path))
	return nil
}

func displayPath(p string) string {
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, p); err == nil && !filepath.IsAbs(rel) && rel != "" && rel[0] != '.' {
			return rel
		}
	}
	return p
}
