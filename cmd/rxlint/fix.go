package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rxlint/internal/fix"
	"rxlint/internal/lint"
	"rxlint/internal/trace"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file|directory...]",
	Short: "Remove redundant shorthands from regex character classes",
	Long:  "Run the linter, surface available fixes, and apply them according to the chosen strategy.",
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "list the changes without writing files")
	fixCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}

func runFix(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fmt.Errorf("failed to get once flag: %w", err)
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return fmt.Errorf("failed to get id flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	ctx, span := trace.Start(cmd.Context(), trace.ScopeDriver, "fix")
	defer span.End("")

	s, err := loadSettings(cmd, paths)
	if err != nil {
		return err
	}
	opts, err := lintOptions(cmd, s)
	if err != nil {
		return err
	}
	// находки с фиксами нужны все, независимо от baseline и кэша
	opts.Baseline = nil

	fs, results, err := lint.LintPaths(ctx, paths, opts)
	if err != nil {
		return fmt.Errorf("fix: lint failed: %w", err)
	}

	res, applyErr := fix.Apply(fs, lint.Diagnostics(results), fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	})
	out := cmd.OutOrStdout()
	if dryRun && res != nil && len(res.FileChanges) > 0 {
		fmt.Fprintln(out, "Dry run, no files written.")
	}
	return printApplyResult(out, res, applyErr)
}
