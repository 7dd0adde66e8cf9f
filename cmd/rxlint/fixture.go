package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rxlint/internal/fixture"
	"rxlint/internal/trace"
)

var fixtureCmd = &cobra.Command{
	Use:   "fixture [flags] <file>...",
	Short: "Verify annotated fixtures",
	Long: `Each fixture is a host file with <error descr="MESSAGE">TEXT</error> markers.
The markers are stripped, the clean source is linted, and every diagnostic must
match one marker: same message, primary span inside the marked text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFixture,
}

func init() {
	fixtureCmd.Flags().String("prefix", "", "message prefix expected in markers, e.g. \"[EA] \"")
	fixtureCmd.Flags().Bool("update", false, "rewrite markers from the current diagnostics")
}

func runFixture(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	prefix, err := cmd.Flags().GetString("prefix")
	if err != nil {
		return fmt.Errorf("failed to get prefix flag: %w", err)
	}
	update, err := cmd.Flags().GetBool("update")
	if err != nil {
		return fmt.Errorf("failed to get update flag: %w", err)
	}

	ctx, span := trace.Start(cmd.Context(), trace.ScopeDriver, "fixture")
	defer span.End("")

	s, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}
	opts, err := lintOptions(cmd, s)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("prefix") {
		opts.MessagePrefix = prefix
	}

	out := cmd.OutOrStdout()
	pass := color.New(color.FgGreen, color.Bold).Sprint("PASS")
	fail := color.New(color.FgRed, color.Bold).Sprint("FAIL")
	failed := 0
	for _, path := range args {
		fx, err := fixture.Load(path)
		if err != nil {
			return err
		}
		res, err := fixture.Run(ctx, fx, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if update {
			if res.OK() {
				fmt.Fprintf(out, "%s %s (unchanged)\n", pass, path)
				continue
			}
			data, err := res.Update()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if err := writeFileKeepMode(path, data); err != nil {
				return err
			}
			fmt.Fprintf(out, "updated %s (%d marker(s))\n", path, len(res.Diagnostics))
			continue
		}
		if res.OK() {
			fmt.Fprintf(out, "%s %s (%d expectation(s))\n", pass, path, res.Matched)
			continue
		}
		failed++
		fmt.Fprintf(out, "%s %s\n", fail, path)
		fmt.Fprint(out, res.Report())
	}
	if failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d fixture(s) failed\n", failed, len(args))
		return errFindings
	}
	return nil
}

func writeFileKeepMode(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
