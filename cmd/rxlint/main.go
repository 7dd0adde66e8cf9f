package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rxlint/internal/version"
)

// errFindings is returned when error-severity diagnostics were reported.
// The diagnostics are already printed, so main exits without a message.
var errFindings = errors.New("lint reported errors")

var rootCmd = &cobra.Command{
	Use:   "rxlint",
	Short: "Character-class redundancy linter for regular expressions",
	Long: `rxlint finds regex character classes such as [\d\w] where one shorthand
is a subset of another one in the same class, in PHP and Go sources.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
	PersistentPostRun: postRun,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(patternCmd)
	rootCmd.AddCommand(fixtureCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = from config)")
	rootCmd.PersistentFlags().String("config", "", "path to rxlint.toml (default: discovered from the first path upwards)")

	// Трассировка
	rootCmd.PersistentFlags().String("trace", "", "write trace events to file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept in ring mode")

	// Профилирование
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
}

// main executes the root command. Any error exits with status 1; errFindings
// exits silently because the diagnostics are already printed.
func main() {
	err := rootCmd.Execute()
	// PersistentPostRun не вызывается при ошибке
	postRun(rootCmd, nil)
	if err == nil {
		return
	}
	if !errors.Is(err, errFindings) {
		fmt.Fprintln(os.Stderr, "rxlint:", err)
	}
	os.Exit(1)
}

func preRun(cmd *cobra.Command, _ []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	traceCleanup = cleanup
	return setupProfiling(cmd)
}

func postRun(cmd *cobra.Command, _ []string) {
	stopProfiling(cmd)
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // Fd fits in int on supported platforms
}
