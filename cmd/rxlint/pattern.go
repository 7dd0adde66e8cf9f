package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rxlint/internal/charclass"
)

var patternCmd = &cobra.Command{
	Use:   "pattern [flags] <regex>...",
	Short: "Analyze raw regex pattern bodies",
	Long: `Analyze each argument as a regex body without delimiters or host-language
quoting. Columns are 1-based character positions in the pattern.`,
	Example: `  rxlint pattern '[\d\w]+' '^[\D\W\S]$'`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runPattern,
}

func init() {
	patternCmd.Flags().String("format", "text", "output format (text|json)")
}

type patternFinding struct {
	Column    int    `json:"column"`
	EndColumn int    `json:"end_column"`
	Token     string `json:"token"`
	Offending string `json:"offending"`
	Subsuming string `json:"subsuming"`
	Message   string `json:"message"`
}

type patternReport struct {
	Pattern  string           `json:"pattern"`
	Findings []patternFinding `json:"findings"`
	Error    string           `json:"error,omitempty"`
}

func runPattern(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format: %s (expected text|json)", format)
	}

	reports, failed := analyzePatterns(args)
	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("failed to encode findings: %w", err)
		}
	} else {
		writePatternText(out, reports)
	}
	if failed {
		return errFindings
	}
	return nil
}

// analyzePatterns runs the analyzer on each pattern. failed is set when any
// pattern is malformed.
func analyzePatterns(patterns []string) (reports []patternReport, failed bool) {
	reports = make([]patternReport, 0, len(patterns))
	for _, src := range patterns {
		r := patternReport{Pattern: src, Findings: []patternFinding{}}
		p := charclass.NewPattern(src)
		findings, err := charclass.AnalyzePattern(p)
		if err != nil {
			r.Error = err.Error()
			var mce *charclass.MalformedClassError
			if errors.As(err, &mce) {
				r.Error = fmt.Sprintf("malformed character class at column %d: %s", mce.Offset+1, mce.Reason)
			}
			failed = true
		}
		for _, f := range findings {
			r.Findings = append(r.Findings, patternFinding{
				Column:    f.Start + 1,
				EndColumn: f.End + 1,
				Token:     p.Slice(f.Range),
				Offending: f.Offending.Escape(),
				Subsuming: f.Subsuming.Escape(),
				Message:   f.Message,
			})
		}
		reports = append(reports, r)
	}
	return reports, failed
}

func writePatternText(w io.Writer, reports []patternReport) {
	bad := color.New(color.FgRed, color.Bold)
	warn := color.New(color.FgYellow, color.Bold)
	ok := color.New(color.FgGreen)
	for _, r := range reports {
		switch {
		case r.Error != "":
			fmt.Fprintf(w, "%s %s: %s\n", bad.Sprint("error"), r.Pattern, r.Error)
		case len(r.Findings) == 0:
			fmt.Fprintf(w, "%s %s\n", ok.Sprint("ok"), r.Pattern)
		default:
			for _, f := range r.Findings {
				fmt.Fprintf(w, "%s %s:%d: %s\n", warn.Sprint("warning"), r.Pattern, f.Column, f.Message)
			}
		}
	}
}
