package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"rxlint/internal/lint"
	"rxlint/internal/source"
	"rxlint/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// wantProgressUI decides whether the progress view runs. It never runs for
// machine-readable output, in quiet mode or when stderr is not a terminal in
// auto mode.
func wantProgressUI(mode uiMode, format outputFormat, quiet bool) bool {
	if quiet || format != formatPretty {
		return false
	}
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stderr) && isTerminal(os.Stdout)
	}
}

type lintOutcome struct {
	fs      *source.FileSet
	results []lint.FileResult
	err     error
}

// runLintWithUI runs LintPaths while a Bubble Tea program renders its
// progress events on stderr.
func runLintWithUI(ctx context.Context, title string, paths []string, opts lint.Options) (*source.FileSet, []lint.FileResult, error) {
	files, err := lint.CollectFiles(paths, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan lint.Event, 256)
	outcomeCh := make(chan lintOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Progress = lint.ChannelSink{Ch: events}
		fs, results, err := lint.LintPaths(ctx, paths, runOpts)
		outcomeCh <- lintOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()

	// программа могла завершиться раньше (ctrl+c): останавливаем линт и
	// вычитываем оставшиеся события, чтобы воркеры не заблокировались
	select {
	case outcome := <-outcomeCh:
		outcomeCh <- outcome
	default:
		cancel()
	}
	go func() {
		for range events {
		}
	}()

	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
