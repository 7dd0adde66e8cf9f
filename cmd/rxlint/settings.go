package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rxlint/internal/cache"
	"rxlint/internal/config"
	"rxlint/internal/lint"
	"rxlint/internal/trace"
)

// useColor is resolved once from --color in preRun.
var useColor bool

func setupColor(cmd *cobra.Command) error {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		useColor = true
	case "off":
		useColor = false
	case "auto":
		useColor = isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	color.NoColor = !useColor
	return nil
}

// settings is the effective configuration of one command.
type settings struct {
	Config config.Config
	// Path is the loaded rxlint.toml, empty when defaults are used.
	Path string
	// Root anchors relative paths from the config file.
	Root string
}

// loadSettings reads --config or discovers rxlint.toml from the first path.
func loadSettings(cmd *cobra.Command, paths []string) (settings, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		cfg, err := config.Load(explicit)
		if err != nil {
			return settings{}, err
		}
		return settings{Config: cfg, Path: explicit, Root: filepath.Dir(explicit)}, nil
	}

	start := "."
	if len(paths) > 0 {
		start = paths[0]
	}
	manifest, ok, err := config.Discover(start)
	if err != nil {
		return settings{}, err
	}
	if ok {
		trace.Point(trace.FromContext(cmd.Context()), trace.ScopeDriver, "config", manifest.Path, trace.CurrentSpan(cmd.Context()))
		return settings{Config: manifest.Config, Path: manifest.Path, Root: manifest.Root}, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return settings{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	return settings{Config: config.Default(), Root: wd}, nil
}

// lintOptions converts settings into lint options; flags override the file.
func lintOptions(cmd *cobra.Command, s settings) (lint.Options, error) {
	opts, err := s.Config.Options()
	if err != nil {
		return opts, fmt.Errorf("%s: %w", configName(s), err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics > 0 {
		opts.MaxDiagnostics = maxDiagnostics
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	opts.EnableTimings = showTimings

	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		opts.Jobs = jobs
	}
	return opts, nil
}

// openCache returns the user cache, or nil when it cannot be opened; the
// run then continues uncached.
func openCache(cmd *cobra.Command) *cache.Cache {
	c, err := cache.Open("rxlint")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "rxlint: cache disabled: %v\n", err)
		return nil
	}
	return c
}

func configName(s settings) string {
	if s.Path == "" {
		return "default settings"
	}
	return s.Path
}
