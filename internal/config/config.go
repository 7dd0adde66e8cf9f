// Package config loads rxlint.toml, the per-project settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"rxlint/internal/diag"
	"rxlint/internal/lint"
	"rxlint/internal/source"
)

// FileName is the settings file looked up from the lint target upwards.
const FileName = "rxlint.toml"

// ErrExists is returned by Write when the target exists.
var ErrExists = errors.New("config file already exists")

// Config mirrors rxlint.toml.
type Config struct {
	Lint  LintConfig  `toml:"lint"`
	Rules RulesConfig `toml:"rules"`
}

type LintConfig struct {
	Extensions     []string `toml:"extensions"`
	Severity       string   `toml:"severity"`
	MessagePrefix  string   `toml:"message_prefix"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
	Jobs           int      `toml:"jobs"`
	SourceEncoding string   `toml:"source_encoding"`
	Baseline       string   `toml:"baseline"`
}

type RulesConfig struct {
	GreedyClass    bool `toml:"greedy_class"`
	MalformedClass bool `toml:"malformed_class"`
}

// Manifest is a discovered settings file.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the settings used when no file is found.
func Default() Config {
	opts := lint.DefaultOptions()
	return Config{
		Lint: LintConfig{
			Extensions:     append([]string(nil), opts.Extensions...),
			Severity:       strings.ToLower(opts.Severity.String()),
			MaxDiagnostics: opts.MaxDiagnostics,
		},
		Rules: RulesConfig{
			GreedyClass:    opts.Rules.GreedyClass,
			MalformedClass: opts.Rules.MalformedClass,
		},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the settings file governing startDir.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// Load decodes path over Default. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	// явный пустой список означает "ничего не проверять", это почти наверняка ошибка
	if meta.IsDefined("lint", "extensions") && len(cfg.Lint.Extensions) == 0 {
		return Config{}, fmt.Errorf("%s: [lint].extensions must not be empty", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and spellings.
func (c Config) Validate() error {
	if _, err := diag.ParseSeverity(c.Lint.Severity); err != nil {
		return fmt.Errorf("[lint].severity: %w", err)
	}
	if c.Lint.MaxDiagnostics < 0 {
		return fmt.Errorf("[lint].max_diagnostics must be >= 0, got %d", c.Lint.MaxDiagnostics)
	}
	if c.Lint.Jobs < 0 {
		return fmt.Errorf("[lint].jobs must be >= 0, got %d", c.Lint.Jobs)
	}
	for _, ext := range c.Lint.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("[lint].extensions: %q must start with a dot", ext)
		}
	}
	if _, err := source.NewDecoder(c.Lint.SourceEncoding); err != nil {
		return fmt.Errorf("[lint].source_encoding: %w", err)
	}
	return nil
}

// Write stores c at path. An existing file is kept unless overwrite is set.
func (c Config) Write(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrExists)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	enc := toml.NewEncoder(f)
	enc.Indent = ""
	if err := enc.Encode(c); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

// Options converts c into lint options. Baseline and cache are left to the
// caller; BaselinePath resolves the former.
func (c Config) Options() (lint.Options, error) {
	opts := lint.DefaultOptions()
	sev, err := diag.ParseSeverity(c.Lint.Severity)
	if err != nil {
		return opts, err
	}
	dec, err := source.NewDecoder(c.Lint.SourceEncoding)
	if err != nil {
		return opts, err
	}
	opts.Severity = sev
	opts.MessagePrefix = c.Lint.MessagePrefix
	opts.MaxDiagnostics = c.Lint.MaxDiagnostics
	opts.Jobs = c.Lint.Jobs
	opts.Decoder = dec
	if len(c.Lint.Extensions) > 0 {
		opts.Extensions = append([]string(nil), c.Lint.Extensions...)
	}
	opts.Rules = lint.Rules{
		GreedyClass:    c.Rules.GreedyClass,
		MalformedClass: c.Rules.MalformedClass,
	}
	return opts, nil
}

// BaselinePath returns the configured baseline relative to root, or "".
func (c Config) BaselinePath(root string) string {
	p := strings.TrimSpace(c.Lint.Baseline)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, filepath.FromSlash(p))
}
