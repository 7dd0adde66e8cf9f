package lint

import (
	"fmt"
	"runtime"

	"rxlint/internal/baseline"
	"rxlint/internal/cache"
	"rxlint/internal/diag"
	"rxlint/internal/source"
)

// Rules toggles individual checks.
type Rules struct {
	GreedyClass    bool // RX1001
	MalformedClass bool // RX1002 and RX1003
}

// Options configures a lint run.
type Options struct {
	Rules Rules
	// Severity of greedy-class findings; malformed patterns are always errors.
	Severity diag.Severity
	// MessagePrefix is prepended to every regex diagnostic message, e.g. "[EA] ".
	MessagePrefix  string
	MaxDiagnostics int
	// Jobs bounds parallel workers; <= 0 means GOMAXPROCS.
	Jobs int
	// Extensions selects files when walking directories. Explicit file
	// arguments are always linted.
	Extensions    []string
	Decoder       *source.Decoder
	Cache         *cache.Cache
	Baseline      *baseline.File
	Progress      ProgressSink
	EnableTimings bool
}

// DefaultOptions returns the options used without a config file.
func DefaultOptions() Options {
	return Options{
		Rules:          Rules{GreedyClass: true, MalformedClass: true},
		Severity:       diag.SevWarning,
		MaxDiagnostics: 500,
		Extensions:     []string{".php", ".go"},
	}
}

func (o Options) jobs(files int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

// fingerprint captures every option that changes LintFile output.
func (o Options) fingerprint() string {
	enc := ""
	if o.Decoder != nil {
		enc = o.Decoder.Name()
	}
	return fmt.Sprintf("greedy=%t;malformed=%t;sev=%d;prefix=%q;max=%d;enc=%s",
		o.Rules.GreedyClass, o.Rules.MalformedClass, o.Severity, o.MessagePrefix, o.MaxDiagnostics, enc)
}
