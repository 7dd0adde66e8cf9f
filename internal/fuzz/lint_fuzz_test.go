package fuzztests

import (
	"context"
	"testing"
	"time"

	"rxlint/internal/lint"
	"rxlint/internal/source"
	"rxlint/internal/testkit"
)

// lintTimeout bounds one LintFile call; exceeding it means a scanner loops.
const lintTimeout = 5 * time.Second

func fuzzLint(t *testing.T, name string, input []byte) {
	input = clampInput(input)

	done := make(chan struct{})
	go func() {
		defer close(done)
		fs := source.NewFileSet()
		id := fs.AddVirtual(name, input)
		bag, err := lint.LintFile(context.Background(), fs, id, lint.DefaultOptions())
		if err != nil {
			t.Errorf("LintFile: %v", err)
			return
		}
		if err := testkit.CheckDiagnosticSpans(fs, bag.Items()); err != nil {
			t.Errorf("span invariants: %v", err)
		}
	}()

	select {
	case <-done:
	case <-time.After(lintTimeout):
		t.Fatalf("LintFile did not finish in %s on %d bytes", lintTimeout, len(input))
	}
}

func FuzzLintPHP(f *testing.F) {
	addHostSeeds(f, ".php")
	f.Fuzz(func(t *testing.T, input []byte) {
		fuzzLint(t, "fuzz.php", input)
	})
}

func FuzzLintGo(f *testing.F) {
	addHostSeeds(f, ".go")
	f.Fuzz(func(t *testing.T, input []byte) {
		fuzzLint(t, "fuzz.go", input)
	})
}
