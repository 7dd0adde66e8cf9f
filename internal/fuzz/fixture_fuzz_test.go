package fuzztests

import (
	"errors"
	"testing"

	"rxlint/internal/fixture"
)

func FuzzFixtureParse(f *testing.F) {
	addHostSeeds(f, ".php")
	f.Add([]byte(`<error descr="a &amp; b">x</error>`))
	f.Add([]byte(`<error descr="x">`))
	f.Add([]byte(`</error>`))
	f.Fuzz(func(t *testing.T, input []byte) {
		fx, err := fixture.Parse("fuzz.php", clampInput(input))
		if err != nil {
			if !errors.Is(err, fixture.ErrMarker) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			return
		}
		size := uint32(len(fx.Source)) //nolint:gosec // input is clamped to 64 KiB
		for _, e := range fx.Expectations {
			if e.Start > e.End || e.End > size {
				t.Fatalf("expectation %+v outside clean source of %d bytes", e, size)
			}
		}
		if _, err := fixture.Annotate(fx.Source, fx.Expectations); err != nil && !errors.Is(err, fixture.ErrMarker) {
			t.Fatalf("Annotate: %v", err)
		}
	})
}
