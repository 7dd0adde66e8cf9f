package version

import (
	"strings"
	"testing"
)

func override(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestColored(t *testing.T) {
	override(t, "1.2.3-rc1", "", "")

	if got := Colored(false); got != "1.2.3-rc1" {
		t.Errorf("Colored(false) = %q", got)
	}
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc1") {
		t.Errorf("Colored(true) = %q", got)
	}
}

func TestColoredNonSemver(t *testing.T) {
	override(t, "nightly", "", "")
	if got := Colored(true); got != "nightly" {
		t.Errorf("Colored(true) = %q", got)
	}
}

func TestInfo(t *testing.T) {
	override(t, "1.2.3", "abc123def456", "2024-01-15T10:30:00Z")

	info := Info(false)
	for _, want := range []string{"rxlint 1.2.3\n", "commit: abc123def456\n", "built:  2024-01-15T10:30:00Z\n", "go:     go"} {
		if !strings.Contains(info, want) {
			t.Errorf("Info lacks %q:\n%s", want, info)
		}
	}
}
