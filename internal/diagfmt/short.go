package diagfmt

import (
	"fmt"
	"io"

	"rxlint/internal/diag"
	"rxlint/internal/source"
)

// Short печатает по одной строке на диагностику:
// <SEV> <CODE> <path>:<line>:<col> <message>
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(bag.Items(), fs, includeNotes, mode.String())
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
