// Package diag defines the diagnostic model shared by the regex lint passes,
// the driver and the CLI.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – numeric identifier with a stable string ID such as RX1001 (codes.go).
//   - Message – human oriented text; for greedy classes it is the exact
//     "[...] is 'greedy'" sentence produced by internal/charclass.
//   - Primary – the source.Span of the offending token in the host file.
//   - Notes – secondary spans, e.g. the whole pattern literal.
//   - Fixes – structured edits that internal/fix can apply.
//
// FixEdit spans are byte offsets into the decoded host file. OldText guards an
// edit: the fix engine refuses to apply it if the bytes under Span differ.
//
// # Emitting diagnostics
//
// Producers use a Reporter (BagReporter, UniqueReporter) and a ReportBuilder:
//
//	diag.ReportWarning(r, diag.RxGreedyClass, span, msg).
//		WithNote(literal, "in this pattern").
//		WithFix("remove \\d", edit).
//		Emit()
//
// Bag collects diagnostics with a limit and supports Sort, Dedup, Filter and
// Transform. Package diag does no IO; rendering lives in internal/diagfmt.
package diag
