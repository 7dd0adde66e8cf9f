// Package lint drives the regex checks over host files.
//
// LintFile runs one file through extraction (internal/hostlang), class
// analysis (internal/charclass) and diagnostic construction. LintPaths
// collects files, loads them into a shared source.FileSet, lints them in
// parallel with a bounded errgroup, consults the disk cache and applies the
// baseline. Progress is reported through a ProgressSink and timing through
// internal/observ; spans go to the tracer found in the context.
package lint
