// Package hostlang finds regular-expression literals inside host source files
// and maps pattern offsets back to file offsets.
//
// Two hosts are supported: PHP (first argument of the preg_* family, a
// single- or double-quoted string with PCRE delimiters) and Go (first
// argument of regexp.Compile and friends). String escapes are decoded while
// recording, for every decoded byte, the file offset it came from, so that a
// span inside the pattern body can be turned into a span of the original
// source text, escapes included.
package hostlang
