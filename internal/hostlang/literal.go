package hostlang

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"rxlint/internal/source"
)

var (
	// ErrUnsupported is returned by Extract for files of an unknown host language.
	ErrUnsupported = errors.New("unsupported host language")
	// ErrNoDelimiter marks a PCRE pattern whose closing delimiter is missing.
	ErrNoDelimiter = errors.New("no ending delimiter")
	// ErrBadDelimiter marks an empty PCRE pattern or an alphanumeric/backslash delimiter.
	ErrBadDelimiter = errors.New("invalid delimiter")
	// ErrHostSyntax wraps a parse error of the host file; partial results are still returned.
	ErrHostSyntax = errors.New("host syntax error")
)

// Lang identifies a host language.
type Lang uint8

const (
	LangUnknown Lang = iota
	LangPHP
	LangGo
)

func (l Lang) String() string {
	switch l {
	case LangPHP:
		return "php"
	case LangGo:
		return "go"
	default:
		return "unknown"
	}
}

// LangFor picks the host language by file extension.
func LangFor(path string) (Lang, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".php", ".phtml", ".php5", ".inc":
		return LangPHP, true
	case ".go":
		return LangGo, true
	}
	return LangUnknown, false
}

// Literal is one regular expression found in a host file.
type Literal struct {
	Lang  Lang
	Func  string      // calling function, lower-case for PHP ("preg_match", "mustcompile")
	Body  string      // decoded pattern without delimiters and modifiers
	Delim string      // opening PCRE delimiter, empty for Go
	Flags string      // PCRE modifiers after the closing delimiter
	Span  source.Span // the whole string literal, quotes included

	// offs[i] is the file offset of the source text that produced Body[i];
	// offs[len(Body)] is the offset right after the body.
	offs []uint32
}

// SourceSpan maps the body byte range [start, end) to a file span.
// Out-of-range bounds are clamped.
func (l *Literal) SourceSpan(start, end int) source.Span {
	if len(l.offs) == 0 {
		return l.Span
	}
	last := len(l.offs) - 1
	start = min(max(start, 0), last)
	end = min(max(end, start), last)
	return source.Span{File: l.Span.File, Start: l.offs[start], End: l.offs[end]}
}

// BodySpan is the file span of the whole pattern body.
func (l *Literal) BodySpan() source.Span {
	return l.SourceSpan(0, len(l.Body))
}

// Issue is a literal that was recognised but cannot be analysed.
type Issue struct {
	Span source.Span
	Func string
	Err  error
}

// Result is the outcome of extracting one file.
type Result struct {
	Lang     Lang
	Literals []Literal
	Issues   []Issue
}

// Extract finds regular-expression literals in file according to its extension.
func Extract(file *source.File) (Result, error) {
	lang, ok := LangFor(file.Path)
	if !ok {
		return Result{}, fmt.Errorf("%s: %w", file.Path, ErrUnsupported)
	}
	return ExtractAs(file, lang)
}

// ExtractAs is Extract with an explicit host language.
func ExtractAs(file *source.File, lang Lang) (Result, error) {
	switch lang {
	case LangPHP:
		return extractPHP(file), nil
	case LangGo:
		return extractGo(file)
	}
	return Result{}, fmt.Errorf("%s: %w", file.Path, ErrUnsupported)
}
