package hostlang

import (
	"strings"

	"rxlint/internal/source"
)

// pregFuncs are the PHP functions whose first argument is a PCRE pattern.
var pregFuncs = map[string]struct{}{
	"preg_match":                  {},
	"preg_match_all":              {},
	"preg_replace":                {},
	"preg_replace_callback":       {},
	"preg_replace_callback_array": {},
	"preg_split":                  {},
	"preg_grep":                   {},
	"preg_filter":                 {},
}

// phpScanner walks PHP source looking for preg_* calls. It knows just enough
// of the lexical grammar (inline HTML, comments, strings, heredocs) to avoid
// false matches; it is not a PHP parser.
type phpScanner struct {
	file *source.File
	cur  cursor
	prev string // последний значимый токен: идентификатор, "->", "::", "$" и т.п.
	res  Result
}

func extractPHP(file *source.File) Result {
	s := &phpScanner{
		file: file,
		cur:  newCursor(file.Content),
		res:  Result{Lang: LangPHP},
	}
	for !s.cur.eof() {
		s.skipInlineHTML()
		s.scanCode()
	}
	return s.res
}

func (s *phpScanner) skipInlineHTML() {
	for !s.cur.eof() {
		switch {
		case s.cur.hasPrefixFold("<?php"):
			s.cur.skip(5)
			return
		case s.cur.hasPrefix("<?"):
			s.cur.skip(2)
			s.cur.eat('=')
			return
		}
		s.cur.bump()
	}
}

// scanCode stops after "?>" or at EOF.
func (s *phpScanner) scanCode() {
	s.prev = ""
	for !s.cur.eof() {
		b := s.cur.peek()
		switch {
		case isSpace(b):
			s.cur.bump()
		case b == '?' && s.cur.peekAt(1) == '>':
			s.cur.skip(2)
			return
		case b == '#' && s.cur.peekAt(1) == '[':
			// атрибут PHP 8, не комментарий
			s.cur.skip(2)
			s.prev = "#["
		case b == '#', b == '/' && s.cur.peekAt(1) == '/':
			s.skipLineComment()
		case b == '/' && s.cur.peekAt(1) == '*':
			s.skipBlockComment()
		case b == '\'', b == '"', b == '`':
			s.skipString(b)
			s.prev = "string"
		case s.cur.hasPrefix("<<<"):
			s.skipHeredoc()
			s.prev = "string"
		case isIdentStart(b):
			s.scanIdent()
		case b == '-' && s.cur.peekAt(1) == '>':
			s.cur.skip(2)
			s.prev = "->"
		case b == '?' && s.cur.peekAt(1) == '-' && s.cur.peekAt(2) == '>':
			s.cur.skip(3)
			s.prev = "->"
		case b == ':' && s.cur.peekAt(1) == ':':
			s.cur.skip(2)
			s.prev = "::"
		default:
			s.prev = string(s.cur.bump())
		}
	}
}

// skipTrivia skips whitespace and comments but stops at "?>".
func (s *phpScanner) skipTrivia() {
	for !s.cur.eof() {
		b := s.cur.peek()
		switch {
		case isSpace(b):
			s.cur.bump()
		case b == '#' && s.cur.peekAt(1) != '[', b == '/' && s.cur.peekAt(1) == '/':
			s.skipLineComment()
		case b == '/' && s.cur.peekAt(1) == '*':
			s.skipBlockComment()
		default:
			return
		}
	}
}

// skipLineComment: однострочный комментарий заканчивается на '\n' или перед "?>".
func (s *phpScanner) skipLineComment() {
	for !s.cur.eof() && s.cur.peek() != '\n' {
		if s.cur.hasPrefix("?>") {
			return
		}
		s.cur.bump()
	}
}

func (s *phpScanner) skipBlockComment() {
	s.cur.skip(2)
	for !s.cur.eof() {
		if s.cur.hasPrefix("*/") {
			s.cur.skip(2)
			return
		}
		s.cur.bump()
	}
}

func (s *phpScanner) skipString(q byte) {
	s.cur.bump()
	for !s.cur.eof() {
		switch s.cur.bump() {
		case '\\':
			s.cur.bump()
		case q:
			return
		}
	}
}

// skipHeredoc handles <<<ID, <<<"ID" and <<<'ID' with an optionally
// indented closing marker.
func (s *phpScanner) skipHeredoc() {
	s.cur.skip(3)
	for s.cur.peek() == ' ' || s.cur.peek() == '\t' {
		s.cur.bump()
	}
	quote := s.cur.peek()
	if quote == '\'' || quote == '"' {
		s.cur.bump()
	} else {
		quote = 0
	}
	start := s.cur.off
	for isIdentContinue(s.cur.peek()) {
		s.cur.bump()
	}
	label := string(s.cur.src[start:s.cur.off])
	if label == "" {
		return
	}
	if quote != 0 {
		s.cur.eat(quote)
	}
	s.cur.skipLine()
	for !s.cur.eof() {
		s.cur.bump() // '\n'
		for s.cur.peek() == ' ' || s.cur.peek() == '\t' {
			s.cur.bump()
		}
		if s.cur.hasPrefix(label) && !isIdentContinue(s.cur.peekAt(len(label))) {
			s.cur.skip(len(label))
			return
		}
		s.cur.skipLine()
	}
}

func (s *phpScanner) scanIdent() {
	start := s.cur.off
	for isIdentContinue(s.cur.peek()) {
		s.cur.bump()
	}
	name := strings.ToLower(string(s.cur.src[start:s.cur.off]))
	prev := s.prev
	s.prev = name
	if _, ok := pregFuncs[name]; !ok {
		return
	}
	switch prev {
	case "->", "::", "$", "function", "new", "const", "fn":
		return
	}
	s.tryCall(name)
}

// tryCall consumes `( 'pattern'` when followed by ',' or ')'. Anything else
// (concatenation, variables, arrays) is left to the main loop.
func (s *phpScanner) tryCall(name string) {
	save := s.cur.off
	s.skipTrivia()
	if !s.cur.eat('(') {
		s.cur.off = save
		return
	}
	s.skipTrivia()
	q := s.cur.peek()
	if q != '\'' && q != '"' {
		s.cur.off = save
		return
	}
	litStart := s.cur.off
	dec, interpolated, ok := s.readString(q)
	if !ok {
		return
	}
	litEnd := s.cur.off
	s.prev = "string"
	s.skipTrivia()
	next := s.cur.peek()
	s.cur.off = litEnd
	if (next != ',' && next != ')') || interpolated {
		return
	}

	span := source.Span{File: s.file.ID, Start: toOffset(litStart), End: toOffset(litEnd)}
	lit, err := stripDelimiters(dec)
	if err != nil {
		s.res.Issues = append(s.res.Issues, Issue{Span: span, Func: name, Err: err})
		return
	}
	lit.Lang = LangPHP
	lit.Func = name
	lit.Span = span
	s.res.Literals = append(s.res.Literals, lit)
}
