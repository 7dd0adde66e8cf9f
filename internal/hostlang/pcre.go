package hostlang

import (
	"fmt"
	"strings"
)

var bracketDelims = map[byte]byte{'(': ')', '[': ']', '{': '}', '<': '>'}

// stripDelimiters splits a decoded PCRE string into body and modifiers the
// way preg_* does: leading whitespace is skipped, bracket delimiters nest,
// and the first unescaped closing delimiter ends the body.
func stripDelimiters(d decoded) (Literal, error) {
	text := d.text
	i := 0
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	if i == len(text) {
		return Literal{}, fmt.Errorf("%w: empty regular expression", ErrBadDelimiter)
	}
	open := text[i]
	if isAlnum(open) || open == '\\' || open == 0 {
		return Literal{}, fmt.Errorf("%w: delimiter must not be alphanumeric or backslash", ErrBadDelimiter)
	}
	closing, bracket := bracketDelims[open]
	if !bracket {
		closing = open
	}

	depth := 1
	j := i + 1
	for ; j < len(text); j++ {
		c := text[j]
		switch {
		case c == '\\':
			j++
		case c == closing:
			depth--
		case bracket && c == open:
			depth++
		}
		if depth == 0 {
			break
		}
	}
	if j >= len(text) {
		return Literal{}, fmt.Errorf("%w '%c' found", ErrNoDelimiter, closing)
	}

	body := d.slice(i+1, j)
	return Literal{
		Body:  string(body.text),
		Delim: string(open),
		Flags: strings.TrimRight(string(text[j+1:]), " \t\r\n"),
		offs:  body.offs,
	}, nil
}

func isAlnum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
