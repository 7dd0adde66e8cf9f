package hostlang

// simpleEscapes are the one-letter escapes of PHP double-quoted strings.
var simpleEscapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'v':  '\v',
	'e':  0x1b,
	'f':  '\f',
	'\\': '\\',
	'$':  '$',
	'"':  '"',
}

// readString reads a quoted PHP string starting at the opening quote and
// decodes its escapes. interpolated is set for double-quoted strings that
// contain $var or {$ expressions; ok is false when the string is unterminated.
func (s *phpScanner) readString(q byte) (d decoded, interpolated, ok bool) {
	s.cur.bump()
	d = newDecoded(32)
	for !s.cur.eof() {
		off := s.cur.off
		b := s.cur.peek()
		switch {
		case b == q:
			d.finish(off)
			s.cur.bump()
			return d, interpolated, true
		case b == '\\' && q == '\'':
			s.singleQuotedEscape(&d)
		case b == '\\':
			s.doubleQuotedEscape(&d)
		case q == '"' && b == '$' && (isIdentStart(s.cur.peekAt(1)) || s.cur.peekAt(1) == '{'):
			interpolated = true
			d.emit(off, s.cur.bump())
		case q == '"' && b == '{' && s.cur.peekAt(1) == '$':
			interpolated = true
			d.emit(off, s.cur.bump())
		default:
			d.emit(off, s.cur.bump())
		}
	}
	return d, interpolated, false
}

// В одинарных кавычках экранируются только \\ и \'.
func (s *phpScanner) singleQuotedEscape(d *decoded) {
	off := s.cur.off
	if next := s.cur.peekAt(1); next == '\\' || next == '\'' {
		d.emit(off, next)
		s.cur.skip(2)
		return
	}
	d.emit(off, s.cur.bump())
}

func (s *phpScanner) doubleQuotedEscape(d *decoded) {
	off := s.cur.off
	next := s.cur.peekAt(1)
	if v, ok := simpleEscapes[next]; ok {
		d.emit(off, v)
		s.cur.skip(2)
		return
	}
	switch {
	case isOctal(next):
		n, v := 0, 0
		for n < 3 && isOctal(s.cur.peekAt(1+n)) {
			v = v*8 + int(s.cur.peekAt(1+n)-'0')
			n++
		}
		d.emit(off, byte(v&0xff))
		s.cur.skip(1 + n)
		return
	case next == 'x' && hexValue(s.cur.peekAt(2)) >= 0:
		n, v := 0, 0
		for n < 2 && hexValue(s.cur.peekAt(2+n)) >= 0 {
			v = v*16 + hexValue(s.cur.peekAt(2+n))
			n++
		}
		d.emit(off, byte(v))
		s.cur.skip(2 + n)
		return
	case next == 'u' && s.cur.peekAt(2) == '{':
		n, v := 0, 0
		for hexValue(s.cur.peekAt(3+n)) >= 0 && v <= 0x10ffff {
			v = v*16 + hexValue(s.cur.peekAt(3+n))
			n++
		}
		if n > 0 && s.cur.peekAt(3+n) == '}' && v <= 0x10ffff {
			d.emitRune(off, rune(v))
			s.cur.skip(4 + n)
			return
		}
	}
	// неизвестная последовательность: обратный слеш остаётся как есть
	d.emit(off, s.cur.bump())
}

func isOctal(b byte) bool { return b >= '0' && b <= '7' }

func hexValue(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return -1
}
