package hostlang

import "strings"

// cursor is a byte position in host source text.
type cursor struct {
	src []byte
	off int
}

func newCursor(src []byte) cursor {
	return cursor{src: src}
}

// eof проверяет, достигнут ли конец текста
func (c *cursor) eof() bool {
	return c.off >= len(c.src)
}

// peek читает текущий байт, если есть, иначе возвращает 0
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.off]
}

// peekAt reads the byte n positions ahead, or 0 past the end.
func (c *cursor) peekAt(n int) byte {
	if c.off+n >= len(c.src) || c.off+n < 0 {
		return 0
	}
	return c.src[c.off+n]
}

// bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

// eat consumes the next byte if it matches b.
func (c *cursor) eat(b byte) bool {
	if !c.eof() && c.src[c.off] == b {
		c.off++
		return true
	}
	return false
}

// hasPrefix reports whether the remaining text starts with s.
func (c *cursor) hasPrefix(s string) bool {
	return strings.HasPrefix(string(c.src[c.off:min(c.off+len(s), len(c.src))]), s)
}

// hasPrefixFold is hasPrefix ignoring ASCII case.
func (c *cursor) hasPrefixFold(s string) bool {
	end := c.off + len(s)
	if end > len(c.src) {
		return false
	}
	return strings.EqualFold(string(c.src[c.off:end]), s)
}

func (c *cursor) skip(n int) {
	c.off = min(c.off+n, len(c.src))
}

// skipLine moves to the next '\n' (not consumed).
func (c *cursor) skipLine() {
	for !c.eof() && c.peek() != '\n' {
		c.off++
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}
