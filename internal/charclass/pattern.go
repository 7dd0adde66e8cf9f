package charclass

import "unicode/utf8"

// Pattern is an immutable regular-expression body.
type Pattern struct {
	text  string
	runes []rune
	// byteOff[i] — байтовое смещение i-го символа; последний элемент равен len(text).
	byteOff []int
}

// NewPattern captures s. Invalid UTF-8 bytes become one character each.
func NewPattern(s string) Pattern {
	n := utf8.RuneCountInString(s)
	p := Pattern{
		text:    s,
		runes:   make([]rune, 0, n),
		byteOff: make([]int, 0, n+1),
	}
	for off, r := range s {
		p.runes = append(p.runes, r)
		p.byteOff = append(p.byteOff, off)
	}
	p.byteOff = append(p.byteOff, len(s))
	return p
}

func (p Pattern) String() string { return p.text }

// Len returns the length in characters.
func (p Pattern) Len() int { return len(p.runes) }

// At returns the character at offset i.
func (p Pattern) At(i int) rune { return p.runes[i] }

// ByteOffset converts a character offset (0..Len) into a byte offset.
// Out-of-range offsets are clamped.
func (p Pattern) ByteOffset(char int) int {
	if char <= 0 {
		return 0
	}
	if char >= len(p.byteOff) {
		return len(p.text)
	}
	return p.byteOff[char]
}

// Slice returns the source text between two character offsets.
func (p Pattern) Slice(r Range) string {
	return p.text[p.ByteOffset(r.Start):p.ByteOffset(r.End)]
}
