package hostlang

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"
)

// decoded accumulates unescaped string bytes together with the file
// offset of the escape sequence each byte came from.
type decoded struct {
	text []byte
	offs []uint32
}

func newDecoded(capacity int) decoded {
	return decoded{
		text: make([]byte, 0, capacity),
		offs: make([]uint32, 0, capacity+1),
	}
}

func (d *decoded) emit(srcOff int, bs ...byte) {
	off := toOffset(srcOff)
	for _, b := range bs {
		d.text = append(d.text, b)
		d.offs = append(d.offs, off)
	}
}

func (d *decoded) emitRune(srcOff int, r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	d.emit(srcOff, buf[:n]...)
}

// finish records the offset right after the last byte.
func (d *decoded) finish(srcEnd int) {
	d.offs = append(d.offs, toOffset(srcEnd))
}

// slice keeps text[from:to] with its offsets, end offset included.
func (d *decoded) slice(from, to int) decoded {
	return decoded{text: d.text[from:to], offs: d.offs[from : to+1]}
}

func toOffset(off int) uint32 {
	v, err := safecast.Conv[uint32](off)
	if err != nil {
		panic(fmt.Errorf("source offset overflow: %w", err))
	}
	return v
}
