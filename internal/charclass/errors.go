package charclass

import (
	"errors"
	"fmt"
)

// ErrMalformedClass is the only error kind of the analyzer.
var ErrMalformedClass = errors.New("malformed character class")

const (
	reasonUnterminated   = "unterminated character class"
	reasonDanglingEscape = "dangling escape"
	reasonNotClassStart  = "expected '['"
)

// MalformedClassError carries the position of a malformed class.
// It matches ErrMalformedClass with errors.Is.
type MalformedClassError struct {
	// Offset — символьное смещение: '[' для незакрытого класса, '\' для висящего escape.
	Offset int
	Reason string
}

func (e *MalformedClassError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrMalformedClass, e.Offset, e.Reason)
}

func (e *MalformedClassError) Unwrap() error { return ErrMalformedClass }

func malformed(offset int, reason string) error {
	return &MalformedClassError{Offset: offset, Reason: reason}
}
