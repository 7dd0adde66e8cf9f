package source

import (
	"testing"
)

func TestSpan_ShiftLeft(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		shift    uint32
		expected Span
	}{
		{
			name:     "shift normal span left by 5",
			span:     Span{File: 1, Start: 10, End: 20},
			shift:    5,
			expected: Span{File: 1, Start: 5, End: 15},
		},
		{
			name:     "shift equals start - boundary case",
			span:     Span{File: 1, Start: 10, End: 20},
			shift:    10,
			expected: Span{File: 1, Start: 0, End: 10},
		},
		{
			name:     "shift larger than start - returns original",
			span:     Span{File: 1, Start: 10, End: 20},
			shift:    15,
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "shift zero-length span",
			span:     Span{File: 1, Start: 10, End: 10},
			shift:    3,
			expected: Span{File: 1, Start: 7, End: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.span.ShiftLeft(tt.shift)
			if result != tt.expected {
				t.Errorf("ShiftLeft() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestSpan_ShiftRight(t *testing.T) {
	s := Span{File: 2, Start: 100, End: 150}
	if got, want := s.ShiftRight(1), (Span{File: 2, Start: 101, End: 151}); got != want {
		t.Errorf("ShiftRight() = %+v, want %+v", got, want)
	}
}

func TestSpan_Relations(t *testing.T) {
	outer := Span{File: 1, Start: 10, End: 20}
	tests := []struct {
		name     string
		other    Span
		contains bool
		overlaps bool
	}{
		{name: "inside", other: Span{File: 1, Start: 12, End: 14}, contains: true, overlaps: true},
		{name: "same", other: outer, contains: true, overlaps: true},
		{name: "crosses end", other: Span{File: 1, Start: 18, End: 25}, contains: false, overlaps: true},
		{name: "touches end", other: Span{File: 1, Start: 20, End: 22}, contains: false, overlaps: false},
		{name: "other file", other: Span{File: 2, Start: 12, End: 14}, contains: false, overlaps: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.other); got != tt.contains {
				t.Errorf("Contains() = %v, want %v", got, tt.contains)
			}
			if got := outer.Overlaps(tt.other); got != tt.overlaps {
				t.Errorf("Overlaps() = %v, want %v", got, tt.overlaps)
			}
		})
	}
}

func TestSpan_Cover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 12}
	if got, want := a.Cover(b), (Span{File: 1, Start: 5, End: 20}); got != want {
		t.Errorf("Cover() = %+v, want %+v", got, want)
	}
	if got := a.Cover(Span{File: 3, Start: 0, End: 100}); got != a {
		t.Errorf("Cover() across files = %+v, want %+v", got, a)
	}
}
