package charclass

// Kind identifies a shorthand character set.
type Kind uint8

const (
	KindInvalid Kind = iota
	Digit            // \d
	NotDigit         // \D
	Word             // \w
	NotWord          // \W
	Space            // \s
	NotSpace         // \S

	kindCount
)

func (k Kind) String() string {
	switch k {
	case Digit:
		return "digit"
	case NotDigit:
		return "not-digit"
	case Word:
		return "word"
	case NotWord:
		return "not-word"
	case Space:
		return "space"
	case NotSpace:
		return "not-space"
	}
	return "invalid"
}

// Escape returns the two-character source spelling of the shorthand, e.g. `\d`.
func (k Kind) Escape() string {
	if k == KindInvalid || k >= kindCount {
		return ""
	}
	return `\` + string(k.letter())
}

func (k Kind) letter() rune {
	switch k {
	case Digit:
		return 'd'
	case NotDigit:
		return 'D'
	case Word:
		return 'w'
	case NotWord:
		return 'W'
	case Space:
		return 's'
	case NotSpace:
		return 'S'
	}
	return 0
}

// shorthandKind maps the character following a backslash to its Kind.
// Case matters: 'd' and 'D' are different sets.
func shorthandKind(r rune) (Kind, bool) {
	switch r {
	case 'd':
		return Digit, true
	case 'D':
		return NotDigit, true
	case 'w':
		return Word, true
	case 'W':
		return NotWord, true
	case 's':
		return Space, true
	case 'S':
		return NotSpace, true
	}
	return KindInvalid, false
}

// ParseKind accepts either the escape spelling (`\d`) or the name ("digit").
func ParseKind(s string) (Kind, bool) {
	if len(s) == 2 && s[0] == '\\' {
		return shorthandKind(rune(s[1]))
	}
	for k := Digit; k < kindCount; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return KindInvalid, false
}
