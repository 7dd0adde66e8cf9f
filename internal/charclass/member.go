package charclass

// Range is a half-open character range [Start, End) inside a Pattern.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether other lies fully inside r.
func (r Range) Contains(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Member is one element of a character class. The set of implementations is
// closed: Shorthand, Literal and Escaped.
type Member interface {
	Bounds() Range
	// Text is the exact source spelling of the member.
	Text() string
	isMember()
}

// Shorthand is a `\d`-style escape.
type Shorthand struct {
	Range
	Kind Kind
	// Spelling хранит исходный текст (`\d`), регистр сохраняется.
	Spelling string
}

// Literal is a plain character.
type Literal struct {
	Range
	Value rune
}

// Escaped is a backslash pair that is not a shorthand, e.g. `\[`.
type Escaped struct {
	Range
	Value rune
}

func (m Shorthand) Bounds() Range { return m.Range }
func (m Literal) Bounds() Range   { return m.Range }
func (m Escaped) Bounds() Range   { return m.Range }

func (m Shorthand) Text() string { return m.Spelling }
func (m Literal) Text() string   { return string(m.Value) }
func (m Escaped) Text() string   { return `\` + string(m.Value) }

func (Shorthand) isMember() {}
func (Literal) isMember()   {}
func (Escaped) isMember()   {}

// CharacterClass is a parsed `[...]` expression.
type CharacterClass struct {
	Range
	Negated bool
	Members []Member
}

// Shorthands returns the shorthand members in source order.
func (cc CharacterClass) Shorthands() []Shorthand {
	var out []Shorthand
	for _, m := range cc.Members {
		if sh, ok := m.(Shorthand); ok {
			out = append(out, sh)
		}
	}
	return out
}
