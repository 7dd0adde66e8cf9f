package charclass

// Classes returns every top-level class of pattern in source order.
//
// Escaped characters outside a class never open one, and `\Q...\E` quoted
// runs are skipped entirely.
func Classes(pattern string) ([]CharacterClass, error) {
	return ClassesOf(NewPattern(pattern))
}

// ClassesOf is Classes for an already captured Pattern.
func ClassesOf(p Pattern) ([]CharacterClass, error) {
	var out []CharacterClass
	n := p.Len()
	for i := 0; i < n; {
		switch p.runes[i] {
		case '\\':
			if i+1 < n && p.runes[i+1] == 'Q' {
				i = skipQuoted(p, i+2)
				continue
			}
			i += 2
		case '[':
			cc, err := Tokenize(p, i)
			if err != nil {
				return nil, err
			}
			out = append(out, cc)
			i = cc.End
		default:
			i++
		}
	}
	return out, nil
}

// skipQuoted returns the offset just past the `\E` closing a quoted run that
// starts at i, or the pattern length if the run is never closed.
func skipQuoted(p Pattern, i int) int {
	n := p.Len()
	for ; i+1 < n; i++ {
		if p.runes[i] == '\\' && p.runes[i+1] == 'E' {
			return i + 2
		}
	}
	return n
}

// Analyze runs the analyzer over a pattern body.
func Analyze(pattern string) ([]Finding, error) {
	return AnalyzePattern(NewPattern(pattern))
}

// AnalyzePattern runs the analyzer over an already captured Pattern.
// A malformed class aborts the whole pattern.
func AnalyzePattern(p Pattern) ([]Finding, error) {
	classes, err := ClassesOf(p)
	if err != nil {
		return nil, err
	}
	var out []Finding
	for _, cc := range classes {
		out = append(out, Evaluate(cc)...)
	}
	return out, nil
}
