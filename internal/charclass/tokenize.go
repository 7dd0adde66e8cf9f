package charclass

// Tokenize parses the class whose '[' sits at character offset start.
//
// A '^' right after '[' negates the class. A ']' right after '[' or '[^' is
// a literal; the next unescaped ']' closes the class.
func Tokenize(p Pattern, start int) (CharacterClass, error) {
	n := p.Len()
	if start < 0 || start >= n || p.runes[start] != '[' {
		return CharacterClass{}, malformed(start, reasonNotClassStart)
	}

	cc := CharacterClass{Range: Range{Start: start}}
	i := start + 1
	if i < n && p.runes[i] == '^' {
		cc.Negated = true
		i++
	}

	first := true
	for {
		if i >= n {
			return CharacterClass{}, malformed(start, reasonUnterminated)
		}
		switch c := p.runes[i]; {
		case c == '\\':
			if i+1 >= n {
				return CharacterClass{}, malformed(i, reasonDanglingEscape)
			}
			next := p.runes[i+1]
			rng := Range{Start: i, End: i + 2}
			if kind, ok := shorthandKind(next); ok {
				cc.Members = append(cc.Members, Shorthand{Range: rng, Kind: kind, Spelling: p.Slice(rng)})
			} else {
				cc.Members = append(cc.Members, Escaped{Range: rng, Value: next})
			}
			i += 2
		case c == ']' && !first:
			cc.End = i + 1
			return cc, nil
		default:
			cc.Members = append(cc.Members, Literal{Range: Range{Start: i, End: i + 1}, Value: c})
			i++
		}
		first = false
	}
}
