package charclass

import "fmt"

// Finding reports one redundant shorthand.
type Finding struct {
	Range
	Offending Kind
	Subsuming Kind
	// Class is the range of the enclosing class.
	Class   Range
	Message string
}

// FormatMessage renders the finding text for two shorthand spellings.
func FormatMessage(offending, subsuming string) string {
	return fmt.Sprintf("[%s%s] is 'greedy'. Please remove %s as it's a subset of %s.",
		offending, subsuming, offending, subsuming)
}

// Evaluate returns the findings for one class, in member order. Every
// occurrence of a redundant shorthand gets its own finding.
func Evaluate(cc CharacterClass) []Finding {
	var present [kindCount]bool
	spelling := make(map[Kind]string, 4)
	for _, m := range cc.Members {
		switch m := m.(type) {
		case Shorthand:
			present[m.Kind] = true
			if _, ok := spelling[m.Kind]; !ok {
				spelling[m.Kind] = m.Spelling
			}
		case Literal, Escaped:
			// в правилах не участвуют
		}
	}

	var out []Finding
	for _, m := range cc.Members {
		sh, ok := m.(Shorthand)
		if !ok {
			continue
		}
		for _, sup := range supersetsOf[sh.Kind] {
			if !present[sup] {
				continue
			}
			out = append(out, Finding{
				Range:     sh.Range,
				Offending: sh.Kind,
				Subsuming: sup,
				Class:     cc.Range,
				Message:   FormatMessage(sh.Spelling, spelling[sup]),
			})
			// не больше одной находки на вхождение
			break
		}
	}
	return out
}
