package a

import (
	"regexp"
	re "regexp"
)

const words = `[\d\w]`

var plus = regexp.MustCompile(`[\d\w]+`) // want `\[\\d\\w\] is 'greedy'. Please remove \\d as it's a subset of \\w.`

var negated = regexp.MustCompile("^[\\D\\W\\S]$") // want `\[\\D\\W\] is 'greedy'. Please remove \\D as it's a subset of \\W.`

var clean = re.MustCompile(`[\s\d][a-z]`)

var named = regexp.MustCompile(words) // want `\[\\d\\w\] is 'greedy'`

var folded = regexp.MustCompile("[\\w" + "\\d]") // want `\[\\d\\w\] is 'greedy'`

var broken = regexp.MustCompile(`x[\d`) // want `malformed character class: unterminated character class`

var quoted = regexp.QuoteMeta(`[\d\w]`)

var input = regexp.MustCompile(`x`).MatchString(`[\d\w]`)

func match(s string) bool {
	ok, _ := re.MatchString(`[\w\d\d]`, s) // want `\[\\d\\w\] is 'greedy'` `\[\\d\\w\] is 'greedy'`
	return ok
}

func dynamic(p string) *regexp.Regexp {
	return regexp.MustCompile(p)
}
