package a

import "regexp"

var (
	words  = regexp.MustCompile(<error descr="[\d\w] is 'greedy'. Please remove \d as it's a subset of \w.">`[\d\w]+`</error>)
	spaces = regexp.MustCompile(`[\d\s]`)
	quoted = regexp.MustCompile(<error descr="[\D\W] is 'greedy'. Please remove \D as it's a subset of \W.">"^[\\D\\W]$"</error>)
)

func notAPattern() string { return `[\d\w]` }
