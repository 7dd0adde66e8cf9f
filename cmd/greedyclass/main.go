// The greedyclass command runs the greedyclass analyzer over Go packages.
//
// Run with:
//
//	$ go run ./cmd/greedyclass -- packages...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"rxlint/passes/greedyclass"
)

func main() { singlechecker.Main(greedyclass.Analyzer) }
