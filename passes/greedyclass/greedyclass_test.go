package greedyclass_test

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"rxlint/passes/greedyclass"
)

func Test(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.RunWithSuggestedFixes(t, testdata, greedyclass.Analyzer, "a")
}
