// Package greedyclass defines an Analyzer that reports character classes in
// regular expressions holding a shorthand escape already covered by another
// one, such as \d next to \w.
package greedyclass

import (
	"errors"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"

	"rxlint/internal/charclass"
	"rxlint/internal/hostlang"
)

const Doc = `report redundant shorthand escapes in regexp character classes

The greedyclass analysis reports calls to regexp.Compile, regexp.MustCompile
and the other package-level regexp functions whose constant pattern contains
a character class such as [\d\w], where \d adds nothing because \w already
matches every digit. When the pattern is a string literal the diagnostic
carries a fix deleting the redundant escape.`

var Analyzer = &analysis.Analyzer{
	Name:     "greedyclass",
	Doc:      Doc,
	URL:      "https://pkg.go.dev/rxlint/passes/greedyclass",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
	}
	inspect.Preorder(nodeFilter, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		fn := typeutil.StaticCallee(pass.TypesInfo, call)
		if fn == nil || fn.Pkg() == nil || fn.Pkg().Path() != "regexp" {
			return // not a static call into regexp
		}
		if sig, ok := fn.Type().(*types.Signature); !ok || sig.Recv() != nil {
			return // (*regexp.Regexp).MatchString и прочие методы: аргумент не шаблон
		}
		if !hostlang.IsRegexpFunc(fn.Name()) || len(call.Args) == 0 {
			return
		}
		arg := call.Args[0]
		if lit, ok := ast.Unparen(arg).(*ast.BasicLit); ok && lit.Kind == token.STRING {
			checkLiteral(pass, lit)
			return
		}
		// именованные константы и константные выражения: без исправлений
		tv, ok := pass.TypesInfo.Types[arg]
		if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
			return
		}
		checkConstant(pass, arg, constant.StringVal(tv.Value))
	})
	return nil, nil
}

func checkLiteral(pass *analysis.Pass, lit *ast.BasicLit) {
	decoded, err := hostlang.GoLiteral(lit.Value)
	if err != nil {
		return // the type checker has already complained
	}
	p := charclass.NewPattern(decoded.Body)
	findings, err := charclass.AnalyzePattern(p)
	if err != nil {
		reportMalformed(pass, lit, err)
		return
	}
	for _, f := range findings {
		span := decoded.SourceSpan(p.ByteOffset(f.Start), p.ByteOffset(f.End))
		pos := lit.Pos() + token.Pos(span.Start)
		end := lit.Pos() + token.Pos(span.End)
		pass.Report(analysis.Diagnostic{
			Pos:     pos,
			End:     end,
			Message: f.Message,
			SuggestedFixes: []analysis.SuggestedFix{{
				Message:   "Remove " + p.Slice(f.Range),
				TextEdits: []analysis.TextEdit{{Pos: pos, End: end}},
			}},
		})
	}
}

func checkConstant(pass *analysis.Pass, arg ast.Expr, pattern string) {
	findings, err := charclass.Analyze(pattern)
	if err != nil {
		reportMalformed(pass, arg, err)
		return
	}
	for _, f := range findings {
		pass.ReportRangef(arg, "%s", f.Message)
	}
}

func reportMalformed(pass *analysis.Pass, rng analysis.Range, err error) {
	var mce *charclass.MalformedClassError
	if errors.As(err, &mce) {
		pass.ReportRangef(rng, "malformed character class: %s", mce.Reason)
		return
	}
	pass.ReportRangef(rng, "%v", err)
}
