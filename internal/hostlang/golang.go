package hostlang

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"unicode/utf8"

	"rxlint/internal/source"
)

// regexpFuncs are the package-level functions of regexp taking a pattern first.
var regexpFuncs = map[string]struct{}{
	"Compile":          {},
	"MustCompile":      {},
	"CompilePOSIX":     {},
	"MustCompilePOSIX": {},
	"Match":            {},
	"MatchString":      {},
	"MatchReader":      {},
}

// IsRegexpFunc reports whether name is a regexp function taking a pattern
// as its first argument.
func IsRegexpFunc(name string) bool {
	_, ok := regexpFuncs[name]
	return ok
}

// GoLiteral decodes a single Go string literal as written in source,
// quotes included. Spans of the result are offsets from the opening quote.
func GoLiteral(lit string) (Literal, error) {
	d, err := decodeGoString(lit, 0)
	if err != nil {
		return Literal{}, err
	}
	return Literal{
		Lang: LangGo,
		Body: string(d.text),
		Span: source.Span{Start: 0, End: toOffset(len(lit))},
		offs: d.offs,
	}, nil
}

// extractGo parses the file syntactically; the import name of "regexp" is
// honoured, including dot imports. Calls through variables are not followed.
func extractGo(file *source.File) (Result, error) {
	res := Result{Lang: LangGo}
	fset := token.NewFileSet()
	f, perr := parser.ParseFile(fset, file.Path, file.Content, parser.SkipObjectResolution)
	if f == nil {
		return res, fmt.Errorf("%w: %w", ErrHostSyntax, perr)
	}

	local, dot := regexpImportName(f)
	if local == "" && !dot {
		return res, wrapSyntax(perr)
	}

	ast.Inspect(f, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || len(call.Args) == 0 {
			return true
		}
		name := regexpCallee(call.Fun, local, dot)
		if name == "" {
			return true
		}
		lit, ok := call.Args[0].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return true
		}
		start := fset.Position(lit.Pos()).Offset
		d, err := decodeGoString(lit.Value, start)
		span := source.Span{File: file.ID, Start: toOffset(start), End: toOffset(start + len(lit.Value))}
		if err != nil {
			res.Issues = append(res.Issues, Issue{Span: span, Func: name, Err: err})
			return true
		}
		res.Literals = append(res.Literals, Literal{
			Lang: LangGo,
			Func: name,
			Body: string(d.text),
			Span: span,
			offs: d.offs,
		})
		return true
	})
	return res, wrapSyntax(perr)
}

func wrapSyntax(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrHostSyntax, err)
}

func regexpImportName(f *ast.File) (local string, dot bool) {
	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != "regexp" {
			continue
		}
		if imp.Name == nil {
			return "regexp", false
		}
		switch imp.Name.Name {
		case "_":
			return "", false
		case ".":
			return "", true
		default:
			return imp.Name.Name, false
		}
	}
	return "", false
}

func regexpCallee(fun ast.Expr, local string, dot bool) string {
	switch fn := fun.(type) {
	case *ast.SelectorExpr:
		pkg, ok := fn.X.(*ast.Ident)
		if !ok || local == "" || pkg.Name != local {
			return ""
		}
		if _, ok := regexpFuncs[fn.Sel.Name]; ok {
			return fn.Sel.Name
		}
	case *ast.Ident:
		if !dot {
			return ""
		}
		if _, ok := regexpFuncs[fn.Name]; ok {
			return fn.Name
		}
	}
	return ""
}

// decodeGoString unquotes a Go string literal found at file offset base,
// keeping the offset of each decoded byte.
func decodeGoString(lit string, base int) (decoded, error) {
	if len(lit) < 2 {
		return decoded{}, fmt.Errorf("malformed string literal %s", lit)
	}
	quote := lit[0]
	body := lit[1 : len(lit)-1]
	d := newDecoded(len(body))

	if quote == '`' {
		for i := 0; i < len(body); i++ {
			if body[i] == '\r' {
				continue
			}
			d.emit(base+1+i, body[i])
		}
		d.finish(base + 1 + len(body))
		return d, nil
	}

	rest := body
	for len(rest) > 0 {
		off := base + 1 + len(body) - len(rest)
		r, multibyte, tail, err := strconv.UnquoteChar(rest, quote)
		if err != nil {
			return decoded{}, fmt.Errorf("string literal %s: %w", lit, err)
		}
		if r < utf8.RuneSelf || !multibyte {
			d.emit(off, byte(r))
		} else {
			d.emitRune(off, r)
		}
		rest = tail
	}
	d.finish(base + 1 + len(body))
	return d, nil
}
