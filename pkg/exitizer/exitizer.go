// Package exitizer reports calls that terminate the process from main.
//
// main has to return so deferred shutdown (hit flush, storage dump) runs.
package exitizer

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/types/typeutil"
)

var Analyzer = &analysis.Analyzer{
	Name: "exitizer",
	Doc:  "check for os.Exit and log.Fatal calls in main function",
	Run:  run,
}

var exitFuncs = map[string]map[string]struct{}{
	"os":  {"Exit": {}},
	"log": {"Fatal": {}, "Fatalf": {}, "Fatalln": {}},
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	for _, file := range pass.Files {
		for _, decl := range file.Decls {
			funcDecl, ok := decl.(*ast.FuncDecl)
			if !ok || funcDecl.Recv != nil || funcDecl.Name.Name != "main" || funcDecl.Body == nil {
				continue
			}

			ast.Inspect(funcDecl.Body, func(node ast.Node) bool {
				callExpr, ok := node.(*ast.CallExpr)
				if !ok {
					return true
				}
				if fn, ok := typeutil.Callee(pass.TypesInfo, callExpr).(*types.Func); ok && isExitFunc(fn) {
					pass.Reportf(callExpr.Pos(), "%s.%s call", fn.Pkg().Path(), fn.Name())
				}

				return true
			})
		}
	}

	return nil, nil
}

func isExitFunc(fn *types.Func) bool {
	if fn.Pkg() == nil || fn.Type().(*types.Signature).Recv() != nil {
		return false
	}
	names, ok := exitFuncs[fn.Pkg().Path()]
	if !ok {
		return false
	}
	_, ok = names[fn.Name()]

	return ok
}
