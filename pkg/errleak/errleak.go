// Package errleak reports error values written into http.Error bodies.
//
// Internal failures must reach clients as a fixed message, details go to the log.
package errleak

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

var Analyzer = &analysis.Analyzer{
	Name:     "errleak",
	Doc:      "check for error values in http.Error messages",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var errorType = types.Universe.Lookup("error").Type().Underlying().(*types.Interface)

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	inspect.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(node ast.Node) {
		callExpr := node.(*ast.CallExpr)
		if !isHTTPError(pass, callExpr) || len(callExpr.Args) != 3 {
			return
		}

		ast.Inspect(callExpr.Args[1], func(node ast.Node) bool {
			expr, ok := node.(ast.Expr)
			if !ok {
				return true
			}
			if isError(pass.TypesInfo.TypeOf(expr)) {
				pass.Reportf(expr.Pos(), "error value leaks into HTTP response body")
				return false
			}

			return true
		})
	})

	return nil, nil
}

func isHTTPError(pass *analysis.Pass, callExpr *ast.CallExpr) bool {
	fn, ok := typeutil.Callee(pass.TypesInfo, callExpr).(*types.Func)
	if !ok || fn.Pkg() == nil {
		return false
	}

	return fn.Pkg().Path() == "net/http" && fn.Name() == "Error"
}

func isError(t types.Type) bool {
	if t == nil {
		return false
	}
	if basic, ok := t.(*types.Basic); ok && basic.Kind() == types.UntypedNil {
		return false
	}

	return types.Implements(t, errorType)
}
