// Package vetcheck reports ctfmt templates that cannot compile, at the call
// site, before the program runs.
//
// A call is checked when its template is a constant string and every
// argument has a static type that is not an interface.
package vetcheck

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"

	"ctfmt/internal/diag"
	"ctfmt/internal/parser"
	ctypes "ctfmt/internal/types"
)

const pkgPath = "ctfmt"

// templateParam is the index of the template parameter of each checked
// function; the arguments follow it.
var templateParam = map[string]int{
	"Sprintf":    0,
	"Append":     1,
	"Fprintf":    1,
	"CompileFor": 0,
}

var Analyzer = &analysis.Analyzer{
	Name:     "ctfmt",
	Doc:      "check ctfmt templates with constant text against the argument types",
	URL:      "https://pkg.go.dev/ctfmt/internal/vetcheck",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		fn, ok := typeutil.Callee(pass.TypesInfo, call).(*types.Func)
		if !ok || fn.Pkg() == nil || fn.Pkg().Path() != pkgPath {
			return
		}
		if sig, ok := fn.Type().(*types.Signature); !ok || sig.Recv() != nil {
			return
		}
		idx, ok := templateParam[fn.Name()]
		if !ok || len(call.Args) <= idx || call.Ellipsis.IsValid() {
			return
		}
		checkCall(pass, call, idx)
	})
	return nil, nil
}

func checkCall(pass *analysis.Pass, call *ast.CallExpr, idx int) {
	tmplExpr := call.Args[idx]
	tv, ok := pass.TypesInfo.Types[tmplExpr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return
	}
	template := constant.StringVal(tv.Value)

	args := make([]ctypes.Type, 0, len(call.Args)-idx-1)
	for _, a := range call.Args[idx+1:] {
		t, ok := ctypes.FromGo(pass.TypesInfo.TypeOf(a))
		if !ok {
			return
		}
		args = append(args, t)
	}

	_, d := parser.Parse(template, args)
	if d == nil {
		return
	}

	pos, mapped := offsets(tmplExpr, template)
	report := analysis.Diagnostic{
		Pos:      tmplExpr.Pos(),
		End:      tmplExpr.End(),
		Category: d.Code.ID(),
		Message:  fmt.Sprintf("%s (%s)", d.Message, d.Code.ID()),
	}
	if mapped {
		report.Pos = pos(d.Caret)
		report.End = pos(d.Caret) + 1
		if fix, ok := suggestedFix(d, pos); ok {
			report.SuggestedFixes = []analysis.SuggestedFix{fix}
		}
	}
	pass.Report(report)
}

// offsets maps template offsets to file positions when the template is a
// single literal whose source text equals its value.
func offsets(expr ast.Expr, template string) (func(uint32) token.Pos, bool) {
	lit, ok := ast.Unparen(expr).(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return nil, false
	}
	if strings.HasPrefix(lit.Value, "`") {
		if strings.ContainsRune(lit.Value, '\r') {
			return nil, false
		}
	} else if strings.ContainsRune(lit.Value, '\\') {
		return nil, false
	}
	if v, err := strconv.Unquote(lit.Value); err != nil || v != template {
		return nil, false
	}
	start := lit.Pos() + 1
	return func(off uint32) token.Pos { return start + token.Pos(off) }, true
}

// suggestedFix offers the first mechanical fix-it; the others are
// alternatives to it.
func suggestedFix(d *diag.Diagnostic, pos func(uint32) token.Pos) (analysis.SuggestedFix, bool) {
	for _, f := range d.Fixits {
		if f.Edit == nil {
			continue
		}
		return analysis.SuggestedFix{
			Message: "insert " + strconv.Quote(f.Edit.NewText),
			TextEdits: []analysis.TextEdit{{
				Pos:     pos(f.Edit.Span.Start),
				End:     pos(f.Edit.Span.End),
				NewText: []byte(f.Edit.NewText),
			}},
		}, true
	}
	return analysis.SuggestedFix{}, false
}
