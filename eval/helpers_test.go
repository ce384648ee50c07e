package eval

import (
	"testing"

	"echo/ast"
	"echo/config"
	"echo/db"
	"echo/types"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	return newTestEvaluatorWith(t, config.Default())
}

func newTestEvaluatorWith(t *testing.T, cfg config.Config) *Evaluator {
	t.Helper()
	e, err := NewEvaluator(db.NewMemoryStore(), cfg)
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}
	return e
}

// mustEval runs statements and fails the test on error
func mustEval(t *testing.T, e *Evaluator, stmts ...ast.Stmt) types.Value {
	t.Helper()
	v, err := e.Eval(ast.Prog(stmts...))
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	return v
}

// expectCode runs statements and checks the error code
func expectCode(t *testing.T, e *Evaluator, code types.ErrorCode, stmts ...ast.Stmt) *Error {
	t.Helper()
	v, err := e.Eval(ast.Prog(stmts...))
	if err == nil {
		t.Fatalf("Expected %s, got value %s", code, v)
	}
	if got := CodeOf(err); got != code {
		t.Fatalf("Expected %s, got %v", code, err)
	}
	return err.(*Error)
}

func expectValue(t *testing.T, got, want types.Value) {
	t.Helper()
	if !want.Equal(got) {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func ifStmt(cond ast.Expr, then []ast.Stmt, els []ast.Stmt) *ast.IfStmt {
	return &ast.IfStmt{Cond: cond, Then: then, Else: els}
}

func forStmt(v string, iterable ast.Expr, body ...ast.Stmt) *ast.ForStmt {
	return &ast.ForStmt{Var: v, Iterable: iterable, Body: body}
}

func verb(name string, params []ast.Param, body ...ast.Stmt) ast.VerbDef {
	return ast.VerbDef{Name: name, Params: params, Body: body}
}

func object(name string, props []ast.PropertyDef, verbs ...ast.VerbDef) *ast.ObjectStmt {
	return &ast.ObjectStmt{Name: name, Properties: props, Verbs: verbs}
}

func mapLit(pairs ...ast.Expr) *ast.MapExpr {
	m := &ast.MapExpr{}
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Entries = append(m.Entries, ast.MapEntry{Key: pairs[i], Value: pairs[i+1]})
	}
	return m
}

func ints(vals ...int64) types.ListValue {
	elems := make([]types.Value, len(vals))
	for i, v := range vals {
		elems[i] = types.NewInt(v)
	}
	return types.NewList(elems)
}
