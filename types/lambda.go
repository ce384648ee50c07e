package types

import "echo/ast"

// Closure is the shared body of a lambda value. Captured is a private copy
// of the defining environment's variables taken at creation time.
type Closure struct {
	Params   []ast.Param
	Body     ast.Expr   // expression body, or nil
	Stmts    []ast.Stmt // statement body when Body is nil
	Captured map[string]Value
}

// LambdaValue represents a closure
type LambdaValue struct {
	fn *Closure
}

// NewLambda creates a lambda value. captured must already be a copy.
func NewLambda(params []ast.Param, body ast.Expr, stmts []ast.Stmt, captured map[string]Value) LambdaValue {
	return LambdaValue{fn: &Closure{Params: params, Body: body, Stmts: stmts, Captured: captured}}
}

// Type returns the type code for lambdas
func (l LambdaValue) Type() TypeCode {
	return TYPE_LAMBDA
}

// String returns the source form of the lambda
func (l LambdaValue) String() string {
	return ast.UnparseExpr(&ast.LambdaExpr{Params: l.fn.Params, Body: l.fn.Body, Stmts: l.fn.Stmts})
}

// Equal compares lambdas by identity
func (l LambdaValue) Equal(other Value) bool {
	o, ok := other.(LambdaValue)
	return ok && l.fn == o.fn
}

// Closure returns the lambda's parameters, body and captured variables
func (l LambdaValue) Closure() *Closure {
	return l.fn
}
