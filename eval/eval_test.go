package eval

import (
	"strings"
	"testing"

	"echo/ast"
	"echo/config"
	"echo/types"
)

// Test literal evaluation
func TestEvalLiterals(t *testing.T) {
	tests := []struct {
		name     string
		expr     ast.Expr
		expected types.Value
	}{
		{"int", ast.Int(42), types.NewInt(42)},
		{"float", ast.Float(3.14), types.NewFloat(3.14)},
		{"string", ast.Str("hello"), types.NewStr("hello")},
		{"true", ast.Bool(true), types.NewBool(true)},
		{"null", ast.Null(), types.Null},
		{"list", ast.List(ast.Int(1), ast.Str("a")), types.NewList([]types.Value{types.NewInt(1), types.NewStr("a")})},
		{"map", mapLit(ast.Str("k"), ast.Int(1)), types.NewMap(map[string]types.Value{"k": types.NewInt(1)})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEvaluator(t)
			expectValue(t, mustEval(t, e, ast.ExprS(tt.expr)), tt.expected)
		})
	}
}

// Test arithmetic operations
func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		expr     ast.Expr
		expected types.Value
	}{
		{"int division truncates", ast.Bin(ast.OpDiv, ast.Int(7), ast.Int(2)), types.NewInt(3)},
		{"negative division truncates toward zero", ast.Bin(ast.OpDiv, ast.Neg(ast.Int(7)), ast.Int(2)), types.NewInt(-3)},
		{"remainder takes dividend sign", ast.Bin(ast.OpMod, ast.Neg(ast.Int(7)), ast.Int(2)), types.NewInt(-1)},
		{"float promotion", ast.Bin(ast.OpAdd, ast.Int(3), ast.Float(1.5)), types.NewFloat(4.5)},
		{"float remainder", ast.Bin(ast.OpMod, ast.Float(7.5), ast.Int(2)), types.NewFloat(1.5)},
		{"concatenation", ast.Bin(ast.OpAdd, ast.Str("foo"), ast.Str("bar")), types.NewStr("foobar")},
		{"precedence", ast.Bin(ast.OpAdd, ast.Int(1), ast.Bin(ast.OpMul, ast.Int(2), ast.Int(3))), types.NewInt(7)},
		{"integer power", ast.Bin(ast.OpPow, ast.Int(2), ast.Int(10)), types.NewInt(1024)},
		{"zero power", ast.Bin(ast.OpPow, ast.Int(5), ast.Int(0)), types.NewInt(1)},
		{"float power", ast.Bin(ast.OpPow, ast.Float(2), ast.Int(-1)), types.NewFloat(0.5)},
		{"negation", ast.Neg(ast.Float(2.5)), types.NewFloat(-2.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEvaluator(t)
			expectValue(t, mustEval(t, e, ast.ExprS(tt.expr)), tt.expected)
		})
	}
}

func TestEvalOperatorErrors(t *testing.T) {
	tests := []struct {
		name    string
		expr    ast.Expr
		code    types.ErrorCode
		message string
	}{
		{"int division by zero", ast.Bin(ast.OpDiv, ast.Int(1), ast.Int(0)), types.E_DIV, ""},
		{"int modulo by zero", ast.Bin(ast.OpMod, ast.Int(1), ast.Int(0)), types.E_DIV, ""},
		{"float division by zero", ast.Bin(ast.OpDiv, ast.Float(1), ast.Int(0)), types.E_DIV, ""},
		{"int plus string", ast.Bin(ast.OpAdd, ast.Int(1), ast.Str("x")), types.E_TYPE,
			"binary operation + not defined for types integer, string"},
		{"string minus string", ast.Bin(ast.OpSub, ast.Str("a"), ast.Str("b")), types.E_TYPE, ""},
		{"negative integer exponent", ast.Bin(ast.OpPow, ast.Int(2), ast.Neg(ast.Int(1))), types.E_INVARG, ""},
		{"negate string", ast.Neg(ast.Str("x")), types.E_TYPE, "unary operation - not defined for type string"},
		{"not of int", ast.Not(ast.Int(1)), types.E_TYPE, ""},
		{"compare mixed", ast.Bin(ast.OpLt, ast.Int(1), ast.Str("x")), types.E_TYPE, ""},
		{"in on int", ast.Bin(ast.OpIn, ast.Int(1), ast.Int(1)), types.E_TYPE, ""},
		{"and on int", ast.Bin(ast.OpAnd, ast.Int(1), ast.Bool(true)), types.E_TYPE, "operator && requires boolean operands, got integer"},
		{"ternary on int", &ast.TernaryExpr{Cond: ast.Int(1), Then: ast.Int(2), Else: ast.Int(3)}, types.E_TYPE, ""},
		{"undefined variable", ast.Ident("nope"), types.E_VARNF, "undefined variable nope"},
		{"unknown function", ast.Call("nope"), types.E_VERBNF, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEvaluator(t)
			err := expectCode(t, e, tt.code, ast.ExprS(tt.expr))
			if tt.message != "" && err.Message != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, err.Message)
			}
		})
	}
}

func TestEvalEquality(t *testing.T) {
	lambda := &ast.LambdaExpr{Params: []ast.Param{ast.P("x")}, Body: ast.Ident("x")}

	tests := []struct {
		name     string
		left     ast.Expr
		right    ast.Expr
		expected bool
	}{
		{"null equals null", ast.Null(), ast.Null(), true},
		{"int promotes to float", ast.Int(1), ast.Float(1), true},
		{"int vs fractional float", ast.Int(1), ast.Float(1.5), false},
		{"int vs string", ast.Int(1), ast.Str("1"), false},
		{"nested lists", ast.List(ast.Int(1), ast.List(ast.Int(2))), ast.List(ast.Int(1), ast.List(ast.Int(2))), true},
		{"maps by key", mapLit(ast.Str("a"), ast.Int(1), ast.Str("b"), ast.Int(2)), mapLit(ast.Str("b"), ast.Int(2), ast.Str("a"), ast.Int(1)), true},
		{"maps differ", mapLit(ast.Str("a"), ast.Int(1)), mapLit(ast.Str("a"), ast.Int(2)), false},
		{"objects by identity", ast.ObjRef(0), ast.ObjRef(0), true},
		{"distinct lambdas", lambda, lambda, false},
		{"booleans", ast.Bool(false), ast.Bool(false), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEvaluator(t)
			expectValue(t, mustEval(t, e, ast.ExprS(ast.Bin(ast.OpEq, tt.left, tt.right))), types.NewBool(tt.expected))
			expectValue(t, mustEval(t, e, ast.ExprS(ast.Bin(ast.OpNe, tt.left, tt.right))), types.NewBool(!tt.expected))
		})
	}

	t.Run("same lambda value", func(t *testing.T) {
		e := newTestEvaluator(t)
		v := mustEval(t, e,
			ast.Let("f", lambda),
			ast.ExprS(ast.Bin(ast.OpEq, ast.Ident("f"), ast.Ident("f"))),
		)
		expectValue(t, v, types.NewBool(true))
	})
}

func TestEvalComparisonAndMembership(t *testing.T) {
	tests := []struct {
		name     string
		expr     ast.Expr
		expected bool
	}{
		{"int less than float", ast.Bin(ast.OpLt, ast.Int(1), ast.Float(1.5)), true},
		{"ge equal", ast.Bin(ast.OpGe, ast.Int(2), ast.Int(2)), true},
		{"strings lexical", ast.Bin(ast.OpLt, ast.Str("apple"), ast.Str("banana")), true},
		{"in list", ast.Bin(ast.OpIn, ast.Int(2), ast.List(ast.Int(1), ast.Int(2))), true},
		{"in list uses equality", ast.Bin(ast.OpIn, ast.Float(2), ast.List(ast.Int(1), ast.Int(2))), true},
		{"in list absent", ast.Bin(ast.OpIn, ast.Float(2.5), ast.List(ast.Int(1), ast.Int(2))), false},
		{"substring", ast.Bin(ast.OpIn, ast.Str("ell"), ast.Str("hello")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEvaluator(t)
			expectValue(t, mustEval(t, e, ast.ExprS(tt.expr)), types.NewBool(tt.expected))
		})
	}
}

func TestEvalShortCircuit(t *testing.T) {
	e := newTestEvaluator(t)

	// The right side would fail with E_VARNF if evaluated
	v := mustEval(t, e, ast.ExprS(ast.Bin(ast.OpAnd, ast.Bool(false), ast.Ident("undefined"))))
	expectValue(t, v, types.NewBool(false))

	v = mustEval(t, e, ast.ExprS(ast.Bin(ast.OpOr, ast.Bool(true), ast.Ident("undefined"))))
	expectValue(t, v, types.NewBool(true))

	expectCode(t, e, types.E_VARNF, ast.ExprS(ast.Bin(ast.OpAnd, ast.Bool(true), ast.Ident("undefined"))))

	v = mustEval(t, e, ast.ExprS(&ast.TernaryExpr{Cond: ast.Bool(false), Then: ast.Ident("undefined"), Else: ast.Int(2)}))
	expectValue(t, v, types.NewInt(2))
}

func TestEvalIndexing(t *testing.T) {
	tests := []struct {
		name     string
		expr     ast.Expr
		expected types.Value
	}{
		{"list is 0-based", &ast.IndexExpr{Expr: ast.List(ast.Int(10), ast.Int(20)), Index: ast.Int(1)}, types.NewInt(20)},
		{"string by character", &ast.IndexExpr{Expr: ast.Str("héllo"), Index: ast.Int(1)}, types.NewStr("é")},
		{"map key", &ast.IndexExpr{Expr: mapLit(ast.Str("a"), ast.Int(1)), Index: ast.Str("a")}, types.NewInt(1)},
		{"missing map key", &ast.IndexExpr{Expr: mapLit(ast.Str("a"), ast.Int(1)), Index: ast.Str("b")}, types.Null},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEvaluator(t)
			expectValue(t, mustEval(t, e, ast.ExprS(tt.expr)), tt.expected)
		})
	}

	e := newTestEvaluator(t)
	expectCode(t, e, types.E_RANGE, ast.ExprS(&ast.IndexExpr{Expr: ast.List(ast.Int(1)), Index: ast.Int(1)}))
	expectCode(t, e, types.E_RANGE, ast.ExprS(&ast.IndexExpr{Expr: ast.List(ast.Int(1)), Index: ast.Neg(ast.Int(1))}))
	expectCode(t, e, types.E_TYPE, ast.ExprS(&ast.IndexExpr{Expr: ast.List(ast.Int(1)), Index: ast.Str("0")}))
	expectCode(t, e, types.E_TYPE, ast.ExprS(&ast.IndexExpr{Expr: ast.Int(5), Index: ast.Int(0)}))
}

func TestEvalIndexAssignment(t *testing.T) {
	e := newTestEvaluator(t)

	v := mustEval(t, e,
		ast.Let("l", ast.List(ast.Int(1), ast.Int(2))),
		ast.Let("alias", ast.Ident("l")),
		ast.ExprS(ast.Assign(&ast.IndexExpr{Expr: ast.Ident("l"), Index: ast.Int(0)}, ast.Int(5))),
		ast.ExprS(ast.List(ast.Ident("l"), ast.Ident("alias"))),
	)
	expectValue(t, v, types.NewList([]types.Value{ints(5, 2), ints(1, 2)}))

	v = mustEval(t, e,
		ast.Let("m", mapLit(ast.Str("inner"), ast.List(ast.Int(0)))),
		ast.ExprS(ast.Assign(&ast.IndexExpr{
			Expr:  &ast.IndexExpr{Expr: ast.Ident("m"), Index: ast.Str("inner")},
			Index: ast.Int(0),
		}, ast.Int(9))),
		ast.ExprS(&ast.IndexExpr{Expr: ast.Ident("m"), Index: ast.Str("inner")}),
	)
	expectValue(t, v, ints(9))

	expectCode(t, e, types.E_RANGE,
		ast.ExprS(ast.Assign(&ast.IndexExpr{Expr: ast.Ident("l"), Index: ast.Int(7)}, ast.Int(1))))
}

func TestEvalGlobalNameTable(t *testing.T) {
	e := newTestEvaluator(t)

	mustEval(t, e, ast.ExprS(ast.Assign(ast.SysProp("greeting"), ast.Str("hi"))))

	// Identifiers fall back to system object properties
	expectValue(t, mustEval(t, e, ast.ExprS(ast.Ident("greeting"))), types.NewStr("hi"))
	expectValue(t, mustEval(t, e, ast.ExprS(ast.SysProp("greeting"))), types.NewStr("hi"))

	// Local bindings shadow them
	v := mustEval(t, e, ast.Let("greeting", ast.Str("local")), ast.ExprS(ast.Ident("greeting")))
	expectValue(t, v, types.NewStr("local"))

	expectCode(t, e, types.E_PROPNF, ast.ExprS(ast.SysProp("missing")))
}

func TestEvalBuiltinCall(t *testing.T) {
	e := newTestEvaluator(t)

	expectValue(t, mustEval(t, e, ast.ExprS(ast.Call("length", ast.Str("abc")))), types.NewInt(3))
	expectValue(t, mustEval(t, e, ast.ExprS(ast.Call("type", ast.Float(1)))), types.NewStr("float"))

	// A variable shadows a builtin of the same name
	err := expectCode(t, e, types.E_TYPE,
		ast.Let("length", ast.Int(1)),
		ast.ExprS(ast.Call("length", ast.Str("abc"))),
	)
	if !strings.Contains(err.Message, "not a lambda") {
		t.Errorf("Unexpected message %q", err.Message)
	}
}

func TestEvalTopLevelFlow(t *testing.T) {
	tests := []struct {
		name string
		stmt ast.Stmt
	}{
		{"break", &ast.BreakStmt{}},
		{"continue", &ast.ContinueStmt{}},
		{"return", ast.Return(ast.Int(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEvaluator(t)
			expectCode(t, e, types.E_FLOW, tt.stmt)
		})
	}
}

func TestEvalTickLimit(t *testing.T) {
	cfg := config.Default()
	cfg.TickLimit = 100
	e := newTestEvaluatorWith(t, cfg)

	expectCode(t, e, types.E_MAXREC, &ast.WhileStmt{Cond: ast.Bool(true)})

	// Small programs fit
	expectValue(t, mustEval(t, e, ast.ExprS(ast.Int(1))), types.NewInt(1))
}
