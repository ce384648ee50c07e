package ast

import "testing"

func TestUnparseExpressions(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expr
		expected string
	}{
		{"precedence kept", Bin(OpAdd, Int(1), Bin(OpMul, Int(2), Int(3))), "1 + 2 * 3"},
		{"parens added", Bin(OpMul, Bin(OpAdd, Int(1), Int(2)), Int(3)), "(1 + 2) * 3"},
		{"property", Bin(OpAdd, Prop(Ident("this"), "x"), Int(1)), "this.x + 1"},
		{"verb call", VerbCall(ObjRef(0), "greet", Str("hi")), `#0:greet("hi")`},
		{"float keeps decimal", Float(2), "2.0"},
		{"system property", SysProp("players"), "$players"},
		{"not", Not(Bool(false)), "!false"},
		{"list", List(Int(1), Null()), "[1, null]"},
		{"lambda", &LambdaExpr{Params: []Param{P("x"), Opt("y", Int(10))}, Body: Bin(OpAdd, Ident("x"), Ident("y"))}, "fn {x, ?y = 10} x + y endfn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnparseExpr(tt.expr)
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnparseStatements(t *testing.T) {
	stmts := []Stmt{
		Let("x", Int(1)),
		&IfStmt{
			Cond: Bin(OpGt, Ident("x"), Int(0)),
			Then: []Stmt{Return(Prop(Ident("this"), "x"))},
			Else: []Stmt{Return(nil)},
		},
	}

	lines := UnparseLines(stmts)
	expected := []string{
		"let x = 1;",
		"if (x > 0)",
		"  return this.x;",
		"else",
		"  return;",
		"endif",
	}
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d: %q", len(expected), len(lines), lines)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}
}
