package eval

import (
	"strings"
	"testing"

	"echo/ast"
	"echo/config"
	"echo/db"
	"echo/types"
)

// counterObject defines Counter with x = 41 and a few verbs
func counterObject() *ast.ObjectStmt {
	return object("Counter",
		[]ast.PropertyDef{{Name: "x", Value: ast.Int(41)}},
		verb("next", nil, ast.Return(ast.Bin(ast.OpAdd, ast.Prop(ast.Ident("this"), "x"), ast.Int(1)))),
		verb("peek", nil, ast.ExprS(ast.Prop(ast.Ident("this"), "x"))),
		verb("whoami", nil, ast.Return(ast.List(ast.Ident("this"), ast.Ident("caller"), ast.Ident("args")))),
		verb("add", []ast.Param{ast.P("a"), ast.Opt("b", ast.Int(100))}, ast.Return(ast.Bin(ast.OpAdd, ast.Ident("a"), ast.Ident("b")))),
		verb("boom", nil, ast.ExprS(ast.Bin(ast.OpDiv, ast.Int(1), ast.Int(0)))),
		verb("leak", nil, ast.Let("inner", ast.Int(1)), ast.Return(ast.Ident("outer"))),
		verb("brk", nil, &ast.BreakStmt{}),
		ast.VerbDef{Name: "hidden", Perms: "r", Body: []ast.Stmt{ast.Return(ast.Int(1))}},
	)
}

func defineCounter(t *testing.T, e *Evaluator) types.ObjValue {
	t.Helper()
	v := mustEval(t, e, counterObject())
	obj, ok := v.(types.ObjValue)
	if !ok {
		t.Fatalf("Expected object from definition, got %s", v)
	}
	return obj
}

func TestObjectDefinition(t *testing.T) {
	e := newTestEvaluator(t)
	counter := defineCounter(t, e)

	if counter.ID() == types.SystemObject || counter.ID() == types.RootObject {
		t.Fatalf("Definition reused a well-known id: %s", counter.ID())
	}
	expectValue(t, mustEval(t, e, ast.ExprS(ast.Ident("Counter"))), counter)
	expectValue(t, mustEval(t, e, ast.ExprS(ast.SysProp("Counter"))), counter)

	obj, err := e.Store().Get(counter.ID())
	if err != nil {
		t.Fatalf("Store lookup failed: %v", err)
	}
	if obj.Parent != types.RootObject {
		t.Errorf("Expected parent %s, got %s", types.RootObject, obj.Parent)
	}
	if obj.Name != "Counter" {
		t.Errorf("Expected name Counter, got %q", obj.Name)
	}
	if !obj.Verbs["next"].Perms.Has(db.VerbExecute) {
		t.Errorf("Expected default perms to include x, got %s", obj.Verbs["next"].Perms)
	}

	// Redefinition creates a new object and rebinds the name
	again := defineCounter(t, e)
	if again.Equal(counter) {
		t.Errorf("Redefinition reused id %s", counter.ID())
	}
}

func TestVerbCalls(t *testing.T) {
	tests := []struct {
		name     string
		call     ast.Expr
		expected types.Value
	}{
		{"return", ast.VerbCall(ast.Ident("Counter"), "next"), types.NewInt(42)},
		{"last statement value", ast.VerbCall(ast.Ident("Counter"), "peek"), types.NewInt(41)},
		{"optional parameter default", ast.VerbCall(ast.Ident("Counter"), "add", ast.Int(1)), types.NewInt(101)},
		{"optional parameter given", ast.VerbCall(ast.Ident("Counter"), "add", ast.Int(1), ast.Int(2)), types.NewInt(3)},
		{"extra arguments ignored", ast.VerbCall(ast.Ident("Counter"), "add", ast.Int(1), ast.Int(2), ast.Int(3)), types.NewInt(3)},
		{"call_verb builtin", ast.Call("call_verb", ast.Ident("Counter"), ast.Str("add"), ast.Int(5)), types.NewInt(105)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEvaluator(t)
			defineCounter(t, e)
			expectValue(t, mustEval(t, e, ast.ExprS(tt.call)), tt.expected)
		})
	}
}

func TestVerbEnvironment(t *testing.T) {
	e := newTestEvaluator(t)
	counter := defineCounter(t, e)

	v := mustEval(t, e, ast.ExprS(ast.VerbCall(ast.Ident("Counter"), "whoami", ast.Int(1), ast.Int(2))))
	expected := types.NewList([]types.Value{counter, types.NewObj(types.SystemObject), ints(1, 2)})
	expectValue(t, v, expected)

	// The verb sees the caller's variables but its own bindings stay local
	v = mustEval(t, e,
		ast.Let("outer", ast.Str("visible")),
		ast.ExprS(ast.VerbCall(ast.Ident("Counter"), "leak")),
	)
	expectValue(t, v, types.NewStr("visible"))
	expectCode(t, e, types.E_VARNF, ast.ExprS(ast.Ident("inner")))
	if _, ok := e.Environments().Ensure(types.SystemObject).Get("this"); ok {
		t.Errorf("this leaked into the caller's environment")
	}
}

func TestVerbErrors(t *testing.T) {
	tests := []struct {
		name string
		call ast.Expr
		code types.ErrorCode
	}{
		{"missing verb", ast.VerbCall(ast.Ident("Counter"), "nope"), types.E_VERBNF},
		{"not executable", ast.VerbCall(ast.Ident("Counter"), "hidden"), types.E_PERM},
		{"missing argument", ast.VerbCall(ast.Ident("Counter"), "add"), types.E_ARGS},
		{"non-object receiver", ast.VerbCall(ast.Int(5), "next"), types.E_TYPE},
		{"break escaping verb", ast.VerbCall(ast.Ident("Counter"), "brk"), types.E_FLOW},
		{"missing property", ast.Prop(ast.Ident("Counter"), "nope"), types.E_PROPNF},
		{"property of non-object", ast.Prop(ast.Int(1), "x"), types.E_TYPE},
		{"lambda stored in property", ast.Assign(ast.Prop(ast.Ident("Counter"), "f"), &ast.LambdaExpr{Body: ast.Int(1)}), types.E_STORE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEvaluator(t)
			defineCounter(t, e)
			expectCode(t, e, tt.code, ast.ExprS(tt.call))
		})
	}

	t.Run("lambda in property definition", func(t *testing.T) {
		e := newTestEvaluator(t)
		expectCode(t, e, types.E_STORE, object("Bad", []ast.PropertyDef{{Name: "f", Value: &ast.LambdaExpr{Body: ast.Int(1)}}}))
	})
}

func TestPropertyAssignment(t *testing.T) {
	e := newTestEvaluator(t)
	defineCounter(t, e)

	v := mustEval(t, e,
		ast.ExprS(ast.Assign(ast.Prop(ast.Ident("Counter"), "x"), ast.Int(9))),
		ast.ExprS(ast.VerbCall(ast.Ident("Counter"), "next")),
	)
	expectValue(t, v, types.NewInt(10))

	// Indexed assignment writes the container back to the property
	v = mustEval(t, e,
		ast.ExprS(ast.Assign(ast.Prop(ast.Ident("Counter"), "items"), ast.List(ast.Int(1), ast.Int(2)))),
		ast.ExprS(ast.Assign(&ast.IndexExpr{Expr: ast.Prop(ast.Ident("Counter"), "items"), Index: ast.Int(1)}, ast.Int(7))),
		ast.ExprS(ast.Prop(ast.Ident("Counter"), "items")),
	)
	expectValue(t, v, ints(1, 7))
}

func TestVerbTraceback(t *testing.T) {
	e := newTestEvaluator(t)
	counter := defineCounter(t, e)

	err := expectCode(t, e, types.E_DIV, ast.ExprS(ast.VerbCall(ast.Ident("Counter"), "boom")))
	if len(err.Traceback) != 2 {
		t.Fatalf("Expected 2 traceback lines, got %q", err.Traceback)
	}
	want := "#0 <- " + string(counter.ID()) + ":boom (this == " + string(counter.ID()) + "):  division by zero"
	if err.Traceback[0] != want {
		t.Errorf("Expected %q, got %q", want, err.Traceback[0])
	}
	if !strings.HasSuffix(err.Error(), "division by zero") {
		t.Errorf("Unexpected error text %q", err.Error())
	}
}

func TestCallDepthLimit(t *testing.T) {
	cfg := config.Default()
	cfg.MaxDepth = 5
	e := newTestEvaluatorWith(t, cfg)

	mustEval(t, e, object("Loop", nil,
		verb("spin", nil, ast.Return(ast.VerbCall(ast.Ident("this"), "spin"))),
	))
	err := expectCode(t, e, types.E_MAXREC, ast.ExprS(ast.VerbCall(ast.Ident("Loop"), "spin")))
	if err.Message != "maximum call depth 5 exceeded" {
		t.Errorf("Unexpected message %q", err.Message)
	}
	if len(err.Traceback) != 6 {
		t.Errorf("Expected 5 frames plus trailer, got %d lines", len(err.Traceback))
	}

	// The evaluator is usable afterwards
	expectValue(t, mustEval(t, e, ast.ExprS(ast.Int(1))), types.NewInt(1))
}

func TestInheritedLookup(t *testing.T) {
	addRootVerb := func(t *testing.T, e *Evaluator) {
		t.Helper()
		root, err := e.Store().Get(types.RootObject)
		if err != nil {
			t.Fatalf("Get root failed: %v", err)
		}
		root.Verbs["describe"] = db.CompileVerb(verb("describe", nil, ast.Return(ast.Str("root"))))
		if err := root.SetProperty("color", types.NewStr("grey")); err != nil {
			t.Fatalf("SetProperty failed: %v", err)
		}
		if err := e.Store().Put(root); err != nil {
			t.Fatalf("Put root failed: %v", err)
		}
	}

	t.Run("own record only by default", func(t *testing.T) {
		e := newTestEvaluator(t)
		defineCounter(t, e)
		addRootVerb(t, e)
		expectCode(t, e, types.E_VERBNF, ast.ExprS(ast.VerbCall(ast.Ident("Counter"), "describe")))
		expectCode(t, e, types.E_PROPNF, ast.ExprS(ast.Prop(ast.Ident("Counter"), "color")))
	})

	t.Run("parent chain when enabled", func(t *testing.T) {
		cfg := config.Default()
		cfg.InheritedLookup = true
		e := newTestEvaluatorWith(t, cfg)
		defineCounter(t, e)
		addRootVerb(t, e)
		expectValue(t, mustEval(t, e, ast.ExprS(ast.VerbCall(ast.Ident("Counter"), "describe"))), types.NewStr("root"))
		expectValue(t, mustEval(t, e, ast.ExprS(ast.Prop(ast.Ident("Counter"), "color"))), types.NewStr("grey"))
	})
}

func TestObjectReferences(t *testing.T) {
	t.Run("well-known objects", func(t *testing.T) {
		e := newTestEvaluator(t)
		expectValue(t, mustEval(t, e, ast.ExprS(ast.ObjRef(0))), types.NewObj(types.SystemObject))
		expectValue(t, mustEval(t, e, ast.ExprS(ast.ObjRef(1))), types.NewObj(types.RootObject))
		err := expectCode(t, e, types.E_INVIND, ast.ExprS(ast.ObjRef(42)))
		if !strings.Contains(err.Message, "object_map") {
			t.Errorf("Expected message to mention object_map, got %q", err.Message)
		}
	})

	t.Run("object_map property", func(t *testing.T) {
		e := newTestEvaluator(t)
		counter := defineCounter(t, e)
		mustEval(t, e, ast.ExprS(ast.Assign(ast.SysProp("object_map"), mapLit(ast.Str("42"), ast.Ident("Counter")))))

		expectValue(t, mustEval(t, e, ast.ExprS(ast.ObjRef(42))), counter)
		expectValue(t, mustEval(t, e, ast.ExprS(ast.VerbCall(ast.ObjRef(42), "next"))), types.NewInt(42))
		expectCode(t, e, types.E_INVIND, ast.ExprS(ast.ObjRef(43)))
	})

	t.Run("object_map verb", func(t *testing.T) {
		e := newTestEvaluator(t)
		counter := defineCounter(t, e)
		sys, err := e.Store().Get(types.SystemObject)
		if err != nil {
			t.Fatalf("Get system object failed: %v", err)
		}
		sys.Verbs["object_map"] = db.CompileVerb(verb("object_map", []ast.Param{ast.P("n")},
			ifStmt(ast.Bin(ast.OpEq, ast.Ident("n"), ast.Int(7)),
				[]ast.Stmt{ast.Return(ast.Ident("Counter"))},
				[]ast.Stmt{ast.Return(ast.Null())}),
		))
		if err := e.Store().Put(sys); err != nil {
			t.Fatalf("Put system object failed: %v", err)
		}

		expectValue(t, mustEval(t, e, ast.ExprS(ast.ObjRef(7))), counter)
		expectCode(t, e, types.E_INVIND, ast.ExprS(ast.ObjRef(8)))
	})
}

func TestCallersBuiltin(t *testing.T) {
	e := newTestEvaluator(t)
	probe := mustEval(t, e, object("Probe", nil, verb("stack", nil, ast.Return(ast.Call("callers")))))

	v := mustEval(t, e, ast.ExprS(ast.VerbCall(ast.Ident("Probe"), "stack")))
	list, ok := v.(types.ListValue)
	if !ok || list.Len() != 1 {
		t.Fatalf("Expected one frame, got %s", v)
	}
	frame := list.Get(0).(types.ListValue)
	expectValue(t, frame.Get(0), probe)
	expectValue(t, frame.Get(1), types.NewStr("stack"))

	expectValue(t, mustEval(t, e, ast.ExprS(ast.Call("callers"))), types.NewEmptyList())
}
