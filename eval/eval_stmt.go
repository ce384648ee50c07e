package eval

import (
	"echo/ast"
	"echo/events"
	"echo/types"
)

// EvalStatements evaluates a sequence of statements. The first non-normal
// result aborts the sequence and is returned; otherwise the value is the
// last statement's value, or null for an empty sequence.
func (e *Evaluator) EvalStatements(stmts []ast.Stmt, ctx *types.TaskContext) types.Result {
	var last types.Value = types.Null
	for _, stmt := range stmts {
		result := e.EvalStmt(stmt, ctx)
		if !result.IsNormal() {
			return result
		}
		last = valueOrNull(result.Val)
	}
	return types.Ok(last)
}

// EvalStmt evaluates a single statement
func (e *Evaluator) EvalStmt(stmt ast.Stmt, ctx *types.TaskContext) types.Result {
	// Tick counting
	if !ctx.ConsumeTick() {
		return types.Errf(types.E_MAXREC, "tick limit exceeded")
	}

	switch s := stmt.(type) {
	case *ast.ExprStmt:
		return e.evalExpr(s.Expr, ctx)
	case *ast.BindStmt:
		return e.evalBindStmt(s, ctx)
	case *ast.BlockStmt:
		return e.EvalStatements(s.Body, ctx)
	case *ast.IfStmt:
		return e.evalIfStmt(s, ctx)
	case *ast.WhileStmt:
		return e.evalWhileStmt(s, ctx)
	case *ast.ForStmt:
		return e.evalForStmt(s, ctx)
	case *ast.ReturnStmt:
		return e.evalReturnStmt(s, ctx)
	case *ast.BreakStmt:
		return types.Break(s.Label)
	case *ast.ContinueStmt:
		return types.Continue(s.Label)
	case *ast.EmitStmt:
		return e.evalEmitStmt(s, ctx)
	case *ast.TryStmt:
		return e.evalTryStmt(s, ctx)
	case *ast.ObjectStmt:
		return e.evalObjectStmt(s, ctx)
	default:
		return types.Errf(types.E_TYPE, "cannot execute %T", stmt)
	}
}

// evalIfStmt evaluates if/else; the value is null when no branch runs
func (e *Evaluator) evalIfStmt(stmt *ast.IfStmt, ctx *types.TaskContext) types.Result {
	cond, res := e.evalCondition(stmt.Cond, ctx)
	if !res.IsNormal() {
		return res
	}
	if cond {
		return e.EvalStatements(stmt.Then, ctx)
	}
	if stmt.Else != nil {
		return e.EvalStatements(stmt.Else, ctx)
	}
	return types.Ok(types.Null)
}

// evalWhileStmt evaluates while loops
// Loop labels are not matched: break and continue apply to the innermost loop.
func (e *Evaluator) evalWhileStmt(stmt *ast.WhileStmt, ctx *types.TaskContext) types.Result {
	for {
		cond, res := e.evalCondition(stmt.Cond, ctx)
		if !res.IsNormal() {
			return res
		}
		if !cond {
			break
		}

		result := e.EvalStatements(stmt.Body, ctx)
		switch {
		case result.IsBreak():
			return types.Ok(types.Null)
		case result.IsContinue(), result.IsNormal():
		default:
			return result // return or exception
		}

		if !ctx.ConsumeTick() {
			return types.Errf(types.E_MAXREC, "tick limit exceeded")
		}
	}
	return types.Ok(types.Null)
}

// evalForStmt evaluates for (x in list). The loop variable is rebound with
// let semantics each iteration and keeps its last value afterwards.
func (e *Evaluator) evalForStmt(stmt *ast.ForStmt, ctx *types.TaskContext) types.Result {
	iterResult := e.evalExpr(stmt.Iterable, ctx)
	if !iterResult.IsNormal() {
		return iterResult
	}
	list, ok := iterResult.Val.(types.ListValue)
	if !ok {
		return types.Errf(types.E_TYPE, "for loop requires a list, got %s", types.TypeName(iterResult.Val))
	}

	env := e.env(ctx)
	for _, elem := range list.Elements() {
		env.Bind(stmt.Var, elem, ast.BindLet)

		result := e.EvalStatements(stmt.Body, ctx)
		switch {
		case result.IsBreak():
			return types.Ok(types.Null)
		case result.IsContinue(), result.IsNormal():
		default:
			return result
		}

		if !ctx.ConsumeTick() {
			return types.Errf(types.E_MAXREC, "tick limit exceeded")
		}
	}
	return types.Ok(types.Null)
}

// evalReturnStmt evaluates return [expr]
func (e *Evaluator) evalReturnStmt(stmt *ast.ReturnStmt, ctx *types.TaskContext) types.Result {
	if stmt.Value == nil {
		return types.Return(types.Null)
	}
	res := e.evalExpr(stmt.Value, ctx)
	if !res.IsNormal() {
		return res
	}
	return types.Return(res.Val)
}

// evalEmitStmt evaluates emit name(args). The statement's value is false if
// a handler cancelled the event.
func (e *Evaluator) evalEmitStmt(stmt *ast.EmitStmt, ctx *types.TaskContext) types.Result {
	args, res := e.evalArgs(stmt.Args, ctx)
	if args == nil {
		return res
	}

	emitter := ctx.ThisObj
	if emitter == types.ObjNothing {
		emitter = ctx.Player
	}
	cancelled, res := e.EmitEvent(ctx, events.Event{
		Name:       stmt.Event,
		Args:       args,
		Emitter:    emitter,
		Bubbles:    true,
		Cancelable: true,
	})
	if res.IsError() {
		return res
	}
	return types.Ok(types.NewBool(!cancelled))
}

// evalTryStmt evaluates try/catch/finally.
// The catch variable is bound to {"kind": "E_...", "message": "..."}.
// The finally block always runs; if it does not complete normally its
// result replaces the try's.
func (e *Evaluator) evalTryStmt(stmt *ast.TryStmt, ctx *types.TaskContext) types.Result {
	result := e.EvalStatements(stmt.Body, ctx)

	hasCatch := stmt.CatchVar != "" || len(stmt.Catch) > 0
	if result.IsError() && hasCatch {
		if stmt.CatchVar != "" {
			e.env(ctx).Bind(stmt.CatchVar, types.ErrorMap(result.Error, result.Msg), ast.BindLet)
		}
		result = e.EvalStatements(stmt.Catch, ctx)
	}

	if len(stmt.Finally) > 0 {
		finallyResult := e.EvalStatements(stmt.Finally, ctx)
		if !finallyResult.IsNormal() {
			return finallyResult
		}
	}
	return result
}
