package eval

import (
	"echo/ast"
	"echo/db"
	"echo/task"
	"echo/trace"
	"echo/types"
)

// evalVerbCall evaluates a verb call expression: obj:verb(args)
func (e *Evaluator) evalVerbCall(expr *ast.VerbCallExpr, ctx *types.TaskContext) types.Result {
	objResult := e.evalExpr(expr.Expr, ctx)
	if !objResult.IsNormal() {
		return objResult
	}

	// Must be an object
	objVal, ok := objResult.Val.(types.ObjValue)
	if !ok {
		return types.Errf(types.E_TYPE, "verb call requires an object, got %s", types.TypeName(objResult.Val))
	}

	// Arguments are evaluated in the caller's environment
	args, res := e.evalArgs(expr.Args, ctx)
	if args == nil {
		return res
	}
	return e.CallVerb(ctx, objVal.ID(), expr.Verb, args)
}

// CallVerb looks up and runs a verb on objID. Lookup consults only the
// object's own record unless inherited lookup is enabled.
func (e *Evaluator) CallVerb(ctx *types.TaskContext, objID types.ObjID, name string, args []types.Value) types.Result {
	verb, loc, err := db.FindVerb(e.store, objID, name, e.cfg.InheritedLookup)
	if err != nil {
		return storeError(err, objID)
	}
	if verb == nil {
		return types.Errf(types.E_VERBNF, "verb %s not found on %s", name, objID)
	}

	// Check execute permission
	if !verb.Perms.Has(db.VerbExecute) {
		return types.Errf(types.E_PERM, "verb %s on %s is not executable", name, objID)
	}
	return e.runVerb(ctx, objID, loc, verb, args)
}

// runVerb executes a verb body with this bound to the receiver. The verb
// runs in a copy of the caller's variables, swapped in for the duration of
// the call.
func (e *Evaluator) runVerb(ctx *types.TaskContext, this, loc types.ObjID, verb *db.Verb, args []types.Value) types.Result {
	if !ctx.Enter() {
		return withCallStack(types.Errf(types.E_MAXREC, "maximum call depth %d exceeded", ctx.MaxDepth), ctx)
	}
	defer ctx.Leave()

	actor := ctx.Player
	env := newEnvironmentFrom(e.env(ctx).Snapshot())
	env.Set("this", types.NewObj(this))
	env.Set("caller", types.NewObj(actor))
	env.Set("args", types.NewList(args))
	restore := e.envs.Swap(actor, env)
	defer restore()

	// Push activation frame onto call stack (if we have a task)
	if t := task.FromContext(ctx); t != nil {
		t.PushFrame(task.ActivationFrame{
			Kind:    task.FrameVerb,
			This:    this,
			Player:  actor,
			Caller:  ctx.ThisObj,
			Verb:    verb.Name,
			VerbLoc: loc,
			Args:    args,
		})
		defer t.PopFrame()
	}

	oldThis, oldVerb := ctx.ThisObj, ctx.Verb
	ctx.ThisObj, ctx.Verb = this, verb.Name
	defer func() { ctx.ThisObj, ctx.Verb = oldThis, oldVerb }()

	trace.VerbCall(this, verb.Name, args, actor, oldThis)

	result := e.bindParams(verb.Params, args, false, ctx)
	if !result.IsError() {
		result = e.EvalStatements(verb.Body, ctx)
	}

	switch result.Flow {
	case types.FlowReturn:
		result = types.Ok(valueOrNull(result.Val))
	case types.FlowBreak, types.FlowContinue:
		result = flowError(result)
	}

	if result.IsError() {
		trace.Exception(this, verb.Name, result.Error, result.Message())
		return withCallStack(result, ctx)
	}
	trace.VerbReturn(this, verb.Name, result.Val)
	return result
}
