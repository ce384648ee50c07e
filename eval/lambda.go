package eval

import (
	"echo/ast"
	"echo/task"
	"echo/trace"
	"echo/types"
)

// evalLambda creates a closure over a copy of the actor's current variables.
// Later changes to those variables are not seen by the closure.
func (e *Evaluator) evalLambda(node *ast.LambdaExpr, ctx *types.TaskContext) types.Result {
	return types.Ok(types.NewLambda(node.Params, node.Body, node.Stmts, e.env(ctx).Snapshot()))
}

// callLambda invokes a closure. Arguments bind left to right; extra
// arguments without a rest parameter are an error. A statement body runs
// like a top-level program, so a return reaching its end is E_FLOW.
func (e *Evaluator) callLambda(lambda types.LambdaValue, args []types.Value, ctx *types.TaskContext) types.Result {
	if !ctx.Enter() {
		return withCallStack(types.Errf(types.E_MAXREC, "maximum call depth %d exceeded", ctx.MaxDepth), ctx)
	}
	defer ctx.Leave()

	fn := lambda.Closure()
	actor := ctx.Player
	restore := e.envs.Swap(actor, newEnvironmentFrom(fn.Captured))
	defer restore()

	if t := task.FromContext(ctx); t != nil {
		t.PushFrame(task.ActivationFrame{
			Kind:    task.FrameLambda,
			This:    ctx.ThisObj,
			Player:  actor,
			Caller:  ctx.ThisObj,
			Verb:    "<lambda>",
			VerbLoc: ctx.ThisObj,
			Args:    args,
		})
		defer t.PopFrame()
	}
	trace.LambdaCall(args, actor)

	result := e.bindParams(fn.Params, args, true, ctx)
	if result.IsError() {
		return withCallStack(result, ctx)
	}

	if fn.Body != nil {
		result = e.evalExpr(fn.Body, ctx)
	} else {
		result = flowError(e.EvalStatements(fn.Stmts, ctx))
	}
	return withCallStack(result, ctx)
}

// applyLambda is callLambda for values that may not be lambdas
func (e *Evaluator) applyLambda(fn types.Value, args []types.Value, ctx *types.TaskContext) types.Result {
	lambda, ok := fn.(types.LambdaValue)
	if !ok {
		return types.Errf(types.E_TYPE, "cannot call %s", types.TypeName(fn))
	}
	return e.callLambda(lambda, args, ctx)
}
