package eval

import (
	"echo/ast"
	"echo/db"
	"echo/events"
	"echo/task"
	"echo/types"
)

// handlerRunner runs event handlers inside the evaluation that emitted
// the event
type handlerRunner struct {
	e   *Evaluator
	ctx *types.TaskContext
}

func (r handlerRunner) RunHandler(h *events.Handler, ev events.Event) types.Result {
	return r.e.runHandler(r.ctx, h, ev)
}

func (r handlerRunner) Ancestors(obj types.ObjID) []types.ObjID {
	return db.Ancestors(r.e.store, obj)
}

// EmitEvent dispatches ev synchronously. Handlers may emit further events.
func (e *Evaluator) EmitEvent(ctx *types.TaskContext, ev events.Event) (bool, types.Result) {
	return e.events.Emit(handlerRunner{e: e, ctx: ctx}, ev)
}

// runHandler executes one handler body with this bound to the handler's
// object and event bound to the event payload. Only an explicit return
// yields a value, so only `return false` cancels an event.
func (e *Evaluator) runHandler(ctx *types.TaskContext, h *events.Handler, ev events.Event) types.Result {
	if !ctx.Enter() {
		return withCallStack(types.Errf(types.E_MAXREC, "maximum call depth %d exceeded", ctx.MaxDepth), ctx)
	}
	defer ctx.Leave()

	actor := ctx.Player
	env := newEnvironmentFrom(e.env(ctx).Snapshot())
	env.Set("this", types.NewObj(h.Object))
	env.Set("event", ev.Payload())
	restore := e.envs.Swap(actor, env)
	defer restore()

	if t := task.FromContext(ctx); t != nil {
		t.PushFrame(task.ActivationFrame{
			Kind:    task.FrameHandler,
			This:    h.Object,
			Player:  actor,
			Caller:  ev.Emitter,
			Verb:    ev.Name,
			VerbLoc: h.Object,
			Args:    ev.Args,
		})
		defer t.PopFrame()
	}

	oldThis := ctx.ThisObj
	ctx.ThisObj = h.Object
	defer func() { ctx.ThisObj = oldThis }()

	result := e.bindParams(h.Params, ev.Args, false, ctx)
	if !result.IsError() {
		result = e.EvalStatements(h.Body, ctx)
	}
	switch result.Flow {
	case types.FlowNormal:
		result = types.Ok(types.Null)
	case types.FlowReturn:
		result = types.Ok(valueOrNull(result.Val))
	case types.FlowBreak, types.FlowContinue:
		result = flowError(result)
	}
	return withCallStack(result, ctx)
}

// RegisterHandler adds an event handler on obj outside of an object
// definition
func (e *Evaluator) RegisterHandler(obj types.ObjID, event string, params []ast.Param, body []ast.Stmt, priority int) *events.Handler {
	return e.events.RegisterHandler(obj, event, params, body, priority)
}
