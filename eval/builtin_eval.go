package eval

import (
	"echo/task"
	"echo/types"
)

// registerEvalBuiltins registers builtins that need the evaluator itself
func (e *Evaluator) registerEvalBuiltins() {
	// apply(fn, list) -> value
	e.builtins.Register("apply", func(ctx *types.TaskContext, args []types.Value) types.Result {
		if len(args) != 2 {
			return types.Err(types.E_ARGS)
		}
		list, ok := args[1].(types.ListValue)
		if !ok {
			return types.Errf(types.E_TYPE, "apply() requires a list of arguments, got %s", types.TypeName(args[1]))
		}
		return e.applyLambda(args[0], list.Elements(), ctx)
	})

	// call_verb(obj, name, args...) -> value
	e.builtins.Register("call_verb", func(ctx *types.TaskContext, args []types.Value) types.Result {
		if len(args) < 2 {
			return types.Err(types.E_ARGS)
		}
		obj, ok1 := args[0].(types.ObjValue)
		name, ok2 := args[1].(types.StrValue)
		if !ok1 || !ok2 {
			return types.Err(types.E_TYPE)
		}
		return e.CallVerb(ctx, obj.ID(), name.Value(), append([]types.Value(nil), args[2:]...))
	})

	// callers() -> list of [this, verb, verb_loc, player, caller], innermost first
	e.builtins.Register("callers", func(ctx *types.TaskContext, args []types.Value) types.Result {
		if len(args) != 0 {
			return types.Err(types.E_ARGS)
		}
		t := task.FromContext(ctx)
		if t == nil {
			return types.Ok(types.NewEmptyList())
		}
		stack := t.GetCallStack()
		frames := make([]types.Value, 0, len(stack))
		for i := len(stack) - 1; i >= 0; i-- {
			frames = append(frames, stack[i].ToList())
		}
		return types.Ok(types.NewList(frames))
	})
}
