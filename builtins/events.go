package builtins

import (
	"echo/events"
	"echo/types"
)

// builtinEmit dispatches an event from the current object
// emit(name, args...) -> bool (false if a handler cancelled it)
func builtinEmit(ctx *types.TaskContext, args []types.Value, host EventHost) types.Result {
	if len(args) < 1 {
		return types.Err(types.E_ARGS)
	}
	name, ok := args[0].(types.StrValue)
	if !ok {
		return types.Errf(types.E_TYPE, "emit() requires an event name, got %s", types.TypeName(args[0]))
	}
	if name.Value() == "" {
		return types.Errf(types.E_INVARG, "event name must not be empty")
	}

	emitter := ctx.ThisObj
	if emitter == types.ObjNothing {
		emitter = ctx.Player
	}
	ev := events.Event{
		Name:       name.Value(),
		Args:       append([]types.Value(nil), args[1:]...),
		Emitter:    emitter,
		Bubbles:    true,
		Cancelable: true,
	}
	cancelled, res := host.EmitEvent(ctx, ev)
	if res.IsError() {
		return res
	}
	return types.Ok(types.NewBool(!cancelled))
}
