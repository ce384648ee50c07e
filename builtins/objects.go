package builtins

import (
	"echo/db"
	"echo/types"
)

// builtinValid checks if an object exists in the store
// valid(obj) -> bool
func builtinValid(ctx *types.TaskContext, args []types.Value, store db.Store) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}
	obj, ok := args[0].(types.ObjValue)
	if !ok {
		return types.Errf(types.E_TYPE, "valid() requires an object, got %s", types.TypeName(args[0]))
	}
	return types.Ok(types.NewBool(db.Valid(store, obj.ID())))
}

// builtinParent returns an object's parent, or null for the well-known objects
// parent(obj) -> obj | null
func builtinParent(ctx *types.TaskContext, args []types.Value, store db.Store) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}
	objVal, ok := args[0].(types.ObjValue)
	if !ok {
		return types.Errf(types.E_TYPE, "parent() requires an object, got %s", types.TypeName(args[0]))
	}

	obj, err := store.Get(objVal.ID())
	if err != nil {
		return types.Errf(types.E_INVIND, "no such object %s", objVal.ID())
	}
	if obj.Parent == types.ObjNothing {
		return types.Ok(types.Null)
	}
	return types.Ok(types.NewObj(obj.Parent))
}
