package builtins

import "echo/types"

// builtinKeys returns the keys of a map in sorted order
// keys(map) -> list
func builtinKeys(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}
	m, ok := args[0].(types.MapValue)
	if !ok {
		return types.Errf(types.E_TYPE, "keys() requires a map, got %s", types.TypeName(args[0]))
	}

	keys := m.Keys()
	result := make([]types.Value, len(keys))
	for i, k := range keys {
		result[i] = types.NewStr(k)
	}
	return types.Ok(types.NewList(result))
}

// builtinValues returns the values of a map, ordered by key
// values(map) -> list
func builtinValues(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}
	m, ok := args[0].(types.MapValue)
	if !ok {
		return types.Errf(types.E_TYPE, "values() requires a map, got %s", types.TypeName(args[0]))
	}

	keys := m.Keys()
	result := make([]types.Value, len(keys))
	for i, k := range keys {
		result[i], _ = m.Get(k)
	}
	return types.Ok(types.NewList(result))
}

// builtinHasKey checks if a map contains a key
// has_key(map, key) -> bool
func builtinHasKey(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Err(types.E_ARGS)
	}
	m, ok := args[0].(types.MapValue)
	if !ok {
		return types.Errf(types.E_TYPE, "has_key() requires a map, got %s", types.TypeName(args[0]))
	}
	key, ok := args[1].(types.StrValue)
	if !ok {
		return types.Errf(types.E_TYPE, "map keys are strings, got %s", types.TypeName(args[1]))
	}
	_, found := m.Get(key.Value())
	return types.Ok(types.NewBool(found))
}
