package builtins

import (
	"unicode/utf8"

	"echo/types"
)

// builtinLength returns the length of a string, list, or map
// length(str) -> int (characters)
// length(list) -> int
// length(map) -> int
func builtinLength(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}

	switch v := args[0].(type) {
	case types.StrValue:
		return types.Ok(types.NewInt(int64(utf8.RuneCountInString(v.Value()))))
	case types.ListValue:
		return types.Ok(types.NewInt(int64(v.Len())))
	case types.MapValue:
		return types.Ok(types.NewInt(int64(v.Len())))
	default:
		return types.Errf(types.E_TYPE, "length() not defined for %s", types.TypeName(args[0]))
	}
}
