package builtins

import (
	"strconv"
	"strings"

	"echo/types"
)

// builtinType returns the type name of a value
// type(value) -> str ("integer", "list", ...)
func builtinType(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}
	return types.Ok(types.NewStr(types.TypeName(args[0])))
}

// builtinTostr converts a value to a string
// tostr(value) -> str
// Strings are returned unquoted; everything else uses its literal form.
func builtinTostr(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}

	switch v := args[0].(type) {
	case types.StrValue:
		return types.Ok(v)
	case nil:
		return types.Ok(types.NewStr("null"))
	default:
		return types.Ok(types.NewStr(v.String()))
	}
}

// builtinToint converts a value to an integer
// toint(str) -> int (parse string as integer)
// toint(float) -> int (truncate toward zero)
// toint(bool) -> 1 or 0
func builtinToint(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}

	switch v := args[0].(type) {
	case types.IntValue:
		return types.Ok(v)

	case types.FloatValue:
		return types.Ok(types.NewInt(int64(v.Val)))

	case types.BoolValue:
		if v.Val {
			return types.Ok(types.NewInt(1))
		}
		return types.Ok(types.NewInt(0))

	case types.StrValue:
		str := strings.TrimSpace(v.Value())
		i, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return types.Errf(types.E_INVARG, "cannot convert %q to integer", v.Value())
		}
		return types.Ok(types.NewInt(i))

	default:
		return types.Errf(types.E_TYPE, "cannot convert %s to integer", types.TypeName(args[0]))
	}
}

// builtinTofloat converts a value to a float
// tofloat(int) -> float
// tofloat(str) -> float (parse string as float)
func builtinTofloat(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}

	switch v := args[0].(type) {
	case types.FloatValue:
		return types.Ok(v)

	case types.IntValue:
		return types.Ok(types.NewFloat(float64(v.Val)))

	case types.StrValue:
		str := strings.TrimSpace(v.Value())
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return types.Errf(types.E_INVARG, "cannot convert %q to float", v.Value())
		}
		return types.Ok(types.NewFloat(f))

	default:
		return types.Errf(types.E_TYPE, "cannot convert %s to float", types.TypeName(args[0]))
	}
}
