package builtins

import (
	"math"
	"math/rand/v2"

	"echo/types"
)

// ============================================================================
// MATH BUILTINS
// ============================================================================

// builtinAbs returns absolute value
// abs(number) -> int|float
func builtinAbs(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}

	switch v := args[0].(type) {
	case types.IntValue:
		if v.Val < 0 {
			return types.Ok(types.IntValue{Val: -v.Val})
		}
		return types.Ok(v)
	case types.FloatValue:
		return types.Ok(types.FloatValue{Val: math.Abs(v.Val)})
	default:
		return types.Err(types.E_TYPE)
	}
}

// builtinMin returns the smallest value
// min(num1, num2, ...) -> int|float
func builtinMin(ctx *types.TaskContext, args []types.Value) types.Result {
	return extremum(args, func(a, b float64) bool { return a < b })
}

// builtinMax returns the largest value
// max(num1, num2, ...) -> int|float
func builtinMax(ctx *types.TaskContext, args []types.Value) types.Result {
	return extremum(args, func(a, b float64) bool { return a > b })
}

func extremum(args []types.Value, better func(a, b float64) bool) types.Result {
	if len(args) == 0 {
		return types.Err(types.E_ARGS)
	}

	best := args[0]
	bestFloat, ok := toNumericFloat(best)
	if !ok {
		return types.Err(types.E_TYPE)
	}
	for _, arg := range args[1:] {
		f, ok := toNumericFloat(arg)
		if !ok {
			return types.Err(types.E_TYPE)
		}
		if better(f, bestFloat) {
			best, bestFloat = arg, f
		}
	}
	return types.Ok(best)
}

// builtinRandom returns a random integer
// random(max) -> int (0 to max-1)
// random(min, max) -> int (min to max inclusive)
func builtinRandom(ctx *types.TaskContext, args []types.Value) types.Result {
	switch len(args) {
	case 1:
		maxV, ok := args[0].(types.IntValue)
		if !ok {
			return types.Err(types.E_TYPE)
		}
		if maxV.Val <= 0 {
			return types.Err(types.E_RANGE)
		}
		return types.Ok(types.IntValue{Val: rand.Int64N(maxV.Val)})

	case 2:
		minV, ok1 := args[0].(types.IntValue)
		maxV, ok2 := args[1].(types.IntValue)
		if !ok1 || !ok2 {
			return types.Err(types.E_TYPE)
		}
		if minV.Val > maxV.Val {
			return types.Err(types.E_RANGE)
		}
		// unsigned span; max-min+1 overflows int64 at the extremes
		span := uint64(maxV.Val) - uint64(minV.Val)
		var offset uint64
		if span == math.MaxUint64 {
			offset = rand.Uint64()
		} else {
			offset = rand.Uint64N(span + 1)
		}
		return types.Ok(types.IntValue{Val: minV.Val + int64(offset)})

	default:
		return types.Err(types.E_ARGS)
	}
}

// builtinSqrt returns square root
// sqrt(value) -> float
func builtinSqrt(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}
	f, ok := toNumericFloat(args[0])
	if !ok {
		return types.Err(types.E_TYPE)
	}
	if f < 0 {
		return types.Errf(types.E_INVARG, "sqrt() of negative number")
	}
	return types.Ok(types.FloatValue{Val: math.Sqrt(f)})
}

// builtinFloor rounds down
// floor(value) -> float
func builtinFloor(ctx *types.TaskContext, args []types.Value) types.Result {
	return floatUnary(args, math.Floor)
}

// builtinCeil rounds up
// ceil(value) -> float
func builtinCeil(ctx *types.TaskContext, args []types.Value) types.Result {
	return floatUnary(args, math.Ceil)
}

func floatUnary(args []types.Value, fn func(float64) float64) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}
	f, ok := toNumericFloat(args[0])
	if !ok {
		return types.Err(types.E_TYPE)
	}
	return types.Ok(types.FloatValue{Val: fn(f)})
}

// toNumericFloat converts an Int or Float to float64
func toNumericFloat(v types.Value) (float64, bool) {
	switch n := v.(type) {
	case types.IntValue:
		return float64(n.Val), true
	case types.FloatValue:
		return n.Val, true
	default:
		return 0, false
	}
}
