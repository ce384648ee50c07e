package eval

import (
	"math"
	"strings"

	"echo/ast"
	"echo/types"
)

// ============================================================================
// UNARY OPERATORS
// ============================================================================

// evalUnaryMinus implements unary negation: -x
// Supports INT and FLOAT types
func evalUnaryMinus(operand types.Value) types.Result {
	switch v := operand.(type) {
	case types.IntValue:
		return types.Ok(types.IntValue{Val: -v.Val})
	case types.FloatValue:
		return types.Ok(types.FloatValue{Val: -v.Val})
	default:
		return types.Errf(types.E_TYPE, "unary operation - not defined for type %s", types.TypeName(operand))
	}
}

// evalUnaryNot implements logical NOT: !x
// Requires a boolean
func evalUnaryNot(operand types.Value) types.Result {
	b, ok := operand.(types.BoolValue)
	if !ok {
		return types.Errf(types.E_TYPE, "unary operation ! not defined for type %s", types.TypeName(operand))
	}
	return types.Ok(types.NewBool(!b.Val))
}

// ============================================================================
// BINARY OPERATORS
// ============================================================================

// binaryOp dispatches a non-logical binary operator on evaluated operands
func binaryOp(op ast.Operator, left, right types.Value) types.Result {
	switch op {
	// Arithmetic
	case ast.OpAdd:
		return evalAdd(left, right)
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return evalArith(op, left, right)
	case ast.OpPow:
		return evalPower(left, right)

	// Equality never fails
	case ast.OpEq:
		return types.Ok(types.NewBool(left.Equal(right)))
	case ast.OpNe:
		return types.Ok(types.NewBool(!left.Equal(right)))

	// Ordering
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return evalCompare(op, left, right)

	case ast.OpIn:
		return evalIn(left, right)

	default:
		return typeMismatch(op, left, right)
	}
}

func typeMismatch(op ast.Operator, left, right types.Value) types.Result {
	return types.Errf(types.E_TYPE, "binary operation %s not defined for types %s, %s",
		op, types.TypeName(left), types.TypeName(right))
}

// toNumeric unpacks an Int or Float. isFloat reports a Float operand.
func toNumeric(v types.Value) (i int64, f float64, isFloat bool, ok bool) {
	switch n := v.(type) {
	case types.IntValue:
		return n.Val, float64(n.Val), false, true
	case types.FloatValue:
		return 0, n.Val, true, true
	default:
		return 0, 0, false, false
	}
}

// evalAdd implements addition: left + right
// Supports INT + INT, FLOAT + FLOAT, INT + FLOAT (promotes to FLOAT)
// Also supports string concatenation: STR + STR
func evalAdd(left, right types.Value) types.Result {
	if leftStr, ok := left.(types.StrValue); ok {
		if rightStr, ok := right.(types.StrValue); ok {
			return types.Ok(types.NewStr(leftStr.Value() + rightStr.Value()))
		}
		return typeMismatch(ast.OpAdd, left, right)
	}
	return evalArith(ast.OpAdd, left, right)
}

// evalArith implements + - * / % on numbers.
// Integer division and remainder truncate toward zero; a zero divisor
// (after promotion) raises E_DIV.
func evalArith(op ast.Operator, left, right types.Value) types.Result {
	li, lf, leftIsFloat, ok1 := toNumeric(left)
	ri, rf, rightIsFloat, ok2 := toNumeric(right)
	if !ok1 || !ok2 {
		return typeMismatch(op, left, right)
	}

	if leftIsFloat || rightIsFloat {
		switch op {
		case ast.OpAdd:
			return types.Ok(types.FloatValue{Val: lf + rf})
		case ast.OpSub:
			return types.Ok(types.FloatValue{Val: lf - rf})
		case ast.OpMul:
			return types.Ok(types.FloatValue{Val: lf * rf})
		case ast.OpDiv:
			if rf == 0 {
				return types.Errf(types.E_DIV, "division by zero")
			}
			return types.Ok(types.FloatValue{Val: lf / rf})
		case ast.OpMod:
			if rf == 0 {
				return types.Errf(types.E_DIV, "modulo by zero")
			}
			return types.Ok(types.FloatValue{Val: math.Mod(lf, rf)})
		}
		return typeMismatch(op, left, right)
	}

	switch op {
	case ast.OpAdd:
		return types.Ok(types.IntValue{Val: li + ri})
	case ast.OpSub:
		return types.Ok(types.IntValue{Val: li - ri})
	case ast.OpMul:
		return types.Ok(types.IntValue{Val: li * ri})
	case ast.OpDiv:
		if ri == 0 {
			return types.Errf(types.E_DIV, "division by zero")
		}
		return types.Ok(types.IntValue{Val: li / ri})
	case ast.OpMod:
		if ri == 0 {
			return types.Errf(types.E_DIV, "modulo by zero")
		}
		return types.Ok(types.IntValue{Val: li % ri})
	}
	return typeMismatch(op, left, right)
}

// evalPower implements exponentiation: left ^ right
// INT ^ INT stays integral and rejects negative exponents
func evalPower(left, right types.Value) types.Result {
	li, lf, leftIsFloat, ok1 := toNumeric(left)
	ri, rf, rightIsFloat, ok2 := toNumeric(right)
	if !ok1 || !ok2 {
		return typeMismatch(ast.OpPow, left, right)
	}

	if leftIsFloat || rightIsFloat {
		return types.Ok(types.FloatValue{Val: math.Pow(lf, rf)})
	}
	if ri < 0 {
		return types.Errf(types.E_INVARG, "negative exponent %d for integer power", ri)
	}

	// Square-and-multiply
	result, base := int64(1), li
	for exp := ri; exp > 0; exp >>= 1 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
	}
	return types.Ok(types.IntValue{Val: result})
}

// evalCompare implements < <= > >= on numbers (with promotion) and strings
func evalCompare(op ast.Operator, left, right types.Value) types.Result {
	var cmp int

	li, lf, leftIsFloat, ok1 := toNumeric(left)
	ri, rf, rightIsFloat, ok2 := toNumeric(right)
	switch {
	case ok1 && ok2 && !leftIsFloat && !rightIsFloat:
		cmp = compareOrdered(li, ri)
	case ok1 && ok2:
		cmp = compareOrdered(lf, rf)
	default:
		ls, ok1 := left.(types.StrValue)
		rs, ok2 := right.(types.StrValue)
		if !ok1 || !ok2 {
			return typeMismatch(op, left, right)
		}
		cmp = strings.Compare(ls.Value(), rs.Value())
	}

	switch op {
	case ast.OpLt:
		return types.Ok(types.NewBool(cmp < 0))
	case ast.OpLe:
		return types.Ok(types.NewBool(cmp <= 0))
	case ast.OpGt:
		return types.Ok(types.NewBool(cmp > 0))
	default:
		return types.Ok(types.NewBool(cmp >= 0))
	}
}

func compareOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// evalIn implements membership: element in list, substring in string
func evalIn(left, right types.Value) types.Result {
	switch r := right.(type) {
	case types.ListValue:
		for _, elem := range r.Elements() {
			if left.Equal(elem) {
				return types.Ok(types.NewBool(true))
			}
		}
		return types.Ok(types.NewBool(false))
	case types.StrValue:
		l, ok := left.(types.StrValue)
		if !ok {
			return typeMismatch(ast.OpIn, left, right)
		}
		return types.Ok(types.NewBool(strings.Contains(r.Value(), l.Value())))
	default:
		return typeMismatch(ast.OpIn, left, right)
	}
}
