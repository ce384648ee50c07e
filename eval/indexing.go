package eval

import (
	"echo/ast"
	"echo/types"
)

// evalIndex evaluates expr[index]
// Lists and strings take 0-based integer indexes; maps take string keys
func (e *Evaluator) evalIndex(node *ast.IndexExpr, ctx *types.TaskContext) types.Result {
	containerResult := e.evalExpr(node.Expr, ctx)
	if !containerResult.IsNormal() {
		return containerResult
	}
	indexResult := e.evalExpr(node.Index, ctx)
	if !indexResult.IsNormal() {
		return indexResult
	}
	return getIndex(containerResult.Val, indexResult.Val)
}

// getIndex reads one element. A missing map key yields null.
func getIndex(container, index types.Value) types.Result {
	switch c := container.(type) {
	case types.ListValue:
		i, res := intIndex(index, c.Len())
		if res.IsError() {
			return res
		}
		return types.Ok(c.Get(i))

	case types.StrValue:
		runes := []rune(c.Value())
		i, res := intIndex(index, len(runes))
		if res.IsError() {
			return res
		}
		return types.Ok(types.NewStr(string(runes[i])))

	case types.MapValue:
		key, ok := index.(types.StrValue)
		if !ok {
			return types.Errf(types.E_TYPE, "map keys must be strings, got %s", types.TypeName(index))
		}
		if v, found := c.Get(key.Value()); found {
			return types.Ok(v)
		}
		return types.Ok(types.Null)

	default:
		return types.Errf(types.E_TYPE, "cannot index %s", types.TypeName(container))
	}
}

// setIndex returns a copy of container with one element replaced
func setIndex(container, index, value types.Value) types.Result {
	switch c := container.(type) {
	case types.ListValue:
		i, res := intIndex(index, c.Len())
		if res.IsError() {
			return res
		}
		return types.Ok(c.Set(i, value))

	case types.MapValue:
		key, ok := index.(types.StrValue)
		if !ok {
			return types.Errf(types.E_TYPE, "map keys must be strings, got %s", types.TypeName(index))
		}
		return types.Ok(c.Set(key.Value(), value))

	default:
		return types.Errf(types.E_TYPE, "cannot assign into %s", types.TypeName(container))
	}
}

// intIndex validates a 0-based index against length n
func intIndex(index types.Value, n int) (int, types.Result) {
	idx, ok := index.(types.IntValue)
	if !ok {
		return 0, types.Errf(types.E_TYPE, "index must be an integer, got %s", types.TypeName(index))
	}
	if idx.Val < 0 || idx.Val >= int64(n) {
		return 0, types.Errf(types.E_RANGE, "index %d out of range for length %d", idx.Val, n)
	}
	return int(idx.Val), types.Ok(idx)
}
