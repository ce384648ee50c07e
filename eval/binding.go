package eval

import (
	"echo/ast"
	"echo/types"
)

// bindPattern binds value to pattern in the actor's environment using the
// given binding kind
func (e *Evaluator) bindPattern(p ast.Pattern, value types.Value, kind ast.BindKind, ctx *types.TaskContext) types.Result {
	switch pat := p.(type) {
	case *ast.IdentPattern:
		return e.env(ctx).Bind(pat.Name, value, kind)

	case *ast.IgnorePattern:
		return types.Ok(value)

	case *ast.ListPattern:
		list, ok := value.(types.ListValue)
		if !ok {
			return types.Errf(types.E_TYPE, "cannot destructure %s, expected list", types.TypeName(value))
		}
		if res := e.bindElements(pat.Elements, list.Elements(), kind, ctx); res.IsError() {
			return res
		}
		return types.Ok(value)

	default:
		return types.Errf(types.E_TYPE, "unknown pattern %T", p)
	}
}

// bindElements destructures vals into a list pattern's elements. Required
// elements are always filled; optional elements take values only while
// there are more values than required elements, left to right; a rest
// element collects whatever remains.
func (e *Evaluator) bindElements(elems []ast.PatternElement, vals []types.Value, kind ast.BindKind, ctx *types.TaskContext) types.Result {
	required, optional, rest := 0, 0, false
	for i, el := range elems {
		switch el.Kind {
		case ast.ElemOptional:
			optional++
		case ast.ElemRest:
			if i != len(elems)-1 {
				return types.Errf(types.E_ARGS, "rest element @%s must be last", el.Name)
			}
			rest = true
		default:
			required++
		}
	}

	switch {
	case optional == 0 && !rest && len(vals) != required:
		return types.Errf(types.E_ARGS, "pattern expects %d values, got %d", required, len(vals))
	case len(vals) < required:
		return types.Errf(types.E_ARGS, "pattern expects at least %d values, got %d", required, len(vals))
	case !rest && len(vals) > required+optional:
		return types.Errf(types.E_ARGS, "pattern expects at most %d values, got %d", required+optional, len(vals))
	}

	spare := len(vals) - required
	i := 0
	for _, el := range elems {
		var res types.Result
		switch el.Kind {
		case ast.ElemOptional:
			var v types.Value
			if spare > 0 {
				v = vals[i]
				i++
				spare--
			}
			res = e.bindOptional(el.Name, v, el.Default, kind, ctx)
		case ast.ElemRest:
			res = e.env(ctx).Bind(el.Name, restList(vals, i), kind)
			i = len(vals)
		default:
			res = e.bindPattern(el.Pattern, vals[i], kind, ctx)
			i++
		}
		if res.IsError() {
			return res
		}
	}
	return types.Ok(types.Null)
}

// bindOptional binds name to v, or to its default when v is absent or null.
// The default is evaluated in the current environment.
func (e *Evaluator) bindOptional(name string, v types.Value, def ast.Expr, kind ast.BindKind, ctx *types.TaskContext) types.Result {
	if v == nil || types.IsNull(v) {
		res := e.evalExpr(def, ctx)
		if !res.IsNormal() {
			return res
		}
		v = res.Val
	}
	return e.env(ctx).Bind(name, v, kind)
}

// bindParams binds call arguments to declared parameters, left to right.
// A rest parameter ends binding. With strict set, arguments left over
// without a rest parameter are an error; otherwise they are ignored.
func (e *Evaluator) bindParams(params []ast.Param, args []types.Value, strict bool, ctx *types.TaskContext) types.Result {
	env := e.env(ctx)
	i := 0
	for pi, p := range params {
		switch p.Kind {
		case ast.ElemRest:
			if pi != len(params)-1 {
				return types.Errf(types.E_ARGS, "rest parameter @%s must be last", p.Name)
			}
			env.Bind(p.Name, restList(args, i), ast.BindLet)
			return types.Ok(types.Null)

		case ast.ElemOptional:
			var v types.Value
			if i < len(args) {
				v = args[i]
				i++
			}
			if res := e.bindOptional(p.Name, v, p.Default, ast.BindLet, ctx); res.IsError() {
				return res
			}

		default:
			if i >= len(args) {
				return types.Errf(types.E_ARGS, "missing argument %s", p.Name)
			}
			env.Bind(p.Name, args[i], ast.BindLet)
			i++
		}
	}

	if strict && i < len(args) {
		return types.Errf(types.E_ARGS, "too many arguments: expected at most %d, got %d", len(params), len(args))
	}
	return types.Ok(types.Null)
}

func restList(vals []types.Value, from int) types.ListValue {
	if from >= len(vals) {
		return types.NewEmptyList()
	}
	rest := make([]types.Value, len(vals)-from)
	copy(rest, vals[from:])
	return types.NewList(rest)
}

// evalBindStmt evaluates let/const declarations and destructuring
// reassignment; the statement yields the bound value
func (e *Evaluator) evalBindStmt(stmt *ast.BindStmt, ctx *types.TaskContext) types.Result {
	valueResult := e.evalExpr(stmt.Value, ctx)
	if !valueResult.IsNormal() {
		return valueResult
	}
	res := e.bindPattern(stmt.Pattern, valueResult.Val, stmt.Kind, ctx)
	if res.IsError() {
		return res
	}
	return types.Ok(valueResult.Val)
}

// evalAssign evaluates an assignment expression: target = value
// Supports variables, obj.prop, $name and indexed targets
func (e *Evaluator) evalAssign(node *ast.AssignExpr, ctx *types.TaskContext) types.Result {
	valueResult := e.evalExpr(node.Value, ctx)
	if !valueResult.IsNormal() {
		return valueResult
	}
	res := e.assignTo(node.Target, valueResult.Val, ctx)
	if res.IsError() {
		return res
	}
	return types.Ok(valueResult.Val)
}

// assignTo stores value into an assignable expression
func (e *Evaluator) assignTo(target ast.Expr, value types.Value, ctx *types.TaskContext) types.Result {
	switch t := target.(type) {
	case *ast.IdentifierExpr:
		return e.env(ctx).Bind(t.Name, value, ast.BindNone)

	case *ast.PropertyExpr:
		objResult := e.evalExpr(t.Expr, ctx)
		if !objResult.IsNormal() {
			return objResult
		}
		objVal, ok := objResult.Val.(types.ObjValue)
		if !ok {
			return types.Errf(types.E_TYPE, "property assignment requires an object, got %s", types.TypeName(objResult.Val))
		}
		return e.writeProperty(objVal.ID(), t.Property, value)

	case *ast.SysPropExpr:
		return e.writeProperty(types.SystemObject, t.Name, value)

	case *ast.IndexExpr:
		// Read the container, replace one element, write the container back
		containerResult := e.evalExpr(t.Expr, ctx)
		if !containerResult.IsNormal() {
			return containerResult
		}
		indexResult := e.evalExpr(t.Index, ctx)
		if !indexResult.IsNormal() {
			return indexResult
		}
		updated := setIndex(containerResult.Val, indexResult.Val, value)
		if !updated.IsNormal() {
			return updated
		}
		return e.assignTo(t.Expr, updated.Val, ctx)

	default:
		return types.Errf(types.E_TYPE, "cannot assign to %T", target)
	}
}
