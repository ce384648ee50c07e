package eval

import (
	"strconv"

	"echo/ast"
	"echo/db"
	"echo/types"
)

// Names on the system object consulted when resolving #n references
const objectMapName = "object_map"

// evalObjectStmt defines a named object. The object gets a fresh id and
// root as its parent; the declared parent name is not resolved. The
// definition is published as a system object property named after it.
func (e *Evaluator) evalObjectStmt(stmt *ast.ObjectStmt, ctx *types.TaskContext) types.Result {
	obj := db.NewObject(types.NewObjID(), types.RootObject)
	obj.Name = stmt.Name

	for _, prop := range stmt.Properties {
		res := e.evalExpr(prop.Value, ctx)
		if !res.IsNormal() {
			return res
		}
		if err := obj.SetProperty(prop.Name, res.Val); err != nil {
			return types.Errf(types.E_STORE, "cannot store %s in property %s", types.TypeName(res.Val), prop.Name)
		}
	}
	for _, def := range stmt.Verbs {
		obj.Verbs[def.Name] = db.CompileVerb(def)
	}

	if res := e.putObject(obj); res.IsError() {
		return res
	}
	for _, h := range stmt.Handlers {
		e.events.RegisterHandler(obj.ID, h.Event, h.Params, h.Body, h.Priority)
	}

	if res := e.writeProperty(types.SystemObject, stmt.Name, types.NewObj(obj.ID)); res.IsError() {
		return res
	}
	return types.Ok(types.NewObj(obj.ID))
}

// resolveObjectRef resolves #n. #0 and #1 are the system and root objects;
// other numbers go through #0:object_map(n) if that verb exists, or else
// the #0.object_map map keyed by the decimal number.
func (e *Evaluator) resolveObjectRef(n int64, ctx *types.TaskContext) types.Result {
	switch n {
	case 0:
		return types.Ok(types.NewObj(types.SystemObject))
	case 1:
		return types.Ok(types.NewObj(types.RootObject))
	}

	sys, res := e.getObject(types.SystemObject)
	if sys == nil {
		return res
	}

	if verb, ok := sys.Verbs[objectMapName]; ok {
		res := e.runVerb(ctx, types.SystemObject, types.SystemObject, verb, []types.Value{types.NewInt(n)})
		if !res.IsNormal() {
			return res
		}
		if _, ok := res.Val.(types.ObjValue); !ok {
			return types.Errf(types.E_INVIND, "object_map returned %s for #%d, not an object", types.TypeName(res.Val), n)
		}
		return res
	}

	if v, ok := sys.Property(objectMapName); ok {
		if m, ok := v.(types.MapValue); ok {
			if target, found := m.Get(strconv.FormatInt(n, 10)); found {
				if _, ok := target.(types.ObjValue); ok {
					return types.Ok(target)
				}
			}
			return types.Errf(types.E_INVIND, "object reference #%d is not mapped", n)
		}
	}

	return types.Errf(types.E_INVIND,
		"object reference #%d is not mapped; define an object_map verb or an object_map property (a map) on #0", n)
}
