package eval

import (
	"errors"

	"echo/ast"
	"echo/db"
	"echo/types"
)

// evalProperty evaluates property access: obj.property
func (e *Evaluator) evalProperty(node *ast.PropertyExpr, ctx *types.TaskContext) types.Result {
	objResult := e.evalExpr(node.Expr, ctx)
	if !objResult.IsNormal() {
		return objResult
	}

	objVal, ok := objResult.Val.(types.ObjValue)
	if !ok {
		return types.Errf(types.E_TYPE, "property access requires an object, got %s", types.TypeName(objResult.Val))
	}
	return e.readProperty(objVal.ID(), node.Property)
}

// readProperty reads a property from an object record, following parents
// only when inherited lookup is enabled
func (e *Evaluator) readProperty(objID types.ObjID, name string) types.Result {
	val, _, err := db.FindProperty(e.store, objID, name, e.cfg.InheritedLookup)
	if err != nil {
		return storeError(err, objID)
	}
	if val == nil {
		return types.Errf(types.E_PROPNF, "property %s not found on %s", name, objID)
	}
	return types.Ok(val)
}

// writeProperty stores a property: the record is loaded, changed and put
// back. There is no transaction across the two store calls.
func (e *Evaluator) writeProperty(objID types.ObjID, name string, value types.Value) types.Result {
	obj, res := e.getObject(objID)
	if obj == nil {
		return res
	}

	if err := obj.SetProperty(name, value); err != nil {
		if errors.Is(err, db.ErrNotStorable) {
			return types.Errf(types.E_STORE, "cannot store %s in property %s", types.TypeName(value), name)
		}
		return types.Errf(types.E_STORE, "property %s: %v", name, err)
	}
	if res := e.putObject(obj); res.IsError() {
		return res
	}
	return types.Ok(value)
}
