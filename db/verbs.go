package db

import "echo/ast"

// CompileVerb builds a verb record from its definition, reconstructing the
// source text from the body.
func CompileVerb(def ast.VerbDef) *Verb {
	perms := DefaultVerbPerms
	if def.Perms != "" {
		perms = ParseVerbPerms(def.Perms)
	}
	return &Verb{
		Name:   def.Name,
		Params: def.Params,
		Perms:  perms,
		Body:   def.Body,
		Source: ast.Unparse(def.Body),
	}
}
