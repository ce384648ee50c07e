package db

import (
	"echo/ast"
	"echo/types"
)

// Object is a stored object record.
// CRITICAL: All cross-object references use ObjID, not Go pointers
type Object struct {
	ID     types.ObjID
	Parent types.ObjID // ObjNothing for the two well-known objects
	Name   string

	Properties map[string]PropValue
	Verbs      map[string]*Verb
}

// Verb represents a verb on an object
type Verb struct {
	Name   string
	Params []ast.Param
	Perms  VerbPerms
	Body   []ast.Stmt
	Source string // reconstructed from Body, for introspection
}

// VerbPerms represents verb permission flags
type VerbPerms uint8

const (
	VerbRead    VerbPerms = 1 << 0 // r - Code can be read
	VerbWrite   VerbPerms = 1 << 1 // w - Code can be modified
	VerbExecute VerbPerms = 1 << 2 // x - Verb can be called
)

// DefaultVerbPerms applies when a definition names no permissions
const DefaultVerbPerms = VerbRead | VerbExecute

// Has checks if a permission is set
func (p VerbPerms) Has(perm VerbPerms) bool {
	return p&perm != 0
}

// String returns permission string like "rx", "rwx", etc.
func (p VerbPerms) String() string {
	s := ""
	if p.Has(VerbRead) {
		s += "r"
	}
	if p.Has(VerbWrite) {
		s += "w"
	}
	if p.Has(VerbExecute) {
		s += "x"
	}
	return s
}

// ParseVerbPerms parses "rwx"-style flags. Unknown letters are ignored.
func ParseVerbPerms(s string) VerbPerms {
	var p VerbPerms
	for _, c := range s {
		switch c {
		case 'r', 'R':
			p |= VerbRead
		case 'w', 'W':
			p |= VerbWrite
		case 'x', 'X':
			p |= VerbExecute
		}
	}
	return p
}

// NewObject creates a new empty object record
func NewObject(id types.ObjID, parent types.ObjID) *Object {
	return &Object{
		ID:         id,
		Parent:     parent,
		Properties: make(map[string]PropValue),
		Verbs:      make(map[string]*Verb),
	}
}

// Clone returns a copy whose maps may be modified without affecting o.
// Verb bodies are immutable ASTs and are shared.
func (o *Object) Clone() *Object {
	c := &Object{
		ID:         o.ID,
		Parent:     o.Parent,
		Name:       o.Name,
		Properties: make(map[string]PropValue, len(o.Properties)),
		Verbs:      make(map[string]*Verb, len(o.Verbs)),
	}
	for k, v := range o.Properties {
		c.Properties[k] = v
	}
	for k, v := range o.Verbs {
		verb := *v
		c.Verbs[k] = &verb
	}
	return c
}

// Property returns a property converted to a runtime value
func (o *Object) Property(name string) (types.Value, bool) {
	pv, ok := o.Properties[name]
	if !ok {
		return nil, false
	}
	return pv.Value(), true
}

// SetProperty converts v and stores it on the record. Lambdas are rejected
// with ErrNotStorable.
func (o *Object) SetProperty(name string, v types.Value) error {
	pv, err := FromValue(v)
	if err != nil {
		return err
	}
	o.Properties[name] = pv
	return nil
}
