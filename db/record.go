package db

import (
	"fmt"

	"echo/ast"
	"echo/types"

	"gopkg.in/yaml.v3"
)

// record is the serialized form of an Object
type record struct {
	ID         types.ObjID           `yaml:"id"`
	Parent     types.ObjID           `yaml:"parent,omitempty"`
	Name       string                `yaml:"name,omitempty"`
	Properties map[string]PropValue  `yaml:"properties,omitempty"`
	Verbs      map[string]verbRecord `yaml:"verbs,omitempty"`
}

type verbRecord struct {
	Perms  string    `yaml:"perms"`
	Params yaml.Node `yaml:"params,omitempty"`
	Body   yaml.Node `yaml:"body,omitempty"`
	Source string    `yaml:"source,omitempty"`
}

// MarshalObject renders an object as YAML. Verb bodies use the AST wire form.
func MarshalObject(obj *Object) ([]byte, error) {
	rec := record{
		ID:         obj.ID,
		Parent:     obj.Parent,
		Name:       obj.Name,
		Properties: obj.Properties,
	}
	if len(obj.Verbs) > 0 {
		rec.Verbs = make(map[string]verbRecord, len(obj.Verbs))
	}
	for name, v := range obj.Verbs {
		vr := verbRecord{Perms: v.Perms.String(), Source: v.Source}
		if len(v.Params) > 0 {
			n, err := ast.EncodeNode(v.Params)
			if err != nil {
				return nil, fmt.Errorf("verb %s params: %w", name, err)
			}
			vr.Params = *n
		}
		if len(v.Body) > 0 {
			n, err := ast.EncodeNode(v.Body)
			if err != nil {
				return nil, fmt.Errorf("verb %s body: %w", name, err)
			}
			vr.Body = *n
		}
		rec.Verbs[name] = vr
	}
	return yaml.Marshal(&rec)
}

// UnmarshalObject parses the YAML produced by MarshalObject
func UnmarshalObject(data []byte) (*Object, error) {
	var rec record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	obj := NewObject(rec.ID, rec.Parent)
	obj.Name = rec.Name
	for k, v := range rec.Properties {
		obj.Properties[k] = v
	}
	for name, vr := range rec.Verbs {
		v := &Verb{Name: name, Perms: ParseVerbPerms(vr.Perms), Source: vr.Source}
		if vr.Params.Kind != 0 {
			if err := ast.DecodeNode(&vr.Params, &v.Params); err != nil {
				return nil, fmt.Errorf("verb %s params: %w", name, err)
			}
		}
		if vr.Body.Kind != 0 {
			if err := ast.DecodeNode(&vr.Body, &v.Body); err != nil {
				return nil, fmt.Errorf("verb %s body: %w", name, err)
			}
		}
		obj.Verbs[name] = v
	}
	return obj, nil
}
