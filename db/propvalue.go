package db

import (
	"errors"
	"fmt"

	"echo/types"
)

// ErrNotStorable is returned when a value has no stored representation
var ErrNotStorable = errors.New("value cannot be stored as a property")

// PropKind tags a stored property value
type PropKind string

const (
	PropNull  PropKind = "null"
	PropBool  PropKind = "bool"
	PropInt   PropKind = "int"
	PropFloat PropKind = "float"
	PropStr   PropKind = "str"
	PropObj   PropKind = "obj"
	PropList  PropKind = "list"
	PropMap   PropKind = "map"
)

// PropValue is the stored form of a property. It mirrors the runtime value
// set minus lambdas.
type PropValue struct {
	Kind  PropKind             `yaml:"kind"`
	Bool  bool                 `yaml:"bool,omitempty"`
	Int   int64                `yaml:"int,omitempty"`
	Float float64              `yaml:"float,omitempty"`
	Str   string               `yaml:"str,omitempty"`
	Obj   types.ObjID          `yaml:"obj,omitempty"`
	List  []PropValue          `yaml:"list,omitempty"`
	Map   map[string]PropValue `yaml:"map,omitempty"`
}

// FromValue converts a runtime value to its stored form
func FromValue(v types.Value) (PropValue, error) {
	switch val := v.(type) {
	case nil, types.NullValue:
		return PropValue{Kind: PropNull}, nil
	case types.BoolValue:
		return PropValue{Kind: PropBool, Bool: val.Val}, nil
	case types.IntValue:
		return PropValue{Kind: PropInt, Int: val.Val}, nil
	case types.FloatValue:
		return PropValue{Kind: PropFloat, Float: val.Val}, nil
	case types.StrValue:
		return PropValue{Kind: PropStr, Str: val.Value()}, nil
	case types.ObjValue:
		return PropValue{Kind: PropObj, Obj: val.ID()}, nil
	case types.ListValue:
		elems := make([]PropValue, val.Len())
		for i, e := range val.Elements() {
			pv, err := FromValue(e)
			if err != nil {
				return PropValue{}, err
			}
			elems[i] = pv
		}
		return PropValue{Kind: PropList, List: elems}, nil
	case types.MapValue:
		pairs := make(map[string]PropValue, val.Len())
		for _, k := range val.Keys() {
			e, _ := val.Get(k)
			pv, err := FromValue(e)
			if err != nil {
				return PropValue{}, err
			}
			pairs[k] = pv
		}
		return PropValue{Kind: PropMap, Map: pairs}, nil
	case types.LambdaValue:
		return PropValue{}, fmt.Errorf("%w: lambda", ErrNotStorable)
	default:
		return PropValue{}, fmt.Errorf("%w: %T", ErrNotStorable, v)
	}
}

// Value converts the stored form back to a runtime value
func (p PropValue) Value() types.Value {
	switch p.Kind {
	case PropBool:
		return types.NewBool(p.Bool)
	case PropInt:
		return types.NewInt(p.Int)
	case PropFloat:
		return types.NewFloat(p.Float)
	case PropStr:
		return types.NewStr(p.Str)
	case PropObj:
		return types.NewObj(p.Obj)
	case PropList:
		elems := make([]types.Value, len(p.List))
		for i, e := range p.List {
			elems[i] = e.Value()
		}
		return types.NewList(elems)
	case PropMap:
		pairs := make(map[string]types.Value, len(p.Map))
		for k, e := range p.Map {
			pairs[k] = e.Value()
		}
		return types.NewMap(pairs)
	default:
		return types.Null
	}
}
