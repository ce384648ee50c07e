package types

import (
	"math"
	"strings"
	"testing"
)

func TestEquality(t *testing.T) {
	obj := NewObjID()
	tests := []struct {
		name  string
		a, b  Value
		equal bool
	}{
		{"null", Null, Null, true},
		{"null vs false", Null, NewBool(false), false},
		{"bool", NewBool(true), NewBool(true), true},
		{"int", NewInt(1), NewInt(1), true},
		{"int vs float promotes", NewInt(1), NewFloat(1), true},
		{"int vs fractional float", NewInt(1), NewFloat(1.5), false},
		{"nan equals nan", NewFloat(math.NaN()), NewFloat(math.NaN()), true},
		{"list with promoted element", NewList([]Value{NewInt(2)}), NewList([]Value{NewFloat(2)}), true},
		{"int vs string", NewInt(1), NewStr("1"), false},
		{"float", NewFloat(1.5), NewFloat(1.5), true},
		{"string", NewStr("a"), NewStr("a"), true},
		{"object", NewObj(obj), NewObj(obj), true},
		{"different objects", NewObj(obj), NewObj(NewObjID()), false},
		{"list", NewList([]Value{NewInt(1), NewInt(2)}), NewList([]Value{NewInt(1), NewInt(2)}), true},
		{"list length", NewList([]Value{NewInt(1)}), NewList([]Value{NewInt(1), NewInt(2)}), false},
		{"nested list", NewList([]Value{NewList([]Value{NewStr("x")})}), NewList([]Value{NewList([]Value{NewStr("x")})}), true},
		{"map", NewMap(map[string]Value{"a": NewInt(1)}), NewMap(map[string]Value{"a": NewInt(1)}), true},
		{"map value", NewMap(map[string]Value{"a": NewInt(1)}), NewMap(map[string]Value{"a": NewInt(2)}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("%v == %v: expected %v, got %v", tt.a, tt.b, tt.equal, got)
			}
			if got := tt.b.Equal(tt.a); got != tt.equal {
				t.Errorf("%v == %v (swapped): expected %v, got %v", tt.b, tt.a, tt.equal, got)
			}
		})
	}
}

func TestLambdaIdentity(t *testing.T) {
	a := NewLambda(nil, nil, nil, map[string]Value{})
	b := NewLambda(nil, nil, nil, map[string]Value{})
	if !a.Equal(a) {
		t.Error("Lambda should equal itself")
	}
	if a.Equal(b) {
		t.Error("Distinct lambdas should not be equal")
	}
}

func TestCopyOnWrite(t *testing.T) {
	list := NewList([]Value{NewInt(1), NewInt(2)})
	changed := list.Set(0, NewInt(9))
	if !list.Get(0).Equal(NewInt(1)) {
		t.Error("Set modified the original list")
	}
	if !changed.Get(0).Equal(NewInt(9)) {
		t.Error("Set did not produce the new value")
	}
	if list.Append(NewInt(3)).Len() != 3 || list.Len() != 2 {
		t.Error("Append should not modify the original list")
	}

	m := NewMap(map[string]Value{"a": NewInt(1)})
	m2 := m.Set("b", NewInt(2)).Delete("a")
	if m.Len() != 1 {
		t.Error("Set/Delete modified the original map")
	}
	if _, ok := m2.Get("a"); ok {
		t.Error("Delete did not remove key")
	}
}

func TestStringForms(t *testing.T) {
	tests := []struct {
		v        Value
		expected string
	}{
		{Null, "null"},
		{NewBool(false), "false"},
		{NewInt(-3), "-3"},
		{NewFloat(2), "2.0"},
		{NewStr("hi"), `"hi"`},
		{NewList([]Value{NewInt(1), NewStr("a")}), `[1, "a"]`},
		{NewMap(map[string]Value{"b": NewInt(2), "a": NewInt(1)}), `{"a": 1, "b": 2}`},
		{NewObj(SystemObject), "#0"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}

func TestNewObjID(t *testing.T) {
	a, b := NewObjID(), NewObjID()
	if a == b {
		t.Error("NewObjID returned duplicate ids")
	}
	if !strings.HasPrefix(string(a), "#") {
		t.Errorf("Expected # prefix, got %s", a)
	}
}
