package db

import (
	"errors"
	"testing"

	"echo/types"
)

func TestPropValueConversion(t *testing.T) {
	values := []types.Value{
		types.Null,
		types.NewBool(true),
		types.NewInt(-7),
		types.NewFloat(2.5),
		types.NewStr("hello"),
		types.NewObj(types.RootObject),
		types.NewList([]types.Value{types.NewInt(1), types.NewList([]types.Value{types.NewStr("x")})}),
		types.NewMap(map[string]types.Value{"a": types.NewInt(1), "b": types.NewEmptyList()}),
	}

	for _, v := range values {
		t.Run(v.Type().String(), func(t *testing.T) {
			pv, err := FromValue(v)
			if err != nil {
				t.Fatalf("FromValue(%s) failed: %v", v, err)
			}
			if got := pv.Value(); !got.Equal(v) {
				t.Errorf("Expected %s, got %s", v, got)
			}
		})
	}
}

func TestLambdaNotStorable(t *testing.T) {
	fn := types.NewLambda(nil, nil, nil, map[string]types.Value{})
	tests := []struct {
		name string
		v    types.Value
	}{
		{"bare lambda", fn},
		{"lambda in list", types.NewList([]types.Value{types.NewInt(1), fn})},
		{"lambda in map", types.NewMap(map[string]types.Value{"f": fn})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromValue(tt.v); !errors.Is(err, ErrNotStorable) {
				t.Errorf("Expected ErrNotStorable, got %v", err)
			}
		})
	}
}
