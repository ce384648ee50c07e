package builtins

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"echo/types"
)

// builtinGenerateJson converts a value to a JSON string
// generate_json(value [, pretty]) -> str
// Objects become "#id" strings; lambdas cannot be converted.
func builtinGenerateJson(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) < 1 || len(args) > 2 {
		return types.Err(types.E_ARGS)
	}
	pretty, res := optionalBool(args, 1)
	if res.IsError() {
		return res
	}

	data, res := valueToJSON(args[0])
	if res.IsError() {
		return res
	}

	var out []byte
	var err error
	if pretty {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return types.Errf(types.E_INVARG, "generate_json: %v", err)
	}
	return types.Ok(types.NewStr(string(out)))
}

// valueToJSON converts a value to a Go value suitable for JSON marshaling
func valueToJSON(v types.Value) (interface{}, types.Result) {
	switch val := v.(type) {
	case nil, types.NullValue:
		return nil, types.Ok(types.Null)

	case types.BoolValue:
		return val.Val, types.Ok(types.Null)

	case types.IntValue:
		return val.Val, types.Ok(types.Null)

	case types.FloatValue:
		if math.IsNaN(val.Val) || math.IsInf(val.Val, 0) {
			return nil, types.Errf(types.E_INVARG, "cannot represent %s in JSON", val)
		}
		// Keep the decimal point so the value parses back as a float
		return json.Number(val.String()), types.Ok(types.Null)

	case types.StrValue:
		return val.Value(), types.Ok(types.Null)

	case types.ObjValue:
		return val.ID().String(), types.Ok(types.Null)

	case types.ListValue:
		arr := make([]interface{}, val.Len())
		for i, elem := range val.Elements() {
			jsonElem, res := valueToJSON(elem)
			if res.IsError() {
				return nil, res
			}
			arr[i] = jsonElem
		}
		return arr, types.Ok(types.Null)

	case types.MapValue:
		obj := make(map[string]interface{}, val.Len())
		for _, k := range val.Keys() {
			elem, _ := val.Get(k)
			jsonElem, res := valueToJSON(elem)
			if res.IsError() {
				return nil, res
			}
			obj[k] = jsonElem
		}
		return obj, types.Ok(types.Null)

	default:
		return nil, types.Errf(types.E_TYPE, "cannot convert %s to JSON", types.TypeName(v))
	}
}

// builtinParseJson parses a JSON string into a value
// parse_json(str) -> value
func builtinParseJson(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}
	strVal, ok := args[0].(types.StrValue)
	if !ok {
		return types.Err(types.E_TYPE)
	}

	var data interface{}
	decoder := json.NewDecoder(strings.NewReader(strVal.Value()))
	decoder.UseNumber()
	if err := decoder.Decode(&data); err != nil {
		return types.Errf(types.E_INVARG, "parse_json: %v", err)
	}
	return types.Ok(jsonToValue(data))
}

// jsonToValue converts a decoded JSON value. Numbers without a fraction or
// exponent that fit in int64 become integers.
func jsonToValue(v interface{}) types.Value {
	switch val := v.(type) {
	case nil:
		return types.Null

	case bool:
		return types.NewBool(val)

	case json.Number:
		s := val.String()
		if !strings.ContainsAny(s, ".eE") {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return types.NewInt(i)
			}
		}
		f, _ := strconv.ParseFloat(s, 64)
		return types.NewFloat(f)

	case string:
		return types.NewStr(val)

	case []interface{}:
		elements := make([]types.Value, len(val))
		for i, item := range val {
			elements[i] = jsonToValue(item)
		}
		return types.NewList(elements)

	case map[string]interface{}:
		pairs := make(map[string]types.Value, len(val))
		for k, item := range val {
			pairs[k] = jsonToValue(item)
		}
		return types.NewMap(pairs)

	default:
		return types.Null
	}
}
