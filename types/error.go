package types

// ErrorMap builds the value a catch clause binds: {"kind": "E_...", "message": "..."}
func ErrorMap(code ErrorCode, msg string) MapValue {
	if msg == "" {
		msg = code.Message()
	}
	return NewMap(map[string]Value{
		"kind":    NewStr(code.String()),
		"message": NewStr(msg),
	})
}

// TypeName returns the name of a value's type, treating a missing value as null
func TypeName(v Value) string {
	if v == nil {
		return TYPE_NULL.String()
	}
	return v.Type().String()
}
