package types

// BoolValue represents a boolean
type BoolValue struct {
	Val bool
}

// Type returns the type code for booleans
func (b BoolValue) Type() TypeCode {
	return TYPE_BOOL
}

// String returns the literal representation
func (b BoolValue) String() string {
	if b.Val {
		return "true"
	}
	return "false"
}

// Equal compares booleans by identity
func (b BoolValue) Equal(other Value) bool {
	o, ok := other.(BoolValue)
	return ok && b.Val == o.Val
}

// NewBool creates a new BoolValue
func NewBool(val bool) BoolValue {
	return BoolValue{Val: val}
}

// NullValue is the single null value
type NullValue struct{}

// Null is the canonical null
var Null Value = NullValue{}

func (NullValue) Type() TypeCode { return TYPE_NULL }
func (NullValue) String() string { return "null" }

// Equal reports whether other is also null
func (NullValue) Equal(other Value) bool {
	_, ok := other.(NullValue)
	return ok
}

// IsNull reports whether v is null (or a missing Go value)
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(NullValue)
	return ok
}
