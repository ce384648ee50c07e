package types

import (
	"math"
	"strconv"
	"strings"
)

// FloatValue represents a 64-bit floating point number
type FloatValue struct {
	Val float64
}

// Type returns the type code for floats
func (f FloatValue) Type() TypeCode {
	return TYPE_FLOAT
}

// String returns the literal representation
func (f FloatValue) String() string {
	if math.IsNaN(f.Val) {
		return "NaN"
	}
	if math.IsInf(f.Val, 1) {
		return "Inf"
	}
	if math.IsInf(f.Val, -1) {
		return "-Inf"
	}
	// Whole numbers still show a decimal (3.0 not 3)
	s := strconv.FormatFloat(f.Val, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Equal compares by value; NaN equals NaN so equality stays reflexive
func (f FloatValue) Equal(other Value) bool {
	switch o := other.(type) {
	case FloatValue:
		return f.Val == o.Val || (math.IsNaN(f.Val) && math.IsNaN(o.Val))
	case IntValue:
		return f.Val == float64(o.Val)
	default:
		return false
	}
}

// NewFloat creates a new FloatValue
func NewFloat(val float64) FloatValue {
	return FloatValue{Val: val}
}
