package types

// ErrorCode represents an evaluator error kind (E_TYPE, E_DIV, etc.)
type ErrorCode int

// Error codes
const (
	E_NONE   ErrorCode = 0
	E_TYPE   ErrorCode = 1  // operand kind doesn't match the operation
	E_DIV    ErrorCode = 2  // division or modulo by zero
	E_PERM   ErrorCode = 3  // verb not executable
	E_PROPNF ErrorCode = 4  // missing property
	E_VERBNF ErrorCode = 5  // missing verb or builtin
	E_VARNF  ErrorCode = 6  // undefined variable
	E_INVIND ErrorCode = 7  // unknown object or unresolved object reference
	E_MAXREC ErrorCode = 8  // call depth or tick budget exhausted
	E_RANGE  ErrorCode = 9  // index out of range
	E_ARGS   ErrorCode = 10 // arity or destructuring mismatch
	E_INVARG ErrorCode = 11 // invalid builtin argument
	E_CONST  ErrorCode = 12 // reassignment of a const binding
	E_FLOW   ErrorCode = 13 // break/continue/return with nothing to consume it
	E_STORE  ErrorCode = 14 // value not representable as a stored property
)

// String returns the name for an error code
func (e ErrorCode) String() string {
	switch e {
	case E_NONE:
		return "E_NONE"
	case E_TYPE:
		return "E_TYPE"
	case E_DIV:
		return "E_DIV"
	case E_PERM:
		return "E_PERM"
	case E_PROPNF:
		return "E_PROPNF"
	case E_VERBNF:
		return "E_VERBNF"
	case E_VARNF:
		return "E_VARNF"
	case E_INVIND:
		return "E_INVIND"
	case E_MAXREC:
		return "E_MAXREC"
	case E_RANGE:
		return "E_RANGE"
	case E_ARGS:
		return "E_ARGS"
	case E_INVARG:
		return "E_INVARG"
	case E_CONST:
		return "E_CONST"
	case E_FLOW:
		return "E_FLOW"
	case E_STORE:
		return "E_STORE"
	default:
		return "E_UNKNOWN"
	}
}

// Message returns the default human-readable message for an error code
func (e ErrorCode) Message() string {
	switch e {
	case E_NONE:
		return "No error"
	case E_TYPE:
		return "Type mismatch"
	case E_DIV:
		return "Division by zero"
	case E_PERM:
		return "Permission denied"
	case E_PROPNF:
		return "Property not found"
	case E_VERBNF:
		return "Verb not found"
	case E_VARNF:
		return "Variable not found"
	case E_INVIND:
		return "Invalid object reference"
	case E_MAXREC:
		return "Too many nested calls"
	case E_RANGE:
		return "Range error"
	case E_ARGS:
		return "Incorrect number of arguments"
	case E_INVARG:
		return "Invalid argument"
	case E_CONST:
		return "Assignment to constant"
	case E_FLOW:
		return "break/continue/return outside loop or function"
	case E_STORE:
		return "Value cannot be stored"
	default:
		return "Unknown error"
	}
}

// ErrorFromString converts a string like "E_PERM" to an ErrorCode
func ErrorFromString(s string) (ErrorCode, bool) {
	for code := E_NONE; code <= E_STORE; code++ {
		if code.String() == s {
			return code, true
		}
	}
	return E_NONE, false
}

// Value is the interface all runtime values implement
type Value interface {
	Type() TypeCode
	String() string   // literal representation
	Equal(Value) bool // total equality; never errors
}
