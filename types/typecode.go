package types

// TypeCode identifies a runtime value variant
type TypeCode int

const (
	TYPE_NULL TypeCode = iota
	TYPE_BOOL
	TYPE_INT
	TYPE_FLOAT
	TYPE_STR
	TYPE_OBJ
	TYPE_LIST
	TYPE_MAP
	TYPE_LAMBDA
)

// String returns the type name reported by the type() builtin
func (t TypeCode) String() string {
	switch t {
	case TYPE_NULL:
		return "null"
	case TYPE_BOOL:
		return "boolean"
	case TYPE_INT:
		return "integer"
	case TYPE_FLOAT:
		return "float"
	case TYPE_STR:
		return "string"
	case TYPE_OBJ:
		return "object"
	case TYPE_LIST:
		return "list"
	case TYPE_MAP:
		return "map"
	case TYPE_LAMBDA:
		return "lambda"
	default:
		return "unknown"
	}
}
