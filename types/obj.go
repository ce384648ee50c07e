package types

import "github.com/google/uuid"

// ObjID is an opaque, globally unique object identifier
type ObjID string

// Well-known objects
const (
	SystemObject ObjID = "#0" // global name table and player registry
	RootObject   ObjID = "#1" // default parent of every defined object
	ObjNothing   ObjID = ""
)

// NewObjID allocates a fresh identifier
func NewObjID() ObjID {
	return ObjID("#" + uuid.NewString())
}

// String returns the identifier text
func (id ObjID) String() string {
	if id == ObjNothing {
		return "#-1"
	}
	return string(id)
}

// ObjValue represents an object reference
type ObjValue struct {
	id ObjID
}

// NewObj creates a new object value
func NewObj(id ObjID) ObjValue {
	return ObjValue{id: id}
}

// String returns the literal representation
func (o ObjValue) String() string {
	return o.id.String()
}

// Type returns the type code for objects
func (o ObjValue) Type() TypeCode {
	return TYPE_OBJ
}

// Equal compares objects by identity
func (o ObjValue) Equal(other Value) bool {
	if otherObj, ok := other.(ObjValue); ok {
		return o.id == otherObj.id
	}
	return false
}

// ID returns the object ID
func (o ObjValue) ID() ObjID {
	return o.id
}
