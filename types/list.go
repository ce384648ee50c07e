package types

import "strings"

// ListValue represents an ordered sequence of values. Lists are immutable;
// mutating methods return a copy.
type ListValue struct {
	elements []Value
}

// NewList creates a new list value
func NewList(elements []Value) ListValue {
	return ListValue{elements: elements}
}

// NewEmptyList creates an empty list
func NewEmptyList() ListValue {
	return ListValue{elements: []Value{}}
}

// String returns the literal representation
func (l ListValue) String() string {
	parts := make([]string, len(l.elements))
	for i, elem := range l.elements {
		parts[i] = elem.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Type returns the type code for lists
func (l ListValue) Type() TypeCode {
	return TYPE_LIST
}

// Equal compares lists element-wise
func (l ListValue) Equal(other Value) bool {
	o, ok := other.(ListValue)
	if !ok || len(l.elements) != len(o.elements) {
		return false
	}
	for i := range l.elements {
		if !l.elements[i].Equal(o.elements[i]) {
			return false
		}
	}
	return true
}

// Len returns the length of the list
func (l ListValue) Len() int {
	return len(l.elements)
}

// Get returns the element at a 0-based index, or nil when out of range
func (l ListValue) Get(index int) Value {
	if index < 0 || index >= len(l.elements) {
		return nil
	}
	return l.elements[index]
}

// Set returns a new list with the element at index replaced (COW)
func (l ListValue) Set(index int, value Value) ListValue {
	if index < 0 || index >= len(l.elements) {
		return l
	}
	newElems := make([]Value, len(l.elements))
	copy(newElems, l.elements)
	newElems[index] = value
	return ListValue{elements: newElems}
}

// Append returns a new list with the value appended (COW)
func (l ListValue) Append(value Value) ListValue {
	newElems := make([]Value, len(l.elements), len(l.elements)+1)
	copy(newElems, l.elements)
	return ListValue{elements: append(newElems, value)}
}

// Elements returns the underlying slice for iteration. Callers must not
// modify it.
func (l ListValue) Elements() []Value {
	return l.elements
}
