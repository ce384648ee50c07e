package types

import (
	"sort"
	"strconv"
	"strings"
)

// MapValue maps string keys to values. Maps are immutable; mutating methods
// return a copy.
type MapValue struct {
	pairs map[string]Value
}

// NewMap creates a new map value from pairs
func NewMap(pairs map[string]Value) MapValue {
	m := make(map[string]Value, len(pairs))
	for k, v := range pairs {
		m[k] = v
	}
	return MapValue{pairs: m}
}

// NewEmptyMap creates an empty map
func NewEmptyMap() MapValue {
	return MapValue{pairs: map[string]Value{}}
}

// String returns the literal representation with keys sorted
func (m MapValue) String() string {
	keys := m.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.Quote(k) + ": " + m.pairs[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Type returns the type code for maps
func (m MapValue) Type() TypeCode {
	return TYPE_MAP
}

// Equal compares maps key by key
func (m MapValue) Equal(other Value) bool {
	o, ok := other.(MapValue)
	if !ok || len(m.pairs) != len(o.pairs) {
		return false
	}
	for k, v := range m.pairs {
		ov, exists := o.pairs[k]
		if !exists || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Len returns the number of entries in the map
func (m MapValue) Len() int {
	return len(m.pairs)
}

// Get returns the value for a key
func (m MapValue) Get(key string) (Value, bool) {
	v, ok := m.pairs[key]
	return v, ok
}

// Set returns a new map with the key set (COW)
func (m MapValue) Set(key string, val Value) MapValue {
	n := NewMap(m.pairs)
	n.pairs[key] = val
	return n
}

// Delete returns a new map with the key removed (COW)
func (m MapValue) Delete(key string) MapValue {
	if _, ok := m.pairs[key]; !ok {
		return m
	}
	n := NewMap(m.pairs)
	delete(n.pairs, key)
	return n
}

// Keys returns all keys in sorted order
func (m MapValue) Keys() []string {
	keys := make([]string, 0, len(m.pairs))
	for k := range m.pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
