package ir

import (
	"slices"
	"strconv"
	"unicode/utf16"
)

// Value is a sealed interface representing a JSON value.
// Only Null, Bool, Number, String, Array, and *Object implement this.
type Value interface {
	jsonValue() // Sealed - only these types implement it
}

// Null represents a JSON null.
// Using an explicit type ensures all Values satisfy the sealed interface.
type Null struct{}

func (Null) jsonValue() {}

// Bool represents a JSON boolean.
type Bool bool

func (Bool) jsonValue() {}

// Number represents a JSON number by its literal text.
// The literal is kept so that output reproduces input byte-for-byte.
type Number string

func (Number) jsonValue() {}

// String represents a JSON string.
type String string

func (String) jsonValue() {}

// Array represents an ordered JSON array.
type Array []Value

func (Array) jsonValue() {}

// Object represents a JSON object as an ordered mapping.
// Member order is insertion order; use SortedKeys() for canonical iteration.
// The zero value is not usable; construct with NewObject.
type Object struct {
	keys []string
	vals map[string]Value
}

func (*Object) jsonValue() {}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Pair is a key-value pair for ordered Object construction.
type Pair struct {
	Key   string
	Value Value
}

// O is a shorthand for Pair.
// Example: ObjectOf(O("id", Int(1)), O("name", String("cart")))
func O(key string, value Value) Pair {
	return Pair{Key: key, Value: value}
}

// ObjectOf creates an Object from pairs, in order.
func ObjectOf(pairs ...Pair) *Object {
	obj := NewObject()
	for _, p := range pairs {
		obj.Set(p.Key, p.Value)
	}
	return obj
}

// Int creates a Number from an integer.
func Int(n int64) Number {
	return Number(strconv.FormatInt(n, 10))
}

// Set assigns a member. A new key is appended; an existing key keeps its
// position and takes the new value.
func (obj *Object) Set(key string, v Value) {
	if _, ok := obj.vals[key]; !ok {
		obj.keys = append(obj.keys, key)
	}
	obj.vals[key] = v
}

// Get returns the member value for key.
func (obj *Object) Get(key string) (Value, bool) {
	v, ok := obj.vals[key]
	return v, ok
}

// Has reports whether key is a member.
func (obj *Object) Has(key string) bool {
	_, ok := obj.vals[key]
	return ok
}

// Len returns the number of members.
func (obj *Object) Len() int {
	return len(obj.keys)
}

// Keys returns member names in insertion order.
func (obj *Object) Keys() []string {
	return slices.Clone(obj.keys)
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's string comparison uses UTF-8 bytes, which orders differently for
// characters outside the BMP.
func (obj *Object) SortedKeys() []string {
	keys := obj.Keys()
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units as required by
// RFC 8785.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	for i := 0; i < min(len(a16), len(b16)); i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

// TypeName returns the JSON type name of v, for diagnostics.
func TypeName(v Value) string {
	switch v.(type) {
	case Null, nil:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case *Object:
		return "object"
	default:
		return "unknown"
	}
}
