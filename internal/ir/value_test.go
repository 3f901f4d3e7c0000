package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectPreservesInsertionOrder(t *testing.T) {
	obj := ObjectOf(O("zebra", Int(1)), O("alpha", Int(2)), O("mid", Int(3)))
	assert.Equal(t, []string{"zebra", "alpha", "mid"}, obj.Keys())
	assert.Equal(t, 3, obj.Len())
}

func TestObjectSetExistingKeyKeepsPosition(t *testing.T) {
	obj := ObjectOf(O("a", Int(1)), O("b", Int(2)))
	obj.Set("a", String("x"))

	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	v, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, String("x"), v)
}

func TestObjectKeysReturnsCopy(t *testing.T) {
	obj := ObjectOf(O("a", Null{}))
	keys := obj.Keys()
	keys[0] = "mutated"
	assert.True(t, obj.Has("a"))
	assert.False(t, obj.Has("mutated"))
}

func TestSortedKeysUTF16Order(t *testing.T) {
	// U+1F600 encodes as a surrogate pair starting 0xD83D, which sorts before
	// U+FB01 (0xFB01) in UTF-16 but after it in UTF-8.
	obj := ObjectOf(O("\uFB01", Int(1)), O("\U0001F600", Int(2)), O("b", Int(3)), O("a", Int(4)))
	assert.Equal(t, []string{"a", "b", "\U0001F600", "\uFB01"}, obj.SortedKeys())
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Null{}, "null"},
		{nil, "null"},
		{Bool(true), "boolean"},
		{Int(1), "number"},
		{String("s"), "string"},
		{Array{}, "array"},
		{NewObject(), "object"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TypeName(tt.v))
	}
}
