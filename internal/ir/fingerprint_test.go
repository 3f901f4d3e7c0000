package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fingerprintOf(t *testing.T, record *Object, fields ...string) string {
	t.Helper()
	fp, err := Fingerprint(KeyTuple(record, fields), CanonicalOptions{})
	require.NoError(t, err)
	return fp
}

func TestKeyTupleMissingFieldIsNull(t *testing.T) {
	rec := ObjectOf(O("a", Int(1)))
	assert.Equal(t, []Value{Int(1), Null{}}, KeyTuple(rec, []string{"a", "b"}))
}

func TestFingerprintEquality(t *testing.T) {
	a := ObjectOf(O("tenant", String("x")), O("id", Int(1)), O("v", String("left")))
	b := ObjectOf(O("id", Number("1.0")), O("tenant", String("x")), O("v", String("right")))
	c := ObjectOf(O("tenant", String("x")), O("id", String("1")))

	assert.Equal(t, fingerprintOf(t, a, "tenant", "id"), fingerprintOf(t, b, "tenant", "id"))
	assert.NotEqual(t, fingerprintOf(t, a, "tenant", "id"), fingerprintOf(t, c, "tenant", "id"))
}

func TestFingerprintFieldOrderMatters(t *testing.T) {
	rec := ObjectOf(O("a", Int(1)), O("b", Int(2)))
	assert.NotEqual(t, fingerprintOf(t, rec, "a", "b"), fingerprintOf(t, rec, "b", "a"))
}

func TestFingerprintMissingEqualsNull(t *testing.T) {
	missing := ObjectOf(O("v", Int(1)))
	explicit := ObjectOf(O("id", Null{}), O("v", Int(2)))
	assert.Equal(t, fingerprintOf(t, missing, "id"), fingerprintOf(t, explicit, "id"))
}

func TestFingerprintStructuredKeys(t *testing.T) {
	a := ObjectOf(O("k", ObjectOf(O("x", Int(1)), O("y", Int(2)))))
	b := ObjectOf(O("k", ObjectOf(O("y", Int(2)), O("x", Int(1)))))
	assert.Equal(t, fingerprintOf(t, a, "k"), fingerprintOf(t, b, "k"))
}

func TestFingerprintTupleBoundaries(t *testing.T) {
	// ["a,b"] and ["a","b"] must not collide.
	one := ObjectOf(O("x", String(`a","b`)))
	two := ObjectOf(O("x", String("a")), O("y", String("b")))
	assert.NotEqual(t, fingerprintOf(t, one, "x"), fingerprintOf(t, two, "x", "y"))
}
