package plan

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	cause := errors.New("unexpected EOF")

	assert.Equal(t, "MALFORMED_INPUT: left document: not valid JSON: unexpected EOF",
		NewMalformedInputError(SideLeft, cause).Error())
	assert.Equal(t, "INVALID_SHAPE: right document: element 2 is number, expected object",
		NewInvalidShapeError(SideRight, "element %d is %s, expected object", 2, "number").Error())
	assert.Equal(t, "INVALID_KEY_SET: at least one key is required",
		NewInvalidKeySetError("at least one key is required").Error())
	assert.Equal(t, "MALFORMED_PLAN: key set is empty",
		NewMalformedPlanError(nil, "key set is empty").Error())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("context: %w", NewMalformedPlanError(cause, "bad"))

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsKind(err, KindMalformedPlan))
	assert.False(t, IsKind(err, KindMalformedInput))
	assert.Equal(t, KindMalformedPlan, KindOf(err))

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, Side(""), pe.Side)
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.False(t, IsKind(nil, KindMalformedPlan))
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("malformed_input")
	require.Error(t, err)
}
