package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePreservesOrderAndLiterals(t *testing.T) {
	v, err := Decode([]byte(`{"z": 1.50, "a": [true, null, "s"], "m": {"y": -0, "x": 1e3}}`))
	require.NoError(t, err)

	obj, ok := v.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())

	z, _ := obj.Get("z")
	assert.Equal(t, Number("1.50"), z)

	a, _ := obj.Get("a")
	assert.Equal(t, Array{Bool(true), Null{}, String("s")}, a)

	m, _ := obj.Get("m")
	inner := m.(*Object)
	assert.Equal(t, []string{"y", "x"}, inner.Keys())
	x, _ := inner.Get("x")
	assert.Equal(t, Number("1e3"), x)
}

func TestDecodeDuplicateMemberKeepsFirstPositionLastValue(t *testing.T) {
	v, err := Decode([]byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)

	obj := v.(*Object)
	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	a, _ := obj.Get("a")
	assert.Equal(t, Number("3"), a)
}

func TestDecodeScalars(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{`null`, Null{}},
		{` true `, Bool(true)},
		{`"x"`, String("x")},
		{`-12.5e-1`, Number("-12.5e-1")},
		{`[]`, Array{}},
	}
	for _, tt := range tests {
		v, err := Decode([]byte(tt.in))
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, v, tt.in)
	}
}

func TestDecodeInvalid(t *testing.T) {
	inputs := []string{
		``,
		`   `,
		`{`,
		`[1,]`,
		`{"a" 1}`,
		`{"a":1}}`,
		`1 2`,
		`[1] x`,
		`{'a': 1}`,
		`NaN`,
		`[01]`,
	}
	for _, in := range inputs {
		_, err := Decode([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestMarshalCompact(t *testing.T) {
	v := ObjectOf(
		O("b", Number("1.0")),
		O("a", Array{Null{}, Bool(false), String("<&>")}),
		O("e", NewObject()),
	)
	data, err := Marshal(v, "")
	require.NoError(t, err)
	assert.Equal(t, `{"b":1.0,"a":[null,false,"<&>"],"e":{}}`, string(data))
}

func TestMarshalIndented(t *testing.T) {
	v := Array{ObjectOf(O("id", Int(1)), O("tags", Array{}))}
	data, err := Marshal(v, "  ")
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": 1,\n    \"tags\": []\n  }\n]", string(data))
}

func TestDecodeRejectsInvalidUTF8(t *testing.T) {
	for _, in := range []string{"\"\xff\"", "{\"id\":\"\xfe\"}", "[\"ok\",\"\xc3\x28\"]"} {
		_, err := Decode([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestMarshalRejectsInvalidNumber(t *testing.T) {
	_, err := Marshal(Array{Number("1.2.3")}, "")
	require.Error(t, err)
}

func TestDecodeMarshalRoundTrip(t *testing.T) {
	in := `{"name":"Zo\u00eb","n":[1,2.50,-3e2],"ok":true,"nil":null,"u":"\u2028"}`
	v, err := Decode([]byte(in))
	require.NoError(t, err)

	out, err := Marshal(v, "")
	require.NoError(t, err)

	again, err := Decode(out)
	require.NoError(t, err)
	assert.True(t, Equal(v, again))
}
