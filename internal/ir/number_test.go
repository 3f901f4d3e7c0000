package ir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimalRendering(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0", "0"},
		{"-0e-5", "0"},
		{"0.000", "0"},
		{"100", "100"},
		{"1e21", "1e+21"},
		{"123e18", "123000000000000000000"},
		{"123e19", "1.23e+21"},
		{"1.5e1", "15"},
		{"0.000001", "0.000001"},
		{"1e-7", "1e-7"},
		{"-12.5e-10", "-1.25e-9"},
		{"1e1000001", "1e+1000001"},
		{"1e-999999", "1e-999999"},
		{"10e-1000000", "1e-999999"},
		{"1e99999999999999999999999", "1e+99999999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := parseDecimal(Number(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestParseDecimalRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "-", "01", "1.", ".5", "1e", "1e+", "1e+-5", "1.2.3", "abc", "0x10", "1/2", "+1"} {
		t.Run(in, func(t *testing.T) {
			_, err := parseDecimal(Number(in))
			assert.Error(t, err)
		})
	}
}

func TestHugeExponentsCompareWithoutExpansion(t *testing.T) {
	assert.True(t, Equal(Number("1e1000001"), Number("10e1000000")))
	assert.False(t, Equal(Number("1e1000001"), Number("1e1000002")))
	assert.True(t, Equal(Number("1e-999999"), Number("0.1e-999998")))
	assert.False(t, Equal(Number("1e-999999"), Number("-1e-999999")))

	fa, err := Fingerprint([]Value{Number("1e-999999")}, CanonicalOptions{})
	require.NoError(t, err)
	fb, err := Fingerprint([]Value{Number("100e-1000001")}, CanonicalOptions{})
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
}

func TestLongMantissa(t *testing.T) {
	digits := strings.Repeat("7", 5000)
	a := Number(digits + "e-5000")
	b := Number("0." + digits)
	assert.True(t, Equal(a, b))

	out, err := MarshalCanonical(a, CanonicalOptions{})
	require.NoError(t, err)
	assert.Equal(t, "0."+digits, string(out))
}
