package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnum string

const (
	testEnumAlpha testEnum = "alpha"
	testEnumBeta  testEnum = "beta"
	testEnumGamma testEnum = "gamma"
)

func newTestNormalizer() *Normalizer[testEnum] {
	return NewNormalizer("test enum", map[string]testEnum{
		"alpha": testEnumAlpha,
		"Beta":  testEnumBeta,
		"gamma": testEnumGamma,
	}, testEnumAlpha)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newTestNormalizer()
	tests := []struct {
		name     string
		input    string
		expected testEnum
	}{
		{"exact match", "alpha", testEnumAlpha},
		{"case insensitive", "BETA", testEnumBeta},
		{"with spaces", "  beta  ", testEnumBeta},
		{"mixed case spaces", "  GaMmA  ", testEnumGamma},
		{"invalid input", "invalid", testEnumAlpha},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_NormalizeWithError(t *testing.T) {
	n := newTestNormalizer()

	v, err := n.NormalizeWithError("GAMMA")
	require.NoError(t, err)
	assert.Equal(t, testEnumGamma, v)

	v, err = n.NormalizeWithError("")
	require.NoError(t, err)
	assert.Equal(t, testEnumAlpha, v)

	_, err = n.NormalizeWithError("delta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid test enum "delta"`)
	assert.Contains(t, err.Error(), "[alpha beta gamma]")
}

func TestNormalizer_ValidKeysIsCopy(t *testing.T) {
	n := newTestNormalizer()
	keys := n.ValidKeys()
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, keys)
	keys[0] = "mutated"
	assert.Equal(t, "alpha", n.ValidKeys()[0])
}
