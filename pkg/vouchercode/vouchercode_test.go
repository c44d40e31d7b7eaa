package vouchercode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesWellFormedDistinctCodes(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		code, err := Generate()
		require.NoError(t, err)
		assert.True(t, IsWellFormed(code), "malformed code %q", code)
		require.False(t, seen[code], "duplicate code %q after %d draws", code, i)
		seen[code] = true
	}
}

func TestGenerateNeverUsesAmbiguousCharacters(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := Generate()
		require.NoError(t, err)
		for _, c := range "01OI" {
			assert.NotContains(t, code[len(Prefix):], string(c), "code %q", code)
		}
	}
}

func TestIsWellFormed(t *testing.T) {
	assert.True(t, IsWellFormed("SA-69-ABCD-2345"))

	assert.False(t, IsWellFormed("SA-69-ABCD-234"))   // short group
	assert.False(t, IsWellFormed("SA-69-ABCD-23456")) // long group
	assert.False(t, IsWellFormed("SA-69-ABC0-2345"))  // excluded 0
	assert.False(t, IsWellFormed("SA-69-ABCO-2345"))  // excluded O
	assert.False(t, IsWellFormed("SA-69-ABC1-2345"))  // excluded 1
	assert.False(t, IsWellFormed("SA-69-ABCI-2345"))  // excluded I
	assert.False(t, IsWellFormed("SA-68-ABCD-2345"))  // wrong prefix
	assert.False(t, IsWellFormed("sa-69-abcd-2345"))  // not normalized
	assert.False(t, IsWellFormed(""))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "SA-69-ABCD-2345", Normalize("  sa-69-abcd-2345\n"))
	assert.True(t, IsWellFormed(Normalize(strings.ToLower("SA-69-WXYZ-9876"))))
}
