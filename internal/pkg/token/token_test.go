package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FixedLength(t *testing.T) {
	t.Parallel()

	tok, err := New()
	require.NoError(t, err)
	assert.Len(t, tok, EncodedLen)
}

func TestNew_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := New()
		require.NoError(t, err)
		assert.False(t, seen[tok], "duplicate token generated")
		seen[tok] = true
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tok, err := New()
	require.NoError(t, err)

	other, err := New()
	require.NoError(t, err)

	assert.True(t, Equal(tok, tok))
	assert.False(t, Equal(tok, other))
	assert.False(t, Equal(tok[:10], tok))
	assert.False(t, Equal("", tok))
}
