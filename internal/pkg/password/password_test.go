package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, Verify("correct horse battery staple", hash))
	assert.False(t, Verify("wrong password", hash))
	assert.False(t, Verify("", hash))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := Hash("same-password")
	require.NoError(t, err)
	h2, err := Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, Verify("same-password", h1))
	assert.True(t, Verify("same-password", h2))
}

func TestHashToken(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, HashToken("abc"), HashToken("abc"))
	})

	t.Run("distinct inputs give distinct hashes", func(t *testing.T) {
		assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	})

	t.Run("sha256 hex output", func(t *testing.T) {
		assert.Len(t, HashToken("anything"), 64)
	})
}

func TestValidate(t *testing.T) {
	assert.True(t, Validate("12345678"))
	assert.True(t, Validate("a much longer password"))
	assert.False(t, Validate("1234567"))
	assert.False(t, Validate(""))
}
