package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("root")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NotEqual(t, "root", hash)
	assert.True(t, CheckPassword("root", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("root")
	require.NoError(t, err)
	second, err := HashPassword("root")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("root", first))
	assert.True(t, CheckPassword("root", second))
}
