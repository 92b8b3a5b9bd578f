package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPasswordCost("password", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)
	assert.True(t, CompareHashAndPassword(hash, "password"))
	assert.False(t, CompareHashAndPassword(hash, "Password"))
	assert.False(t, CompareHashAndPassword("not-a-hash", "password"))
}
