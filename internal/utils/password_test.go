package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	BcryptCost = bcrypt.MinCost
	defer func() { BcryptCost = bcrypt.DefaultCost }()

	hash, err := HashPassword("Secr3t!")
	require.NoError(t, err)
	assert.NotEqual(t, "Secr3t!", hash)
	assert.NotContains(t, hash, "Secr3t!")

	// Salted: hashing twice gives different credentials.
	again, err := HashPassword("Secr3t!")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)

	assert.True(t, CheckPassword("Secr3t!", hash))
	assert.True(t, CheckPassword("Secr3t!", again))
	assert.False(t, CheckPassword("secr3t!", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestCheckPasswordRejectsPlaintextCredential(t *testing.T) {
	assert.False(t, CheckPassword("Secr3t!", "Secr3t!"))
}
