package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateJWT(t *testing.T) {
	signed, err := GenerateJWT(7, "organizer", testSecret, 15)
	require.NoError(t, err)

	claims, err := ValidateJWT(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "organizer", claims.Role)

	_, err = ValidateJWT(signed, "wrong-secret")
	assert.Error(t, err)

	_, err = ValidateJWT("", testSecret)
	assert.Error(t, err)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	// Same user, same instant: the stored token column is unique, so the
	// signed strings must still differ.
	first, err := GenerateRefreshToken(7, testSecret, 7)
	require.NoError(t, err)
	second, err := GenerateRefreshToken(7, testSecret, 7)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
