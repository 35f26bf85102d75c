package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	now := time.Now().UTC()

	token, expiresIn, err := GenerateToken("+15551234567", testSecret, now)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, int(TokenExpirationTime.Seconds()), expiresIn)

	phone, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "+15551234567", phone)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateToken("+15551234567", testSecret, time.Now().UTC())
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	issued := time.Now().UTC().Add(-TokenExpirationTime - time.Hour)

	token, _, err := GenerateToken("+15551234567", testSecret, issued)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	assert.Error(t, err)
}
