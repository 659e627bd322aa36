package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meditech-backend/internal/config"
)

func loadTestConfig(t *testing.T) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret-key-for-token-signing-only")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	_, err := config.Load()
	require.NoError(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	loadTestConfig(t)

	token, err := GenerateToken("admin@siliconmeditech.in")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@siliconmeditech.in", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	loadTestConfig(t)

	_, err := ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	loadTestConfig(t)
	token, err := GenerateToken("admin@siliconmeditech.in")
	require.NoError(t, err)

	t.Setenv("SECRET_KEY", "a-completely-different-signing-key")
	_, err = config.Load()
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
