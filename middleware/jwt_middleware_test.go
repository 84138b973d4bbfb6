package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, _, err := GenerateJWT("64f1b2c3d4e5f60718293a4b", "user@example.com", "user")
	assert.Error(t, err)
}

func TestGenerateJWTReturnsDistinctTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	access, refresh, err := GenerateJWT("64f1b2c3d4e5f60718293a4b", "user@example.com", "user")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)
}

func TestBlacklistTokenInMemoryFallback(t *testing.T) {
	token := "test-token-" + time.Now().Format(time.RFC3339Nano)
	assert.False(t, IsTokenBlacklisted(token))

	BlacklistToken(token, time.Now().Add(time.Hour))
	assert.True(t, IsTokenBlacklisted(token))
}
