package auth_test

import (
	"testing"
	"time"

	"github.com/lynck-services/lead-api/internal/auth"
	"github.com/lynck-services/lead-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager(ttlMinutes int) *auth.TokenManager {
	cfg := &config.AuthConfig{
		JWTSecret:       "test-secret-for-unit-tests",
		TokenTTLMinutes: ttlMinutes,
	}
	return auth.NewTokenManager(cfg, "lead-api-test")
}

func TestTokenManager_IssueAndValidate(t *testing.T) {
	tm := newTestTokenManager(60)

	token, expiresAt, err := tm.Issue("admin@lynck-services.de")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().UTC().Add(60*time.Minute), expiresAt, 5*time.Second)

	adminCtx, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@lynck-services.de", adminCtx.Email)
	assert.Equal(t, auth.AuthTypeJWT, adminCtx.AuthType)
}

func TestTokenManager_Validate_WrongSecret(t *testing.T) {
	tm := newTestTokenManager(60)
	other := auth.NewTokenManager(&config.AuthConfig{
		JWTSecret:       "a-different-secret",
		TokenTTLMinutes: 60,
	}, "lead-api-test")

	token, _, err := tm.Issue("admin@lynck-services.de")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_Validate_Garbage(t *testing.T) {
	tm := newTestTokenManager(60)

	_, err := tm.Validate("not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_Validate_Expired(t *testing.T) {
	// TTL of -1 minute produces an already expired token
	tm := newTestTokenManager(-1)

	token, _, err := tm.Issue("admin@lynck-services.de")
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestTokenManager_Issue_MissingSecret(t *testing.T) {
	tm := auth.NewTokenManager(&config.AuthConfig{
		TokenTTLMinutes: 60,
	}, "lead-api-test")

	_, _, err := tm.Issue("admin@lynck-services.de")
	assert.Error(t, err)
}
