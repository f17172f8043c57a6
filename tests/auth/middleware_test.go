package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lynck-services/lead-api/internal/auth"
	"github.com/lynck-services/lead-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddleware(apiKey string) (*auth.Middleware, *auth.TokenManager) {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret-for-unit-tests"
	cfg.Auth.TokenTTLMinutes = 60
	cfg.Auth.APIKey = apiKey

	tokens := auth.NewTokenManager(&cfg.Auth, "lead-api-test")
	return auth.NewMiddleware(cfg, tokens, zap.NewNop()), tokens
}

// echoAdmin responds 200 and records the admin context it saw
func echoAdmin(captured **auth.AdminContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if adminCtx, ok := auth.FromContext(r.Context()); ok {
			*captured = adminCtx
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_ValidAPIKey(t *testing.T) {
	mw, _ := newTestMiddleware("secret-api-key")

	var captured *auth.AdminContext
	handler := mw.Authenticate(echoAdmin(&captured))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads", nil)
	req.Header.Set("x-api-key", "secret-api-key")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "system", captured.Email)
	assert.Equal(t, auth.AuthTypeAPIKey, captured.AuthType)
}

func TestAuthenticate_InvalidAPIKey(t *testing.T) {
	mw, _ := newTestMiddleware("secret-api-key")

	var captured *auth.AdminContext
	handler := mw.Authenticate(echoAdmin(&captured))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads", nil)
	req.Header.Set("x-api-key", "wrong-key")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured)
}

func TestAuthenticate_APIKeyNotConfigured(t *testing.T) {
	// With no key configured, presenting any key is rejected
	mw, _ := newTestMiddleware("")

	var captured *auth.AdminContext
	handler := mw.Authenticate(echoAdmin(&captured))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads", nil)
	req.Header.Set("x-api-key", "anything")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ValidBearerToken(t *testing.T) {
	mw, tokens := newTestMiddleware("secret-api-key")

	token, _, err := tokens.Issue("admin@lynck-services.de")
	require.NoError(t, err)

	var captured *auth.AdminContext
	handler := mw.Authenticate(echoAdmin(&captured))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "admin@lynck-services.de", captured.Email)
	assert.Equal(t, auth.AuthTypeJWT, captured.AuthType)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	mw, _ := newTestMiddleware("secret-api-key")

	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	mw, tokens := newTestMiddleware("secret-api-key")

	token, _, err := tokens.Issue("admin@lynck-services.de")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing scheme", header: token},
		{name: "wrong scheme", header: "Basic " + token},
		{name: "empty token", header: "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not be reached")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
