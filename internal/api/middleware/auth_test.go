package middleware

import (
	"credit-engine/internal/config"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func signedToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "testsecret"
	cfg := config.AuthConfig{Enabled: true, JWTSecret: secret}

	var seenUser string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser, _ = UsernameFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	serve := func(cfg config.AuthConfig, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/view-loans/1", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		AuthMiddleware(cfg, discardLogger)(next).ServeHTTP(rec, req)
		return rec
	}

	t.Run("passes through when disabled", func(t *testing.T) {
		rec := serve(config.AuthConfig{Enabled: false}, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		rec := serve(cfg, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":{"message":"Unauthorized"}}`, rec.Body.String())
	})

	t.Run("rejects a non-bearer scheme", func(t *testing.T) {
		rec := serve(cfg, "Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		rec := serve(cfg, "Bearer invalidtoken")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		token := signedToken(t, jwt.SigningMethodHS256, "other", jwt.MapClaims{"username": "ops"})
		rec := serve(cfg, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		token := signedToken(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
			"username": "ops",
			"exp":      time.Now().Add(-time.Hour).Unix(),
		})
		rec := serve(cfg, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects another HMAC algorithm", func(t *testing.T) {
		token := signedToken(t, jwt.SigningMethodHS512, secret, jwt.MapClaims{"username": "ops"})
		rec := serve(cfg, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("accepts a valid token and exposes the username", func(t *testing.T) {
		seenUser = ""
		token := signedToken(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
			"username": "ops",
			"exp":      time.Now().Add(time.Hour).Unix(),
		})
		rec := serve(cfg, "bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ops", seenUser)
	})
}
