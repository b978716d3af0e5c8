package middleware

import (
	"context"
	"credit-engine/internal/config"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const usernameKey contextKey = "username"

var (
	errMissingAuthHeader = errors.New("missing Authorization header")
	errMalformedHeader   = errors.New("invalid Authorization header format")
)

// UsernameFromContext returns the username claim of an authenticated request.
func UsernameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(usernameKey).(string)
	return name, ok
}

// AuthMiddleware requires an HS256 bearer token signed with the configured
// secret. It is a pass-through when auth is disabled.
func AuthMiddleware(cfg config.AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	logger = logger.With("component", "AuthMiddleware")
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := parseBearer(r, parser, cfg.JWTSecret)
			if err != nil {
				logger.WarnContext(r.Context(), "Rejected unauthenticated request",
					slog.String("path", r.URL.Path), slog.Any("error", err))
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := r.Context()
			if username, ok := claims["username"].(string); ok {
				ctx = context.WithValue(ctx, usernameKey, username)
			}
			logger.DebugContext(ctx, "Authenticated request", slog.String("path", r.URL.Path))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseBearer(r *http.Request, parser *jwt.Parser, secret string) (jwt.MapClaims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errMissingAuthHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, errMalformedHeader
	}

	claims := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(parts[1], claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
