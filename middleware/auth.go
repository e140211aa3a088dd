// Package middleware provides chi middleware for the gateway: inbound
// authentication and request-scoped context helpers.
package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/upb/llm-dispatch/utils"
)

// Auth authenticates inbound requests. Two credential forms are accepted:
// the static master key, or an HS256-signed bearer token. When neither is
// configured the middleware is a no-op and the gateway is open.
type Auth struct {
	masterKey string
	jwtSecret []byte
	logger    *zap.Logger
}

// NewAuth creates the auth middleware.
func NewAuth(masterKey, jwtSecret string, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{
		masterKey: masterKey,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

// Enabled reports whether any inbound credential is configured.
func (a *Auth) Enabled() bool {
	return a.masterKey != "" || len(a.jwtSecret) > 0
}

// Require rejects requests without a valid bearer credential.
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		token := extractBearer(r)
		if token == "" {
			a.logger.Warn("missing authorization",
				zap.String("path", r.URL.Path))
			_ = utils.WriteUnauthorized(w, "Missing or invalid authorization")
			return
		}

		if a.masterKey != "" &&
			subtle.ConstantTimeCompare([]byte(token), []byte(a.masterKey)) == 1 {
			next.ServeHTTP(w, r)
			return
		}

		if len(a.jwtSecret) > 0 {
			if err := a.validateJWT(token); err == nil {
				next.ServeHTTP(w, r)
				return
			} else {
				a.logger.Warn("token validation failed",
					zap.String("path", r.URL.Path),
					zap.Error(err))
			}
		}

		_ = utils.WriteUnauthorized(w, "Invalid or expired credential")
	})
}

// validateJWT checks an HS256-signed token.
func (a *Auth) validateJWT(token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.jwtSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return jwt.ErrTokenUnverifiable
	}
	return nil
}

// extractBearer pulls the token from the Authorization header or the
// X-API-Key fallback header.
func extractBearer(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, found := strings.CutPrefix(auth, "Bearer "); found {
			return token
		}
		return ""
	}
	return r.Header.Get("X-API-Key")
}
