package middleware

import (
	"net/http"
	"strings"

	"github.com/upb/blog-api/auth"
	"github.com/upb/blog-api/utils"
	"go.uber.org/zap"
)

// TokenValidator defines the interface for validating bearer tokens
type TokenValidator interface {
	// Validate checks a compact token and returns the principal it carries
	Validate(token string) (*auth.Principal, error)
}

// AuthMiddleware is the authentication stage of the request pipeline
type AuthMiddleware struct {
	validator TokenValidator
	logger    *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator TokenValidator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logger,
	}
}

// RequireAuth is a middleware that requires a valid bearer token.
// Every validation failure is answered with the same 401 body.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		token := extractBearerToken(r)
		if token == "" {
			m.logger.Debug("missing bearer token",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, "Missing or invalid authorization")
			return
		}

		principal, ok := m.validate(w, requestID, token)
		if !ok {
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, principal)))
	})
}

func (m *AuthMiddleware) validate(w http.ResponseWriter, requestID, token string) (*auth.Principal, bool) {
	principal, err := m.validator.Validate(token)
	if err != nil {
		m.logger.Warn("token validation failed",
			zap.String("request_id", requestID),
			zap.String("reason", auth.Reason(err)),
			zap.Error(err))
		_ = utils.WriteUnauthorized(w, "Invalid or expired token")
		return nil, false
	}

	m.logger.Debug("authentication successful",
		zap.String("request_id", requestID),
		zap.String("sub", principal.Subject))
	return principal, true
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
