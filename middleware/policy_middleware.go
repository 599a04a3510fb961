package middleware

import (
	"net/http"

	"github.com/upb/blog-api/auth"
	"github.com/upb/blog-api/utils"
	"go.uber.org/zap"
)

// PolicyEvaluator defines the interface for named policy evaluation
type PolicyEvaluator interface {
	Evaluate(name string, p *auth.Principal) (bool, error)
}

// PolicyMiddleware is the authorization stage of the request pipeline.
// It must run after AuthMiddleware has attached a principal.
type PolicyMiddleware struct {
	evaluator PolicyEvaluator
	logger    *zap.Logger
}

// NewPolicyMiddleware creates a new PolicyMiddleware
func NewPolicyMiddleware(evaluator PolicyEvaluator, logger *zap.Logger) *PolicyMiddleware {
	return &PolicyMiddleware{
		evaluator: evaluator,
		logger:    logger,
	}
}

// RequirePolicy rejects requests whose principal does not satisfy the named policy
func (m *PolicyMiddleware) RequirePolicy(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestIDFromContext(ctx)
			principal := GetPrincipalFromContext(ctx)

			allowed, err := m.evaluator.Evaluate(name, principal)
			if err != nil {
				// routes are checked against the registry at startup
				m.logger.Error("policy evaluation failed",
					zap.String("request_id", requestID),
					zap.String("policy", name),
					zap.Error(err))
				_ = utils.WriteInternalServerError(w, "")
				return
			}

			if !allowed {
				if !principal.IsAuthenticated() {
					_ = utils.WriteUnauthorized(w, "Authentication required")
					return
				}
				m.logger.Warn("policy denied",
					zap.String("request_id", requestID),
					zap.String("policy", name),
					zap.String("sub", principal.Subject),
					zap.Strings("claims", principal.ClaimKeys()))
				_ = utils.WriteForbidden(w, "Insufficient permissions")
				return
			}

			m.logger.Debug("policy check passed",
				zap.String("request_id", requestID),
				zap.String("policy", name))

			next.ServeHTTP(w, r)
		})
	}
}
