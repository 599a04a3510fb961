package handlers

import (
	"net/http"
	"time"

	"github.com/upb/blog-api/middleware"
	"github.com/upb/blog-api/models"
	"github.com/upb/blog-api/utils"
	"go.uber.org/zap"
)

// TokenResponse is the body returned by a successful login
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CurrentUserResponse is the response body for GET /api/v1/users/me
type CurrentUserResponse struct {
	Sub    string            `json:"sub"`
	Claims map[string]string `json:"claims"`
}

// AuthHandler serves registration, login and the current principal
type AuthHandler struct {
	users  UserService
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger}
}

// HandleRegister handles POST /auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterInput
	if !decodeAndValidate(w, r, &in, h.logger) {
		return
	}

	user, err := h.users.Register(r.Context(), in)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeCreated(w, user, h.logger)
}

// HandleLogin handles POST /auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in models.LoginInput
	if !decodeAndValidate(w, r, &in, h.logger) {
		return
	}

	token, err := h.users.Login(r.Context(), in)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeOK(w, TokenResponse{Token: token.Value, ExpiresAt: token.ExpiresAt}, h.logger)
}

// HandleMe handles GET /users/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipalFromContext(r.Context())
	if !principal.IsAuthenticated() {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	claims := make(map[string]string, len(principal.Claims))
	for k, v := range principal.Claims {
		claims[k] = v
	}
	writeOK(w, CurrentUserResponse{Sub: principal.Subject, Claims: claims}, h.logger)
}
