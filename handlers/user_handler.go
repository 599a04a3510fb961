package handlers

import (
	"net/http"

	"github.com/upb/blog-api/models"
	"github.com/upb/blog-api/utils"
	"go.uber.org/zap"
)

// UserHandler serves the admin-only /api/v1/users endpoints
type UserHandler struct {
	svc    UserService
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(svc UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// HandleList handles GET /users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, ok := queryPage(w, r, h.logger)
	if !ok {
		return
	}

	users, err := h.svc.List(r.Context(), page)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeList(w, users, page, h.logger)
}

// HandleGet handles GET /users/{id}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	user, err := h.svc.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeOK(w, user, h.logger)
}

// HandleUpdate handles PUT /users/{id}
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}
	var in models.UserUpdateInput
	if !decodeAndValidate(w, r, &in, h.logger) {
		return
	}

	user, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeOK(w, user, h.logger)
}

// HandleDelete handles DELETE /users/{id}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	utils.WriteNoContent(w)
}
