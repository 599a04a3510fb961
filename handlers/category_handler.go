package handlers

import (
	"net/http"

	"github.com/upb/blog-api/models"
	"github.com/upb/blog-api/utils"
	"go.uber.org/zap"
)

// CategoryHandler serves /api/v1/categories
type CategoryHandler struct {
	svc    CategoryService
	logger *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(svc CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, logger: logger}
}

// HandleList handles GET /categories
func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, ok := queryPage(w, r, h.logger)
	if !ok {
		return
	}

	categories, err := h.svc.List(r.Context(), page)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeList(w, categories, page, h.logger)
}

// HandleGet handles GET /categories/{id}
func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	category, err := h.svc.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeOK(w, category, h.logger)
}

// HandleCreate handles POST /categories
func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if !decodeAndValidate(w, r, &in, h.logger) {
		return
	}

	category, err := h.svc.Create(r.Context(), in)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeCreated(w, category, h.logger)
}

// HandleUpdate handles PUT /categories/{id}
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}
	var in models.CategoryInput
	if !decodeAndValidate(w, r, &in, h.logger) {
		return
	}

	category, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeOK(w, category, h.logger)
}

// HandleDelete handles DELETE /categories/{id}
func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
