package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/upb/blog-api/middleware"
	"github.com/upb/blog-api/models"
	"github.com/upb/blog-api/utils"
	"go.uber.org/zap"
)

// ArticleHandler serves /api/v1/articles
type ArticleHandler struct {
	svc    ArticleService
	logger *zap.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(svc ArticleService, logger *zap.Logger) *ArticleHandler {
	return &ArticleHandler{svc: svc, logger: logger}
}

// HandleList handles GET /articles?category_id=&limit=&offset=
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, ok := queryPage(w, r, h.logger)
	if !ok {
		return
	}

	var categoryID *uuid.UUID
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			_ = utils.WriteBadRequest(w, "category_id must be a valid UUID", nil)
			return
		}
		categoryID = &id
	}

	articles, err := h.svc.List(r.Context(), categoryID, page)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeList(w, articles, page, h.logger)
}

// HandleGet handles GET /articles/{id}
func (h *ArticleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	article, err := h.svc.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeOK(w, article, h.logger)
}

// HandleCreate handles POST /articles. The author is the calling principal.
func (h *ArticleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in models.ArticleInput
	if !decodeAndValidate(w, r, &in, h.logger) {
		return
	}

	principal := middleware.GetPrincipalFromContext(r.Context())
	article, err := h.svc.Create(r.Context(), principal, in)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeCreated(w, article, h.logger)
}

// HandleUpdate handles PUT /articles/{id}
func (h *ArticleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}
	var in models.ArticleInput
	if !decodeAndValidate(w, r, &in, h.logger) {
		return
	}

	principal := middleware.GetPrincipalFromContext(r.Context())
	article, err := h.svc.Update(r.Context(), principal, id, in)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeOK(w, article, h.logger)
}

// HandleDelete handles DELETE /articles/{id}
func (h *ArticleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
