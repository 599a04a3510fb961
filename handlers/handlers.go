package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/upb/blog-api/auth"
	"github.com/upb/blog-api/models"
	"github.com/upb/blog-api/utils"
	"go.uber.org/zap"
)

// CategoryService is the category behaviour the HTTP layer depends on
type CategoryService interface {
	List(ctx context.Context, page models.Page) ([]models.CategoryDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*models.CategoryDTO, error)
	Create(ctx context.Context, in models.CategoryInput) (*models.CategoryDTO, error)
	Update(ctx context.Context, id uuid.UUID, in models.CategoryInput) (*models.CategoryDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ArticleService is the article behaviour the HTTP layer depends on
type ArticleService interface {
	List(ctx context.Context, categoryID *uuid.UUID, page models.Page) ([]models.ArticleDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ArticleDTO, error)
	Create(ctx context.Context, author *auth.Principal, in models.ArticleInput) (*models.ArticleDTO, error)
	Update(ctx context.Context, editor *auth.Principal, id uuid.UUID, in models.ArticleInput) (*models.ArticleDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserService is the account behaviour the HTTP layer depends on
type UserService interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.UserDTO, error)
	Login(ctx context.Context, in models.LoginInput) (*auth.Token, error)
	List(ctx context.Context, page models.Page) ([]models.UserDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*models.UserDTO, error)
	Update(ctx context.Context, id uuid.UUID, in models.UserUpdateInput) (*models.UserDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// decodeAndValidate reads the JSON body into dst and runs struct validation.
// On failure it writes a 400 and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}, logger *zap.Logger) bool {
	if err := utils.DecodeJSON(r, dst); err != nil {
		HandleValidationError(w, err, logger)
		return false
	}
	if err := utils.ValidateStruct(dst); err != nil {
		HandleValidationError(w, err, logger)
		return false
	}
	return true
}

// pathID parses the {id} route parameter, writing a 400 when it is not a UUID
func pathID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	id, err := utils.URLParamUUID(r, "id")
	if err != nil {
		HandleValidationError(w, err, logger)
		return uuid.Nil, false
	}
	return id, true
}

// queryPage parses limit/offset, writing a 400 on malformed values
func queryPage(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (models.Page, bool) {
	page, err := utils.QueryPage(r)
	if err != nil {
		HandleValidationError(w, err, logger)
		return models.Page{}, false
	}
	return page, true
}

func writeList[T any](w http.ResponseWriter, items []T, page models.Page, logger *zap.Logger) {
	if items == nil {
		items = []T{}
	}
	resp := models.ListResponse[T]{Items: items, Limit: page.Limit, Offset: page.Offset}
	if err := utils.WriteOK(w, resp); err != nil {
		logger.Error("failed to write list response", zap.Error(err))
	}
}

func writeOK(w http.ResponseWriter, data interface{}, logger *zap.Logger) {
	if err := utils.WriteOK(w, data); err != nil {
		logger.Error("failed to write response", zap.Error(err))
	}
}

func writeCreated(w http.ResponseWriter, data interface{}, logger *zap.Logger) {
	if err := utils.WriteCreated(w, data); err != nil {
		logger.Error("failed to write response", zap.Error(err))
	}
}
