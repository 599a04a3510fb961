package category

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/upb/blog-api/models"
	"github.com/upb/blog-api/repositories"
	"github.com/upb/blog-api/services"
	"go.uber.org/zap"
)

// CategoryService manages blog categories
type CategoryService struct {
	repo   repositories.CategoryRepository
	logger *zap.Logger
}

// NewCategoryService creates a new CategoryService instance
func NewCategoryService(repo repositories.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		repo:   repo,
		logger: logger,
	}
}

// List returns a page of categories
func (s *CategoryService) List(ctx context.Context, page models.Page) ([]models.CategoryDTO, error) {
	categories, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, services.WrapInternal("failed to list categories", err)
	}

	out := make([]models.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.ToDTO())
	}
	return out, nil
}

// Get returns a single category
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.CategoryDTO, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err)
	}
	dto := c.ToDTO()
	return &dto, nil
}

// Create stores a new category
func (s *CategoryService) Create(ctx context.Context, in models.CategoryInput) (*models.CategoryDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, services.NewDomainError(services.ErrorTypeValidation, "name is required", nil).
			WithDetail("name", "name is required")
	}

	c := models.NewCategory(name, strings.TrimSpace(in.Description))
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fromRepository(err)
	}

	s.logger.Info("category created",
		zap.String("category_id", c.ID.String()),
		zap.String("name", c.Name))

	dto := c.ToDTO()
	return &dto, nil
}

// Update replaces the name and description of a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, in models.CategoryInput) (*models.CategoryDTO, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, services.NewDomainError(services.ErrorTypeValidation, "name is required", nil).
			WithDetail("name", "name is required")
	}

	c.Name = name
	c.Description = strings.TrimSpace(in.Description)
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fromRepository(err)
	}

	dto := c.ToDTO()
	return &dto, nil
}

// Delete removes a category that holds no articles
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrReferenced) {
			return services.NewDomainError(services.ErrorTypeConflict, services.ErrCategoryInUse.Message, err)
		}
		return fromRepository(err)
	}

	s.logger.Info("category deleted", zap.String("category_id", id.String()))
	return nil
}

func fromRepository(err error) error {
	return services.FromRepository(err, services.ErrCategoryNotFound.Message)
}
