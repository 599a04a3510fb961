package category

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/blog-api/models"
	"github.com/upb/blog-api/repositories"
	"github.com/upb/blog-api/services"
	"go.uber.org/zap"
)

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, page models.Page) ([]*models.Category, error) {
	args := m.Called(ctx, page)
	if cs := args.Get(0); cs != nil {
		return cs.([]*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *models.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCategoryRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newService() (*CategoryService, *MockCategoryRepository) {
	repo := new(MockCategoryRepository)
	return NewCategoryService(repo, zap.NewNop()), repo
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("trims and stores", func(t *testing.T) {
		svc, repo := newService()
		repo.On("Create", ctx, mock.MatchedBy(func(c *models.Category) bool {
			return c.Name == "Go" && c.Description == "desc" && c.ID != uuid.Nil
		})).Return(nil)

		dto, err := svc.Create(ctx, models.CategoryInput{Name: "  Go ", Description: " desc "})
		require.NoError(t, err)
		assert.Equal(t, "Go", dto.Name)
		repo.AssertExpectations(t)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		svc, repo := newService()

		_, err := svc.Create(ctx, models.CategoryInput{Name: "   "})
		assert.True(t, services.IsValidationError(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate is a conflict", func(t *testing.T) {
		svc, repo := newService()
		repo.On("Create", ctx, mock.Anything).Return(fmt.Errorf("insert: %w", repositories.ErrDuplicate))

		_, err := svc.Create(ctx, models.CategoryInput{Name: "Go"})
		assert.True(t, services.IsConflictError(err))
	})
}

func TestCategoryService_Get(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc, repo := newService()
		c := models.NewCategory("Go", "")
		c.ID = id
		repo.On("GetByID", ctx, id).Return(c, nil)

		dto, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, dto.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo := newService()
		repo.On("GetByID", ctx, id).Return(nil, repositories.ErrNotFound)

		_, err := svc.Get(ctx, id)
		assert.True(t, services.IsNotFoundError(err))
		assert.ErrorIs(t, err, services.ErrCategoryNotFound)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		svc, repo := newService()
		repo.On("GetByID", ctx, id).Return(nil, errors.New("connection reset"))

		_, err := svc.Get(ctx, id)
		assert.True(t, services.IsInternalError(err))
	})
}

func TestCategoryService_List(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService()
	page := models.NewPage(0, 0)
	repo.On("List", ctx, page).Return([]*models.Category{models.NewCategory("A", ""), models.NewCategory("B", "")}, nil)

	got, err := svc.List(ctx, page)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[1].Name)
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService()
	c := models.NewCategory("Old", "old")
	before := c.UpdatedAt

	repo.On("GetByID", ctx, c.ID).Return(c, nil)
	repo.On("Update", ctx, c).Return(nil)

	dto, err := svc.Update(ctx, c.ID, models.CategoryInput{Name: "New", Description: "new"})
	require.NoError(t, err)
	assert.Equal(t, "New", dto.Name)
	assert.Equal(t, "new", dto.Description)
	assert.False(t, dto.UpdatedAt.Before(before))
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("category with articles", func(t *testing.T) {
		svc, repo := newService()
		id := uuid.New()
		repo.On("Delete", ctx, id).Return(fmt.Errorf("delete: %w", repositories.ErrReferenced))

		err := svc.Delete(ctx, id)
		assert.True(t, services.IsConflictError(err))
	})

	t.Run("missing category", func(t *testing.T) {
		svc, repo := newService()
		id := uuid.New()
		repo.On("Delete", ctx, id).Return(repositories.ErrNotFound)

		assert.True(t, services.IsNotFoundError(svc.Delete(ctx, id)))
	})
}
