package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/upb/blog-api/auth"
	"github.com/upb/blog-api/models"
)

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, page models.Page) ([]models.CategoryDTO, error) {
	args := m.Called(ctx, page)
	if v := args.Get(0); v != nil {
		return v.([]models.CategoryDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, id uuid.UUID) (*models.CategoryDTO, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.CategoryDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, in models.CategoryInput) (*models.CategoryDTO, error) {
	args := m.Called(ctx, in)
	if v := args.Get(0); v != nil {
		return v.(*models.CategoryDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id uuid.UUID, in models.CategoryInput) (*models.CategoryDTO, error) {
	args := m.Called(ctx, id, in)
	if v := args.Get(0); v != nil {
		return v.(*models.CategoryDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockArticleService struct {
	mock.Mock
}

func (m *MockArticleService) List(ctx context.Context, categoryID *uuid.UUID, page models.Page) ([]models.ArticleDTO, error) {
	args := m.Called(ctx, categoryID, page)
	if v := args.Get(0); v != nil {
		return v.([]models.ArticleDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockArticleService) Get(ctx context.Context, id uuid.UUID) (*models.ArticleDTO, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.ArticleDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockArticleService) Create(ctx context.Context, author *auth.Principal, in models.ArticleInput) (*models.ArticleDTO, error) {
	args := m.Called(ctx, author, in)
	if v := args.Get(0); v != nil {
		return v.(*models.ArticleDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockArticleService) Update(ctx context.Context, editor *auth.Principal, id uuid.UUID, in models.ArticleInput) (*models.ArticleDTO, error) {
	args := m.Called(ctx, editor, id, in)
	if v := args.Get(0); v != nil {
		return v.(*models.ArticleDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockArticleService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, in models.RegisterInput) (*models.UserDTO, error) {
	args := m.Called(ctx, in)
	if v := args.Get(0); v != nil {
		return v.(*models.UserDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, in models.LoginInput) (*auth.Token, error) {
	args := m.Called(ctx, in)
	if v := args.Get(0); v != nil {
		return v.(*auth.Token), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, page models.Page) ([]models.UserDTO, error) {
	args := m.Called(ctx, page)
	if v := args.Get(0); v != nil {
		return v.([]models.UserDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id uuid.UUID) (*models.UserDTO, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.UserDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, in models.UserUpdateInput) (*models.UserDTO, error) {
	args := m.Called(ctx, id, in)
	if v := args.Get(0); v != nil {
		return v.(*models.UserDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
