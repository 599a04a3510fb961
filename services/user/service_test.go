package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/blog-api/auth"
	"github.com/upb/blog-api/models"
	"github.com/upb/blog-api/repositories"
	"github.com/upb/blog-api/services"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, page models.Page) ([]*models.User, error) {
	args := m.Called(ctx, page)
	if us := args.Get(0); us != nil {
		return us.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

const testKey = "0123456789abcdef0123456789abcdef"

func newTestIssuer(t *testing.T) (*auth.Issuer, *auth.Validator) {
	t.Helper()
	settings, err := auth.NewSettings("blog-api", "blog-clients", testKey, time.Hour)
	require.NoError(t, err)
	issuer, err := auth.NewIssuer(settings)
	require.NoError(t, err)
	validator, err := auth.NewValidator(settings)
	require.NoError(t, err)
	return issuer, validator
}

func storedUser(t *testing.T, username, password string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return models.NewUser(username, username+"@example.com", string(hash), role)
}

func newTestService(t *testing.T, repo *MockUserRepository, issuer TokenIssuer) *UserService {
	t.Helper()
	svc, err := NewUserServiceWithCost(repo, issuer, zap.NewNop(), bcrypt.MinCost)
	require.NoError(t, err)
	return svc
}

func TestNewUserServiceWithCost(t *testing.T) {
	tests := []struct {
		name    string
		cost    int
		wantErr bool
	}{
		{"minimum cost", bcrypt.MinCost, false},
		{"below minimum", bcrypt.MinCost - 1, true},
		{"zero", 0, true},
		{"above maximum", bcrypt.MaxCost + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewUserServiceWithCost(new(MockUserRepository), nil, zap.NewNop(), tt.cost)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			cost, err := bcrypt.Cost(svc.dummyHash)
			require.NoError(t, err)
			assert.Equal(t, tt.cost, cost)
		})
	}
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	issuer, _ := newTestIssuer(t)

	t.Run("hashes password and assigns User role", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestService(t, repo, issuer)

		var saved *models.User
		repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*models.User)
		}).Return(nil)

		dto, err := svc.Register(ctx, models.RegisterInput{Username: "alice", Email: "Alice@Example.com", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, dto.Role)
		assert.Equal(t, "alice@example.com", dto.Email)

		require.NotNil(t, saved)
		assert.NotEqual(t, "s3cret-pass", saved.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("s3cret-pass")))
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestService(t, repo, issuer)
		repo.On("Create", ctx, mock.Anything).Return(repositories.ErrDuplicate)

		_, err := svc.Register(ctx, models.RegisterInput{Username: "alice", Email: "a@example.com", Password: "s3cret-pass"})
		assert.True(t, services.IsConflictError(err))
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	issuer, validator := newTestIssuer(t)

	t.Run("admin receives Admin and User claims", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestService(t, repo, issuer)
		u := storedUser(t, "root", "correct-horse", models.RoleAdmin)
		repo.On("GetByUsername", ctx, "root").Return(u, nil)

		token, err := svc.Login(ctx, models.LoginInput{Username: "root", Password: "correct-horse"})
		require.NoError(t, err)

		p, err := validator.Validate(token.Value)
		require.NoError(t, err)
		assert.Equal(t, u.ID.String(), p.Subject)
		assert.True(t, p.HasClaim(auth.ClaimAdmin))
		assert.True(t, p.HasClaim(auth.ClaimUser))
		assert.Equal(t, "root", p.Claims[auth.ClaimName])
	})

	t.Run("user receives only the User claim", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestService(t, repo, issuer)
		u := storedUser(t, "bob", "hunter22", models.RoleUser)
		repo.On("GetByUsername", ctx, "bob").Return(u, nil)

		token, err := svc.Login(ctx, models.LoginInput{Username: "bob", Password: "hunter22"})
		require.NoError(t, err)

		p, err := validator.Validate(token.Value)
		require.NoError(t, err)
		assert.False(t, p.HasClaim(auth.ClaimAdmin))
		assert.True(t, p.HasClaim(auth.ClaimUser))
	})

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestService(t, repo, issuer)
		repo.On("GetByUsername", ctx, "bob").Return(storedUser(t, "bob", "hunter22", models.RoleUser), nil)
		repo.On("GetByUsername", ctx, "ghost").Return(nil, repositories.ErrNotFound)

		_, wrongPassword := svc.Login(ctx, models.LoginInput{Username: "bob", Password: "nope"})
		_, unknownUser := svc.Login(ctx, models.LoginInput{Username: "ghost", Password: "nope"})

		assert.True(t, services.IsUnauthorizedError(wrongPassword))
		assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	})

	t.Run("store failure is internal", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestService(t, repo, issuer)
		repo.On("GetByUsername", ctx, "bob").Return(nil, errors.New("connection reset"))

		_, err := svc.Login(ctx, models.LoginInput{Username: "bob", Password: "x"})
		assert.True(t, services.IsInternalError(err))
	})
}

func TestClaimsForRole(t *testing.T) {
	assert.Len(t, ClaimsForRole(models.RoleAdmin), 2)
	assert.Len(t, ClaimsForRole(models.RoleUser), 1)
	assert.Empty(t, ClaimsForRole("guest"))
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	issuer, _ := newTestIssuer(t)

	t.Run("promotes user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestService(t, repo, issuer)
		u := storedUser(t, "bob", "hunter22", models.RoleUser)
		repo.On("GetByID", ctx, u.ID).Return(u, nil)
		repo.On("Update", ctx, u).Return(nil)

		dto, err := svc.Update(ctx, u.ID, models.UserUpdateInput{Username: "bob", Email: "bob@example.com", Role: models.RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, dto.Role)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestService(t, repo, issuer)

		_, err := svc.Update(ctx, uuid.New(), models.UserUpdateInput{Username: "bob", Email: "b@example.com", Role: "root"})
		assert.True(t, services.IsValidationError(err))
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("missing user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestService(t, repo, issuer)
		id := uuid.New()
		repo.On("GetByID", ctx, id).Return(nil, repositories.ErrNotFound)

		_, err := svc.Update(ctx, id, models.UserUpdateInput{Username: "bob", Email: "b@example.com", Role: models.RoleUser})
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})
}

func TestUserService_ListDelete(t *testing.T) {
	ctx := context.Background()
	issuer, _ := newTestIssuer(t)
	repo := new(MockUserRepository)
	svc := newTestService(t, repo, issuer)

	page := models.NewPage(0, 0)
	repo.On("List", ctx, page).Return([]*models.User{storedUser(t, "a", "pw", models.RoleUser)}, nil)
	got, err := svc.List(ctx, page)
	require.NoError(t, err)
	require.Len(t, got, 1)

	id := uuid.New()
	repo.On("Delete", ctx, id).Return(repositories.ErrNotFound)
	assert.True(t, services.IsNotFoundError(svc.Delete(ctx, id)))
}
