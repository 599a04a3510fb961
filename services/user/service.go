package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/upb/blog-api/auth"
	"github.com/upb/blog-api/models"
	"github.com/upb/blog-api/repositories"
	"github.com/upb/blog-api/services"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs tokens for a principal using the configured lifetime
type TokenIssuer interface {
	IssueDefault(p *auth.Principal) (*auth.Token, error)
}

// UserService handles registration, login and account administration
type UserService struct {
	repo     repositories.UserRepository
	issuer   TokenIssuer
	logger   *zap.Logger
	hashCost int

	// compared against when the username is unknown so both paths cost one bcrypt run
	dummyHash []byte
}

// NewUserService creates a new UserService instance
func NewUserService(repo repositories.UserRepository, issuer TokenIssuer, logger *zap.Logger) (*UserService, error) {
	return NewUserServiceWithCost(repo, issuer, logger, bcrypt.DefaultCost)
}

// NewUserServiceWithCost is NewUserService with an explicit bcrypt cost.
// The cost must lie within bcrypt.MinCost and bcrypt.MaxCost.
func NewUserServiceWithCost(repo repositories.UserRepository, issuer TokenIssuer, logger *zap.Logger, cost int) (*UserService, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("generate dummy password hash: %w", err)
	}
	return &UserService{
		repo:      repo,
		issuer:    issuer,
		logger:    logger,
		hashCost:  cost,
		dummyHash: dummy,
	}, nil
}

// ClaimsForRole returns the claims granted at login. Admins also hold the User claim.
func ClaimsForRole(role models.UserRole) map[string]string {
	switch role {
	case models.RoleAdmin:
		return map[string]string{auth.ClaimAdmin: "true", auth.ClaimUser: "true"}
	case models.RoleUser:
		return map[string]string{auth.ClaimUser: "true"}
	default:
		return map[string]string{}
	}
}

// PrincipalFor builds the principal a user logs in as
func PrincipalFor(u *models.User) *auth.Principal {
	claims := ClaimsForRole(u.Role)
	claims[auth.ClaimName] = u.Username
	return auth.NewPrincipal(u.ID.String(), claims)
}

// Register creates a new account with the User role
func (s *UserService) Register(ctx context.Context, in models.RegisterInput) (*models.UserDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, services.NewDomainError(services.ErrorTypeValidation, "password is too long", err)
		}
		return nil, services.WrapInternal("failed to hash password", err)
	}

	u := models.NewUser(strings.TrimSpace(in.Username), strings.ToLower(strings.TrimSpace(in.Email)), string(hash), models.RoleUser)
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, services.NewDomainError(services.ErrorTypeConflict, services.ErrDuplicateUser.Message, err)
		}
		return nil, services.WrapInternal("failed to create user", err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID.String()),
		zap.String("username", u.Username))

	dto := u.ToDTO()
	return &dto, nil
}

// Login checks credentials and issues a token for the user's principal.
// Unknown usernames and wrong passwords produce the same error.
func (s *UserService) Login(ctx context.Context, in models.LoginInput) (*auth.Token, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, services.WrapInternal("failed to load user", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
		s.logger.Info("login failed", zap.String("reason", "unknown_user"))
		return nil, services.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		s.logger.Info("login failed",
			zap.String("reason", "bad_password"),
			zap.String("user_id", u.ID.String()))
		return nil, services.ErrInvalidCredentials
	}

	token, err := s.issuer.IssueDefault(PrincipalFor(u))
	if err != nil {
		return nil, services.WrapInternal("failed to issue token", err)
	}

	s.logger.Info("user logged in",
		zap.String("user_id", u.ID.String()),
		zap.Time("expires_at", token.ExpiresAt))
	return token, nil
}

// List returns a page of users
func (s *UserService) List(ctx context.Context, page models.Page) ([]models.UserDTO, error) {
	users, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, services.WrapInternal("failed to list users", err)
	}

	out := make([]models.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToDTO())
	}
	return out, nil
}

// Get returns a single user
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.UserDTO, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err)
	}
	dto := u.ToDTO()
	return &dto, nil
}

// Update changes a user's username, email and role
func (s *UserService) Update(ctx context.Context, id uuid.UUID, in models.UserUpdateInput) (*models.UserDTO, error) {
	if !in.Role.Valid() {
		return nil, services.NewDomainError(services.ErrorTypeValidation, "unknown role", nil).
			WithDetail("role", string(in.Role))
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err)
	}

	u.Username = strings.TrimSpace(in.Username)
	u.Email = strings.ToLower(strings.TrimSpace(in.Email))
	u.Role = in.Role
	u.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fromRepository(err)
	}

	dto := u.ToDTO()
	return &dto, nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fromRepository(err)
	}
	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}

func fromRepository(err error) error {
	if errors.Is(err, repositories.ErrDuplicate) {
		return services.NewDomainError(services.ErrorTypeConflict, services.ErrDuplicateUser.Message, err)
	}
	return services.FromRepository(err, services.ErrUserNotFound.Message)
}
