package article

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/upb/blog-api/auth"
	"github.com/upb/blog-api/models"
	"github.com/upb/blog-api/repositories"
	"github.com/upb/blog-api/services"
	"go.uber.org/zap"
)

// ArticleService manages articles and their category links
type ArticleService struct {
	articles   repositories.ArticleRepository
	categories repositories.CategoryRepository
	txMgr      repositories.TransactionManager
	logger     *zap.Logger
}

// NewArticleService creates a new ArticleService instance
func NewArticleService(
	articles repositories.ArticleRepository,
	categories repositories.CategoryRepository,
	txMgr repositories.TransactionManager,
	logger *zap.Logger,
) *ArticleService {
	return &ArticleService{
		articles:   articles,
		categories: categories,
		txMgr:      txMgr,
		logger:     logger,
	}
}

// List returns a page of articles, newest first. A nil categoryID lists all categories.
func (s *ArticleService) List(ctx context.Context, categoryID *uuid.UUID, page models.Page) ([]models.ArticleDTO, error) {
	articles, err := s.articles.List(ctx, categoryID, page)
	if err != nil {
		return nil, services.WrapInternal("failed to list articles", err)
	}

	out := make([]models.ArticleDTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.ToDTO())
	}
	return out, nil
}

// Get returns a single article
func (s *ArticleService) Get(ctx context.Context, id uuid.UUID) (*models.ArticleDTO, error) {
	a, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err)
	}
	dto := a.ToDTO()
	return &dto, nil
}

// Create stores a new article authored by the principal.
// The category check and the insert share one transaction.
func (s *ArticleService) Create(ctx context.Context, author *auth.Principal, in models.ArticleInput) (*models.ArticleDTO, error) {
	if !author.IsAuthenticated() {
		return nil, services.NewDomainError(services.ErrorTypeUnauthorized, "authentication required", nil)
	}

	title, content, categoryID, err := normalize(in)
	if err != nil {
		return nil, err
	}

	a, err := services.WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) (*models.Article, error) {
		if err := s.requireCategory(ctx, categoryID); err != nil {
			return nil, err
		}

		a := models.NewArticle(title, content, categoryID, author.Subject, normalizeTags(in.Tags))
		if err := s.articles.Create(ctx, a); err != nil {
			return nil, fromRepository(err)
		}
		return a, nil
	})
	if err != nil {
		return nil, asDomain(err)
	}

	s.logger.Info("article created",
		zap.String("article_id", a.ID.String()),
		zap.String("category_id", a.CategoryID.String()),
		zap.String("author_id", a.AuthorID))

	dto := a.ToDTO()
	return &dto, nil
}

// Update replaces an article's content. Only its author or an Admin claim holder may do so.
func (s *ArticleService) Update(ctx context.Context, editor *auth.Principal, id uuid.UUID, in models.ArticleInput) (*models.ArticleDTO, error) {
	title, content, categoryID, err := normalize(in)
	if err != nil {
		return nil, err
	}

	a, err := services.WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) (*models.Article, error) {
		a, err := s.articles.GetByID(ctx, id)
		if err != nil {
			return nil, fromRepository(err)
		}
		if !CanEdit(editor, a) {
			return nil, services.ErrForbidden
		}

		if categoryID != a.CategoryID {
			if err := s.requireCategory(ctx, categoryID); err != nil {
				return nil, err
			}
		}

		a.Title = title
		a.Content = content
		a.CategoryID = categoryID
		a.Tags = normalizeTags(in.Tags)
		a.UpdatedAt = time.Now().UTC()

		if err := s.articles.Update(ctx, a); err != nil {
			return nil, fromRepository(err)
		}
		return a, nil
	})
	if err != nil {
		if services.IsForbiddenError(err) {
			s.logger.Warn("article edit denied",
				zap.String("article_id", id.String()),
				zap.String("subject", editor.Subject))
		}
		return nil, asDomain(err)
	}

	dto := a.ToDTO()
	return &dto, nil
}

// Delete removes an article
func (s *ArticleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.articles.Delete(ctx, id); err != nil {
		return fromRepository(err)
	}
	s.logger.Info("article deleted", zap.String("article_id", id.String()))
	return nil
}

// CanEdit reports whether p may modify a
func CanEdit(p *auth.Principal, a *models.Article) bool {
	if !p.IsAuthenticated() {
		return false
	}
	return p.HasClaim(auth.ClaimAdmin) || p.Subject == a.AuthorID
}

func (s *ArticleService) requireCategory(ctx context.Context, id uuid.UUID) error {
	ok, err := s.categories.Exists(ctx, id)
	if err != nil {
		return services.WrapInternal("failed to look up category", err)
	}
	if !ok {
		return services.NewDomainError(services.ErrorTypeValidation, "category does not exist", nil).
			WithDetail("category_id", id.String())
	}
	return nil
}

func normalize(in models.ArticleInput) (string, string, uuid.UUID, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", "", uuid.Nil, services.NewDomainError(services.ErrorTypeValidation, "title is required", nil).
			WithDetail("title", "title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return "", "", uuid.Nil, services.NewDomainError(services.ErrorTypeValidation, "content is required", nil).
			WithDetail("content", "content is required")
	}

	categoryID, err := uuid.Parse(strings.TrimSpace(in.CategoryID))
	if err != nil {
		return "", "", uuid.Nil, services.NewDomainError(services.ErrorTypeValidation, "invalid category id", err).
			WithDetail("category_id", in.CategoryID)
	}
	return title, in.Content, categoryID, nil
}

// normalizeTags trims, drops empties and removes duplicates while keeping order
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func fromRepository(err error) error {
	if errors.Is(err, repositories.ErrReferenceMissing) {
		return services.NewDomainError(services.ErrorTypeValidation, "category does not exist", err)
	}
	return services.FromRepository(err, services.ErrArticleNotFound.Message)
}

// asDomain keeps domain errors and treats transaction plumbing failures as internal
func asDomain(err error) error {
	if services.GetErrorType(err) != "" {
		return err
	}
	return services.WrapInternal("transaction failed", err)
}
