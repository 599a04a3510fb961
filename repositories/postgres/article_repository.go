package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/upb/blog-api/models"
	"github.com/upb/blog-api/repositories"
	"go.uber.org/zap"
)

const articleColumns = `id, title, content, category_id, author_id, tags, created_at, updated_at`

// ArticleRepository implements the repositories.ArticleRepository interface
type ArticleRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *DB, logger *zap.Logger) repositories.ArticleRepository {
	return &ArticleRepository{
		db:     db,
		logger: logger,
	}
}

func scanArticle(row rowScanner) (*models.Article, error) {
	article := &models.Article{}
	var tags pq.StringArray
	err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.CategoryID,
		&article.AuthorID,
		&tags,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	article.Tags = []string(tags)
	if article.Tags == nil {
		article.Tags = []string{}
	}
	return article, nil
}

// Create creates a new article
func (r *ArticleRepository) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		article.ID,
		article.Title,
		article.Content,
		article.CategoryID,
		article.AuthorID,
		pq.Array(article.Tags),
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", translateError(err))
	}

	r.logger.Debug("article created",
		zap.String("id", article.ID.String()),
		zap.String("category_id", article.CategoryID.String()))
	return nil
}

// GetByID retrieves an article by ID
func (r *ArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	article, err := scanArticle(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get article %s: %w", id, translateError(err))
	}
	return article, nil
}

// List retrieves a page of articles, newest first
func (r *ArticleRepository) List(ctx context.Context, categoryID *uuid.UUID, page models.Page) ([]*models.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE ($1::uuid IS NULL OR category_id = $1)
		ORDER BY created_at DESC, id ASC
		LIMIT $2 OFFSET $3
	`

	var filter interface{}
	if categoryID != nil {
		filter = *categoryID
	}

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	articles := make([]*models.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}

// Update updates an article. The author is fixed at creation.
func (r *ArticleRepository) Update(ctx context.Context, article *models.Article) error {
	query := `
		UPDATE articles
		SET title = $2,
		    content = $3,
		    category_id = $4,
		    tags = $5,
		    updated_at = $6
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		article.ID,
		article.Title,
		article.Content,
		article.CategoryID,
		pq.Array(article.Tags),
		article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", translateError(err))
	}
	if err := expectOneRow(result); err != nil {
		return fmt.Errorf("failed to update article %s: %w", article.ID, err)
	}

	r.logger.Debug("article updated", zap.String("id", article.ID.String()))
	return nil
}

// Delete deletes an article
func (r *ArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM articles WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if err := expectOneRow(result); err != nil {
		return fmt.Errorf("failed to delete article %s: %w", id, err)
	}

	r.logger.Debug("article deleted", zap.String("id", id.String()))
	return nil
}
