package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/upb/blog-api/models"
	"github.com/upb/blog-api/repositories"
	"go.uber.org/zap"
)

// CategoryRepository implements the repositories.CategoryRepository interface
type CategoryRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *DB, logger *zap.Logger) repositories.CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", translateError(err))
	}

	r.logger.Debug("category created", zap.String("id", category.ID.String()))
	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	category := &models.Category{}

	err := executor.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", id, translateError(err))
	}

	return category, nil
}

// List retrieves a page of categories ordered by name
func (r *CategoryRepository) List(ctx context.Context, page models.Page) ([]*models.Category, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM categories
		ORDER BY name ASC, id ASC
		LIMIT $1 OFFSET $2
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return categories, nil
}

// Update updates a category
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $2,
		    description = $3,
		    updated_at = $4
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", translateError(err))
	}
	if err := expectOneRow(result); err != nil {
		return fmt.Errorf("failed to update category %s: %w", category.ID, err)
	}

	r.logger.Debug("category updated", zap.String("id", category.ID.String()))
	return nil
}

// Delete deletes a category. Categories that still hold articles are kept.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("failed to delete category %s: %w", id, repositories.ErrReferenced)
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if err := expectOneRow(result); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}

	r.logger.Debug("category deleted", zap.String("id", id.String()))
	return nil
}

// Exists reports whether a category with the given ID is stored
func (r *CategoryRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`

	executor := GetExecutor(ctx, r.db)
	var exists bool
	if err := executor.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}
	return exists, nil
}
