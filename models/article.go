package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is a blog post filed under a category
type Article struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	CategoryID uuid.UUID `json:"category_id" db:"category_id"`
	AuthorID   string    `json:"author_id" db:"author_id"` // subject of the principal that created it
	Tags       []string  `json:"tags" db:"tags"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Article model
func (Article) TableName() string {
	return "articles"
}

// NewArticle creates a new Article instance
func NewArticle(title, content string, categoryID uuid.UUID, authorID string, tags []string) *Article {
	now := time.Now().UTC()
	if tags == nil {
		tags = []string{}
	}
	return &Article{
		ID:         uuid.New(),
		Title:      title,
		Content:    content,
		CategoryID: categoryID,
		AuthorID:   authorID,
		Tags:       tags,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ArticleDTO is the wire representation of an Article
type ArticleDTO struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CategoryID uuid.UUID `json:"category_id"`
	AuthorID   string    `json:"author_id"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToDTO maps the model to its wire representation
func (a *Article) ToDTO() ArticleDTO {
	tags := make([]string, len(a.Tags))
	copy(tags, a.Tags)
	return ArticleDTO{
		ID:         a.ID,
		Title:      a.Title,
		Content:    a.Content,
		CategoryID: a.CategoryID,
		AuthorID:   a.AuthorID,
		Tags:       tags,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// ArticleFromDTO maps a wire representation back onto a model
func ArticleFromDTO(dto ArticleDTO) *Article {
	tags := make([]string, len(dto.Tags))
	copy(tags, dto.Tags)
	return &Article{
		ID:         dto.ID,
		Title:      dto.Title,
		Content:    dto.Content,
		CategoryID: dto.CategoryID,
		AuthorID:   dto.AuthorID,
		Tags:       tags,
		CreatedAt:  dto.CreatedAt,
		UpdatedAt:  dto.UpdatedAt,
	}
}

// ArticleInput is the request body for creating or replacing an article
type ArticleInput struct {
	Title      string   `json:"title" validate:"required,max=200"`
	Content    string   `json:"content" validate:"required"`
	CategoryID string   `json:"category_id" validate:"required,uuid"`
	Tags       []string `json:"tags" validate:"max=20,dive,required,max=50"`
}
