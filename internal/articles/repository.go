package articles

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
)

// Repository runs article queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListPublished returns published articles, newest publish date first.
// A non-empty category narrows the result.
func (r *Repository) ListPublished(ctx context.Context, category string) ([]models.Article, error) {
	q := r.db.WithContext(ctx).Where("published = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []models.Article
	if err := q.Order("published_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SearchPublished matches the keyword against title, summary and content
// of published articles, case-insensitively.
func (r *Repository) SearchPublished(ctx context.Context, keyword string) ([]models.Article, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	var out []models.Article
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Where("LOWER(title) LIKE ? OR LOWER(summary) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern, pattern).
		Order("published_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every article including drafts, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Article, error) {
	var out []models.Article
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID loads one article.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).First(&article, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// Create persists a new article.
func (r *Repository) Create(ctx context.Context, article *models.Article) (*models.Article, error) {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return nil, err
	}
	return article, nil
}

// Update saves the full article row.
func (r *Repository) Update(ctx context.Context, article *models.Article) (*models.Article, error) {
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes the article row. Missing rows surface as
// gorm.ErrRecordNotFound.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Article{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
