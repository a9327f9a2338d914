package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
)

// Repository persists book reviews.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}


// Create persists a new review.
func (r *Repository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// FindByID loads one review, deleted or not.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByBook returns a book's visible reviews, newest first. Soft-deleted
// reviews are hidden unless includeDeleted is set.
func (r *Repository) ListByBook(ctx context.Context, bookID int, includeDeleted bool) ([]models.Review, error) {
	query := r.db.WithContext(ctx).Where("book_id = ?", bookID)
	if !includeDeleted {
		query = query.Where("deleted = ?", false)
	}

	var out []models.Review
	if err := query.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SetDeleted flips the soft-delete flag. It reports whether a row matched.
func (r *Repository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Update("deleted", deleted)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
