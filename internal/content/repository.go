package content

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
)

// Repository wires together FAQ and announcement persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}


// ListFAQs returns all FAQs, newest first.
func (r *Repository) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	var out []models.FAQ
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindFAQByID loads one FAQ.
func (r *Repository) FindFAQByID(ctx context.Context, id uuid.UUID) (*models.FAQ, error) {
	var faq models.FAQ
	if err := r.db.WithContext(ctx).First(&faq, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &faq, nil
}

// CreateFAQ persists a new FAQ.
func (r *Repository) CreateFAQ(ctx context.Context, faq *models.FAQ) (*models.FAQ, error) {
	if err := r.db.WithContext(ctx).Create(faq).Error; err != nil {
		return nil, err
	}
	return faq, nil
}

// UpdateFAQ saves the full FAQ row.
func (r *Repository) UpdateFAQ(ctx context.Context, faq *models.FAQ) (*models.FAQ, error) {
	if err := r.db.WithContext(ctx).Save(faq).Error; err != nil {
		return nil, err
	}
	return faq, nil
}

// DeleteFAQ removes the FAQ row. Missing rows surface as
// gorm.ErrRecordNotFound.
func (r *Repository) DeleteFAQ(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FAQ{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListAnnouncements returns all announcements, newest first by their
// display date.
func (r *Repository) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	var out []models.Announcement
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindAnnouncementByID loads one announcement.
func (r *Repository) FindAnnouncementByID(ctx context.Context, id uuid.UUID) (*models.Announcement, error) {
	var msg models.Announcement
	if err := r.db.WithContext(ctx).First(&msg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// CreateAnnouncement persists a new announcement.
func (r *Repository) CreateAnnouncement(ctx context.Context, msg *models.Announcement) (*models.Announcement, error) {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// UpdateAnnouncement saves the full announcement row.
func (r *Repository) UpdateAnnouncement(ctx context.Context, msg *models.Announcement) (*models.Announcement, error) {
	if err := r.db.WithContext(ctx).Save(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// DeleteAnnouncement removes the announcement row. Missing rows surface as
// gorm.ErrRecordNotFound.
func (r *Repository) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Announcement{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
