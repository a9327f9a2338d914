package contact

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
	"github.com/bookhaven/bookhaven-backend/pkg/pagination"
)

// ListFilter narrows the admin contact queue.
type ListFilter struct {
	Status enums.ContactStatus
	Page   pagination.Params
}

// Repository persists customer contact messages.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create persists a new contact message.
func (r *Repository) Create(ctx context.Context, msg *models.Contact) (*models.Contact, error) {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// FindByID loads one contact message.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	var msg models.Contact
	if err := r.db.WithContext(ctx).First(&msg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// List returns a page of contact messages, newest first, optionally
// narrowed to one status.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Contact, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Contact{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Contact
	if err := query.
		Order("created_at DESC").
		Limit(pagination.NormalizeLimit(filter.Page.Limit)).
		Offset(filter.Page.Offset()).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update saves the full contact row.
func (r *Repository) Update(ctx context.Context, msg *models.Contact) (*models.Contact, error) {
	if err := r.db.WithContext(ctx).Save(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// Delete removes the contact row. Missing rows surface as
// gorm.ErrRecordNotFound.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Contact{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
