package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
	"github.com/bookhaven/bookhaven-backend/pkg/pagination"
)

// Repository mirrors placed orders into the relational store for the admin
// dashboard and reporting queries.
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

// Create persists the order mirror row.
func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindByOrderID loads one order by its public "ORD-" identifier.
func (r *Repository) FindByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListBySession returns a session's mirrored orders, newest first.
func (r *Repository) ListBySession(ctx context.Context, sessionID string) ([]models.Order, error) {
	var out []models.Order
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// List returns a page of all mirrored orders, newest first, with the total
// count.
func (r *Repository) List(ctx context.Context, page pagination.Params) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Order
	if err := query.
		Order("created_at DESC").
		Limit(pagination.NormalizeLimit(page.Limit)).
		Offset(page.Offset()).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// UpdateStatus overwrites the status of one order. It reports whether a row
// matched.
func (r *Repository) UpdateStatus(ctx context.Context, orderID string, status enums.OrderStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
