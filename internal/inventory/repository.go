package inventory

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
)

// Repository runs stock queries against the catalog table.
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

// SetStock writes the quantity and status, returning the updated book.
// Missing rows surface as gorm.ErrRecordNotFound.
func (r *Repository) SetStock(ctx context.Context, bookID, qty int, status enums.StockStatus) (*models.Book, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ?", bookID).
		Updates(map[string]any{"stock_qty": qty, "stock_status": status})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var book models.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", bookID).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// DecrementForItems walks each order line's quantity off the matching
// book row, clamping at zero and re-deriving the status bucket. Lines
// whose book no longer exists are skipped; the order snapshot stands on
// its own. Callers run this inside the order mirror transaction via
// WithTx.
func (r *Repository) DecrementForItems(ctx context.Context, items []models.OrderItem) error {
	for _, item := range items {
		var book models.Book
		err := r.db.WithContext(ctx).First(&book, "id = ?", item.BookID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		qty := book.StockQty - item.Quantity
		if qty < 0 {
			qty = 0
		}
		update := r.db.WithContext(ctx).
			Model(&models.Book{}).
			Where("id = ?", item.BookID).
			Updates(map[string]any{"stock_qty": qty, "stock_status": enums.StockStatusForQty(qty)})
		if update.Error != nil {
			return update.Error
		}
	}
	return nil
}

// ListAtOrBelow returns books whose quantity is at or under the threshold,
// lowest first.
func (r *Repository) ListAtOrBelow(ctx context.Context, threshold int) ([]models.Book, error) {
	var out []models.Book
	if err := r.db.WithContext(ctx).
		Where("stock_qty <= ?", threshold).
		Order("stock_qty ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
