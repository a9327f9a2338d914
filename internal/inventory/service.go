package inventory

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
	pkgerrors "github.com/bookhaven/bookhaven-backend/pkg/errors"
)

// Service exposes the admin stock operations. Checkout does not reserve
// stock up front; quantities are decremented when an order lands.
type Service interface {
	SetStock(ctx context.Context, bookID, qty int) (*StockDTO, error)
	ListLowStock(ctx context.Context) ([]StockDTO, error)
}

// StockDTO represents a book's stock position.
type StockDTO struct {
	BookID      int    `json:"book_id"`
	Title       string `json:"title"`
	StockQty    int    `json:"stock_qty"`
	StockStatus string `json:"stock_status"`
}

type service struct {
	repo *Repository
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo}, nil
}

// SetStock overwrites a book's quantity and re-derives its status bucket.
func (s *service) SetStock(ctx context.Context, bookID, qty int) (*StockDTO, error) {
	if qty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantity cannot be negative")
	}

	book, err := s.repo.SetStock(ctx, bookID, qty, enums.StockStatusForQty(qty))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set stock")
	}
	return newStockDTO(book), nil
}

// ListLowStock returns books that are low or out of stock.
func (s *service) ListLowStock(ctx context.Context) ([]StockDTO, error) {
	books, err := s.repo.ListAtOrBelow(ctx, enums.LowStockThreshold)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list low stock")
	}
	out := make([]StockDTO, 0, len(books))
	for i := range books {
		out = append(out, *newStockDTO(&books[i]))
	}
	return out, nil
}

func newStockDTO(book *models.Book) *StockDTO {
	return &StockDTO{
		BookID:      book.ID,
		Title:       book.Title,
		StockQty:    book.StockQty,
		StockStatus: book.StockStatus.String(),
	}
}
