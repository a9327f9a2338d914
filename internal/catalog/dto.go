package catalog

import (
	"time"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
)

// BookDTO represents the catalog payload returned to clients.
type BookDTO struct {
	ID                 int       `json:"id"`
	Title              string    `json:"title"`
	Author             string    `json:"author"`
	PriceCents         int       `json:"price_cents"`
	OriginalPriceCents int       `json:"original_price_cents,omitempty"`
	Category           string    `json:"category"`
	Description        string    `json:"description,omitempty"`
	Image              string    `json:"image,omitempty"`
	Rating             float64   `json:"rating"`
	StockQty           int       `json:"stock_qty"`
	StockStatus        string    `json:"stock_status"`
	Keywords           []string  `json:"keywords,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BookListResult wraps a page of books with the total match count.
type BookListResult struct {
	Books []BookDTO `json:"books"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

// NewBookDTO builds a DTO from the persisted model.
func NewBookDTO(book *models.Book) *BookDTO {
	return &BookDTO{
		ID:                 book.ID,
		Title:              book.Title,
		Author:             book.Author,
		PriceCents:         book.PriceCents,
		OriginalPriceCents: book.OriginalPriceCents,
		Category:           book.Category,
		Description:        book.Description,
		Image:              book.Image,
		Rating:             book.Rating,
		StockQty:           book.StockQty,
		StockStatus:        book.StockStatus.String(),
		Keywords:           append([]string{}, book.Keywords...),
		CreatedAt:          book.CreatedAt,
		UpdatedAt:          book.UpdatedAt,
	}
}

func newBookDTOList(books []models.Book) []BookDTO {
	out := make([]BookDTO, 0, len(books))
	for i := range books {
		out = append(out, *NewBookDTO(&books[i]))
	}
	return out
}
