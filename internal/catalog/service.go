package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
	pkgerrors "github.com/bookhaven/bookhaven-backend/pkg/errors"
	"github.com/bookhaven/bookhaven-backend/pkg/pagination"
)

// Service exposes catalog browsing and admin book management.
type Service interface {
	ListBooks(ctx context.Context, input ListBooksInput) (*BookListResult, error)
	GetBook(ctx context.Context, id int) (*BookDTO, error)
	CreateBook(ctx context.Context, input CreateBookInput) (*BookDTO, error)
	UpdateBook(ctx context.Context, id int, input UpdateBookInput) (*BookDTO, error)
	DeleteBook(ctx context.Context, id int) error
	SeedDefaultCatalog(ctx context.Context) (int, error)
}

// ListBooksInput holds catalog list filters.
type ListBooksInput struct {
	Search   string
	Category string
	Page     pagination.Params
}

// CreateBookInput holds the validated payload to create a book.
type CreateBookInput struct {
	Title              string
	Author             string
	PriceCents         int
	OriginalPriceCents int
	Category           string
	Description        string
	Image              string
	Rating             float64
	StockQty           int
	Keywords           []string
}

// UpdateBookInput holds optional mutation values for a book.
type UpdateBookInput struct {
	Title              *string
	Author             *string
	PriceCents         *int
	OriginalPriceCents *int
	Category           *string
	Description        *string
	Image              *string
	Rating             *float64
	StockQty           *int
	Keywords           *[]string
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// ListBooks returns the filtered catalog page.
func (s *service) ListBooks(ctx context.Context, input ListBooksInput) (*BookListResult, error) {
	books, total, err := s.repo.List(ctx, ListFilter{
		Search:   input.Search,
		Category: input.Category,
		Page:     input.Page,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list books")
	}
	return &BookListResult{
		Books: newBookDTOList(books),
		Total: total,
		Page:  pagination.NormalizePage(input.Page.Page),
		Limit: pagination.NormalizeLimit(input.Page.Limit),
	}, nil
}

// GetBook loads a single book by id.
func (s *service) GetBook(ctx context.Context, id int) (*BookDTO, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "get book")
	}
	return NewBookDTO(book), nil
}

// CreateBook adds a book to the catalog.
func (s *service) CreateBook(ctx context.Context, input CreateBookInput) (*BookDTO, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(input.Author) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "author is required")
	}
	if input.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_cents cannot be negative")
	}
	if input.StockQty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock_qty cannot be negative")
	}

	original := input.OriginalPriceCents
	if original == 0 {
		original = input.PriceCents
	}
	book := &models.Book{
		Title:              strings.TrimSpace(input.Title),
		Author:             strings.TrimSpace(input.Author),
		PriceCents:         input.PriceCents,
		OriginalPriceCents: original,
		Category:           strings.TrimSpace(input.Category),
		Description:        input.Description,
		Image:              input.Image,
		Rating:             input.Rating,
		StockQty:           input.StockQty,
		StockStatus:        enums.StockStatusForQty(input.StockQty),
		Keywords:           append([]string{}, input.Keywords...),
	}
	created, err := s.repo.Create(ctx, book)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create book")
	}
	return NewBookDTO(created), nil
}

// UpdateBook applies the provided fields to an existing book.
func (s *service) UpdateBook(ctx context.Context, id int, input UpdateBookInput) (*BookDTO, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load book")
	}

	if err := applyBookUpdate(book, input); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, book)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update book")
	}
	return NewBookDTO(updated), nil
}

// DeleteBook removes a book from the catalog.
func (s *service) DeleteBook(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete book")
	}
	return nil
}

// SeedDefaultCatalog inserts the starter catalog when the table is empty.
// It returns the number of books inserted.
func (s *service) SeedDefaultCatalog(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count books")
	}
	if count > 0 {
		return 0, nil
	}
	books := DefaultCatalog()
	for i := range books {
		if _, err := s.repo.Create(ctx, &books[i]); err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seed catalog")
		}
	}
	return len(books), nil
}

func applyBookUpdate(book *models.Book, input UpdateBookInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		book.Title = title
	}
	if input.Author != nil {
		author := strings.TrimSpace(*input.Author)
		if author == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "author cannot be empty")
		}
		book.Author = author
	}
	if input.PriceCents != nil {
		if *input.PriceCents < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "price_cents cannot be negative")
		}
		book.PriceCents = *input.PriceCents
	}
	if input.OriginalPriceCents != nil {
		book.OriginalPriceCents = *input.OriginalPriceCents
	}
	if input.Category != nil {
		book.Category = strings.TrimSpace(*input.Category)
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.Image != nil {
		book.Image = *input.Image
	}
	if input.Rating != nil {
		book.Rating = *input.Rating
	}
	if input.StockQty != nil {
		if *input.StockQty < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "stock_qty cannot be negative")
		}
		book.StockQty = *input.StockQty
		book.StockStatus = enums.StockStatusForQty(*input.StockQty)
	}
	if input.Keywords != nil {
		book.Keywords = append([]string{}, (*input.Keywords)...)
	}
	return nil
}
