package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	pkgerrors "github.com/bookhaven/bookhaven-backend/pkg/errors"
)

// Service exposes public review submission and reads plus the admin
// moderation operations. Deletion is soft so moderated reviews can be
// restored.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*ReviewDTO, error)
	ListByBook(ctx context.Context, bookID int) ([]ReviewDTO, error)
	AdminListByBook(ctx context.Context, bookID int) ([]ReviewDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

// CreateInput holds the validated payload for a new review.
type CreateInput struct {
	BookID   int
	UserName string
	Rating   int
	Text     string
}

// ReviewDTO represents a review returned to clients.
type ReviewDTO struct {
	ID        uuid.UUID `json:"id"`
	BookID    int       `json:"book_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	Deleted   bool      `json:"deleted,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type bookLoader interface {
	FindByID(ctx context.Context, id int) (*models.Book, error)
}

type service struct {
	repo  *Repository
	books bookLoader
}

// NewService constructs a review service instance.
func NewService(repo *Repository, books bookLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	if books == nil {
		return nil, fmt.Errorf("book loader required")
	}
	return &service{repo: repo, books: books}, nil
}

// Create records a review against an existing book.
func (s *service) Create(ctx context.Context, input CreateInput) (*ReviewDTO, error) {
	if strings.TrimSpace(input.UserName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user name is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review text is required")
	}

	if _, err := s.books.FindByID(ctx, input.BookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load book")
	}

	created, err := s.repo.Create(ctx, &models.Review{
		ID:       uuid.New(),
		BookID:   input.BookID,
		UserName: strings.TrimSpace(input.UserName),
		Rating:   input.Rating,
		Text:     strings.TrimSpace(input.Text),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create review")
	}
	return newReviewDTO(created), nil
}

// ListByBook returns a book's visible reviews.
func (s *service) ListByBook(ctx context.Context, bookID int) ([]ReviewDTO, error) {
	return s.list(ctx, bookID, false)
}

// AdminListByBook returns every review for a book, soft-deleted included.
func (s *service) AdminListByBook(ctx context.Context, bookID int) ([]ReviewDTO, error) {
	return s.list(ctx, bookID, true)
}

func (s *service) list(ctx context.Context, bookID int, includeDeleted bool) ([]ReviewDTO, error) {
	rows, err := s.repo.ListByBook(ctx, bookID, includeDeleted)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}
	out := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *newReviewDTO(&rows[i]))
	}
	return out, nil
}

// Delete hides a review from public listings.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.setDeleted(ctx, id, true)
}

// Restore brings a soft-deleted review back.
func (s *service) Restore(ctx context.Context, id uuid.UUID) error {
	return s.setDeleted(ctx, id, false)
}

func (s *service) setDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	found, err := s.repo.SetDeleted(ctx, id, deleted)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update review")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
	}
	return nil
}

func newReviewDTO(review *models.Review) *ReviewDTO {
	return &ReviewDTO{
		ID:        review.ID,
		BookID:    review.BookID,
		UserName:  review.UserName,
		Rating:    review.Rating,
		Text:      review.Text,
		Deleted:   review.Deleted,
		CreatedAt: review.CreatedAt,
	}
}
