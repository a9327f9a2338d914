package content

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

// Service exposes the storefront's FAQ and announcement documents. Reads
// are public; writes come from the admin dashboard.
type Service interface {
	ListFAQs(ctx context.Context) ([]FAQDTO, error)
	CreateFAQ(ctx context.Context, input CreateFAQInput) (*FAQDTO, error)
	UpdateFAQ(ctx context.Context, id uuid.UUID, input UpdateFAQInput) (*FAQDTO, error)
	DeleteFAQ(ctx context.Context, id uuid.UUID) error

	ListAnnouncements(ctx context.Context) ([]AnnouncementDTO, error)
	CreateAnnouncement(ctx context.Context, input CreateAnnouncementInput) (*AnnouncementDTO, error)
	UpdateAnnouncement(ctx context.Context, id uuid.UUID, input UpdateAnnouncementInput) (*AnnouncementDTO, error)
	DeleteAnnouncement(ctx context.Context, id uuid.UUID) error
}

// CreateFAQInput holds the validated payload to create a FAQ.
type CreateFAQInput struct {
	Question string
	Answer   string
}

// UpdateFAQInput holds optional mutation values for a FAQ.
type UpdateFAQInput struct {
	Question *string
	Answer   *string
}

// CreateAnnouncementInput holds the validated payload to create an
// announcement. A zero Date takes the server's current time.
type CreateAnnouncementInput struct {
	Title   string
	Content string
	Date    time.Time
}

// UpdateAnnouncementInput holds optional mutation values for an
// announcement.
type UpdateAnnouncementInput struct {
	Title   *string
	Content *string
	Date    *time.Time
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs a content service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("content repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// ListFAQs returns every FAQ, newest first.
func (s *service) ListFAQs(ctx context.Context) ([]FAQDTO, error) {
	faqs, err := s.repo.ListFAQs(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list faqs")
	}
	return newFAQDTOList(faqs), nil
}

// CreateFAQ adds a question/answer pair.
func (s *service) CreateFAQ(ctx context.Context, input CreateFAQInput) (*FAQDTO, error) {
	question := strings.TrimSpace(input.Question)
	answer := strings.TrimSpace(input.Answer)
	if question == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "question is required")
	}
	if answer == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "answer is required")
	}

	created, err := s.repo.CreateFAQ(ctx, &models.FAQ{
		ID:       uuid.New(),
		Question: question,
		Answer:   answer,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create faq")
	}
	return newFAQDTO(created), nil
}

// UpdateFAQ applies the provided fields to an existing FAQ.
func (s *service) UpdateFAQ(ctx context.Context, id uuid.UUID, input UpdateFAQInput) (*FAQDTO, error) {
	faq, err := s.repo.FindFAQByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "faq not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load faq")
	}

	if input.Question != nil {
		question := strings.TrimSpace(*input.Question)
		if question == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "question cannot be empty")
		}
		faq.Question = question
	}
	if input.Answer != nil {
		answer := strings.TrimSpace(*input.Answer)
		if answer == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "answer cannot be empty")
		}
		faq.Answer = answer
	}

	updated, err := s.repo.UpdateFAQ(ctx, faq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update faq")
	}
	return newFAQDTO(updated), nil
}

// DeleteFAQ removes a FAQ.
func (s *service) DeleteFAQ(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteFAQ(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "faq not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete faq")
	}
	return nil
}

// ListAnnouncements returns every announcement, newest display date first.
func (s *service) ListAnnouncements(ctx context.Context) ([]AnnouncementDTO, error) {
	msgs, err := s.repo.ListAnnouncements(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list announcements")
	}
	return newAnnouncementDTOList(msgs), nil
}

// CreateAnnouncement adds a storefront notice.
func (s *service) CreateAnnouncement(ctx context.Context, input CreateAnnouncementInput) (*AnnouncementDTO, error) {
	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Content)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content is required")
	}
	date := input.Date
	if date.IsZero() {
		date = s.now().UTC()
	}

	created, err := s.repo.CreateAnnouncement(ctx, &models.Announcement{
		ID:      uuid.New(),
		Title:   title,
		Content: body,
		Date:    date,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create announcement")
	}
	return newAnnouncementDTO(created), nil
}

// UpdateAnnouncement applies the provided fields to an existing
// announcement.
func (s *service) UpdateAnnouncement(ctx context.Context, id uuid.UUID, input UpdateAnnouncementInput) (*AnnouncementDTO, error) {
	msg, err := s.repo.FindAnnouncementByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "announcement not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load announcement")
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		msg.Title = title
	}
	if input.Content != nil {
		body := strings.TrimSpace(*input.Content)
		if body == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "content cannot be empty")
		}
		msg.Content = body
	}
	if input.Date != nil && !input.Date.IsZero() {
		msg.Date = *input.Date
	}

	updated, err := s.repo.UpdateAnnouncement(ctx, msg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update announcement")
	}
	return newAnnouncementDTO(updated), nil
}

// DeleteAnnouncement removes an announcement.
func (s *service) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteAnnouncement(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "announcement not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete announcement")
	}
	return nil
}
