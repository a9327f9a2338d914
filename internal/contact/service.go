package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
	pkgerrors "github.com/bookhaven/bookhaven-backend/pkg/errors"
	"github.com/bookhaven/bookhaven-backend/pkg/pagination"
)

// Service exposes the support inbox: public message submission plus the
// admin queue with reply and close operations.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*ContactDTO, error)
	List(ctx context.Context, input ListInput) (*ContactListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*ContactDTO, error)
	Reply(ctx context.Context, id uuid.UUID, reply, repliedBy string) (*ContactDTO, error)
	Close(ctx context.Context, id uuid.UUID) (*ContactDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubmitInput holds the validated payload for a new support message.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ListInput narrows the admin queue listing.
type ListInput struct {
	Status string
	Page   pagination.Params
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs a contact service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contact repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// Submit records a new support message in the pending state.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*ContactDTO, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	switch {
	case name == "":
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	case email == "" || !strings.Contains(email, "@"):
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	case subject == "":
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject is required")
	case message == "":
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}

	created, err := s.repo.Create(ctx, &models.Contact{
		ID:      uuid.New(),
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
		Status:  enums.ContactStatusPending,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create contact message")
	}
	return newContactDTO(created), nil
}

// List returns a page of the admin queue.
func (s *service) List(ctx context.Context, input ListInput) (*ContactListResult, error) {
	filter := ListFilter{Page: input.Page}
	if input.Status != "" {
		status, err := enums.ParseContactStatus(input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		filter.Status = status
	}

	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list contact messages")
	}
	return &ContactListResult{
		Messages: newContactDTOList(rows),
		Total:    total,
		Page:     pagination.NormalizePage(input.Page.Page),
		Limit:    pagination.NormalizeLimit(input.Page.Limit),
	}, nil
}

// Get loads one support message.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*ContactDTO, error) {
	msg, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return newContactDTO(msg), nil
}

// Reply stores the admin's answer and marks the message replied.
func (s *service) Reply(ctx context.Context, id uuid.UUID, reply, repliedBy string) (*ContactDTO, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reply is required")
	}

	msg, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg.Status == enums.ContactStatusClosed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "message is closed")
	}

	now := s.now().UTC()
	msg.AdminReply = &reply
	msg.RepliedBy = &repliedBy
	msg.RepliedAt = &now
	msg.Status = enums.ContactStatusReplied

	updated, err := s.repo.Update(ctx, msg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reply to contact message")
	}
	return newContactDTO(updated), nil
}

// Close marks the message closed. Closing an already closed message is a
// no-op.
func (s *service) Close(ctx context.Context, id uuid.UUID) (*ContactDTO, error) {
	msg, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg.Status != enums.ContactStatusClosed {
		msg.Status = enums.ContactStatusClosed
		if _, err := s.repo.Update(ctx, msg); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "close contact message")
		}
	}
	return newContactDTO(msg), nil
}

// Delete removes the message from the queue.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "contact message not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete contact message")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	msg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contact message not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load contact message")
	}
	return msg, nil
}
