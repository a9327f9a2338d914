package contact

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
)

// ContactDTO represents a support message returned to clients.
type ContactDTO struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Subject    string     `json:"subject"`
	Message    string     `json:"message"`
	Status     string     `json:"status"`
	AdminReply *string    `json:"admin_reply,omitempty"`
	RepliedBy  *string    `json:"replied_by,omitempty"`
	RepliedAt  *time.Time `json:"replied_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ContactListResult wraps a page of support messages with the total count.
type ContactListResult struct {
	Messages []ContactDTO `json:"messages"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	Limit    int          `json:"limit"`
}

func newContactDTO(msg *models.Contact) *ContactDTO {
	return &ContactDTO{
		ID:         msg.ID,
		Name:       msg.Name,
		Email:      msg.Email,
		Subject:    msg.Subject,
		Message:    msg.Message,
		Status:     msg.Status.String(),
		AdminReply: msg.AdminReply,
		RepliedBy:  msg.RepliedBy,
		RepliedAt:  msg.RepliedAt,
		CreatedAt:  msg.CreatedAt,
		UpdatedAt:  msg.UpdatedAt,
	}
}

func newContactDTOList(msgs []models.Contact) []ContactDTO {
	out := make([]ContactDTO, 0, len(msgs))
	for i := range msgs {
		out = append(out, *newContactDTO(&msgs[i]))
	}
	return out
}
