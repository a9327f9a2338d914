package content

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
)

// FAQDTO represents a FAQ document returned to clients.
type FAQDTO struct {
	ID        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AnnouncementDTO represents a storefront notice returned to clients.
type AnnouncementDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newFAQDTO(faq *models.FAQ) *FAQDTO {
	return &FAQDTO{
		ID:        faq.ID,
		Question:  faq.Question,
		Answer:    faq.Answer,
		CreatedAt: faq.CreatedAt,
		UpdatedAt: faq.UpdatedAt,
	}
}

func newFAQDTOList(faqs []models.FAQ) []FAQDTO {
	out := make([]FAQDTO, 0, len(faqs))
	for i := range faqs {
		out = append(out, *newFAQDTO(&faqs[i]))
	}
	return out
}

func newAnnouncementDTO(msg *models.Announcement) *AnnouncementDTO {
	return &AnnouncementDTO{
		ID:        msg.ID,
		Title:     msg.Title,
		Content:   msg.Content,
		Date:      msg.Date,
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}
}

func newAnnouncementDTOList(msgs []models.Announcement) []AnnouncementDTO {
	out := make([]AnnouncementDTO, 0, len(msgs))
	for i := range msgs {
		out = append(out, *newAnnouncementDTO(&msgs[i]))
	}
	return out
}
