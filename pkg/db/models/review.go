package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a shopper rating for a catalog book. Deletion is soft so the
// admin dashboard can restore moderated reviews.
type Review struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	BookID    int       `gorm:"column:book_id;not null;index"`
	UserName  string    `gorm:"column:user_name;not null"`
	Rating    int       `gorm:"column:rating;not null"`
	Text      string    `gorm:"column:text;not null"`
	Deleted   bool      `gorm:"column:deleted;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
