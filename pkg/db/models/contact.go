package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookhaven/bookhaven-backend/pkg/enums"
)

// Contact is a customer support message with its admin reply state.
type Contact struct {
	ID         uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Name       string              `gorm:"column:name;not null"`
	Email      string              `gorm:"column:email;not null"`
	Subject    string              `gorm:"column:subject;not null"`
	Message    string              `gorm:"column:message;not null"`
	Status     enums.ContactStatus `gorm:"column:status;not null;default:'PENDING'"`
	AdminReply *string             `gorm:"column:admin_reply"`
	RepliedBy  *string             `gorm:"column:replied_by"`
	RepliedAt  *time.Time          `gorm:"column:replied_at"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
