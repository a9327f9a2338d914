package models

import (
	"time"

	"github.com/google/uuid"
)

// FAQ is a question/answer pair maintained from the admin dashboard.
type FAQ struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Question  string    `gorm:"column:question;not null"`
	Answer    string    `gorm:"column:answer;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Announcement is a storefront notice shown on the landing page.
type Announcement struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	Content   string    `gorm:"column:content;not null"`
	Date      time.Time `gorm:"column:date;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
