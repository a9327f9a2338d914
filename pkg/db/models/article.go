package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is a storefront blog post. Drafts stay hidden from shoppers
// until they are published.
type Article struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Title       string     `gorm:"column:title;not null"`
	Summary     string     `gorm:"column:summary"`
	Content     string     `gorm:"column:content;not null"`
	Author      string     `gorm:"column:author;not null"`
	Category    string     `gorm:"column:category"`
	ImageURL    string     `gorm:"column:image_url"`
	Published   bool       `gorm:"column:published;not null;default:false"`
	PublishedAt *time.Time `gorm:"column:published_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
