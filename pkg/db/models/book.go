package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/bookhaven/bookhaven-backend/pkg/enums"
)

// Book is a catalog entity. The cart never mutates it; cart entries carry a
// snapshot of the fields they need instead.
type Book struct {
	ID                 int               `gorm:"column:id;primaryKey;autoIncrement"`
	Title              string            `gorm:"column:title;not null"`
	Author             string            `gorm:"column:author;not null"`
	PriceCents         int               `gorm:"column:price_cents;not null"`
	OriginalPriceCents int               `gorm:"column:original_price_cents;not null"`
	Category           string            `gorm:"column:category;not null"`
	Description        string            `gorm:"column:description"`
	Image              string            `gorm:"column:image"`
	Rating             float64           `gorm:"column:rating;not null;default:0"`
	StockQty           int               `gorm:"column:stock_qty;not null;default:0"`
	StockStatus        enums.StockStatus `gorm:"column:stock_status;not null;default:'IN_STOCK'"`
	Keywords           pq.StringArray    `gorm:"column:keywords;type:text[]"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
