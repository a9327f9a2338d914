package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookhaven/bookhaven-backend/pkg/enums"
	"github.com/bookhaven/bookhaven-backend/pkg/types"
)

// OrderItem is the point-in-time copy of a purchased cart entry. It is a
// value, not a reference: cart mutations after checkout cannot reach it.
type OrderItem struct {
	BookID     int    `json:"book_id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	PriceCents int    `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// Order mirrors a session's placed order for the admin dashboard and
// reporting queries. The per-session history blob remains the shopper-facing
// source; this row is written in the same operation.
type Order struct {
	ID               uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	OrderID          string                `gorm:"column:order_id;not null;uniqueIndex"`
	SessionID        string                `gorm:"column:session_id;not null;index"`
	Items            []OrderItem           `gorm:"column:items;type:jsonb;serializer:json"`
	SubtotalCents    int                   `gorm:"column:subtotal_cents;not null"`
	ShippingFeeCents int                   `gorm:"column:shipping_fee_cents;not null"`
	TotalAmountCents int                   `gorm:"column:total_amount_cents;not null"`
	Status           enums.OrderStatus     `gorm:"column:status;not null;default:'Processing'"`
	PaymentMethod    enums.PaymentMethod   `gorm:"column:payment_method;not null"`
	Shipping         types.ShippingDetails `gorm:"column:shipping;type:jsonb;serializer:json"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
