package orders

import (
	"time"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/types"
)

// OrderDTO represents a placed order as returned to clients.
type OrderDTO struct {
	OrderID          string                `json:"order_id"`
	Date             time.Time             `json:"date"`
	Items            []models.OrderItem    `json:"items"`
	SubtotalCents    int                   `json:"subtotal_cents"`
	ShippingFeeCents int                   `json:"shipping_fee_cents"`
	TotalAmountCents int                   `json:"total_amount_cents"`
	Status           string                `json:"status"`
	PaymentMethod    string                `json:"payment_method"`
	Shipping         types.ShippingDetails `json:"shipping"`
}

// AdminOrderDTO adds the owning session for dashboard views.
type AdminOrderDTO struct {
	OrderDTO
	SessionID string `json:"session_id"`
}

// OrderListResult wraps a page of mirrored orders with the total count.
type OrderListResult struct {
	Orders []AdminOrderDTO `json:"orders"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

func newOrderDTO(rec Record) OrderDTO {
	items := rec.Items
	if items == nil {
		items = []models.OrderItem{}
	}
	return OrderDTO{
		OrderID:          rec.OrderID,
		Date:             rec.Date,
		Items:            items,
		SubtotalCents:    rec.SubtotalCents,
		ShippingFeeCents: rec.ShippingFeeCents,
		TotalAmountCents: rec.TotalAmountCents,
		Status:           rec.Status.String(),
		PaymentMethod:    rec.PaymentMethod.String(),
		Shipping:         rec.Shipping,
	}
}

func newOrderDTOList(records []Record) []OrderDTO {
	out := make([]OrderDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, newOrderDTO(rec))
	}
	return out
}

func newAdminOrderDTO(order *models.Order) AdminOrderDTO {
	items := order.Items
	if items == nil {
		items = []models.OrderItem{}
	}
	return AdminOrderDTO{
		OrderDTO: OrderDTO{
			OrderID:          order.OrderID,
			Date:             order.CreatedAt,
			Items:            items,
			SubtotalCents:    order.SubtotalCents,
			ShippingFeeCents: order.ShippingFeeCents,
			TotalAmountCents: order.TotalAmountCents,
			Status:           order.Status.String(),
			PaymentMethod:    order.PaymentMethod.String(),
			Shipping:         order.Shipping,
		},
		SessionID: order.SessionID,
	}
}
