package orders

import (
	"time"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
	"github.com/bookhaven/bookhaven-backend/pkg/types"
)

// namespacePrefix keys each session's serialized order history inside the
// state store.
const namespacePrefix = "user-order-storage"

// Record is one order inside a session's history blob. Items are copies
// taken at checkout time, never references into the live cart.
type Record struct {
	OrderID          string                `json:"order_id"`
	Date             time.Time             `json:"date"`
	Items            []models.OrderItem    `json:"items"`
	SubtotalCents    int                   `json:"subtotal_cents"`
	ShippingFeeCents int                   `json:"shipping_fee_cents"`
	TotalAmountCents int                   `json:"total_amount_cents"`
	Status           enums.OrderStatus     `json:"status"`
	PaymentMethod    enums.PaymentMethod   `json:"payment_method"`
	Shipping         types.ShippingDetails `json:"shipping"`
}

// state is the full persisted history blob for one session, newest first.
type state struct {
	Orders []Record `json:"orders"`
}

// Namespace returns the state store key for a session's order history.
func Namespace(sessionID string) string {
	return namespacePrefix + ":" + sessionID
}

func (s *state) find(orderID string) int {
	for i := range s.Orders {
		if s.Orders[i].OrderID == orderID {
			return i
		}
	}
	return -1
}
