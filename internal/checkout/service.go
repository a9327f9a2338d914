package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"time"
	"unicode/utf8"

	"github.com/bookhaven/bookhaven-backend/internal/cart"
	"github.com/bookhaven/bookhaven-backend/internal/orders"
	"github.com/bookhaven/bookhaven-backend/pkg/config"
	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
	pkgerrors "github.com/bookhaven/bookhaven-backend/pkg/errors"
	"github.com/bookhaven/bookhaven-backend/pkg/types"
)

// orderIDAttempts bounds the retries when a generated order id collides
// with an existing one.
const orderIDAttempts = 5

// SubmitInput holds the validated checkout form.
type SubmitInput struct {
	Shipping      types.ShippingDetails
	PaymentMethod enums.PaymentMethod
}

// Summary is the pre-submit checkout view: the selected items with their
// derived totals.
type Summary struct {
	Items            []cart.Item `json:"items"`
	SubtotalCents    int         `json:"subtotal_cents"`
	ShippingFeeCents int         `json:"shipping_fee_cents"`
	TotalCents       int         `json:"total_cents"`
}

// Service runs the checkout flow: it snapshots the selected cart entries
// into an order, records the order, then removes only the purchased
// entries from the cart. A failed submission leaves the cart untouched.
type Service interface {
	GetSummary(ctx context.Context, sessionID string) (*Summary, error)
	Submit(ctx context.Context, sessionID string, input SubmitInput) (*orders.OrderDTO, error)
}

type cartAccessor interface {
	SelectedItems(ctx context.Context, sessionID string) ([]cart.Item, error)
	ClearSelectedItems(ctx context.Context, sessionID string) (*cart.CartDTO, error)
}

type orderAdder interface {
	AddOrder(ctx context.Context, sessionID string, rec orders.Record) (*orders.OrderDTO, error)
}

type service struct {
	carts  cartAccessor
	orders orderAdder
	cfg    config.CheckoutConfig
	rand   *rand.Rand
	now    func() time.Time
}

// NewService constructs a checkout service instance.
func NewService(carts cartAccessor, orderSvc orderAdder, cfg config.CheckoutConfig) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("order service required")
	}
	return &service{
		carts:  carts,
		orders: orderSvc,
		cfg:    cfg,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}, nil
}

// GetSummary returns the current selected items and totals, or a state
// conflict when nothing is selected.
func (s *service) GetSummary(ctx context.Context, sessionID string) (*Summary, error) {
	selected, err := s.carts.SelectedItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no items selected for checkout")
	}
	subtotal := subtotalCents(selected)
	return &Summary{
		Items:            selected,
		SubtotalCents:    subtotal,
		ShippingFeeCents: s.cfg.ShippingFeeCents,
		TotalCents:       subtotal + s.cfg.ShippingFeeCents,
	}, nil
}

// Submit validates the form, snapshots the selected entries into a new
// order, and clears them from the cart once the order is recorded.
func (s *service) Submit(ctx context.Context, sessionID string, input SubmitInput) (*orders.OrderDTO, error) {
	if err := validateShipping(input.Shipping); err != nil {
		return nil, err
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	selected, err := s.carts.SelectedItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no items selected for checkout")
	}

	subtotal := subtotalCents(selected)
	rec := orders.Record{
		Date:             s.now().UTC(),
		Items:            snapshotItems(selected),
		SubtotalCents:    subtotal,
		ShippingFeeCents: s.cfg.ShippingFeeCents,
		TotalAmountCents: subtotal + s.cfg.ShippingFeeCents,
		Status:           enums.OrderStatusProcessing,
		PaymentMethod:    input.PaymentMethod,
		Shipping:         input.Shipping,
	}

	var placed *orders.OrderDTO
	for attempt := 0; attempt < orderIDAttempts; attempt++ {
		rec.OrderID = s.newOrderID()
		placed, err = s.orders.AddOrder(ctx, sessionID, rec)
		if err == nil {
			break
		}
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeConflict {
			continue
		}
		return nil, err
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "allocate order id")
	}

	if _, err := s.carts.ClearSelectedItems(ctx, sessionID); err != nil {
		return nil, err
	}
	return placed, nil
}

// newOrderID generates the public order reference, "ORD-" plus six digits.
func (s *service) newOrderID() string {
	return fmt.Sprintf("ORD-%d", 100000+s.rand.Intn(900000))
}

func subtotalCents(items []cart.Item) int {
	total := 0
	for _, item := range items {
		total += item.PriceCents * item.Quantity
	}
	return total
}

func snapshotItems(items []cart.Item) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.OrderItem{
			BookID:     item.BookID,
			Title:      item.Title,
			Author:     item.Author,
			PriceCents: item.PriceCents,
			Quantity:   item.Quantity,
		})
	}
	return out
}

func validateShipping(s types.ShippingDetails) error {
	switch {
	case utf8.RuneCountInString(s.FullName) < 3:
		return pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	case utf8.RuneCountInString(s.Phone) < 10:
		return pkgerrors.New(pkgerrors.CodeValidation, "phone number must be valid")
	case utf8.RuneCountInString(s.Address) < 5:
		return pkgerrors.New(pkgerrors.CodeValidation, "address is required")
	case utf8.RuneCountInString(s.City) < 2:
		return pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	case utf8.RuneCountInString(s.PostalCode) < 4:
		return pkgerrors.New(pkgerrors.CodeValidation, "postal code is required")
	}
	return nil
}
