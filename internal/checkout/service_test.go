package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bookhaven/bookhaven-backend/internal/cart"
	"github.com/bookhaven/bookhaven-backend/internal/orders"
	"github.com/bookhaven/bookhaven-backend/pkg/config"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
	pkgerrors "github.com/bookhaven/bookhaven-backend/pkg/errors"
	"github.com/bookhaven/bookhaven-backend/pkg/types"
)

type stubCart struct {
	items        []cart.Item
	clearCalls   int
	selectedErr  error
	clearFailure error
}

func (s *stubCart) SelectedItems(context.Context, string) ([]cart.Item, error) {
	if s.selectedErr != nil {
		return nil, s.selectedErr
	}
	return s.items, nil
}

func (s *stubCart) ClearSelectedItems(context.Context, string) (*cart.CartDTO, error) {
	if s.clearFailure != nil {
		return nil, s.clearFailure
	}
	s.clearCalls++
	return &cart.CartDTO{}, nil
}

type stubOrders struct {
	added      []orders.Record
	failures   int
	failWith   error
	lastOutput *orders.OrderDTO
}

func (s *stubOrders) AddOrder(_ context.Context, _ string, rec orders.Record) (*orders.OrderDTO, error) {
	if s.failures > 0 {
		s.failures--
		return nil, s.failWith
	}
	s.added = append(s.added, rec)
	dto := orders.OrderDTO{
		OrderID:          rec.OrderID,
		Date:             rec.Date,
		Items:            rec.Items,
		SubtotalCents:    rec.SubtotalCents,
		ShippingFeeCents: rec.ShippingFeeCents,
		TotalAmountCents: rec.TotalAmountCents,
		Status:           rec.Status.String(),
		PaymentMethod:    rec.PaymentMethod.String(),
		Shipping:         rec.Shipping,
	}
	s.lastOutput = &dto
	return &dto, nil
}

func validShipping() types.ShippingDetails {
	return types.ShippingDetails{
		FullName:   "John Doe",
		Phone:      "0771234567",
		Address:    "123 Main Street",
		City:       "Colombo",
		PostalCode: "10100",
	}
}

func testConfig() config.CheckoutConfig {
	return config.CheckoutConfig{ShippingFeeCents: 450}
}

func selectedBooks() []cart.Item {
	return []cart.Item{
		{BookID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", PriceCents: 1000, Quantity: 1, Selected: true},
	}
}

func TestSubmitPlacesOrderAndClearsSelection(t *testing.T) {
	carts := &stubCart{items: selectedBooks()}
	orderSvc := &stubOrders{}
	svc, err := NewService(carts, orderSvc, testConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Submit(context.Background(), "s1", SubmitInput{
		Shipping:      validShipping(),
		PaymentMethod: enums.PaymentMethodCashOnDelivery,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if dto.TotalAmountCents != 1450 {
		t.Fatalf("expected total 1450 (subtotal 1000 + shipping 450), got %d", dto.TotalAmountCents)
	}
	if dto.Status != "Processing" {
		t.Fatalf("expected new orders to start Processing, got %s", dto.Status)
	}
	if !strings.HasPrefix(dto.OrderID, "ORD-") || len(dto.OrderID) != 10 {
		t.Fatalf("expected ORD- plus six digits, got %q", dto.OrderID)
	}
	if carts.clearCalls != 1 {
		t.Fatalf("expected selected items cleared once, got %d", carts.clearCalls)
	}
	if len(orderSvc.added) != 1 || len(orderSvc.added[0].Items) != 1 {
		t.Fatalf("expected one recorded order with one item")
	}
}

func TestSubmitEmptySelectionBlocked(t *testing.T) {
	carts := &stubCart{}
	orderSvc := &stubOrders{}
	svc, _ := NewService(carts, orderSvc, testConfig())

	_, err := svc.Submit(context.Background(), "s1", SubmitInput{
		Shipping:      validShipping(),
		PaymentMethod: enums.PaymentMethodCard,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for empty selection, got %v", err)
	}
	if len(orderSvc.added) != 0 {
		t.Fatal("expected no order to be created")
	}
	if carts.clearCalls != 0 {
		t.Fatal("expected cart untouched")
	}
}

func TestSubmitValidation(t *testing.T) {
	carts := &stubCart{items: selectedBooks()}
	svc, _ := NewService(carts, &stubOrders{}, testConfig())
	ctx := context.Background()

	cases := []struct {
		name  string
		patch func(*types.ShippingDetails)
	}{
		{"shortFullName", func(s *types.ShippingDetails) { s.FullName = "Jo" }},
		{"shortPhone", func(s *types.ShippingDetails) { s.Phone = "12345" }},
		{"shortAddress", func(s *types.ShippingDetails) { s.Address = "1, A" }},
		{"shortCity", func(s *types.ShippingDetails) { s.City = "C" }},
		{"shortPostalCode", func(s *types.ShippingDetails) { s.PostalCode = "101" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shipping := validShipping()
			tc.patch(&shipping)
			_, err := svc.Submit(ctx, "s1", SubmitInput{Shipping: shipping, PaymentMethod: enums.PaymentMethodCard})
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	_, err := svc.Submit(ctx, "s1", SubmitInput{Shipping: validShipping(), PaymentMethod: "bitcoin"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for payment method, got %v", err)
	}
}

func TestSubmitCountsRunesNotBytes(t *testing.T) {
	carts := &stubCart{items: selectedBooks()}
	svc, _ := NewService(carts, &stubOrders{}, testConfig())
	ctx := context.Background()

	// "東" is three bytes but a single rune, so a byte count would let it
	// through the two-character city minimum
	shipping := validShipping()
	shipping.City = "東"
	_, err := svc.Submit(ctx, "s1", SubmitInput{Shipping: shipping, PaymentMethod: enums.PaymentMethodCard})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected one-rune city to be rejected, got %v", err)
	}

	shipping = validShipping()
	shipping.FullName = "李小龍"
	shipping.City = "東京"
	if _, err := svc.Submit(ctx, "s1", SubmitInput{Shipping: shipping, PaymentMethod: enums.PaymentMethodCard}); err != nil {
		t.Fatalf("expected multibyte fields at the minimum length to pass, got %v", err)
	}
}

func TestSubmitRetriesOnOrderIDCollision(t *testing.T) {
	carts := &stubCart{items: selectedBooks()}
	orderSvc := &stubOrders{
		failures: 2,
		failWith: pkgerrors.New(pkgerrors.CodeConflict, "order id already exists"),
	}
	svc, _ := NewService(carts, orderSvc, testConfig())

	dto, err := svc.Submit(context.Background(), "s1", SubmitInput{
		Shipping:      validShipping(),
		PaymentMethod: enums.PaymentMethodCard,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if dto == nil || len(orderSvc.added) != 1 {
		t.Fatal("expected order placed after retries")
	}
}

func TestSubmitFailureLeavesCartUntouched(t *testing.T) {
	carts := &stubCart{items: selectedBooks()}
	orderSvc := &stubOrders{
		failures: 99,
		failWith: pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("db down"), "mirror order"),
	}
	svc, _ := NewService(carts, orderSvc, testConfig())

	_, err := svc.Submit(context.Background(), "s1", SubmitInput{
		Shipping:      validShipping(),
		PaymentMethod: enums.PaymentMethodCard,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if carts.clearCalls != 0 {
		t.Fatal("expected selected items to survive a failed submission")
	}
}

func TestGetSummaryTotals(t *testing.T) {
	items := []cart.Item{
		{BookID: 1, PriceCents: 1000, Quantity: 2, Selected: true},
		{BookID: 2, PriceCents: 500, Quantity: 1, Selected: true},
	}
	svc, _ := NewService(&stubCart{items: items}, &stubOrders{}, testConfig())

	summary, err := svc.GetSummary(context.Background(), "s1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.SubtotalCents != 2500 || summary.TotalCents != 2950 {
		t.Fatalf("expected subtotal 2500 and total 2950, got %d and %d", summary.SubtotalCents, summary.TotalCents)
	}
}
