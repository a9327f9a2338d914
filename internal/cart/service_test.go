package cart

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	pkgerrors "github.com/bookhaven/bookhaven-backend/pkg/errors"
	"github.com/bookhaven/bookhaven-backend/pkg/statestore"
)

type stubBookLoader struct {
	books map[int]*models.Book
}

func (s *stubBookLoader) FindByID(_ context.Context, id int) (*models.Book, error) {
	book, ok := s.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return book, nil
}

func newTestService(t *testing.T) Service {
	t.Helper()
	loader := &stubBookLoader{books: map[int]*models.Book{
		1: {ID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", PriceCents: 1000},
		2: {ID: 2, Title: "Atomic Habits", Author: "James Clear", PriceCents: 500},
	}}
	svc, err := NewService(statestore.NewMemoryStore(), loader)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestAddToCartAccumulatesQuantity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "s1", 1, 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	dto, err := svc.AddToCart(ctx, "s1", 1, 1)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(dto.Items) != 1 {
		t.Fatalf("expected a single entry, got %d", len(dto.Items))
	}
	if dto.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", dto.Items[0].Quantity)
	}
	if !dto.Items[0].Selected {
		t.Fatal("expected new entries to be selected")
	}
	if dto.SelectedSubtotalCents != 2000 {
		t.Fatalf("expected subtotal 2000, got %d", dto.SelectedSubtotalCents)
	}
}

func TestAddToCartUnknownBook(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddToCart(context.Background(), "s1", 99, 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestTotalItemsTracksQuantities(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "s1", 1, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	dto, err := svc.AddToCart(ctx, "s1", 2, 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if dto.TotalItems != 5 {
		t.Fatalf("expected total item count 5, got %d", dto.TotalItems)
	}

	dto, err = svc.RemoveFromCart(ctx, "s1", 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if dto.TotalItems != 4 {
		t.Fatalf("expected total item count 4 after decrement, got %d", dto.TotalItems)
	}
	for _, item := range dto.Items {
		if item.Quantity < 1 {
			t.Fatalf("entry %d has quantity %d", item.BookID, item.Quantity)
		}
	}
}

func TestRemoveFromCartDeletesAtQuantityOne(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "s1", 1, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	dto, err := svc.RemoveFromCart(ctx, "s1", 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected empty cart, got %d entries", len(dto.Items))
	}

	// absent id is a no-op
	dto, err = svc.RemoveFromCart(ctx, "s1", 1)
	if err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected cart to stay empty, got %d entries", len(dto.Items))
	}
}

func TestRemoveItemCompletely(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "s1", 1, 5); err != nil {
		t.Fatalf("add: %v", err)
	}
	dto, err := svc.RemoveItemCompletely(ctx, "s1", 1)
	if err != nil {
		t.Fatalf("remove completely: %v", err)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected entry gone regardless of quantity, got %d entries", len(dto.Items))
	}
}

func TestToggleSelectionAffectsTotalOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "s1", 1, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddToCart(ctx, "s1", 2, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	dto, err := svc.ToggleSelectItem(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if dto.SelectedSubtotalCents != 1000 {
		t.Fatalf("expected deselected entry excluded from subtotal, got %d", dto.SelectedSubtotalCents)
	}
	if len(dto.Items) != 2 {
		t.Fatalf("expected deselection to keep the entry, got %d entries", len(dto.Items))
	}

	dto, err = svc.ToggleSelectAll(ctx, "s1", false)
	if err != nil {
		t.Fatalf("toggle all: %v", err)
	}
	if dto.SelectedSubtotalCents != 0 {
		t.Fatalf("expected zero subtotal with nothing selected, got %d", dto.SelectedSubtotalCents)
	}

	dto, err = svc.ToggleSelectAll(ctx, "s1", true)
	if err != nil {
		t.Fatalf("toggle all: %v", err)
	}
	if dto.SelectedSubtotalCents != 1500 {
		t.Fatalf("expected full subtotal 1500, got %d", dto.SelectedSubtotalCents)
	}
}

func TestClearSelectedItemsKeepsUnselected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "s1", 1, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddToCart(ctx, "s1", 2, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.ToggleSelectItem(ctx, "s1", 2); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	dto, err := svc.ClearSelectedItems(ctx, "s1")
	if err != nil {
		t.Fatalf("clear selected: %v", err)
	}
	if len(dto.Items) != 1 || dto.Items[0].BookID != 2 {
		t.Fatalf("expected only the unselected entry to survive, got %+v", dto.Items)
	}
}

func TestClearCartEmptiesEverything(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "s1", 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	dto, err := svc.ClearCart(ctx, "s1")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(dto.Items) != 0 || dto.TotalItems != 0 {
		t.Fatalf("expected empty cart, got %+v", dto)
	}

	fetched, err := svc.GetCart(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(fetched.Items) != 0 {
		t.Fatalf("expected persisted cart to be empty, got %d entries", len(fetched.Items))
	}
}

func TestCartRoundTripsThroughStore(t *testing.T) {
	store := statestore.NewMemoryStore()
	loader := &stubBookLoader{books: map[int]*models.Book{
		1: {ID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", PriceCents: 1000},
	}}
	svc, err := NewService(store, loader)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "s1", 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.ToggleSelectItem(ctx, "s1", 1); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	// a second service over the same store sees identical state
	reloaded, err := NewService(store, loader)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	dto, err := reloaded.GetCart(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(dto.Items) != 1 {
		t.Fatalf("expected one entry, got %d", len(dto.Items))
	}
	item := dto.Items[0]
	if item.BookID != 1 || item.Quantity != 2 || item.Selected {
		t.Fatalf("expected id/quantity/selection to round-trip, got %+v", item)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "s1", 1, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	dto, err := svc.GetCart(ctx, "s2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected other session's cart to be empty, got %d entries", len(dto.Items))
	}
}

func TestBlankSessionRejected(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetCart(context.Background(), "  ")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
