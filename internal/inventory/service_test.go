package inventory

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
	pkgerrors "github.com/bookhaven/bookhaven-backend/pkg/errors"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Book{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := openTestDB(t)
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func mustCreateBook(t *testing.T, conn *gorm.DB, title string, qty int) *models.Book {
	t.Helper()
	book := &models.Book{
		Title:       title,
		Author:      "A. Uthor",
		PriceCents:  1000,
		Category:    "Fiction",
		StockQty:    qty,
		StockStatus: enums.StockStatusForQty(qty),
	}
	if err := conn.Create(book).Error; err != nil {
		t.Fatalf("create book: %v", err)
	}
	return book
}

func TestSetStockDerivesStatus(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	book := mustCreateBook(t, conn, "Deep Work", 20)

	cases := []struct {
		qty    int
		status string
	}{
		{0, "OUT_OF_STOCK"},
		{3, "LOW_STOCK"},
		{5, "LOW_STOCK"},
		{6, "IN_STOCK"},
	}
	for _, tc := range cases {
		dto, err := svc.SetStock(ctx, book.ID, tc.qty)
		if err != nil {
			t.Fatalf("set stock %d: %v", tc.qty, err)
		}
		if dto.StockStatus != tc.status {
			t.Fatalf("qty %d: expected %s, got %s", tc.qty, tc.status, dto.StockStatus)
		}
	}
}

func TestSetStockValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SetStock(ctx, 1, -1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.SetStock(ctx, 999, 5)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListLowStock(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	mustCreateBook(t, conn, "Plenty", 50)
	mustCreateBook(t, conn, "Running Low", 2)
	mustCreateBook(t, conn, "Gone", 0)

	low, err := svc.ListLowStock(ctx)
	if err != nil {
		t.Fatalf("list low stock: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("expected 2 low or out of stock books, got %d", len(low))
	}
	if low[0].Title != "Gone" {
		t.Fatalf("expected lowest quantity first, got %s", low[0].Title)
	}
}
