package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Order{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func mustCreateOrder(t *testing.T, conn *gorm.DB, orderID string, totalCents int, status enums.OrderStatus, created time.Time, items []models.OrderItem) {
	t.Helper()
	order := &models.Order{
		ID:               uuid.New(),
		OrderID:          orderID,
		SessionID:        "s1",
		Items:            items,
		SubtotalCents:    totalCents - 450,
		ShippingFeeCents: 450,
		TotalAmountCents: totalCents,
		Status:           status,
		PaymentMethod:    enums.PaymentMethodCard,
		CreatedAt:        created,
	}
	if err := conn.Create(order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := openTestDB(t)
	svc, err := NewService(conn)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func TestSalesSummary(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	jan := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	mustCreateOrder(t, conn, "ORD-100001", 1450, enums.OrderStatusProcessing, jan, nil)
	mustCreateOrder(t, conn, "ORD-100002", 2450, enums.OrderStatusDelivered, jan, nil)

	summary, err := svc.SalesSummary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalOrders != 2 {
		t.Fatalf("expected 2 orders, got %d", summary.TotalOrders)
	}
	if summary.TotalRevenue != "39.00" {
		t.Fatalf("expected revenue 39.00, got %s", summary.TotalRevenue)
	}
	if summary.RevenueByStatus["Delivered"] != "24.50" {
		t.Fatalf("expected delivered revenue 24.50, got %s", summary.RevenueByStatus["Delivered"])
	}
}

func TestMonthlyRevenueBuckets(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	jan := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 12, 9, 0, 0, 0, time.UTC)
	mustCreateOrder(t, conn, "ORD-100001", 1450, enums.OrderStatusProcessing, jan, nil)
	mustCreateOrder(t, conn, "ORD-100002", 1450, enums.OrderStatusProcessing, jan, nil)
	mustCreateOrder(t, conn, "ORD-100003", 2450, enums.OrderStatusProcessing, feb, nil)

	months, err := svc.MonthlyRevenue(ctx)
	if err != nil {
		t.Fatalf("monthly revenue: %v", err)
	}
	if len(months) != 2 {
		t.Fatalf("expected 2 month buckets, got %d", len(months))
	}
	if months[0].Month != "2026-01" || months[0].Orders != 2 || months[0].Revenue != "29.00" {
		t.Fatalf("unexpected january bucket: %+v", months[0])
	}
	if months[1].Month != "2026-02" || months[1].Revenue != "24.50" {
		t.Fatalf("unexpected february bucket: %+v", months[1])
	}
}

func TestTopSellingBooks(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	mustCreateOrder(t, conn, "ORD-100001", 1450, enums.OrderStatusProcessing, now, []models.OrderItem{
		{BookID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", PriceCents: 1000, Quantity: 1},
	})
	mustCreateOrder(t, conn, "ORD-100002", 4450, enums.OrderStatusProcessing, now, []models.OrderItem{
		{BookID: 2, Title: "Atomic Habits", Author: "James Clear", PriceCents: 2000, Quantity: 2},
	})

	top, err := svc.TopSellingBooks(ctx, 1)
	if err != nil {
		t.Fatalf("top sellers: %v", err)
	}
	if len(top) != 1 {
		t.Fatalf("expected limit applied, got %d rows", len(top))
	}
	if top[0].BookID != 2 || top[0].QuantitySold != 2 || top[0].Revenue != "40.00" {
		t.Fatalf("unexpected top seller: %+v", top[0])
	}
}
