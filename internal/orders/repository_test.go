package orders

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
	"github.com/bookhaven/bookhaven-backend/pkg/pagination"
)

func seedOrder(t *testing.T, repo *Repository, sessionID, orderID string, createdAt time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:        uuid.New(),
		OrderID:   orderID,
		SessionID: sessionID,
		Items: []models.OrderItem{
			{BookID: 1, Title: "Atomic Habits", Author: "James Clear", PriceCents: 1250, Quantity: 1},
		},
		SubtotalCents:    1250,
		ShippingFeeCents: 450,
		TotalAmountCents: 1700,
		Status:           enums.OrderStatusProcessing,
		PaymentMethod:    enums.PaymentMethodCard,
		CreatedAt:        createdAt,
	}
	created, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	return created
}

func TestRepositoryFindByOrderID(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	seedOrder(t, repo, "sess-1", "ORD-100001", time.Now().UTC())

	found, err := repo.FindByOrderID(context.Background(), "ORD-100001")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", found.SessionID)
	assert.Equal(t, enums.OrderStatusProcessing, found.Status)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Atomic Habits", found.Items[0].Title)

	_, err = repo.FindByOrderID(context.Background(), "ORD-999999")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryRejectsDuplicateOrderID(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	seedOrder(t, repo, "sess-1", "ORD-100002", time.Now().UTC())

	dup := &models.Order{
		ID:            uuid.New(),
		OrderID:       "ORD-100002",
		SessionID:     "sess-2",
		Status:        enums.OrderStatusProcessing,
		PaymentMethod: enums.PaymentMethodCard,
	}
	_, err := repo.Create(context.Background(), dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestRepositoryListBySessionNewestFirst(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedOrder(t, repo, "sess-1", "ORD-100003", base)
	seedOrder(t, repo, "sess-1", "ORD-100004", base.Add(time.Hour))
	seedOrder(t, repo, "sess-2", "ORD-100005", base.Add(2*time.Hour))

	orders, err := repo.ListBySession(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-100004", orders[0].OrderID)
	assert.Equal(t, "ORD-100003", orders[1].OrderID)
}

func TestRepositoryListPaginates(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedOrder(t, repo, "sess-1", fmt.Sprintf("ORD-10001%d", i), base.Add(time.Duration(i)*time.Minute))
	}

	orders, total, err := repo.List(context.Background(), pagination.Params{Limit: 2, Page: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-100014", orders[0].OrderID)

	orders, _, err = repo.List(context.Background(), pagination.Params{Limit: 2, Page: 3})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD-100010", orders[0].OrderID)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	seedOrder(t, repo, "sess-1", "ORD-100006", time.Now().UTC())

	found, err := repo.UpdateStatus(context.Background(), "ORD-100006", enums.OrderStatusShipped)
	require.NoError(t, err)
	assert.True(t, found)

	order, err := repo.FindByOrderID(context.Background(), "ORD-100006")
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, order.Status)

	found, err = repo.UpdateStatus(context.Background(), "ORD-999999", enums.OrderStatusShipped)
	require.NoError(t, err)
	assert.False(t, found)
}
