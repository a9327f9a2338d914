package reporting

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	pkgerrors "github.com/bookhaven/bookhaven-backend/pkg/errors"
)

// Service computes sales reports over the mirrored orders table. Money is
// surfaced as decimal strings so display code never touches float cents.
type Service interface {
	SalesSummary(ctx context.Context) (*SalesSummaryDTO, error)
	MonthlyRevenue(ctx context.Context) ([]MonthlyRevenueDTO, error)
	TopSellingBooks(ctx context.Context, limit int) ([]TopSellingBookDTO, error)
}

// SalesSummaryDTO aggregates all recorded orders.
type SalesSummaryDTO struct {
	TotalOrders     int64             `json:"total_orders"`
	TotalRevenue    string            `json:"total_revenue"`
	RevenueByStatus map[string]string `json:"revenue_by_status"`
}

// MonthlyRevenueDTO is one month's order count and revenue.
type MonthlyRevenueDTO struct {
	Month   string `json:"month"`
	Orders  int    `json:"orders"`
	Revenue string `json:"revenue"`
}

// TopSellingBookDTO aggregates one book's sold quantity and revenue.
type TopSellingBookDTO struct {
	BookID       int    `json:"book_id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	QuantitySold int    `json:"quantity_sold"`
	Revenue      string `json:"revenue"`
}

const defaultTopSellerLimit = 10

type service struct {
	db *gorm.DB
}

// NewService constructs a reporting service instance.
func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db connection required")
	}
	return &service{db: db}, nil
}

func (s *service) loadOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Find(&orders).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load orders")
	}
	return orders, nil
}

// SalesSummary totals revenue across every order, split by status.
func (s *service) SalesSummary(ctx context.Context) (*SalesSummaryDTO, error) {
	orders, err := s.loadOrders(ctx)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	byStatus := map[string]decimal.Decimal{}
	for i := range orders {
		amount := centsToDecimal(orders[i].TotalAmountCents)
		total = total.Add(amount)
		status := orders[i].Status.String()
		byStatus[status] = byStatus[status].Add(amount)
	}

	out := &SalesSummaryDTO{
		TotalOrders:     int64(len(orders)),
		TotalRevenue:    total.StringFixed(2),
		RevenueByStatus: map[string]string{},
	}
	for status, amount := range byStatus {
		out.RevenueByStatus[status] = amount.StringFixed(2)
	}
	return out, nil
}

// MonthlyRevenue buckets orders by calendar month, oldest first.
func (s *service) MonthlyRevenue(ctx context.Context) ([]MonthlyRevenueDTO, error) {
	orders, err := s.loadOrders(ctx)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		orders  int
		revenue decimal.Decimal
	}
	months := map[string]*bucket{}
	for i := range orders {
		key := orders[i].CreatedAt.Format("2006-01")
		b, ok := months[key]
		if !ok {
			b = &bucket{}
			months[key] = b
		}
		b.orders++
		b.revenue = b.revenue.Add(centsToDecimal(orders[i].TotalAmountCents))
	}

	out := make([]MonthlyRevenueDTO, 0, len(months))
	for key, b := range months {
		out = append(out, MonthlyRevenueDTO{
			Month:   key,
			Orders:  b.orders,
			Revenue: b.revenue.StringFixed(2),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// TopSellingBooks ranks books by sold quantity across every order's item
// snapshots.
func (s *service) TopSellingBooks(ctx context.Context, limit int) ([]TopSellingBookDTO, error) {
	if limit <= 0 {
		limit = defaultTopSellerLimit
	}

	orders, err := s.loadOrders(ctx)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		title    string
		author   string
		quantity int
		revenue  decimal.Decimal
	}
	books := map[int]*bucket{}
	for i := range orders {
		for _, item := range orders[i].Items {
			b, ok := books[item.BookID]
			if !ok {
				b = &bucket{title: item.Title, author: item.Author}
				books[item.BookID] = b
			}
			b.quantity += item.Quantity
			b.revenue = b.revenue.Add(centsToDecimal(item.PriceCents * item.Quantity))
		}
	}

	out := make([]TopSellingBookDTO, 0, len(books))
	for id, b := range books {
		out = append(out, TopSellingBookDTO{
			BookID:       id,
			Title:        b.title,
			Author:       b.author,
			QuantitySold: b.quantity,
			Revenue:      b.revenue.StringFixed(2),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].QuantitySold != out[j].QuantitySold {
			return out[i].QuantitySold > out[j].QuantitySold
		}
		return out[i].BookID < out[j].BookID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func centsToDecimal(cents int) decimal.Decimal {
	return decimal.New(int64(cents), -2)
}
