package catalog

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
	"github.com/bookhaven/bookhaven-backend/pkg/pagination"
)

func mustCreateTestBook(t *testing.T, repo *Repository, title, author, category string, price int) *models.Book {
	t.Helper()
	book, err := repo.Create(context.Background(), &models.Book{
		Title:       title,
		Author:      author,
		PriceCents:  price,
		Category:    category,
		Rating:      4.0,
		StockQty:    10,
		StockStatus: enums.StockStatusInStock,
		Keywords:    []string{"book"},
	})
	if err != nil {
		t.Fatalf("create book: %v", err)
	}
	return book
}

func TestRepositoryBookFlow(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	created := mustCreateTestBook(t, repo, "Test Driven Design", "Ann Author", "Tech", 1999)
	if created.ID == 0 {
		t.Fatal("expected book id to be generated")
	}

	fetched, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if fetched.Title != "Test Driven Design" {
		t.Fatalf("expected title to round-trip, got %q", fetched.Title)
	}

	fetched.Title = "Updated Title"
	if _, err := repo.Update(ctx, fetched); err != nil {
		t.Fatalf("update book: %v", err)
	}
	again, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find after update: %v", err)
	}
	if again.Title != "Updated Title" {
		t.Fatalf("expected updated title, got %q", again.Title)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete book: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected record not found on second delete, got %v", err)
	}
}

func TestRepositoryListFilters(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	mustCreateTestBook(t, repo, "Deep Work", "Cal Newport", "Productivity", 1850)
	mustCreateTestBook(t, repo, "Atomic Habits", "James Clear", "Self-Help", 2100)
	mustCreateTestBook(t, repo, "Deeper Still", "Cal Newport", "Productivity", 1600)

	books, total, err := repo.List(ctx, ListFilter{Search: "deep"})
	if err != nil {
		t.Fatalf("list with search: %v", err)
	}
	if total != 2 || len(books) != 2 {
		t.Fatalf("expected 2 matches for 'deep', got total=%d len=%d", total, len(books))
	}

	books, total, err = repo.List(ctx, ListFilter{Category: "Self-Help"})
	if err != nil {
		t.Fatalf("list with category: %v", err)
	}
	if total != 1 || books[0].Title != "Atomic Habits" {
		t.Fatalf("expected Atomic Habits in Self-Help, got total=%d", total)
	}

	books, total, err = repo.List(ctx, ListFilter{Search: "newport", Category: "Productivity"})
	if err != nil {
		t.Fatalf("list with search+category: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 Newport productivity books, got %d", total)
	}

	books, _, err = repo.List(ctx, ListFilter{Page: pagination.Params{Limit: 1, Page: 2}})
	if err != nil {
		t.Fatalf("list with paging: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("expected a single row on page 2, got %d", len(books))
	}
}
