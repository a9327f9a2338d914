package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/pagination"
)

// ListFilter narrows catalog list queries.
type ListFilter struct {
	Search   string
	Category string
	Page     pagination.Params
}

// Repository wires together catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}


// FindByID loads a single book.
func (r *Repository) FindByID(ctx context.Context, id int) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// List returns the filtered page of books plus the total match count.
// Search matches title and author case-insensitively.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Book, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Book{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		needle := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", needle, needle)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var books []models.Book
	if err := query.
		Order("id ASC").
		Limit(pagination.NormalizeLimit(filter.Page.Limit)).
		Offset(filter.Page.Offset()).
		Find(&books).Error; err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// Create persists a new book and returns it with its generated id.
func (r *Repository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// Update saves the full book row.
func (r *Repository) Update(ctx context.Context, book *models.Book) (*models.Book, error) {
	if err := r.db.WithContext(ctx).Save(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// Delete removes the book row. Missing rows surface as gorm.ErrRecordNotFound.
func (r *Repository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&models.Book{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count reports how many books exist in the catalog.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
