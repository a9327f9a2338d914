package catalog

import (
	"strings"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
)

const (
	defaultCatalogSize = 28
	defaultSeedStock   = 20
	defaultSeedImage   = "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400&q=80"
	defaultSeedBlurb   = "This represents a detailed description of the book. It covers the main themes, " +
		"the author's background, and why this book is a must-read for enthusiasts of the genre. " +
		"Perfect for expanding your knowledge."
)

var seedTitles = []string{"The Great Gatsby", "Atomic Habits", "Deep Work", "Rich Dad Poor Dad"}
var seedAuthors = []string{"F. Scott Fitzgerald", "James Clear", "Cal Newport", "Robert Kiyosaki"}
var seedPrices = []int{1250, 2100, 1850, 1500}
var seedCategories = []string{"Fiction", "Self-Help", "Productivity", "Finance"}

// DefaultCatalog generates the starter catalog used on first boot.
func DefaultCatalog() []models.Book {
	books := make([]models.Book, 0, defaultCatalogSize)
	for i := 0; i < defaultCatalogSize; i++ {
		title := seedTitles[i%4]
		author := seedAuthors[i%4]
		price := seedPrices[i%4]
		books = append(books, models.Book{
			Title:              title,
			Author:             author,
			PriceCents:         price,
			OriginalPriceCents: price,
			Category:           seedCategories[i%4],
			Description:        defaultSeedBlurb,
			Image:              defaultSeedImage,
			Rating:             4.5,
			StockQty:           defaultSeedStock,
			StockStatus:        enums.StockStatusForQty(defaultSeedStock),
			Keywords:           []string{strings.ToLower(title), strings.ToLower(author), "book"},
		})
	}
	return books
}
