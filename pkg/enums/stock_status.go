package enums

// LowStockThreshold is the quantity at or below which a book counts as
// running low.
const LowStockThreshold = 5

// StockStatus mirrors the catalog's coarse availability buckets.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "IN_STOCK"
	StockStatusLowStock   StockStatus = "LOW_STOCK"
	StockStatusOutOfStock StockStatus = "OUT_OF_STOCK"
)

var validStockStatuses = []StockStatus{
	StockStatusInStock,
	StockStatusLowStock,
	StockStatusOutOfStock,
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// StockStatusForQty derives the bucket for a stock count.
func StockStatusForQty(qty int) StockStatus {
	switch {
	case qty <= 0:
		return StockStatusOutOfStock
	case qty <= LowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}
