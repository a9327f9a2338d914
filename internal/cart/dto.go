package cart

// CartDTO represents a session's cart payload returned to clients. Totals
// are derived on every read, never stored.
type CartDTO struct {
	Items                 []Item `json:"items"`
	TotalItems            int    `json:"total_items"`
	SelectedSubtotalCents int    `json:"selected_subtotal_cents"`
}

func newCartDTO(s *state) *CartDTO {
	items := s.Items
	if items == nil {
		items = []Item{}
	}
	return &CartDTO{
		Items:                 items,
		TotalItems:            s.totalItems(),
		SelectedSubtotalCents: s.selectedSubtotalCents(),
	}
}
