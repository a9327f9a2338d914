package cart

// namespacePrefix keys each session's serialized cart inside the state store.
const namespacePrefix = "user-cart-storage"

// Item is one cart entry: a snapshot of the book fields the storefront
// renders plus the quantity and checkout selection flag. One entry exists
// per distinct book id.
type Item struct {
	BookID     int    `json:"book_id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	PriceCents int    `json:"price_cents"`
	Image      string `json:"image,omitempty"`
	Quantity   int    `json:"quantity"`
	Selected   bool   `json:"selected"`
}

// state is the full persisted cart blob for one session.
type state struct {
	Items []Item `json:"items"`
}

// Namespace returns the state store key for a session's cart.
func Namespace(sessionID string) string {
	return namespacePrefix + ":" + sessionID
}

func (s *state) find(bookID int) int {
	for i := range s.Items {
		if s.Items[i].BookID == bookID {
			return i
		}
	}
	return -1
}

// totalItems is the sum of quantities across every entry.
func (s *state) totalItems() int {
	total := 0
	for i := range s.Items {
		total += s.Items[i].Quantity
	}
	return total
}

// selectedSubtotalCents sums price*quantity over selected entries only.
func (s *state) selectedSubtotalCents() int {
	total := 0
	for i := range s.Items {
		if s.Items[i].Selected {
			total += s.Items[i].PriceCents * s.Items[i].Quantity
		}
	}
	return total
}

// selectedItems copies the selected entries out of the cart.
func (s *state) selectedItems() []Item {
	out := make([]Item, 0, len(s.Items))
	for i := range s.Items {
		if s.Items[i].Selected {
			out = append(out, s.Items[i])
		}
	}
	return out
}
