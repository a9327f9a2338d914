package types

import "strings"

// ShippingDetails captures the delivery fields collected at checkout.
type ShippingDetails struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// IsZero reports whether no shipping field was provided.
func (s ShippingDetails) IsZero() bool {
	return strings.TrimSpace(s.FullName) == "" &&
		strings.TrimSpace(s.Phone) == "" &&
		strings.TrimSpace(s.Address) == "" &&
		strings.TrimSpace(s.City) == "" &&
		strings.TrimSpace(s.PostalCode) == ""
}
