package enums

import "fmt"

// ContactStatus follows a contact message through the support queue.
type ContactStatus string

const (
	ContactStatusPending ContactStatus = "PENDING"
	ContactStatusReplied ContactStatus = "REPLIED"
	ContactStatusClosed  ContactStatus = "CLOSED"
)

var validContactStatuses = []ContactStatus{
	ContactStatusPending,
	ContactStatusReplied,
	ContactStatusClosed,
}

// String implements fmt.Stringer.
func (c ContactStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ContactStatus.
func (c ContactStatus) IsValid() bool {
	for _, candidate := range validContactStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseContactStatus converts raw input into a ContactStatus.
func ParseContactStatus(value string) (ContactStatus, error) {
	for _, candidate := range validContactStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid contact status %q", value)
}
