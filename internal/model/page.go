package model

// Paging bounds shared by every list endpoint.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page selects a window of a list result.
type Page struct {
	Limit  int
	Offset int
}

// DefaultPage is the window used when no paging parameters are given.
func DefaultPage() Page { return Page{Limit: DefaultLimit} }

// BookingFilter narrows a booking list.  An empty Status matches every row.
type BookingFilter struct {
	Status string
}

// NotificationFilter narrows a notification list.  An empty UserID matches
// every row.
type NotificationFilter struct {
	UserID string
}
