package domain

import "time"

// BookAvailabilityUpdate is the event published whenever a book's
// availability flag changes.
type BookAvailabilityUpdate struct {
	BookID    int64     `json:"book_id"`
	Title     string    `json:"title"`
	Available bool      `json:"available"`
	Timestamp time.Time `json:"timestamp"`
}
