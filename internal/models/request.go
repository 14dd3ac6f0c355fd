package models

import (
	"time"

	"github.com/google/uuid"
)

// Request statuses.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// ValidStatus reports whether s is one of the allowed request statuses.
func ValidStatus(s string) bool {
	return s == StatusOpen || s == StatusClosed
}

// Request represents an administrator-posted need for a quantity of an item.
type Request struct {
	ID             uuid.UUID `json:"id"`
	ItemName       string    `json:"item_name"`
	QuantityNeeded int       `json:"quantity_needed"`
	Unit           string    `json:"unit"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`

	// ResponseCount is populated by list queries only.
	ResponseCount int `json:"response_count,omitempty"`
}

// IsOpen reports whether the request still accepts responses.
func (r *Request) IsOpen() bool {
	return r.Status == StatusOpen
}

// RemainingNeed derives the outstanding quantity from the accepted responses.
// It is never stored; the response set is the single source of truth.
// Clamped at zero so over-fulfilled requests don't display a negative need.
func (r *Request) RemainingNeed(responses []Response) int {
	remaining := r.QuantityNeeded - AcceptedQuantity(responses)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AcceptedQuantity sums quantity_available over the accepted responses.
func AcceptedQuantity(responses []Response) int {
	total := 0
	for _, resp := range responses {
		if resp.Accepted {
			total += resp.QuantityAvailable
		}
	}
	return total
}
