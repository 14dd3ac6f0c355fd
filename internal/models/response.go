package models

import (
	"time"

	"github.com/google/uuid"
)

// Response represents a public offer of quantity against a specific request.
type Response struct {
	ID                uuid.UUID `json:"id"`
	RequestID         uuid.UUID `json:"request_id"`
	ResponderName     *string   `json:"responder_name"`
	ResponderContact  *string   `json:"responder_contact"`
	QuantityAvailable int       `json:"quantity_available"`
	Location          string    `json:"location"`
	Notes             *string   `json:"notes"`
	Accepted          bool      `json:"accepted"`
	CreatedAt         time.Time `json:"created_at"`
}
