package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity log action tags.
const (
	ActionRequestCreated     = "request_created"
	ActionRequestUpdated     = "request_updated"
	ActionRequestClosed      = "request_closed"
	ActionRequestReopened    = "request_reopened"
	ActionRequestDeleted     = "request_deleted"
	ActionResponseAccepted   = "response_accepted"
	ActionResponseUnaccepted = "response_unaccepted"
)

// ActivityEntry is an immutable record of an administrative state-changing
// action. Entries are only ever inserted, never updated or deleted by the
// application.
type ActivityEntry struct {
	ID         uuid.UUID  `json:"id"`
	Action     string     `json:"action"`
	RequestID  *uuid.UUID `json:"request_id"`
	ResponseID *uuid.UUID `json:"response_id"`
	AdminUser  string     `json:"admin_user"`
	Details    string     `json:"details"`
	CreatedAt  time.Time  `json:"created_at"`
}
