package models

// StatusCount is a request count grouped by status.
type StatusCount struct {
	Status string
	Count  int64
}

// AcceptanceCount is a response count grouped by acceptance.
type AcceptanceCount struct {
	Accepted bool
	Count    int64
}

// ActionCount is an audit entry count grouped by action tag.
type ActionCount struct {
	Action string
	Count  int64
}
