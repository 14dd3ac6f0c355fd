package db

import "errors"

// Domain-level database error sentinels.
var (
	// Request errors
	ErrRequestNotFound = errors.New("request not found")

	// Response errors
	ErrResponseNotFound = errors.New("response not found")
	ErrRequestClosed    = errors.New("request is closed")
)
