package models

// Pagination describes the page window of a list response.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// RequestListResponse is the payload for paginated request listings.
type RequestListResponse struct {
	Requests   []Request  `json:"requests"`
	Pagination Pagination `json:"pagination"`
}

// RequestDetailResponse is the payload for a single request with its
// responses and the derived remaining need.
type RequestDetailResponse struct {
	Request          *Request   `json:"request"`
	Responses        []Response `json:"responses"`
	AcceptedQuantity int        `json:"accepted_quantity"`
	RemainingNeed    int        `json:"remaining_need"`
}

// AuthStatusResponse reports whether the caller holds an admin session.
type AuthStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// HealthResponse is the payload for the store reachability probe.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
