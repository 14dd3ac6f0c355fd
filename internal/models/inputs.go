package models

// RequestInput is the raw input for creating a request. The validation
// package normalizes it in place before it reaches persistence.
type RequestInput struct {
	ItemName       string `json:"item_name"`
	QuantityNeeded int    `json:"quantity_needed"`
	Unit           string `json:"unit"`
	Description    string `json:"description"`
}

// RequestPatch is a partial update to a request. Nil fields are untouched.
type RequestPatch struct {
	ItemName       *string `json:"item_name"`
	QuantityNeeded *int    `json:"quantity_needed"`
	Unit           *string `json:"unit"`
	Description    *string `json:"description"`
	Status         *string `json:"status"`
}

// Empty reports whether the patch carries no fields at all.
func (p *RequestPatch) Empty() bool {
	return p.ItemName == nil && p.QuantityNeeded == nil && p.Unit == nil &&
		p.Description == nil && p.Status == nil
}

// ResponseInput is the raw input for a public response submission.
type ResponseInput struct {
	ResponderName     *string `json:"responder_name"`
	ResponderContact  *string `json:"responder_contact"`
	QuantityAvailable int     `json:"quantity_available"`
	Location          string  `json:"location"`
	Notes             *string `json:"notes"`
}
