package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"relieflink/internal/db"
	"relieflink/internal/models"
	"relieflink/internal/validation"
)

// PublicHandler serves the unauthenticated surface: browsing open requests
// and submitting offers against them.
type PublicHandler struct {
	db *db.DB
}

// NewPublicHandler creates a new public handler.
func NewPublicHandler(database *db.DB) *PublicHandler {
	return &PublicHandler{db: database}
}

// ListRequests returns open requests only, paginated, newest first.
func (h *PublicHandler) ListRequests(c fiber.Ctx) error {
	page, perPage, err := validation.ValidatePagination(c.Query("page"), c.Query("per_page"))
	if err != nil {
		return handleError(c, err)
	}

	requests, total, err := h.db.ListRequests(c.Context(), true, page, perPage)
	if err != nil {
		return handleError(c, err)
	}

	return jsonSuccess(c, models.RequestListResponse{
		Requests:   requests,
		Pagination: paginate(page, perPage, total),
	})
}

// GetRequest returns a single open request with its responses and remaining
// need. Closed requests are not visible here.
func (h *PublicHandler) GetRequest(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	req, err := h.db.GetOpenRequestByID(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}

	return renderRequestDetail(c, h.db, req)
}

// SubmitResponse records an offer against an open request. A request closed
// between page load and submission yields a conflict, not a silent insert.
func (h *PublicHandler) SubmitResponse(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	var input models.ResponseInput
	if err := json.Unmarshal(c.Body(), &input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := validation.ValidateResponseCreate(&input); err != nil {
		return handleError(c, err)
	}

	resp, err := h.db.CreateResponse(c.Context(), id, &input)
	if err != nil {
		return handleError(c, err)
	}

	return jsonCreated(c, resp)
}
