package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"relieflink/internal/db"
	"relieflink/internal/middleware"
	"relieflink/internal/models"
	"relieflink/internal/validation"
)

// RequestHandler handles administrative request CRUD operations.
type RequestHandler struct {
	db *db.DB
}

// NewRequestHandler creates a new request handler.
func NewRequestHandler(database *db.DB) *RequestHandler {
	return &RequestHandler{db: database}
}

// List returns all requests with response counts, paginated.
func (h *RequestHandler) List(c fiber.Ctx) error {
	page, perPage, err := validation.ValidatePagination(c.Query("page"), c.Query("per_page"))
	if err != nil {
		return handleError(c, err)
	}

	openOnly := c.Query("status") == models.StatusOpen
	requests, total, err := h.db.ListRequests(c.Context(), openOnly, page, perPage)
	if err != nil {
		return handleError(c, err)
	}

	return jsonSuccess(c, models.RequestListResponse{
		Requests:   requests,
		Pagination: paginate(page, perPage, total),
	})
}

// Create creates a new open request.
func (h *RequestHandler) Create(c fiber.Ctx) error {
	var input models.RequestInput
	if err := json.Unmarshal(c.Body(), &input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := validation.ValidateRequestCreate(&input); err != nil {
		return handleError(c, err)
	}

	req, err := h.db.CreateRequest(c.Context(), &input, middleware.AdminUser(c))
	if err != nil {
		return handleError(c, err)
	}

	return jsonCreated(c, req)
}

// Get returns a single request with its responses and derived remaining need.
func (h *RequestHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	req, err := h.db.GetRequestByID(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}

	return renderRequestDetail(c, h.db, req)
}

// Update applies a partial update; a status change gets its own audit tag.
func (h *RequestHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	var patch models.RequestPatch
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if patch.Empty() {
		return jsonError(c, fiber.StatusBadRequest, "no valid fields to update")
	}

	if err := validation.ValidateRequestPatch(&patch); err != nil {
		return handleError(c, err)
	}

	req, err := h.db.UpdateRequest(c.Context(), id, &patch, middleware.AdminUser(c))
	if err != nil {
		return handleError(c, err)
	}

	return jsonSuccess(c, req)
}

// Delete removes a request and cascades its responses.
func (h *RequestHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	if err := h.db.DeleteRequest(c.Context(), id, middleware.AdminUser(c)); err != nil {
		return handleError(c, err)
	}

	return jsonSuccess(c, fiber.Map{"deleted": id})
}

// Activity returns the audit trail for a request, newest first.
func (h *RequestHandler) Activity(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	if _, err := h.db.GetRequestByID(c.Context(), id); err != nil {
		return handleError(c, err)
	}

	entries, err := h.db.GetActivityByRequestID(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}

	return jsonSuccess(c, entries)
}

// renderRequestDetail assembles the detail payload shared by the admin and
// public surfaces.
func renderRequestDetail(c fiber.Ctx, database *db.DB, req *models.Request) error {
	responses, err := database.GetResponsesByRequestID(c.Context(), req.ID)
	if err != nil {
		return handleError(c, err)
	}

	return jsonSuccess(c, models.RequestDetailResponse{
		Request:          req,
		Responses:        responses,
		AcceptedQuantity: models.AcceptedQuantity(responses),
		RemainingNeed:    req.RemainingNeed(responses),
	})
}

// paginate computes pagination metadata for a list response.
func paginate(page, perPage, total int) models.Pagination {
	return models.Pagination{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   (total + perPage - 1) / perPage,
	}
}
