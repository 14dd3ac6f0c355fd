package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"relieflink/internal/db"
	"relieflink/internal/middleware"
)

// ResponseHandler handles administrative acceptance toggling.
type ResponseHandler struct {
	db *db.DB
}

// NewResponseHandler creates a new response handler.
func NewResponseHandler(database *db.DB) *ResponseHandler {
	return &ResponseHandler{db: database}
}

// Accept marks a response as accepted. Accepting an already-accepted
// response succeeds without side effects.
func (h *ResponseHandler) Accept(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid response id")
	}

	resp, err := h.db.AcceptResponse(c.Context(), id, middleware.AdminUser(c))
	if err != nil {
		return handleError(c, err)
	}

	return jsonSuccess(c, resp)
}

// Unaccept reverts an accepted response.
func (h *ResponseHandler) Unaccept(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid response id")
	}

	resp, err := h.db.UnacceptResponse(c.Context(), id, middleware.AdminUser(c))
	if err != nil {
		return handleError(c, err)
	}

	return jsonSuccess(c, resp)
}
