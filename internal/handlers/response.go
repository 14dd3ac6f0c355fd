package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgconn"

	"relieflink/internal/db"
	"relieflink/internal/validation"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonCreated returns a 201 response with data wrapped in the standard envelope.
func jsonCreated(c fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// handleError maps domain errors onto HTTP responses: field-level rejections
// to 400 with details, absent ids to 404, lifecycle conflicts to 409, an
// unreachable store to 503. Anything else is a plain 500; errors are never
// used for control flow beyond this mapping.
func handleError(c fiber.Ctx, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "error",
			"error":  "validation failed",
			"fields": verrs,
		})
	}

	switch {
	case errors.Is(err, db.ErrRequestNotFound):
		return jsonError(c, fiber.StatusNotFound, "request not found")
	case errors.Is(err, db.ErrResponseNotFound):
		return jsonError(c, fiber.StatusNotFound, "response not found")
	case errors.Is(err, db.ErrRequestClosed):
		return jsonError(c, fiber.StatusConflict, "request is closed to new responses")
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return jsonError(c, fiber.StatusServiceUnavailable, "store unavailable")
	}

	return jsonError(c, fiber.StatusInternalServerError, "internal server error")
}
