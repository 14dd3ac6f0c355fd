package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"

	"relieflink/internal/db"
	"relieflink/internal/validation"
)

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation errors", validation.Errors{{Field: "item_name", Message: "required"}}, fiber.StatusBadRequest},
		{"request not found", db.ErrRequestNotFound, fiber.StatusNotFound},
		{"response not found", db.ErrResponseNotFound, fiber.StatusNotFound},
		{"request closed", db.ErrRequestClosed, fiber.StatusConflict},
		{"wrapped sentinel", errors.New("wrapped: " + db.ErrRequestClosed.Error()), fiber.StatusInternalServerError},
		{"unknown error", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c fiber.Ctx) error {
				return handleError(c, tt.err)
			})

			req, _ := http.NewRequest("GET", "/", nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		perPage   int
		total     int
		wantPages int
	}{
		{"exact fit", 1, 50, 100, 2},
		{"partial last page", 1, 50, 101, 3},
		{"empty", 1, 50, 0, 0},
		{"single item", 1, 50, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paginate(tt.page, tt.perPage, tt.total)
			if p.Pages != tt.wantPages {
				t.Errorf("expected %d pages, got %d", tt.wantPages, p.Pages)
			}
			if p.Page != tt.page || p.PerPage != tt.perPage || p.Total != tt.total {
				t.Errorf("pagination window mismatch: %+v", p)
			}
		})
	}
}
