package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"relieflink/internal/config"
)

func newAuthTestApp() *fiber.App {
	cfg := &config.Config{
		AdminUsername: "admin",
		AdminPassword: "secret",
	}
	h := NewAuthHandler(cfg)

	app := fiber.New()
	sessionMiddleware, _ := session.NewWithStore(session.Config{})
	app.Use(sessionMiddleware)

	app.Post("/api/auth/login", h.Login)
	app.Post("/api/auth/logout", h.Logout)
	app.Get("/api/auth/status", h.Status)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req, _ := http.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid credentials", `{"username":"admin","password":"secret"}`, fiber.StatusOK},
		{"wrong password", `{"username":"admin","password":"nope"}`, fiber.StatusUnauthorized},
		{"wrong username", `{"username":"root","password":"secret"}`, fiber.StatusUnauthorized},
		{"missing fields", `{"username":"admin"}`, fiber.StatusBadRequest},
		{"malformed body", `not json`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAuthTestApp()
			resp := postJSON(t, app, "/api/auth/login", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}

func TestLoginEstablishesSession(t *testing.T) {
	app := newAuthTestApp()

	resp := postJSON(t, app, "/api/auth/login", `{"username":"admin","password":"secret"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie returned")
	}

	req, _ := http.NewRequest("GET", "/api/auth/status", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	statusResp, err := app.Test(req)
	if err != nil {
		t.Fatalf("status request failed: %v", err)
	}
	if statusResp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200 from status, got %d", statusResp.StatusCode)
	}
}
