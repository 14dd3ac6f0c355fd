package server

import (
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/encryptcookie"
	"github.com/gofiber/fiber/v3/middleware/session"

	"relieflink/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:           "development",
		ServerAddr:    ":0",
		BaseURL:       "http://localhost:3000",
		AdminUsername: "admin",
		AdminPassword: "secret",
		SessionSecret: "test-secret-that-is-long-enough-for-production",
	}
}

// TestEncryptCookieSessionRoundTrip verifies that the encryptcookie +
// session middleware stack survives a client replaying encrypted session
// cookies across multiple requests.
func TestEncryptCookieSessionRoundTrip(t *testing.T) {
	// Use the same key-derivation as production (deriveEncryptionKey).
	secret := "test-secret-that-is-long-enough-for-production"
	encryptionKey := deriveEncryptionKey(secret)

	app := fiber.New()

	// Mirror the production middleware order:
	// 1. encryptcookie  2. session  3. route handler
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: encryptionKey,
	}))

	sessionMiddleware, _ := session.NewWithStore(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	app.Use(sessionMiddleware)

	app.Post("/session-set", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		sess.Set("admin_user", "alice")
		return c.SendString("ok")
	})
	app.Get("/session-get", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		val, _ := sess.Get("admin_user").(string)
		return c.SendString(val)
	})

	req, _ := http.NewRequest("POST", "/session-set", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request 1 failed: %v", err)
	}
	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("request 1: expected 200, got %d: %s", resp.StatusCode, body)
	}

	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("request 1: no cookies returned")
	}

	// Replaying the encrypted cookie exercises decryption.
	req2, _ := http.NewRequest("GET", "/session-get", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	resp2, err := app.Test(req2)
	if err != nil {
		t.Fatalf("request 2 failed: %v", err)
	}
	body, _ := io.ReadAll(resp2.Body)
	if resp2.StatusCode != 200 {
		t.Fatalf("request 2: expected 200, got %d: %s", resp2.StatusCode, body)
	}
	if string(body) != "alice" {
		t.Errorf("request 2: expected session value 'alice', got %q", body)
	}
}

// TestErrorHandlerJSON verifies unknown routes get the JSON error envelope.
func TestErrorHandlerJSON(t *testing.T) {
	srv := New(testConfig())

	req, _ := http.NewRequest("GET", "/no-such-route", nil)
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != fiber.MIMEApplicationJSON {
		t.Errorf("expected JSON content type, got %q", ct)
	}
}
