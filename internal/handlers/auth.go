package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"relieflink/internal/config"
	"relieflink/internal/middleware"
	"relieflink/internal/models"
)

// AuthHandler handles credential-based admin login.
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// Login validates admin credentials and establishes an admin session.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.Username == "" || body.Password == "" {
		return jsonError(c, fiber.StatusBadRequest, "username and password are required")
	}

	userOK := subtle.ConstantTimeCompare([]byte(body.Username), []byte(h.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(body.Password), []byte(h.cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		slog.Warn("failed admin login attempt", "username", body.Username, "ip", c.IP())
		return jsonError(c, fiber.StatusUnauthorized, "invalid username or password")
	}

	sess := session.FromContext(c)
	if sess == nil {
		return jsonError(c, fiber.StatusInternalServerError, "session not available")
	}
	sess.Set(middleware.SessionKeyIsAdmin, true)
	sess.Set(middleware.SessionKeyAdminUser, body.Username)

	return jsonSuccess(c, models.AuthStatusResponse{
		Authenticated: true,
		Username:      body.Username,
	})
}

// Logout destroys the admin session.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess != nil {
		if err := sess.Destroy(); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "failed to destroy session")
		}
	}
	return jsonSuccess(c, models.AuthStatusResponse{Authenticated: false})
}

// Status reports whether the caller holds an admin session.
func (h *AuthHandler) Status(c fiber.Ctx) error {
	status := models.AuthStatusResponse{}

	sess := session.FromContext(c)
	if sess != nil {
		status.Authenticated, _ = sess.Get(middleware.SessionKeyIsAdmin).(bool)
		status.Username, _ = sess.Get(middleware.SessionKeyAdminUser).(string)
	}

	return jsonSuccess(c, status)
}
