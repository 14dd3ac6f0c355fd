package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
)

// Session keys for the admin login state.
const (
	SessionKeyIsAdmin   = "is_admin"
	SessionKeyAdminUser = "admin_user"
)

// RequireAdmin ensures the caller holds an authenticated admin session.
// API callers get a JSON 401 rather than a redirect.
func RequireAdmin(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return unauthorized(c)
	}

	isAdmin, _ := sess.Get(SessionKeyIsAdmin).(bool)
	if !isAdmin {
		return unauthorized(c)
	}

	username, _ := sess.Get(SessionKeyAdminUser).(string)
	c.Locals(SessionKeyAdminUser, username)
	return c.Next()
}

// AdminUser returns the acting administrator identity set by RequireAdmin.
func AdminUser(c fiber.Ctx) string {
	username, _ := c.Locals(SessionKeyAdminUser).(string)
	return username
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status": "error",
		"error":  "authentication required",
	})
}
