package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/tutor-booking/sessions"
)

const loginPath = "/login"

// RequireUserPage redirects anonymous visitors to the login page.
func RequireUserPage(m *sessions.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := m.GetSession(c)
		if s == nil {
			return c.Redirect(loginPath, fiber.StatusSeeOther)
		}
		c.Locals(sessionKey, s)
		return c.Next()
	}
}

// RequireAdminPage redirects anyone but an admin to the login page.
func RequireAdminPage(m *sessions.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := m.GetSession(c)
		if !s.IsAdmin() {
			return c.Redirect(loginPath, fiber.StatusSeeOther)
		}
		c.Locals(sessionKey, s)
		return c.Next()
	}
}
