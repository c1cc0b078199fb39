package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/meinhoongagan/tutor-booking/sessions"
)

const (
	tokenKey   = "sessionToken"
	sessionKey = "session"
)

var errUnauthorized = fiber.NewError(fiber.StatusForbidden, "Unauthorized")

// RequireUser rejects API requests without a valid session cookie with 403.
func RequireUser(m *sessions.Manager) fiber.Handler {
	return protected(m, false)
}

// RequireAdmin is RequireUser restricted to the ADMIN role.
func RequireAdmin(m *sessions.Manager) fiber.Handler {
	return protected(m, true)
}

func protected(m *sessions.Manager, adminOnly bool) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    m.Key(),
		SigningMethod: "HS256",
		TokenLookup:   "cookie:" + sessions.CookieName,
		ContextKey:    tokenKey,
		Claims:        &sessions.Claims{},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return errUnauthorized
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals(tokenKey).(*jwt.Token)
			if !ok {
				return errUnauthorized
			}
			s, err := m.FromToken(c.UserContext(), token)
			if err != nil {
				return errUnauthorized
			}
			if adminOnly && !s.IsAdmin() {
				return errUnauthorized
			}
			c.Locals(sessionKey, s)
			return c.Next()
		},
	})
}

// CurrentSession returns the session stored by one of the gates, or nil.
func CurrentSession(c *fiber.Ctx) *sessions.Session {
	s, _ := c.Locals(sessionKey).(*sessions.Session)
	return s
}
