package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/tutor-booking/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(api fiber.Router, h Handlers) {
	auth := api.Group("/auth")

	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/logout", h.Auth.Logout)
	auth.Get("/session", h.Auth.Session)

	auth.Get("/me", middleware.RequireUser(h.Sessions), h.Auth.Me)
}
