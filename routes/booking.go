package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/tutor-booking/middleware"
)

// SetupBookingRoutes: every route needs a session; ownership is checked by the service.
func SetupBookingRoutes(api fiber.Router, h Handlers) {
	bookings := api.Group("/bookings")
	gate := middleware.RequireUser(h.Sessions)

	bookings.Get("/", gate, h.Bookings.List)
	bookings.Post("/", gate, h.Bookings.Create)
	bookings.Get("/:id", gate, h.Bookings.Get)
	bookings.Put("/:id", gate, h.Bookings.UpdateStatus)
}
