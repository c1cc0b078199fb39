package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/tutor-booking/controllers"
	"github.com/meinhoongagan/tutor-booking/sessions"
)

// Handlers bundles every controller the router needs.
type Handlers struct {
	Sessions  *sessions.Manager
	Auth      *controllers.AuthController
	Subjects  *controllers.SubjectController
	Schedules *controllers.ScheduleController
	Bookings  *controllers.BookingController
	Users     *controllers.UserController
	Admin     *controllers.AdminController
	Health    *controllers.HealthController
}

func Setup(app *fiber.App, h Handlers) {
	api := app.Group("/api")
	api.Get("/health", h.Health.Check)

	SetupAuthRoutes(api, h)
	SetupSubjectRoutes(api, h)
	SetupScheduleRoutes(api, h)
	SetupBookingRoutes(api, h)
	SetupAdminRoutes(api, h)
	SetupPageRoutes(app, h)
}
