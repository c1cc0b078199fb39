package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/tutor-booking/middleware"
)

// Admin gates are attached per route. Group middleware matches by prefix and
// would also catch unrelated paths such as /administrator.
func SetupAdminRoutes(api fiber.Router, h Handlers) {
	admin := api.Group("/admin")
	gate := middleware.RequireAdmin(h.Sessions)

	admin.Get("/stats", gate, h.Admin.Stats)
	admin.Get("/bookings", gate, h.Admin.Bookings)
	admin.Get("/users", gate, h.Users.List)
	admin.Put("/users/:id/role", gate, h.Users.SetRole)
}

// SetupPageRoutes serves the HTML pages. Gated pages redirect to /login.
func SetupPageRoutes(app *fiber.App, h Handlers) {
	app.Get("/login", h.Admin.LoginPage)

	pages := app.Group("/admin")
	gate := middleware.RequireAdminPage(h.Sessions)

	pages.Get("/", gate, func(c *fiber.Ctx) error {
		return c.Redirect("/admin/dashboard", fiber.StatusSeeOther)
	})
	pages.Get("/dashboard", gate, h.Admin.Dashboard)
}
