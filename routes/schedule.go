package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/tutor-booking/middleware"
)

func SetupScheduleRoutes(api fiber.Router, h Handlers) {
	admin := middleware.RequireAdmin(h.Sessions)
	schedules := api.Group("/schedules")

	schedules.Get("/", h.Schedules.List)
	schedules.Get("/:id", h.Schedules.Get)
	schedules.Post("/", admin, h.Schedules.Create)
	schedules.Put("/:id", admin, h.Schedules.Update)
	schedules.Delete("/:id", admin, h.Schedules.Delete)
}
