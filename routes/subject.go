package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/tutor-booking/middleware"
)

// SetupSubjectRoutes: public reads, admin writes.
func SetupSubjectRoutes(api fiber.Router, h Handlers) {
	admin := middleware.RequireAdmin(h.Sessions)
	subjects := api.Group("/subjects")

	subjects.Get("/", h.Subjects.List)
	subjects.Get("/:id", h.Subjects.Get)
	subjects.Post("/", admin, h.Subjects.Create)
	subjects.Put("/:id", admin, h.Subjects.Update)
	subjects.Delete("/:id", admin, h.Subjects.Delete)

	subjects.Post("/:id/image", admin, h.Subjects.UploadImage)
	subjects.Post("/:id/teachers", admin, h.Subjects.AddTeacher)
	subjects.Delete("/:id/teachers/:teacherId", admin, h.Subjects.RemoveTeacher)
}
