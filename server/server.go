// Package server assembles the Fiber application.
package server

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/meinhoongagan/tutor-booking/controllers"
	"github.com/meinhoongagan/tutor-booking/routes"
	"github.com/meinhoongagan/tutor-booking/services"
	"github.com/meinhoongagan/tutor-booking/sessions"
	"github.com/meinhoongagan/tutor-booking/utils"
	"github.com/meinhoongagan/tutor-booking/views"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Sessions *sessions.Manager
	Users    *services.UserService
	Catalog  *services.CatalogService
	Schedule *services.ScheduleService
	Bookings *services.BookingService
	Stats    *services.StatsService
	// Uploader is optional; subject image uploads answer 503 without it.
	Uploader    utils.ImageUploader
	Logger      *zap.Logger
	CORSOrigins string
	// AccessLog enables per-request logging.
	AccessLog bool
}

func New(d Deps) *fiber.App {
	engine := html.NewFileSystem(http.FS(views.FS), ".html")

	app := fiber.New(fiber.Config{
		AppName:               "tutor-booking",
		Views:                 engine,
		ErrorHandler:          controllers.NewErrorHandler(d.Logger),
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		BodyLimit:             8 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if d.AccessLog {
		app.Use(fiberlogger.New())
	}

	origins := d.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: origins != "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/login", fiber.StatusSeeOther)
	})

	routes.Setup(app, routes.Handlers{
		Sessions:  d.Sessions,
		Auth:      controllers.NewAuthController(d.Users, d.Sessions, d.Logger),
		Subjects:  controllers.NewSubjectController(d.Catalog, d.Uploader, d.Logger),
		Schedules: controllers.NewScheduleController(d.Schedule),
		Bookings:  controllers.NewBookingController(d.Bookings),
		Users:     controllers.NewUserController(d.Users),
		Admin:     controllers.NewAdminController(d.Stats, d.Bookings),
		Health:    controllers.NewHealthController(d.DB),
	})

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	return app
}
