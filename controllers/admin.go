package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/tutor-booking/middleware"
	"github.com/meinhoongagan/tutor-booking/models"
	"github.com/meinhoongagan/tutor-booking/services"
)

const dashboardRecent = 10

type AdminController struct {
	stats    *services.StatsService
	bookings *services.BookingService
}

func NewAdminController(stats *services.StatsService, bookings *services.BookingService) *AdminController {
	return &AdminController{stats: stats, bookings: bookings}
}

func (a *AdminController) Stats(c *fiber.Ctx) error {
	stats, err := a.stats.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// Bookings lists every booking, optionally filtered by ?status=.
func (a *AdminController) Bookings(c *fiber.Ctx) error {
	bookings, err := a.bookings.ListAll(c.UserContext(), services.BookingFilter{
		Status: models.BookingStatus(c.Query("status")),
	})
	if err != nil {
		return err
	}
	return c.JSON(bookings)
}

func (a *AdminController) LoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Title": "Sign in",
	})
}

func (a *AdminController) Dashboard(c *fiber.Ctx) error {
	stats, err := a.stats.Summary(c.UserContext())
	if err != nil {
		return err
	}
	bookings, err := a.bookings.ListAll(c.UserContext(), services.BookingFilter{})
	if err != nil {
		return err
	}
	if len(bookings) > dashboardRecent {
		bookings = bookings[:dashboardRecent]
	}

	return c.Render("dashboard", fiber.Map{
		"Title":    "Admin dashboard",
		"Session":  middleware.CurrentSession(c),
		"Stats":    stats,
		"Bookings": bookings,
	})
}
