package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/tutor-booking/models"
	"github.com/meinhoongagan/tutor-booking/services"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

// List returns the caller's own bookings.
func (b *BookingController) List(c *fiber.Ctx) error {
	bookings, err := b.bookings.ListForUser(c.UserContext(), actor(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(bookings)
}

func (b *BookingController) Create(c *fiber.Ctx) error {
	var input services.CreateBookingInput
	if err := c.BodyParser(&input); err != nil {
		return errBadBody
	}
	booking, err := b.bookings.Create(c.UserContext(), actor(c).UserID, input)
	if err != nil {
		return err
	}
	return c.JSON(booking)
}

func (b *BookingController) Get(c *fiber.Ctx) error {
	booking, err := b.bookings.Get(c.UserContext(), c.Params("id"), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(booking)
}

type statusInput struct {
	Status models.BookingStatus `json:"status"`
}

func (b *BookingController) UpdateStatus(c *fiber.Ctx) error {
	var input statusInput
	if err := c.BodyParser(&input); err != nil {
		return errBadBody
	}
	booking, err := b.bookings.UpdateStatus(c.UserContext(), c.Params("id"), input.Status, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(booking)
}
