package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/tutor-booking/middleware"
	"github.com/meinhoongagan/tutor-booking/services"
)

// actor returns the authenticated caller. Only valid behind a gate.
func actor(c *fiber.Ctx) services.Actor {
	s := middleware.CurrentSession(c)
	if s == nil {
		return services.Actor{}
	}
	return services.Actor{UserID: s.UserID, Role: s.Role}
}
