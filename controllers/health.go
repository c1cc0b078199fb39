package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/tutor-booking/db"
	"gorm.io/gorm"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(conn *gorm.DB) *HealthController {
	return &HealthController{db: conn}
}

func (h *HealthController) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := db.Ping(ctx, h.db); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "healthy"})
}
