package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/tutor-booking/services"
	"github.com/meinhoongagan/tutor-booking/utils"
)

type ScheduleController struct {
	schedules *services.ScheduleService
}

func NewScheduleController(schedules *services.ScheduleService) *ScheduleController {
	return &ScheduleController{schedules: schedules}
}

// List accepts ?subjectId=, ?available=true and ?from=<RFC3339>.
func (s *ScheduleController) List(c *fiber.Ctx) error {
	filter := services.ScheduleFilter{SubjectID: c.Query("subjectId")}

	if raw := c.Query("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "available must be true or false")
		}
		filter.AvailableOnly = available
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "from must be an RFC3339 timestamp")
		}
		filter.From = from.UTC()
	}

	schedules, err := s.schedules.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(schedules)
}

func (s *ScheduleController) Get(c *fiber.Ctx) error {
	schedule, err := s.schedules.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(schedule)
}

func (s *ScheduleController) Create(c *fiber.Ctx) error {
	var input services.ScheduleInput
	if err := c.BodyParser(&input); err != nil {
		return errBadBody
	}
	schedule, err := s.schedules.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.JSON(schedule)
}

func (s *ScheduleController) Update(c *fiber.Ctx) error {
	var input services.ScheduleInput
	if err := c.BodyParser(&input); err != nil {
		return errBadBody
	}
	schedule, err := s.schedules.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(schedule)
}

func (s *ScheduleController) Delete(c *fiber.Ctx) error {
	if err := s.schedules.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(utils.MessageResponse{Message: "Schedule deleted successfully"})
}
