package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/tutor-booking/models"
	"github.com/meinhoongagan/tutor-booking/services"
)

// UserController lets admins inspect accounts and change roles.
type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

func (u *UserController) List(c *fiber.Ctx) error {
	users, err := u.users.List(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return c.JSON(resp)
}

type roleInput struct {
	Role models.Role `json:"role"`
}

func (u *UserController) SetRole(c *fiber.Ctx) error {
	var input roleInput
	if err := c.BodyParser(&input); err != nil {
		return errBadBody
	}
	if c.Params("id") == actor(c).UserID && input.Role != models.RoleAdmin {
		return fiber.NewError(fiber.StatusBadRequest, "You cannot remove your own admin role")
	}
	user, err := u.users.SetRole(c.UserContext(), c.Params("id"), input.Role)
	if err != nil {
		return err
	}
	return c.JSON(toUserResponse(user))
}
