package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/tutor-booking/middleware"
	"github.com/meinhoongagan/tutor-booking/models"
	"github.com/meinhoongagan/tutor-booking/services"
	"github.com/meinhoongagan/tutor-booking/sessions"
	"github.com/meinhoongagan/tutor-booking/utils"
	"go.uber.org/zap"
)

type AuthController struct {
	users    *services.UserService
	sessions *sessions.Manager
	logger   *zap.Logger
}

func NewAuthController(users *services.UserService, m *sessions.Manager, logger *zap.Logger) *AuthController {
	return &AuthController{users: users, sessions: m, logger: logger}
}

type userResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Register handles user registration
func (a *AuthController) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return errBadBody
	}

	user, err := a.users.Register(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    toUserResponse(user),
	})
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Login checks the credentials and sets the session cookie.
func (a *AuthController) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return errBadBody
	}
	if input.Email == "" || input.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email and password are required")
	}

	user, err := a.users.Authenticate(c.UserContext(), input.Email, input.Password, input.IsAdmin)
	if err != nil {
		return err
	}

	if _, err := a.sessions.CreateSession(c, user.ID, user.Role); err != nil {
		return err
	}
	a.logger.Info("User logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    toUserResponse(user),
	})
}

func (a *AuthController) Logout(c *fiber.Ctx) error {
	a.sessions.DestroySession(c)
	return c.JSON(utils.MessageResponse{Message: "Logged out successfully"})
}

// Session reports the current session, or null when there is none.
func (a *AuthController) Session(c *fiber.Ctx) error {
	return c.JSON(a.sessions.GetSession(c))
}

func (a *AuthController) Me(c *fiber.Ctx) error {
	user, err := a.users.GetByID(c.UserContext(), middleware.CurrentSession(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(toUserResponse(user))
}
