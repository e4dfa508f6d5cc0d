package handler

import (
	"github.com/gofiber/fiber/v2"

	"vidar/internal/service"
)

type credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// parseCredentials reads JSON or form credentials. A body that cannot be parsed yields
// empty credentials, which the service rejects as missing.
func parseCredentials(c *fiber.Ctx) credentials {
	var cr credentials
	_ = c.BodyParser(&cr)
	return cr
}

// Register godoc
// @Summary Register an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body credentials true "credentials"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errorPayload
// @Router /api/auth/register [post]
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cr := parseCredentials(c)
		if err := svc.Register(c.UserContext(), cr.Username, cr.Password); err != nil {
			return respond(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "user registered"})
	}
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body credentials true "credentials"
// @Success 200 {object} object
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Router /api/auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cr := parseCredentials(c)
		user, err := svc.Login(c.UserContext(), cr.Username, cr.Password)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(fiber.Map{"message": "login successful", "user": user})
	}
}

// Logout godoc
// @Summary Log out; sessions live in the browser so nothing is cleared here
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /api/auth/logout [post]
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	}
}
