package controller

import (
	"github.com/gofiber/fiber/v2"

	"csr_backend/internals/features/users/auth/dto"
	"csr_backend/internals/features/users/auth/service"
	helper "csr_backend/internals/helpers"
	authMiddleware "csr_backend/internals/middlewares/auth"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input dto.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	resp, err := ac.Service.Login(c.UserContext(), input)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Login berhasil", resp)
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input dto.RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	user, err := ac.Service.Register(c.UserContext(), input)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Registrasi berhasil", dto.FromUser(user))
}

// POST /api/auth/login-google
func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var input dto.GoogleLoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	resp, err := ac.Service.LoginGoogle(c.UserContext(), input)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Login Google berhasil", resp)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	id, err := authMiddleware.CurrentUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	user, err := ac.Service.Me(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Data user", dto.FromUser(user))
}
