package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"csr_backend/internals/configs"
	"csr_backend/internals/constants"
	"csr_backend/internals/features/users/auth/controller"
	"csr_backend/internals/features/users/auth/service"
	rateLimiter "csr_backend/internals/middlewares"
	authMiddleware "csr_backend/internals/middlewares/auth"
)

// AuthRoutes -> /api/auth
func AuthRoutes(api fiber.Router, db *gorm.DB, cfg *configs.Config) {
	authController := controller.NewAuthController(
		service.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL, cfg.GoogleClientID),
	)

	baseAuth := api.Group("/auth")
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	baseAuth.Get("/me",
		authMiddleware.AuthMiddleware(cfg.JWTSecret),
		authMiddleware.OnlyRoles(constants.RoleErrorLoggedIn("profil"), constants.AllRoles...),
		authController.Me,
	)
}
