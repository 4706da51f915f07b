package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"csr_backend/internals/middlewares/logger"
)

// SetupMiddlewares pasang middleware global sesuai urutan: recover paling luar.
func SetupMiddlewares(app *fiber.App, corsOrigins string) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(corsOrigins))
	app.Use(GlobalRateLimiter())
}
