package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"csr_backend/internals/configs"
	"csr_backend/internals/constants"
	"csr_backend/internals/features/csr/programs/controller"
	"csr_backend/internals/features/csr/programs/service"
	authMiddleware "csr_backend/internals/middlewares/auth"
)

// ProgramRoutes -> /api/programs
func ProgramRoutes(api fiber.Router, db *gorm.DB, cfg *configs.Config) {
	ctrl := controller.NewProgramController(service.NewProgramService(db))

	authMw := authMiddleware.AuthMiddleware(cfg.JWTSecret)
	adminMw := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("program"), constants.AdminOnly...)

	g := api.Group("/programs")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Post("/", authMw, adminMw, ctrl.Create)
	g.Put("/:id", authMw, adminMw, ctrl.Update)
	g.Delete("/:id", authMw, adminMw, ctrl.Delete)
}
