package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"csr_backend/internals/configs"
	"csr_backend/internals/constants"
	"csr_backend/internals/features/csr/categories/controller"
	"csr_backend/internals/features/csr/categories/service"
	authMiddleware "csr_backend/internals/middlewares/auth"
)

// CategoryRoutes -> /api/categories
func CategoryRoutes(api fiber.Router, db *gorm.DB, cfg *configs.Config) {
	ctrl := controller.NewCategoryController(service.NewCategoryService(db))

	authMw := authMiddleware.AuthMiddleware(cfg.JWTSecret)
	adminMw := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("kategori"), constants.AdminOnly...)

	g := api.Group("/categories")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Post("/", authMw, adminMw, ctrl.Create)
	g.Put("/:id", authMw, adminMw, ctrl.Update)
	g.Delete("/:id", authMw, adminMw, ctrl.Delete)
}
