package route

import (
	"github.com/gofiber/fiber/v2"

	"csr_backend/internals/configs"
	"csr_backend/internals/constants"
	"csr_backend/internals/features/csr/uploads/controller"
	"csr_backend/internals/features/csr/uploads/service"
	helper "csr_backend/internals/helpers"
	authMiddleware "csr_backend/internals/middlewares/auth"
)

// UploadRoutes -> POST /api/upload (admin)
func UploadRoutes(api fiber.Router, cfg *configs.Config) {
	storage := helper.NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL)
	svc := service.NewImageUploadService(storage, cfg.MaxUploadBytes(), cfg.ImageMaxWidth)
	ctrl := controller.NewUploadController(svc)

	api.Post("/upload",
		authMiddleware.AuthMiddleware(cfg.JWTSecret),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("upload gambar"), constants.AdminOnly...),
		ctrl.UploadImage,
	)
}
