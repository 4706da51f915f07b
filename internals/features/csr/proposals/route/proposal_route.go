package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"csr_backend/internals/configs"
	"csr_backend/internals/constants"
	"csr_backend/internals/events"
	"csr_backend/internals/features/csr/proposals/controller"
	"csr_backend/internals/features/csr/proposals/service"
	helper "csr_backend/internals/helpers"
	authMiddleware "csr_backend/internals/middlewares/auth"
)

// ProposalRoutes -> /api/proposals. Baca publik, tulis khusus admin.
func ProposalRoutes(api fiber.Router, db *gorm.DB, cfg *configs.Config, pub events.Publisher) {
	storage := helper.NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL)
	stats := service.NewStatsService(db)

	proposalCtrl := controller.NewProposalController(
		service.NewProposalService(db, storage, pub, cfg.MaxUploadBytes()),
	)
	statsCtrl := controller.NewStatsController(stats, service.NewReportService(db, stats))

	g := api.Group("/proposals")

	// 📊 stats didaftarkan sebelum /:id
	g.Get("/stats/summary", statsCtrl.Summary)
	g.Get("/stats/monthly", statsCtrl.Monthly)
	g.Get("/stats/dashboard", statsCtrl.Dashboard)
	g.Get("/report", statsCtrl.Report)

	g.Get("/", proposalCtrl.List)
	g.Get("/:id", proposalCtrl.Get)

	authMw := authMiddleware.AuthMiddleware(cfg.JWTSecret)
	adminMw := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("proposal"), constants.AdminOnly...)

	g.Post("/", authMw, adminMw, proposalCtrl.Create)
	g.Put("/:id", authMw, adminMw, proposalCtrl.Update)
	g.Delete("/:id", authMw, adminMw, proposalCtrl.Delete)
}
