// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"csr_backend/internals/configs"
	"csr_backend/internals/events"
	categoryRoute "csr_backend/internals/features/csr/categories/route"
	programRoute "csr_backend/internals/features/csr/programs/route"
	proposalRoute "csr_backend/internals/features/csr/proposals/route"
	uploadRoute "csr_backend/internals/features/csr/uploads/route"
	authRoute "csr_backend/internals/features/users/auth/route"
	helper "csr_backend/internals/helpers"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config, pub events.Publisher) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// 📁 file upload publik
	app.Static(helper.PublicUploadPrefix, cfg.UploadDir, fiber.Static{
		ByteRange: true,
		MaxAge:    3600,
	})

	api := app.Group("/api")

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(api, db, cfg)

	log.Println("[INFO] Mounting Proposal routes...")
	proposalRoute.ProposalRoutes(api, db, cfg, pub)

	log.Println("[INFO] Mounting Program & Category routes...")
	programRoute.ProgramRoutes(api, db, cfg)
	categoryRoute.CategoryRoutes(api, db, cfg)

	log.Println("[INFO] Mounting Upload routes...")
	uploadRoute.UploadRoutes(api, cfg)
}
