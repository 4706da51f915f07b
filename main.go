package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"csr_backend/internals/configs"
	database "csr_backend/internals/databases"
	"csr_backend/internals/events"
	helper "csr_backend/internals/helpers"
	middlewares "csr_backend/internals/middlewares"
	routes "csr_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	// 🗄️ migrasi dulu, baru buka pool aplikasi
	if cfg.AutoMigrate {
		if err := database.Migrate(cfg); err != nil {
			log.Fatalf("❌ migrate: %v", err)
		}
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("❌ database: %v", err)
	}
	database.WarmUp(db)

	pub, err := events.New(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		// broker opsional, aplikasi tetap jalan tanpa event
		log.Printf("⚠️ [EVENTS] broker tidak tersedia, event dimatikan: %v", err)
		pub = events.NoopPublisher{}
	}

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		// 3 lampiran proposal + metadata
		BodyLimit:    3*int(cfg.MaxUploadBytes()) + 1<<20,
		ErrorHandler: helper.ErrorHandler,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timeout context
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = utils.UUIDv4()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals("reqid", id)
		start := time.Now()

		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app, cfg.CorsAllowOrigins)

	routes.SetupRoutes(app, db, cfg, pub)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s (db=%s)", cfg.Port, cfg.DBDriver)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: server, broker, lalu pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if err := pub.Close(); err != nil {
		log.Printf("[EVENTS] close: %v", err)
	}
	database.Close(db)
	log.Println("👋 server berhenti")
}
