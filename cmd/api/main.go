package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-sweetshop/internal/config"
	"go-sweetshop/internal/handler"
	"go-sweetshop/internal/middleware"
	"go-sweetshop/internal/model"
	"go-sweetshop/internal/repository"
	"go-sweetshop/internal/service"
	"go-sweetshop/internal/ws"
	"go-sweetshop/pkg/database"
	"go-sweetshop/pkg/logger"
	"go-sweetshop/pkg/token"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env (.env is optional, system env wins)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// 2. Setup Database
	db, err := database.Connect(cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.AutoMigrate(&model.User{}, &model.Sweet{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	tokens := token.NewManager(cfg.SecretKey, cfg.Algorithm, cfg.TokenTTL())

	userRepo := repository.NewUserRepo(db)
	sweetRepo := repository.NewSweetRepo(db)

	authService := service.NewAuthService(userRepo, tokens)
	invService := service.NewInventoryService(sweetRepo, wsHub)

	authHandler := handler.NewAuthHandler(authService)
	sweetHandler := handler.NewSweetHandler(invService)
	invHandler := handler.NewInventoryHandler(invService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Sweet Shop Management System v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Sweet Shop API is live"})
	})

	// 6. Routes
	requireAuth := middleware.RequireAuth(userRepo, tokens)
	requireAdmin := middleware.RequireAdmin()

	auth := app.Group("/api/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", requireAuth, authHandler.Me)

	sweets := app.Group("/api/sweets", requireAuth)
	sweets.Post("", requireAdmin, sweetHandler.Create)
	sweets.Get("", sweetHandler.List)
	sweets.Get("/search", sweetHandler.Search)
	sweets.Put("/:id", requireAdmin, sweetHandler.Update)
	sweets.Delete("/:id", requireAdmin, sweetHandler.Delete)
	sweets.Post("/:id/purchase", invHandler.Purchase)
	sweets.Post("/:id/restock", requireAdmin, invHandler.Restock)

	// WebSocket stock feed
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
