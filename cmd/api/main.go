package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"pawmarket/internal/config"
	"pawmarket/internal/handler"
	"pawmarket/internal/middleware"
	"pawmarket/internal/realtime"
	"pawmarket/internal/repository"
	"pawmarket/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := config.RunMigrations(cfg); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (media upload will not work)", err)
	}

	hub := realtime.NewHub()
	repos := repository.NewRepositories(db)

	// Expired and revoked refresh sessions are dead weight; sweep them
	// periodically.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := repos.Session.DeleteExpired(context.Background()); err != nil {
				log.Printf("Failed to prune sessions: %v", err)
			}
		}
	}()

	services := service.NewServices(repos, redis, minioClient, hub, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    32 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.RequestInfo())

	setupRoutes(app, handlers, services.Auth, hub)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService service.AuthService, hub *realtime.Hub) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh-token", h.Auth.RefreshToken)
	auth.Post("/logout", middleware.AuthRequired(authService), h.Auth.Logout)
	auth.Get("/user", middleware.AuthRequired(authService), h.Auth.GetCurrentUser)

	// Pet listings are browsable without an account.
	v1.Get("/pets", h.Pet.List)
	v1.Get("/pets/:id", h.Pet.Get)

	protected := v1.Group("", middleware.AuthRequired(authService))

	pets := protected.Group("/pets")
	pets.Post("/", middleware.RequireBusiness(), h.Pet.Create)
	pets.Put("/:id", h.Pet.Update)
	pets.Delete("/:id", h.Pet.Delete)

	adoptions := protected.Group("/adoption-requests")
	adoptions.Post("/", middleware.RequireRegular(), h.Adoption.Create)
	adoptions.Get("/", h.Adoption.ListForSeller)
	adoptions.Get("/user", h.Adoption.ListForCurrentUser)
	adoptions.Patch("/:id", h.Adoption.Update)

	chat := protected.Group("/chat")
	chat.Post("/adoption/:adoptionRequestId", h.Chat.Open)
	chat.Get("/adoption/:adoptionRequestId", h.Chat.GetByRequest)
	chat.Post("/:chatId/messages", h.Chat.SendMessage)
	chat.Post("/:chatId/accept", h.Chat.Accept)

	users := protected.Group("/users")
	users.Get("/:id", h.User.Get)
	users.Put("/me", h.User.UpdateProfile)
	users.Delete("/me", h.User.DeleteAccount)
	users.Post("/:id/ratings", h.User.Rate)
	users.Get("/:id/ratings", h.User.GetRatings)

	blogs := protected.Group("/blogs")
	blogs.Post("/", h.Blog.Create)
	blogs.Get("/", h.Blog.List)
	blogs.Get("/:id", h.Blog.Get)
	blogs.Put("/:id", h.Blog.Update)
	blogs.Delete("/:id", h.Blog.Delete)
	blogs.Post("/:id/like", h.Blog.Like)
	blogs.Delete("/:id/like", h.Blog.Unlike)
	blogs.Post("/:id/comments", h.Blog.AddComment)
	blogs.Get("/:id/comments", h.Blog.ListComments)

	community := protected.Group("/community/posts")
	community.Post("/", h.Community.Create)
	community.Get("/", h.Community.List)
	community.Put("/:id", h.Community.Update)
	community.Delete("/:id", h.Community.Delete)
	community.Post("/:id/like", h.Community.Like)
	community.Post("/:id/comments", h.Community.AddComment)
	community.Get("/:id/comments", h.Community.ListComments)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	setupWebsocket(app, authService, hub)
}

// setupWebsocket authenticates the upgrade via a token query parameter
// (browsers cannot set an Authorization header on a websocket handshake)
// and parks the connection in the hub until the peer closes it.
func setupWebsocket(app *fiber.App, authService service.AuthService, hub *realtime.Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		claims, err := authService.ValidateAccessToken(c.Query("token"))
		if err != nil {
			return middleware.Unauthorized("Invalid or expired token")
		}
		c.Locals("user_id", claims.UserID)
		return c.Next()
	})

	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		userID := conn.Locals("user_id").(uuid.UUID)
		hub.Register(userID, conn)
		defer hub.Unregister(userID, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}
