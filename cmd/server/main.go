package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/campuscoders/clubsite-api/internal/adapter/auth"
	"github.com/campuscoders/clubsite-api/internal/adapter/mail"
	"github.com/campuscoders/clubsite-api/internal/adapter/media"
	"github.com/campuscoders/clubsite-api/internal/adapter/store"
	"github.com/campuscoders/clubsite-api/internal/handler"
	"github.com/campuscoders/clubsite-api/internal/middleware"
	"github.com/campuscoders/clubsite-api/internal/port"
	"github.com/campuscoders/clubsite-api/internal/service"
	"github.com/campuscoders/clubsite-api/internal/token"
	"github.com/campuscoders/clubsite-api/pkg/config"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("starting club site API",
		"port", cfg.Port,
		"mongo_db", cfg.MongoDB,
		"token_ttl", cfg.TokenTTL,
	)

	// ── Database ─────────────────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	mongoStore, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer mongoStore.Close(context.Background())

	// ── Adapters ─────────────────────────────────────────────────────────
	googleAuth := auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	githubAuth := auth.NewGitHubProvider(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.GitHubRedirectURL)

	providers := port.AuthProviderRegistry{
		"google": googleAuth,
		"github": githubAuth,
	}

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	uploader := media.NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)

	// ── Services ─────────────────────────────────────────────────────────
	tokens := token.New(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(mongoStore, tokens, providers)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	// Audit middleware (logs all requests)
	app.Use(middleware.Audit(mongoStore))

	// ── Public Routes ────────────────────────────────────────────────────
	authHandler := handler.NewAuthHandler(authService, cfg.FrontendURL)
	authHandler.Register(app)

	eventHandler := handler.NewEventHandler(mongoStore, uploader)
	eventHandler.RegisterPublic(app)

	photoHandler := handler.NewPhotoHandler(mongoStore, uploader)
	photoHandler.RegisterPublic(app)

	projectHandler := handler.NewProjectHandler(mongoStore)
	projectHandler.RegisterPublic(app)

	contactHandler := handler.NewContactHandler(mongoStore, mailer, cfg.ClubInbox)
	contactHandler.RegisterPublic(app)

	// Health check
	app.Get("/api/v1/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"app":     cfg.AppName,
			"version": "1.0.0",
		})
	})

	// ── Protected Routes ─────────────────────────────────────────────────
	api := app.Group("/api/v1", middleware.Authenticate(tokens, mongoStore))
	authHandler.RegisterProtected(api)

	// Admin-only routes
	admin := api.Group("/", middleware.RequireAdmin())

	userHandler := handler.NewUserHandler(mongoStore)
	userHandler.Register(admin)

	eventHandler.RegisterAdmin(admin)
	photoHandler.RegisterAdmin(admin)
	projectHandler.RegisterAdmin(admin)
	contactHandler.RegisterAdmin(admin)

	auditHandler := handler.NewAuditHandler(mongoStore)
	auditHandler.Register(admin)

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
