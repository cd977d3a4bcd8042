package routes

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/hirely/hirely/internal/auth"
	"github.com/hirely/hirely/internal/config"
	"github.com/hirely/hirely/internal/identity"
	"github.com/hirely/hirely/internal/jobs"
	"github.com/hirely/hirely/internal/middleware"
	"github.com/hirely/hirely/internal/notification"
)

const listingCacheTTL = 30 * time.Second

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger

	// Notifier overrides the configured email sender when non-nil. Tests use
	// this to capture issued codes.
	Notifier notification.Notifier
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Stores
	var accountRepo identity.Repository
	var jobRepo jobs.Repository
	if d.DB != nil {
		accountRepo = identity.NewPostgresRepository(d.DB)
		jobRepo = jobs.NewPostgresRepository(d.DB)
	} else {
		accountRepo = identity.NewMemoryRepository()
		jobRepo = jobs.NewMemoryRepository()
	}

	// Collaborators
	notifier := d.Notifier
	if notifier == nil {
		if d.Cfg.BrevoAPIKey != "" {
			notifier = notification.NewBrevoNotifier(d.Cfg.BrevoAPIKey, d.Cfg.SenderEmail)
		} else {
			notifier = notification.NewLoggerNotifier(d.Logger)
		}
	}
	tokens := auth.NewIssuer(d.Cfg.JWTSecret, d.Cfg.TokenTTL)
	otp := identity.NewOTPEngine(accountRepo, notifier, d.Cfg.OTPTTL)

	// Services and handlers
	identitySvc := identity.NewService(accountRepo, otp, tokens, d.Cfg.AdminEmail)
	identityHandler := identity.NewHandler(identitySvc)

	listingCache := jobs.NewListingCache(d.Cache, listingCacheTTL, d.Logger)
	jobSvc := jobs.NewService(jobRepo, listingCache)
	jobHandler := jobs.NewHandler(jobSvc)

	guard := middleware.RequireAuth(tokens, accountRepo)

	api := app.Group("/api")
	RegisterAuthRoutes(api.Group("/auth"), identityHandler, guard)
	RegisterJobRoutes(api, jobHandler, guard)

	return nil
}
