package routes

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/kopiyka/kopiyka/internal/accounts"
	"github.com/kopiyka/kopiyka/internal/auth"
	"github.com/kopiyka/kopiyka/internal/config"
	"github.com/kopiyka/kopiyka/internal/funding"
	"github.com/kopiyka/kopiyka/internal/ledger"
	"github.com/kopiyka/kopiyka/internal/middleware"
	"github.com/kopiyka/kopiyka/internal/notification"
	"github.com/kopiyka/kopiyka/internal/payments"
	"github.com/kopiyka/kopiyka/internal/statements"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Store  *ledger.Store
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	// Services and handlers
	tokens := auth.NewTokens(d.Cfg.JWTSecret, d.Cfg.TokenTTL)
	accountsSvc := accounts.NewService(d.Store, tokens)
	accountsHandler := accounts.NewHandler(accountsSvc)
	fundingHandler := funding.NewHandler(funding.NewService(d.Store))
	notifier := notification.NewLoggerNotifier(d.Logger)
	paymentsHandler := payments.NewHandler(payments.NewService(d.Store, notifier))
	statementsHandler := statements.NewHandler(d.Store)

	rateLimiter := middleware.RateLimit(d.Cache, d.Cfg.RateLimitPerMinute)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"message": "Bank API with JWT + multi-currency is running",
		})
	})
	RegisterHealthRoutes(app, d)

	// Public routes
	app.Post("/register", rateLimiter, accountsHandler.Register)
	app.Post("/login", rateLimiter, accountsHandler.Login)

	// Protected routes: rate limiting runs after token auth so the limiter
	// keys on the authenticated account rather than the client IP.
	protected := app.Group("", middleware.TokenAuth(tokens, d.Store), rateLimiter)
	protected.Post("/deposit", fundingHandler.Deposit)
	protected.Post("/withdraw", fundingHandler.Withdraw)
	protected.Post("/transfer", paymentsHandler.Transfer)
	protected.Get("/balance", statementsHandler.Balance)
	protected.Get("/transactions", statementsHandler.Transactions)

	return nil
}
