package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	admins middleware.AdminLookup,
	gatherer prometheus.Gatherer,
	healthHandler *handlers.HealthHandler,
	moderationHandler *handlers.ModerationHandler,
) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Report submission (JWT required). Stricter limit against report flooding.
	api.Post("/reports",
		limiter.New(limiter.Config{
			Max:               10,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}),
		middleware.JWTProtected(cfg),
		moderationHandler.CreateReport,
	)

	// Admin moderation panel (admin token or JWT + admin role)
	admin := api.Group("/admin",
		middleware.AdminToken(cfg),
		middleware.JWTProtected(cfg),
		middleware.AdminRequired(admins, cfg),
	)

	admin.Get("/reports", moderationHandler.ListReports)
	admin.Get("/reports/pending", moderationHandler.ListPendingReports)
	admin.Get("/reports/count/:type/:id", moderationHandler.PendingCount)

	admin.Get("/reported/:type", moderationHandler.ReportedTargets)
	admin.Get("/reported/:type/details", moderationHandler.ReportedTargetDetails)
	admin.Get("/reported/:type/:id", moderationHandler.ReportedTarget)

	admin.Put("/reports/:type/:id/dismiss", moderationHandler.Dismiss)
	admin.Put("/reports/:type/:id/review", moderationHandler.MarkReviewed)
	admin.Put("/reports/:type/:id/resolve", moderationHandler.Resolve)
	admin.Put("/reports/:type/:id/keep", moderationHandler.KeepContent)
	admin.Delete("/content/:type/:id", moderationHandler.DeleteContent)

	admin.Post("/users/:id/ban", moderationHandler.BanUser)
	admin.Post("/users/:id/suspend", moderationHandler.SuspendUser)
}
