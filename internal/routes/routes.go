package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/lifelessonsapp/lifelessons-backend/internal/config"
	"github.com/lifelessonsapp/lifelessons-backend/internal/handlers"
	"github.com/lifelessonsapp/lifelessons-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	lessonHandler *handlers.LessonHandler,
	moderationHandler *handlers.ModerationHandler,
	userHandler *handlers.UserHandler,
	webhookHandler *handlers.WebhookHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Public feed — optional JWT so premium/owner viewers get unlocked
	// verdicts while logged-out visitors still browse.
	optional := middleware.OptionalJWT(cfg)
	api.Get("/public-lessons", optional, lessonHandler.Feed)
	api.Get("/public-lessons/:id", optional, lessonHandler.Get)
	api.Get("/public-lessons/:id/related", lessonHandler.Related)
	api.Get("/featured-lessons", lessonHandler.Featured)
	api.Get("/most-saved-lessons", lessonHandler.MostSaved)
	api.Get("/top-contributors", userHandler.TopContributors)
	api.Get("/users/:email", userHandler.GetProfile)

	// Authenticated surface
	protected := middleware.JWTProtected(cfg)
	api.Post("/lessons", protected, lessonHandler.Create)
	api.Put("/lessons/:id", protected, lessonHandler.Update)
	api.Delete("/lessons/:id", protected, lessonHandler.Delete)
	api.Post("/lessons/:id/report", protected, moderationHandler.CreateReport)
	api.Patch("/public-lessons/:id/like", protected, lessonHandler.ToggleLike)
	api.Patch("/public-lessons/:id/favorite", protected, lessonHandler.ToggleFavorite)
	api.Post("/public-lessons/:id/comment", protected, lessonHandler.AddComment)
	api.Get("/my-lessons", protected, lessonHandler.MyLessons)
	api.Get("/my-favorites", protected, lessonHandler.MyFavorites)
	api.Get("/summary", protected, userHandler.MySummary)

	// Admin moderation panel
	admin := api.Group("/admin", protected, middleware.AdminRequired(db, cfg))
	admin.Get("/reported-lessons", moderationHandler.ListReported)
	admin.Delete("/reports/:lessonId", moderationHandler.DismissReports)
	admin.Delete("/lessons/:id", moderationHandler.BanLesson)
	admin.Patch("/lessons/:id/feature", moderationHandler.SetFeatured)
	admin.Patch("/lessons/:id/review", moderationHandler.SetReviewed)
	admin.Get("/users", userHandler.List)
	admin.Patch("/users/:id/role", userHandler.UpdateRole)
	admin.Get("/summary", userHandler.AdminSummary)

	// Webhooks — bearer secret, no JWT
	api.Post("/webhooks/checkout", webhookHandler.HandleCheckout)
}
