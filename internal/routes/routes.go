package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	st *store.Store,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	noteHandler *handlers.NoteHandler,
	userHandler *handlers.UserHandler,
	templateHandler *handlers.TemplateHandler,
	legalHandler *handlers.LegalHandler,
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

	api.Get("/legal/privacy", legalHandler.PrivacyPolicy)
	api.Get("/legal/terms", legalHandler.TermsOfService)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
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
	auth.Post("/apple", authHandler.AppleSignIn)

	// JWT goes on individual auth routes so the public ones above stay open.
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	users := api.Group("/users", middleware.JWTProtected(cfg))
	users.Get("/profile", userHandler.GetProfile)
	users.Put("/profile", userHandler.UpdateProfile)

	// /shared is registered before /:id so it is not read as a note id.
	notes := api.Group("/notes", middleware.JWTProtected(cfg))
	notes.Get("", noteHandler.List)
	notes.Post("", noteHandler.Create)
	notes.Get("/shared", noteHandler.SharedWithMe)
	notes.Get("/:id", noteHandler.Get)
	notes.Put("/:id", noteHandler.Update)
	notes.Delete("/:id", noteHandler.Delete)
	notes.Post("/:id/share", noteHandler.Share)
	notes.Get("/:id/revisions", noteHandler.Revisions)

	templates := api.Group("/templates", middleware.JWTProtected(cfg))
	templates.Get("", templateHandler.List)
	adminOnly := middleware.AdminRequired(st, cfg)
	templates.Post("", adminOnly, templateHandler.Create)
	templates.Put("/:id", adminOnly, templateHandler.Update)
	templates.Delete("/:id", adminOnly, templateHandler.Delete)
}
