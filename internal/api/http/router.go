package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/favorites-service/internal/api/http/handlers"
	"github.com/spec-kit/favorites-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Likes          *handlers.LikesHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimiter    fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	users := api.Group("/users")
	if cfg.RateLimiter != nil {
		users.Post("/signup", cfg.RateLimiter, cfg.Users.Signup)
		users.Post("/login", cfg.RateLimiter, cfg.Users.Login)
	} else {
		users.Post("/signup", cfg.Users.Signup)
		users.Post("/login", cfg.Users.Login)
	}
	users.Post("/withdraw", cfg.AuthMiddleware.Handle, cfg.Users.Withdraw)
	users.Post("/changePswd/:uid", cfg.AuthMiddleware.Handle, cfg.Users.ChangePassword)

	likes := api.Group("/like", cfg.AuthMiddleware.Handle)
	likes.Post("/add", cfg.Likes.Add)
	likes.Get("/load/:userId", cfg.Likes.Load)
	likes.Delete("/delete/:likeId", cfg.Likes.Delete)
}
