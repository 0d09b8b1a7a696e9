// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/maghami/ticketline/internal/config"
	"github.com/maghami/ticketline/internal/handler"
	"github.com/maghami/ticketline/internal/middleware"
)

// Handlers groups everything the router needs to wire up.
type Handlers struct {
	Auth    *handler.AuthHandler
	Event   *handler.EventHandler
	Booking *handler.BookingHandler
	Users   middleware.CredentialStore
}

// RegisterRoutes registers all routes on the provided Echo instance.
// Registration, login and the health check are public; everything
// under /api besides /api/auth requires a valid bearer token. The
// rate limiter runs before authentication so unauthenticated floods
// are shed early; the response cache wraps only the event listing,
// which event creation invalidates.
func RegisterRoutes(e *echo.Echo, cfg config.Config, rdb *redis.Client, h Handlers) {
	e.GET("/healthz", handler.Health)

	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	auth := e.Group("/api/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	api := e.Group("/api")
	api.Use(middleware.JWTAuth(cfg.JWTSecret, h.Users))

	cacheCfg := config.LoadCacheConfig()
	api.GET("/events", h.Event.List, middleware.ResponseCache(cacheCfg, rdb))
	api.POST("/events", h.Event.Create, middleware.InvalidateOnWrite(cacheCfg, rdb, "/api/events"))
	api.GET("/events/:id", h.Event.Get)
	api.GET("/events/:id/bookings", h.Booking.ListByEvent)
	api.POST("/book", h.Booking.Book)
}
