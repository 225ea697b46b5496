package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/inventory-api/internal/config"
	"github.com/iliyamo/inventory-api/internal/handler"
	"github.com/iliyamo/inventory-api/internal/middleware"
	"github.com/iliyamo/inventory-api/internal/ratelimit"
)

// Register wires the whole request pipeline onto the Echo instance.  The
// middleware order is fixed and load-bearing:
//
//  1. security headers, attached pre-routing via a pre-write hook so every
//     response carries them, including HTTPS redirects and short-circuits
//  2. optional HTTPS redirect (pre-routing)
//  3. rate limiter, the first stage to reject, before CORS and auth so an
//     unauthenticated flood never reaches the token path
//  4. CORS
//  5. auth gate on the protected group only
func Register(e *echo.Echo, cfg config.Config, limiter ratelimit.Limiter,
	users middleware.UserResolver, a *handler.AuthHandler, items *handler.ItemHandler) {

	e.Pre(middleware.SecureHeaders())
	if cfg.ForceHTTPS {
		e.Pre(echomw.HTTPSRedirect())
	}
	e.Use(middleware.RateLimit(limiter, cfg.RateLimitRequests))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.AllowedOrigins}))

	// Unauthenticated surface.
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)

	g := e.Group("/api/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	// Protected surface.  Every handler below runs behind the auth gate.
	auth := middleware.Auth(cfg.JWTSecret, users)
	g.GET("/me", a.Me, auth)

	api := e.Group("/api/v1", auth)
	api.POST("/items", items.CreateItem)
	api.GET("/items", items.ListItems)
	api.GET("/items/:id", items.GetItem)
	api.PUT("/items/:id", items.UpdateItem)
	api.DELETE("/items/:id", items.DeleteItem)
}
