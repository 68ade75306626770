package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/skyora/flight-ticketing/internal/config"
	"github.com/skyora/flight-ticketing/internal/handler"
	"github.com/skyora/flight-ticketing/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check, used
// by load balancers to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterTickets registers the ticket purchase and inventory routes.
//
// The platform-facing surface lives under /tickets and matches the wire
// contract consumed by the web frontend and partner integrations:
//
//	POST /tickets/purchase                              – buy one ticket
//	GET  /tickets/sold/:airline/:flight_num/:seat_class – sold/remaining probe
//
// The purchase route is rate limited per caller; the read-only probe is
// served through the Redis response cache.  Authenticated portal aliases of
// the same handlers are mounted under /v1/tickets behind JWT validation
// (tokens come from the platform's identity service) so the customer and
// agent dashboards can reuse them with a verified identity.
func RegisterTickets(e *echo.Echo, h *handler.TicketHandler, jwtSecret string, rdb *redis.Client, rlCfg config.RateLimitConfig, cacheCfg config.CacheConfig) {
	limiter := middleware.NewTokenBucket(rlCfg, rdb)
	cache := middleware.NewRedisCache(cacheCfg, rdb)

	t := e.Group("/tickets")
	t.POST("/purchase", h.Purchase, limiter)
	t.GET("/sold/:airline/:flight_num/:seat_class", h.Sold, cache)

	auth := e.Group("/v1/tickets")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("CUSTOMER", "AGENT", "STAFF"))
	auth.POST("/purchase", h.Purchase, limiter)
	auth.GET("/sold/:airline/:flight_num/:seat_class", h.Sold, cache)
}
