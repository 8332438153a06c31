// Package router wires the HTTP surface onto an Echo instance. Route
// registration is split by audience: health, public browse, guest actions
// and the authenticated admin API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/citywave/table-reservation/internal/config"
	"github.com/citywave/table-reservation/internal/handler"
	"github.com/citywave/table-reservation/internal/middleware"
	"github.com/citywave/table-reservation/internal/service"
)

// RegisterRoutes registers routes that do not require authentication and
// carry no business logic. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the guest-facing browse endpoints. The listing
// and detail GETs sit behind the Redis response cache: a few seconds of
// staleness is fine, since the reserve guard re-checks stored state anyway.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1/events", middleware.Cache(cacheCfg, rdb))
	g.GET("", p.ListEvents)
	g.GET("/:id", p.GetEvent)
}

// RegisterGuest registers the password-authorized table actions. These are
// POSTs and never cached.
func RegisterGuest(e *echo.Echo, gh *handler.GuestHandler) {
	g := e.Group("/v1/events/:id/tables/:tableId")
	g.POST("/reserve", gh.Reserve)
	g.POST("/serials", gh.SubmitSerials)
	g.POST("/cancel", gh.Cancel)
}

// RegisterAdmin registers the authenticated management API under
// /v1/admin. Every route resolves the live admin identity through the
// session middleware before the handler runs.
func RegisterAdmin(e *echo.Echo, auth *service.Authenticator, jwtSecret string,
	ah *handler.AuthHandler, ev *handler.AdminEventHandler, ac *handler.AdminAccountHandler) {

	e.POST("/v1/auth/login", ah.Login)

	g := e.Group("/v1/admin")
	g.Use(middleware.AdminAuth(jwtSecret, auth))

	g.GET("/me", ev.Me)

	g.GET("/events", ev.ListEvents)
	g.POST("/events", ev.CreateEvent)
	g.DELETE("/events", ev.DeleteEvents)
	g.GET("/events/:id", ev.GetEvent)
	g.PATCH("/events/:id", ev.UpdateEvent)
	g.PATCH("/events/:id/visibility", ev.SetVisibility)
	g.POST("/events/:id/tables", ev.CreateTable)
	g.DELETE("/events/:id/tables/:tableId", ev.DeleteTable)
	g.POST("/events/:id/tables/:tableId/release", ev.ReleaseTable)

	g.GET("/admins", ac.List)
	g.POST("/admins", ac.Create)
	g.DELETE("/admins/:id", ac.Delete)
}
