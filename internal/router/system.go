package router

import (
	"github.com/deppfellow/mystic-backend/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers "system" endpoints that are not part of business logic:
//  1. Health endpoint
//  2. Docs endpoints (OpenAPI UI and the document it renders)
//  3. Static files endpoint
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}
