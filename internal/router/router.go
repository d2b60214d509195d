// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/mystic-backend/internal/handler"
	"github.com/deppfellow/mystic-backend/internal/middleware"
	"github.com/deppfellow/mystic-backend/internal/server"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// maxBodySize bounds request bodies; chat histories are the largest payloads.
const maxBodySize = "1M"

// NewRouter builds the Echo instance with the global middleware chain, the
// system routes and the /api routes.
//
// Middleware order matters: the request id and the New Relic transaction must
// exist before the request logger is built, and the request logger must wrap
// Recover so panics are logged with their final status.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		echoMiddleware.BodyLimit(maxBodySize),
	)

	registerSystemRoutes(router, h)
	registerFortuneRoutes(router.Group("/api"), h)

	return router
}

// registerFortuneRoutes mounts the content endpoints. Each one is the same
// Endpoint the Lambda runtime serves.
func registerFortuneRoutes(api *echo.Group, h *handler.Handlers) {
	fortune := h.Fortune

	api.POST("/chat", fortune.HTTP(fortune.Chat()))
	api.POST("/horoscope", fortune.HTTP(fortune.Horoscope()))
	api.POST("/numerology", fortune.HTTP(fortune.Numerology()))
	api.POST("/numerology/reading", fortune.HTTP(fortune.NumerologyReading()))
	api.POST("/tarot", fortune.HTTP(fortune.Tarot()))
	api.POST("/zodiac", fortune.HTTP(fortune.Zodiac()))
	api.POST("/zodiac/compatibility", fortune.HTTP(fortune.Compatibility()))
}
