package handler

import (
	"net/http"
	"time"

	"github.com/deppfellow/mystic-backend/internal/middleware"
	"github.com/deppfellow/mystic-backend/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// credentialChecker reports whether the upstream chat credential is set.
type credentialChecker interface {
	Configured() bool
}

// HealthHandler exposes a "system" endpoint that uptime monitors and load
// balancers can use to verify the service is alive and able to serve chat.
type HealthHandler struct {
	Handler
	chat credentialChecker
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server, chat credentialChecker) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		chat:    chat,
	}
}

// CheckHealth returns system health status and dependency checks.
//
// Response includes:
// - overall status (healthy/unhealthy)
// - timestamp (UTC)
// - environment (from config)
// - checks map (chat credential)
//
// It returns:
// - 200 OK if all checks pass
// - 503 Service Unavailable if any check fails
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]any{}
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	credentialEnv := h.server.Config.Chat.APIKeyEnv

	// ---------------- Chat credential check ----------------------------------
	if h.chat.Configured() {
		checks["chat"] = map[string]any{
			"status": "healthy",
		}
	} else {
		isHealthy = false
		checks["chat"] = map[string]any{
			"status": "unhealthy",
			"error":  credentialEnv + " not set",
		}

		logger.Error().
			Str("credential_env", credentialEnv).
			Msg("chat credential health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]any{
				"check_type": "chat",
				"operation":  "health_check",
				"error_type": "credential_missing",
			})
		}
	}

	// ---------------- Overall status + response ------------------------------
	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return errors.Wrap(err, "failed to write JSON response")
	}

	return nil
}
