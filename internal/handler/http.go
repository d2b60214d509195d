package handler

import (
	"io"

	"github.com/deppfellow/mystic-backend/internal/middleware"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HTTP serves endpoint as an Echo route. The envelope is written as is, so the
// status, headers and body match what the Lambda adapter returns.
func (h Handler) HTTP(endpoint Endpoint) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			// The global error handler turns this into the generic 500.
			return errors.Wrap(err, "failed to read request body")
		}

		return middleware.WriteEnvelope(c, endpoint.Invoke(c.Request().Context(), body))
	}
}
