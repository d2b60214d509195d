package middleware

import (
	"net/http"

	"github.com/deppfellow/mystic-backend/internal/envelope"
	"github.com/deppfellow/mystic-backend/internal/errs"
	"github.com/deppfellow/mystic-backend/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups "global" middleware and the global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured by the server config.
// It answers preflight requests; simple responses carry the envelope headers.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	})
}

// RequestLogger returns Echo's request logger middleware with one structured
// "API" line per request, at a severity based on the status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// When a handler returns an error, Echo may not have written the final
			// status yet; the global error handler decides it later.
			// Reference: https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = envelopeFor(v.Error).StatusCode
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo's panic recovery middleware.
// A panic outside the handler pipeline reaches GlobalErrorHandler as an error.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll:   true,
		DisablePrintStack: true,
	})
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error that escapes a route ends up here and is written in the same
// envelope the handlers produce: {"message": ...} with the envelope headers.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	env := envelopeFor(err)

	logger := GetLogger(c)

	var e *zerolog.Event
	if env.StatusCode >= 500 {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}

	e.Err(err).
		Int("status", env.StatusCode).
		Msg("request failed")

	if c.Response().Committed {
		return
	}

	if err := WriteEnvelope(c, env); err != nil {
		logger.Error().Err(err).Msg("failed to write error response")
	}
}

// envelopeFor classifies err. Echo's routing errors keep their status with our
// own messages; everything unclassified becomes the generic 500.
func envelopeFor(err error) envelope.Envelope {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return envelope.FromError(httpErr)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusNotFound:
			return envelope.FromError(errs.NewNotFoundError("Route not found"))
		case http.StatusMethodNotAllowed:
			return envelope.FromError(errs.NewMethodNotAllowedError("Method not allowed"))
		case http.StatusRequestEntityTooLarge:
			return envelope.JSON(echoErr.Code, errs.MessageBody{Message: "Request body too large"})
		}

		if echoErr.Code < 500 {
			return envelope.JSON(echoErr.Code, errs.MessageBody{Message: http.StatusText(echoErr.Code)})
		}
	}

	return envelope.FromError(err)
}

// WriteEnvelope writes env as the HTTP response.
func WriteEnvelope(c echo.Context, env envelope.Envelope) error {
	header := c.Response().Header()
	for k, v := range env.Headers {
		header.Set(k, v)
	}

	return c.Blob(env.StatusCode, env.Headers[echo.HeaderContentType], []byte(env.Body))
}
