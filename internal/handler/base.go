package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/mystic-backend/internal/envelope"
	"github.com/deppfellow/mystic-backend/internal/errs"
	"github.com/deppfellow/mystic-backend/internal/server"
	"github.com/deppfellow/mystic-backend/internal/validation"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Handler is the base handler type that holds shared application dependencies.
//
// It is embedded by concrete handlers (e.g., FortuneHandler, HealthHandler) so they can
// access shared resources via *server.Server (config, logger, chat client).
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// --- Generic typed handler plumbing -----------------------------------------

// ServiceFunc represents a typed operation that:
//
// - receives a decoded, normalized and validated request payload (Req)
// - returns a response (Res) or an error
//
// Req is a POINTER type, e.g. *service.ChatRequest, so the body can be decoded into it.
type ServiceFunc[Req validation.Validatable, Res any] func(ctx context.Context, req Req) (Res, error)

// Endpoint is a named operation that turns a raw request body into a response
// envelope. The same Endpoint is served over HTTP and Lambda.
type Endpoint struct {
	Name   string
	Invoke func(ctx context.Context, body []byte) envelope.Envelope
}

// NewEndpoint binds a typed operation to the shared pipeline.
//
// newReq is called once per invocation, so no request state is shared between calls.
//
// Usage pattern:
//
//	NewEndpoint(h, "horoscope", newHoroscopeRequest, services.Horoscope.Read)
func NewEndpoint[Req validation.Validatable, Res any](
	h Handler,
	name string,
	newReq func() Req,
	fn ServiceFunc[Req, Res],
) Endpoint {
	return Endpoint{
		Name: name,
		Invoke: func(ctx context.Context, body []byte) envelope.Envelope {
			return handleRequest(ctx, name, body, newReq, fn)
		},
	}
}

// handleRequest is the shared execution pipeline for all endpoints.
//
// It centralizes:
//
// - request decoding + normalization + validation
// - structured logging (with the request-scoped logger from ctx)
// - New Relic attributes and error reporting
// - timing metrics (validation duration, handler duration, total duration)
// - the error boundary: every outcome, a panic included, becomes an envelope
func handleRequest[Req validation.Validatable, Res any](
	ctx context.Context,
	name string,
	body []byte,
	newReq func() Req,
	fn ServiceFunc[Req, Res],
) (env envelope.Envelope) {
	start := time.Now()

	// Transaction is set by nrecho for HTTP, or by the Lambda adapter.
	txn := newrelic.FromContext(ctx)
	if txn != nil {
		txn.AddAttribute("handler.name", name)
	}

	logger := zerolog.Ctx(ctx).With().
		Str("operation", name).
		Logger()
	ctx = logger.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			err := errors.Errorf("panic: %v", r)

			logger.Error().
				Stack().
				Err(err).
				Dur("total_duration", time.Since(start)).
				Msg("handler panicked")

			if txn != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
				txn.AddAttribute("handler.status", "panic")
			}

			env = envelope.FromError(err)
		}
	}()

	logger.Debug().Int("body_bytes", len(body)).Msg("handling request")

	// ---------------- Validation phase ---------------------------------------
	validationStart := time.Now()
	req := newReq()

	if err := validation.BindAndValidate(body, req); err != nil {
		validationDuration := time.Since(validationStart)
		env = envelope.FromError(err)

		logFailure(&logger, err, env.StatusCode).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return env
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := fn(ctx, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)
		env = envelope.FromError(err)

		logFailure(&logger, err, env.StatusCode).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}

		return env
	}

	env = envelope.JSON(http.StatusOK, result)
	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
	}

	logger.Info().
		Int("status", env.StatusCode).
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return env
}

// logFailure picks the level by status: 5xx is a server fault and carries the
// stack, anything lower is a client fault.
func logFailure(logger *zerolog.Logger, err error, status int) *zerolog.Event {
	var e *zerolog.Event
	if status >= 500 {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}

	e = e.Err(err).Int("status", status)

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		e = e.Str("error_code", httpErr.Code)
		if len(httpErr.Errors) > 0 {
			e = e.Interface("field_errors", httpErr.Errors)
		}
	}

	return e
}
