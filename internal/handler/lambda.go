package handler

import (
	"context"
	"encoding/base64"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/deppfellow/mystic-backend/internal/envelope"
	"github.com/deppfellow/mystic-backend/internal/logger"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
)

// LambdaFunc is the signature lambda.Start expects for API Gateway proxy events.
type LambdaFunc func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Lambda serves endpoint as an API Gateway proxy handler.
//
// It never returns an error; every failure is already an envelope.
func (h Handler) Lambda(endpoint Endpoint) LambdaFunc {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		requestID := req.RequestContext.RequestID
		if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
			requestID = lc.AwsRequestID
		}

		contextLogger := h.server.Logger.With().
			Str("request_id", requestID).
			Str("handler", endpoint.Name).
			Str("method", req.HTTPMethod).
			Str("path", req.Path).
			Str("ip", req.RequestContext.Identity.SourceIP).
			Logger()

		if app := h.server.LoggerService.GetApplication(); app != nil {
			txn := app.StartTransaction("lambda/" + endpoint.Name)
			defer txn.End()

			txn.AddAttribute("request.id", requestID)
			ctx = newrelic.NewContext(ctx, txn)
			contextLogger = logger.WithTraceContext(contextLogger, txn)
		}

		ctx = contextLogger.WithContext(ctx)

		var env envelope.Envelope

		body := []byte(req.Body)
		if req.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(req.Body)
			if err != nil {
				err = errors.Wrap(err, "failed to decode base64 body")
				contextLogger.Error().Stack().Err(err).Msg("request decoding failed")
				env = envelope.FromError(err)
				return toProxyResponse(env), nil
			}
			body = decoded
		}

		env = endpoint.Invoke(ctx, body)

		return toProxyResponse(env), nil
	}
}

func toProxyResponse(env envelope.Envelope) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: env.StatusCode,
		Headers:    env.Headers,
		Body:       env.Body,
	}
}
