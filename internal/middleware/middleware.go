// Package middleware stores global middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request ids, request logging, CORS, tracing and
// panic recovery, and funnel every error into the envelope
// shape the handlers use.
package middleware
