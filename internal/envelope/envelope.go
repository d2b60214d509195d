// Package envelope formats every handler result as the
// {statusCode, headers, body} triple shared by the HTTP and Lambda transports.
package envelope

import (
	"encoding/json"
	"net/http"

	"github.com/deppfellow/mystic-backend/internal/errs"
	"github.com/pkg/errors"
)

// Envelope is a fully rendered response. Body is always valid JSON.
type Envelope struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// Headers returns a fresh copy of the headers carried by every response.
func Headers() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}

// unexpectedBody is pre-rendered so the fallback path cannot fail.
const unexpectedBody = `{"message":"` + errs.UnexpectedErrorMessage + `"}`

// JSON renders body with the given status. If body cannot be marshalled the
// result degrades to the generic 500.
func JSON(status int, body any) Envelope {
	encoded, err := json.Marshal(body)
	if err != nil {
		return Envelope{
			StatusCode: http.StatusInternalServerError,
			Headers:    Headers(),
			Body:       unexpectedBody,
		}
	}

	return Envelope{
		StatusCode: status,
		Headers:    Headers(),
		Body:       string(encoded),
	}
}

// FromError renders err as {"message": ...}. Only *errs.HTTPError values keep
// their status and message; anything else becomes the generic 500.
func FromError(err error) Envelope {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return JSON(httpErr.Status, httpErr.Body())
	}

	return JSON(http.StatusInternalServerError, errs.NewInternalServerError().Body())
}
