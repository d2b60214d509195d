package errs

import (
	"net/http"
)

// UnexpectedErrorMessage is the generic text for every failure that is not
// classified more precisely.
const UnexpectedErrorMessage = "Unexpected error"

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// This supports extra payload:
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	// http.StatusText(400) => "Bad Request" => "BAD_REQUEST"
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewMethodNotAllowedError creates a 405 Method Not Allowed HTTPError.
func NewMethodNotAllowedError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusMethodNotAllowed)),
		Message: message,
		Status:  http.StatusMethodNotAllowed,
	}
}

// NewInternalServerError creates the generic 500 HTTPError.
//
// Note:
//   - message is always UnexpectedErrorMessage, not the real internal error message.
//   - the real error is logged by whoever caught it.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: UnexpectedErrorMessage,
		Status:  http.StatusInternalServerError,
	}
}

// NewMisconfiguredError creates a 500 HTTPError for missing server configuration
// (e.g. an upstream credential that was never set).
//
// Unlike NewInternalServerError the message is specific, because the operator
// needs to know what to fix.
func NewMisconfiguredError(message string) *HTTPError {
	return &HTTPError{
		Code:    "MISSING_CONFIGURATION",
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

// NewBadGatewayError creates a 502 Bad Gateway HTTPError for failed upstream calls.
//
// The upstream status/body must be logged by the caller; they are never part of
// the message.
func NewBadGatewayError(message string) *HTTPError {
	return &HTTPError{
		// http.StatusText(502) => "Bad Gateway" => "BAD_GATEWAY"
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadGateway)),
		Message: message,
		Status:  http.StatusBadGateway,
	}
}
