// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or date formats) defined in struct tags
// and extracts validation errors into field errors that end
// up in the logs. The client only ever sees the message.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/mystic-backend/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required"`)
//   - Implement Validate() error that calls validation.Check(req, "<client message>")
type Validatable interface {
	Validate() error
}

// Normalizable is implemented by payloads that clean their fields (trimming,
// defaults) after decoding and before validation.
type Normalizable interface {
	Normalize()
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// ErrNotObject is returned when a request body is not a JSON object.
var ErrNotObject = errors.New("request body is not a JSON object")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report field names the way the client spells them.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	return v
}

// BindAndValidate decodes body into payload and validates it.
//
// Flow:
// 1) An empty body is treated as `{}`.
// 2) Anything that is not a JSON object, or does not fit payload's types, is a
//    plain error. The boundary turns it into the generic 500.
// 3) payload.Normalize() runs when implemented.
// 4) payload.Validate() applies validation rules. An *errs.HTTPError is
//    returned as is, anything else becomes a 400 with field errors.
//
// NOTE: payload must be a pointer to a struct.
func BindAndValidate(body []byte, payload Validatable) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}

	if body[0] != '{' {
		return errors.WithStack(ErrNotObject)
	}

	if err := json.Unmarshal(body, payload); err != nil {
		return errors.Wrap(err, "failed to decode request body")
	}

	if n, ok := payload.(Normalizable); ok {
		n.Normalize()
	}

	if err := payload.Validate(); err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}

		msg, fieldErrors := extractValidationError(err)
		if fieldErrors == nil {
			return errors.Wrap(err, "validation failed")
		}
		return errs.NewBadRequestError(msg, nil, fieldErrors)
	}

	return nil
}

// Struct runs the shared validator over v.
func Struct(v any) error {
	return validate.Struct(v)
}

// Check validates v and, on failure, returns a 400 carrying message for the
// client and the field errors for the logs.
func Check(v any, message string) error {
	err := Struct(v)
	if err == nil {
		return nil
	}

	_, fieldErrors := extractValidationError(err)
	if fieldErrors == nil {
		return errors.Wrap(err, "validation failed")
	}

	return errs.NewBadRequestError(message, nil, fieldErrors)
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "", nil
	}

	for _, err := range validationErrors {
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			switch err.Kind() {
			case reflect.String:
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			case reflect.Slice, reflect.Array, reflect.Map:
				msg = fmt.Sprintf("must contain at least %s items", err.Param())
			default:
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "datetime":
			msg = fmt.Sprintf("must be a date in %s format", err.Param())

		case "dive":
			msg = "some items are invalid"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", err.Field(), err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", err.Field(), err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: err.Field(),
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
