package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Common error sentinel values
var (
	ErrBadRequest   = errors.New("malformed request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("operation not allowed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("resource conflict")
	ErrInternal     = errors.New("internal server error")
)

// ApiErr is an error returned by the portfolio API, decoded from its
// response body together with the HTTP status code.
type ApiErr struct {
	StatusCode int
	err        error
	Details    string // Additional details about the error
	Field      string // Field that caused the error (for validation errors)
	Cause      error  // The underlying cause of the error
}

func NewApiErr(statusCode int, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		err:        errors.New(message),
	}
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		if apiErr, ok := e.Cause.(*ApiErr); ok {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

// apiErrorBody is the error envelope the API writes. DRF-style backends use
// "detail", others "error"/"message"; all three are accepted.
type apiErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Field   string `json:"field"`
	Details string `json:"details"`
}

// Decode builds an ApiErr from a non-2xx response body. An unparseable or
// empty body still yields an error carrying the status code.
func Decode(statusCode int, body []byte) *ApiErr {
	sentinel := sentinelFor(statusCode)

	var envelope apiErrorBody
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.empty() {
		return &ApiErr{StatusCode: statusCode, err: sentinel}
	}

	message := envelope.Error
	if message == "" {
		message = envelope.Detail
	}
	if message == "" {
		message = envelope.Message
	}

	details := envelope.Details
	if details == "" && envelope.Message != "" && envelope.Message != message {
		details = envelope.Message
	}

	return &ApiErr{
		StatusCode: statusCode,
		err:        sentinel,
		Details:    messageOr(details, message),
		Field:      envelope.Field,
	}
}

func (b apiErrorBody) empty() bool {
	return b.Error == "" && b.Message == "" && b.Detail == "" && b.Details == ""
}

// messageOr keeps server-provided detail text without duplicating the
// sentinel message.
func messageOr(details, message string) string {
	if details != "" {
		return details
	}
	return message
}

func sentinelFor(statusCode int) error {
	switch statusCode {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrInternal
	}
}

// Common error constructors with appropriate HTTP status codes
func NewNotFoundError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusNotFound, err: errors.New(message)}
}

func NewBadRequestError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusBadRequest, err: errors.New(message)}
}

func NewUnauthorizedError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusUnauthorized, err: ErrUnauthorized, Details: message}
}

func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// StatusOf returns the HTTP status carried by err, or zero when err did not
// come from an API response.
func StatusOf(err error) int {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
