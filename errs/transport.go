package errs

import (
	"errors"
	"fmt"
)

// Transport & Session Errors
var (
	ErrTransport     = errors.New("transport failure")
	ErrMissingToken  = errors.New("missing access token")
	ErrExpiredToken  = errors.New("expired access token")
	ErrInvalidToken  = errors.New("invalid access token")
	ErrWriteInFlight = errors.New("another write is already in flight")
)

// TransportErr wraps a network-level failure for one operation. It carries no
// HTTP status: the request never produced a response.
type TransportErr struct {
	Operation string
	Cause     error
}

func NewTransportError(operation string, cause error) *TransportErr {
	return &TransportErr{Operation: operation, Cause: cause}
}

func (e *TransportErr) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransport.Error(), e.Operation, e.Cause)
}

func (e *TransportErr) Unwrap() error {
	return ErrTransport
}

func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: 401,
		err:        ErrMissingToken,
		Details:    "Missing access token",
		Field:      "authorization",
	}
}

func NewExpiredTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: 401,
		err:        ErrExpiredToken,
		Details:    "Access token has expired",
		Field:      "authorization",
	}
}

func IsMissingTokenError(err error) bool {
	return errors.Is(err, ErrMissingToken)
}

func IsExpiredTokenError(err error) bool {
	return errors.Is(err, ErrExpiredToken)
}
