package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Client-side validation errors. These are raised before any network call is
// made; a request carrying one of these never reaches the API.
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrFileType             = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file too large")
)

func NewMissingRequiredFieldError(fieldName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMissingRequiredField,
		Details:    fmt.Sprintf("Missing required field: %s", fieldName),
		Field:      fieldName,
	}
}

func NewInvalidFieldError(fieldName string, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidField,
		Details:    fmt.Sprintf("Invalid field %s: %s", fieldName, reason),
		Field:      fieldName,
	}
}

func NewFileTypeError(extension string, allowed []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrFileType,
		Details:    fmt.Sprintf("Unsupported file type %q. Allowed types: %s", extension, strings.Join(allowed, ", ")),
		Field:      "file",
	}
}

func NewFileTooLargeError(size, maxSize int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrFileTooLarge,
		Details:    fmt.Sprintf("File size %d exceeds maximum allowed size of %d bytes", size, maxSize),
		Field:      "file",
	}
}

// IsLocalValidation reports whether err was produced by client-side
// pre-validation, meaning no request was sent.
func IsLocalValidation(err error) bool {
	return errors.Is(err, ErrMissingRequiredField) ||
		errors.Is(err, ErrInvalidField) ||
		errors.Is(err, ErrFileType) ||
		errors.Is(err, ErrFileTooLarge)
}
