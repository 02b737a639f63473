// Package apperror maps failures to the status codes and messages the API
// returns.
package apperror

import (
	"errors"
	"net/http"
)

// GenericMessage is what clients see when a store call or anything else
// unexpected fails. The underlying error is logged, never returned.
const GenericMessage = "Something went wrong. Please try again."

// AppError is an error the API can show to a client as is.
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError names one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	errInternal = &AppError{Code: http.StatusInternalServerError, Message: GenericMessage}

	ErrInvalidCredentials = NewAppError(http.StatusUnauthorized, "Invalid email or password")
	ErrInvalidToken       = NewAppError(http.StatusUnauthorized, "Invalid token")
)

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewValidationError answers 422 with one entry per offending field.
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

func NewFieldError(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewNotFoundError reports that the named resource does not exist,
// e.g. NewNotFoundError("Product") reads "Product not found".
func NewNotFoundError(resource string) *AppError {
	return NewAppError(http.StatusNotFound, resource+" not found")
}

// NewConflictError refuses an operation that would break a reference between
// records, e.g. deleting a category that products still point at.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message)
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError finds the AppError in err's chain. Anything else becomes a 500
// carrying GenericMessage.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return errInternal
}
