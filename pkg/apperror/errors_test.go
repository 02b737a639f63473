package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppErrorHidesUnexpectedErrors(t *testing.T) {
	appErr := GetAppError(errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, GenericMessage, appErr.Message)
}

func TestGetAppErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("delete category: %w", NewConflictError("in use"))
	appErr := GetAppError(wrapped)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, "in use", appErr.Message)
	assert.True(t, IsAppError(wrapped))
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("customer_name", "is required")
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, []FieldError{{Field: "customer_name", Message: "is required"}}, err.Errors)
}
