package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "validation error keeps its message",
			err:        NewValidationError("name", "Name must be 20-60 characters"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantMsg:    "Name must be 20-60 characters",
		},
		{
			name:       "wrapped sentinel",
			err:        fmt.Errorf("submit rating: %w", ErrAlreadyRated),
			wantStatus: http.StatusBadRequest,
			wantCode:   "ALREADY_RATED",
			wantMsg:    ErrAlreadyRated.Error(),
		},
		{
			name:       "store not found",
			err:        ErrStoreNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "STORE_NOT_FOUND",
			wantMsg:    "store not found",
		},
		{
			name:       "missing rating",
			err:        ErrRatingNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "RATING_NOT_FOUND",
			wantMsg:    ErrRatingNotFound.Error(),
		},
		{
			name:       "authentication and authorization are distinct",
			err:        ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
			wantMsg:    ErrForbidden.Error(),
		},
		{
			name:       "unauthenticated",
			err:        ErrUnauthenticated,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHENTICATED",
			wantMsg:    ErrUnauthenticated.Error(),
		},
		{
			name:       "unknown error hides detail",
			err:        errors.New("dial tcp 10.0.0.3:3306: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestIsInternal(t *testing.T) {
	assert.True(t, IsInternal(errors.New("boom")))
	assert.False(t, IsInternal(ErrUserNotFound))
	assert.False(t, IsInternal(NewHTTPError(http.StatusTeapot, "short and stout", "TEAPOT")))
}

func TestToErrorResponse(t *testing.T) {
	resp := NewHTTPError(http.StatusNotFound, "user not found", "USER_NOT_FOUND").ToErrorResponse()
	assert.Equal(t, ErrorResponse{Message: "user not found", Code: "USER_NOT_FOUND"}, resp)
}
