package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrStoreNotFound is returned when a store is not found.
	ErrStoreNotFound = errors.New("store not found")
	// ErrRatingNotFound is returned when modifying a rating that was never submitted.
	ErrRatingNotFound = errors.New("no existing rating found, use POST to submit one")
	// ErrAlreadyRated is returned when submitting a second rating for the same store.
	ErrAlreadyRated = errors.New("rating already exists, use PUT to modify")
	// ErrInvalidRating is returned for rating values outside the integers 1 to 5.
	ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")
	// ErrEmailTaken is returned when a user email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrStoreEmailTaken is returned when a store email is already registered.
	ErrStoreEmailTaken = errors.New("store email already exists")
	// ErrOwnerNotFound is returned when a store references a missing owner.
	ErrOwnerNotFound = errors.New("owner_id does not exist")
	// ErrNotAnOwner is returned when a store references a user whose role is not owner.
	ErrNotAnOwner = errors.New("provided user is not a store owner (role must be owner)")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrTooManyAttempts is returned while a login is locked out.
	ErrTooManyAttempts = errors.New("too many login attempts, try again later")
	// ErrUnauthenticated is returned for a missing or invalid bearer token.
	ErrUnauthenticated = errors.New("missing or invalid token")
	// ErrForbidden is returned when the caller's role lacks the capability.
	ErrForbidden = errors.New("access denied for this role")
)

// ValidationError carries a client-facing message about malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

var sentinels = []struct {
	err    error
	status int
	code   string
}{
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrStoreNotFound, http.StatusNotFound, "STORE_NOT_FOUND"},
	{ErrRatingNotFound, http.StatusNotFound, "RATING_NOT_FOUND"},
	{ErrAlreadyRated, http.StatusBadRequest, "ALREADY_RATED"},
	{ErrInvalidRating, http.StatusBadRequest, "INVALID_RATING"},
	{ErrEmailTaken, http.StatusBadRequest, "EMAIL_TAKEN"},
	{ErrStoreEmailTaken, http.StatusBadRequest, "STORE_EMAIL_TAKEN"},
	{ErrOwnerNotFound, http.StatusBadRequest, "OWNER_NOT_FOUND"},
	{ErrNotAnOwner, http.StatusBadRequest, "NOT_AN_OWNER"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrTooManyAttempts, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS"},
	{ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized becomes
// a generic 500 so internal detail never reaches the caller.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
	}

	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return NewHTTPError(s.status, s.err.Error(), s.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}

// IsInternal reports whether err would surface as a 500.
func IsInternal(err error) bool {
	return MapErrorToHTTP(err).StatusCode >= http.StatusInternalServerError
}
