package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/corkphoto/itinerary-backend/logger"
)

type ErrorType string

const (
	ValidationError            ErrorType = "VALIDATION_ERROR"
	NotFoundError              ErrorType = "NOT_FOUND"
	AuthError                  ErrorType = "AUTHENTICATION_ERROR"
	ForbiddenError             ErrorType = "FORBIDDEN"
	DatabaseError              ErrorType = "DATABASE_ERROR"
	ServerError                ErrorType = "SERVER_ERROR"
	ConflictError              ErrorType = "CONFLICT"
	RateLimitError             ErrorType = "RATE_LIMIT_EXCEEDED"
	StopMismatchError          ErrorType = "STOP_TRIP_MISMATCH"
	DuplicateStopError         ErrorType = "DUPLICATE_STOP"
	InsufficientLocationsError ErrorType = "INSUFFICIENT_LOCATIONS"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the status the error should be rendered with.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// Helper functions for common errors
func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidArgument is the validation error used for malformed ids, directions and counts.
func InvalidArgument(field string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Code:       "invalid_" + field,
		Message:    fmt.Sprintf("invalid %s", field),
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

func AuthenticationFailed(message string) *AppError {
	return &AppError{
		Type:       AuthError,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Forbidden(message string, details string) *AppError {
	return &AppError{
		Type:       ForbiddenError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusForbidden,
	}
}

func TripAccessDenied(userID, tripID string) *AppError {
	return Forbidden("Access to trip denied", fmt.Sprintf("User %s does not own trip %s", userID, tripID))
}

// StopMismatch reports a stop id that exists but belongs to another trip.
func StopMismatch(stopID, tripID string) *AppError {
	return &AppError{
		Type:       StopMismatchError,
		Message:    "Stop does not belong to this trip",
		Detail:     fmt.Sprintf("Stop %s is not part of trip %s", stopID, tripID),
		HTTPStatus: http.StatusBadRequest,
	}
}

// DuplicateStop reports that a location is already part of the trip.
func DuplicateStop(tripID, locationID string) *AppError {
	return &AppError{
		Type:       DuplicateStopError,
		Message:    "That location is already in this trip",
		Detail:     fmt.Sprintf("Location %s already in trip %s", locationID, tripID),
		HTTPStatus: http.StatusConflict,
	}
}

func InsufficientLocations(available, required int) *AppError {
	return &AppError{
		Type:       InsufficientLocationsError,
		Message:    "Not enough locations to build a random trip",
		Detail:     fmt.Sprintf("%d available, at least %d required", available, required),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func NewConflictError(message string, detail string) *AppError {
	return &AppError{
		Type:       ConflictError,
		Message:    message,
		Detail:     detail,
		HTTPStatus: http.StatusConflict,
	}
}

func RateLimitExceeded(message string, retryAfterSeconds int) *AppError {
	return &AppError{
		Type:       RateLimitError,
		Message:    message,
		Detail:     fmt.Sprintf("retry after %d seconds", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

func NewDatabaseError(err error) *AppError {
	// Log original error but return sanitized message
	logger.GetLogger().Errorw("Database error", "error", err)
	return &AppError{
		Type:       DatabaseError,
		Message:    "Database operation failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// IsType reports whether err is an AppError of the given type anywhere in its chain.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError, StopMismatchError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case ConflictError, DuplicateStopError:
		return http.StatusConflict
	case InsufficientLocationsError:
		return http.StatusUnprocessableEntity
	case RateLimitError:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
