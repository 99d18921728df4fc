package apperrors

import (
	"net/http"
)

// Factories and predefined errors for the business domains.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409 AppError.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Discovery ---

// ErrMissingLocationCriteria: neither coordinates nor a city were supplied.
func ErrMissingLocationCriteria() *AppError {
	return New(
		CodeMissingLocationCriteria,
		"discovery",
		"Either coordinates (lat, lng) or city must be provided",
		http.StatusBadRequest,
	)
}

// ErrInvalidCoordinates: latitude/longitude out of valid range.
func ErrInvalidCoordinates(details interface{}) *AppError {
	return New(
		CodeInvalidCoordinates,
		"discovery",
		"Invalid latitude or longitude values",
		http.StatusBadRequest,
	).WithDetails(details)
}

// ErrDiscoveryUnavailable: both the spatial query and its fallback failed.
func ErrDiscoveryUnavailable(err error) *AppError {
	return Wrap(
		err,
		CodeServiceUnavailable,
		"discovery",
		"Tailor discovery is temporarily unavailable",
		http.StatusServiceUnavailable,
	)
}
