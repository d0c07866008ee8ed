package runs

import (
	"errors"
	"net/http"
)

// Domain errors for archive operations.
var (
	ErrNotFound  = errors.New("run not found")
	ErrDuplicate = errors.New("run already archived")
	ErrInvalidID = errors.New("invalid run id")
)

// MapHTTPStatus maps archive errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
