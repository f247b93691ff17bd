package backend

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/yigit/drivingschool/internal/app/models/dto"
	"github.com/yigit/drivingschool/internal/pkg/apperrors"
)

// APIError is a non-2xx answer from the backend. Messages holds the
// structured `errors` list when the body carried one.
type APIError struct {
	StatusCode int
	Messages   []string
	Body       string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Joined())
	}
	return fmt.Sprintf("backend error %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap lets callers match on apperrors.ErrBackendRejected
func (e *APIError) Unwrap() error {
	return apperrors.ErrBackendRejected
}

// Joined returns the structured messages as one string, "" when there were none
func (e *APIError) Joined() string {
	return dto.APIErrorList{Errors: e.Messages}.Joined()
}

// IsAPIError reports whether err is (or wraps) an *APIError
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// ServerMessage extracts the joined backend error list from err, if any
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.Joined(); msg != "" {
			return msg, true
		}
	}
	return "", false
}
