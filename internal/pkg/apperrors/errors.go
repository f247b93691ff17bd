package apperrors

import "errors"

// Backend errors
var (
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBackendRejected    = errors.New("backend rejected the request")
	ErrMalformedResponse  = errors.New("malformed backend response")
)

// Resource errors
var (
	ErrStudentNotFound = errors.New("student not found")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrUnknownField     = errors.New("unknown field")
	ErrBadRequest       = errors.New("bad request")
)

// Screen state errors
var (
	ErrScreenNotActive   = errors.New("screen not active")
	ErrScreenNotReady    = errors.New("screen not ready")
	ErrRosterReadOnly    = errors.New("roster is read-only")
	ErrDialogAlreadyOpen = errors.New("edit dialog already open")
	ErrDialogClosed      = errors.New("edit dialog is closed")
	ErrSubmitInProgress  = errors.New("submission already in progress")
)

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError carries an operator-facing message on top of a sentinel
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewValidationError wraps ErrValidationFailed with a message shown as-is
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// MessageOf returns the operator-facing message of err when it carries one
func MessageOf(err error) (string, bool) {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message, true
	}
	return "", false
}
