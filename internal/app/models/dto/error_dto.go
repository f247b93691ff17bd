package dto

import (
	"strings"
	"time"
)

// APIErrorList is the optional error body of the backend's create/update
// endpoints: { "errors": ["...", "..."] }.
type APIErrorList struct {
	Errors []string `json:"errors"`
}

// Joined returns the messages as the single line shown to the operator
func (l APIErrorList) Joined() string {
	parts := make([]string, 0, len(l.Errors))
	for _, e := range l.Errors {
		if e = strings.TrimSpace(e); e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, ", ")
}

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	ErrorCodeResourceNotFound  ErrorCode = "RES_001"
	ErrorCodeConflict          ErrorCode = "RES_004"
	ErrorCodeValidationFailed  ErrorCode = "VAL_001"
	ErrorCodeForbidden         ErrorCode = "FORBIDDEN"
	ErrorCodeInternalServer    ErrorCode = "SRV_001"
	ErrorCodeBackendError      ErrorCode = "SRV_003"
	ErrorCodeSessionNotFound   ErrorCode = "SES_001"
	ErrorCodeRateLimitExceeded ErrorCode = "RATE_001"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:    code,
		Message: message,
	}
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details string) *ErrorDetail {
	e.Details = details
	return e
}

// ErrorPage is what the error template renders
type ErrorPage struct {
	Status    int
	Error     *ErrorDetail
	Timestamp time.Time
}

// NewErrorPage creates the view for a full-page error
func NewErrorPage(status int, detail *ErrorDetail) ErrorPage {
	return ErrorPage{
		Status:    status,
		Error:     detail,
		Timestamp: time.Now(),
	}
}
