package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/drivingschool/internal/app/models/dto"
	"github.com/yigit/drivingschool/internal/pkg/apperrors"
	"github.com/yigit/drivingschool/internal/pkg/backend"
	"github.com/yigit/drivingschool/internal/pkg/logger"
)

// ErrorTemplate is the template every full-page error renders with
const ErrorTemplate = "error.html"

// HandleAppError renders the error page for err with the matching status code
func HandleAppError(c *gin.Context, err error) {
	status, detail := classify(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	}
	RenderError(c, status, detail)
}

// RenderError aborts the chain with a rendered error page
func RenderError(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.HTML(status, ErrorTemplate, gin.H{
		"Title": http.StatusText(status),
		"Page":  dto.NewErrorPage(status, detail),
	})
	c.Abort()
}

// NotFound renders the 404 page for unknown routes
func NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Page not found"))
}

func classify(err error) (int, *dto.ErrorDetail) {
	msg := func(fallback string) string {
		if m, ok := apperrors.MessageOf(err); ok {
			return m
		}
		return fallback
	}

	switch {
	case errors.Is(err, apperrors.ErrStudentNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, msg("Student not found"))
	case errors.Is(err, apperrors.ErrRosterReadOnly):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "This roster is read-only")
	case errors.Is(err, apperrors.ErrSubmitInProgress):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, "A submission is already in progress")
	case errors.Is(err, apperrors.ErrDialogAlreadyOpen):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, "Another student is already being edited")
	case apperrors.Is(err, apperrors.ErrScreenNotActive, apperrors.ErrScreenNotReady, apperrors.ErrDialogClosed):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeSessionNotFound, "This page has expired. Please reload it.")
	case apperrors.Is(err, apperrors.ErrUnknownField, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, msg("Invalid request"))
	case apperrors.Is(err, apperrors.ErrBackendUnavailable, apperrors.ErrBackendRejected, apperrors.ErrMalformedResponse):
		detail := dto.NewErrorDetail(dto.ErrorCodeBackendError, "The school service could not be reached")
		if m, ok := backend.ServerMessage(err); ok {
			detail = detail.WithDetails(m)
		}
		return http.StatusBadGateway, detail
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
