package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/drivingschool/internal/app/models/dto"
	"github.com/yigit/drivingschool/internal/app/sessions"
	"github.com/yigit/drivingschool/internal/middleware"
)

// currentSession fetches the request's session or renders a 500 page
func currentSession(ctx *gin.Context) (*sessions.Session, bool) {
	s, ok := middleware.CurrentSession(ctx)
	if !ok {
		middleware.RenderError(ctx, http.StatusInternalServerError,
			dto.NewErrorDetail(dto.ErrorCodeSessionNotFound, "No session attached to request"))
		return nil, false
	}
	return s, true
}

// refreshRequested reports whether the caller asked for a fresh activation
func refreshRequested(ctx *gin.Context) bool {
	v := ctx.Query("refresh")
	return v == "1" || v == "true"
}

// seeOther redirects a form post back to the screen it came from
func seeOther(ctx *gin.Context, location string) {
	ctx.Redirect(http.StatusSeeOther, location)
}
