package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/drivingschool/internal/app/models/dto"
	"github.com/yigit/drivingschool/internal/app/screens"
	"github.com/yigit/drivingschool/internal/app/sessions"
	"github.com/yigit/drivingschool/internal/middleware"
	"github.com/yigit/drivingschool/internal/pkg/apperrors"
)

const enrollmentPath = "/enrollment"

// EnrollmentBackend is what the enrollment form needs from the school API
type EnrollmentBackend interface {
	screens.Catalog
	screens.StudentCreator
}

// EnrollmentController serves the new-student form
type EnrollmentController struct {
	backend EnrollmentBackend
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(backend EnrollmentBackend) *EnrollmentController {
	return &EnrollmentController{backend: backend}
}

// Show renders the form, loading courses and teachers on activation
func (c *EnrollmentController) Show(ctx *gin.Context) {
	session, ok := currentSession(ctx)
	if !ok {
		return
	}
	form := c.activate(ctx, session, refreshRequested(ctx))
	ctx.HTML(http.StatusOK, "enrollment.html", gin.H{
		"Title": "Enroll a student",
		"View":  form.View(),
	})
}

// Submit takes the posted draft and submits it. Validation and backend
// failures are reported on the form itself.
func (c *EnrollmentController) Submit(ctx *gin.Context) {
	session, ok := currentSession(ctx)
	if !ok {
		return
	}
	form := c.activate(ctx, session, false)
	posted := middleware.PostedFields(ctx, dto.DraftFields)

	err := form.Submit(ctx.Request.Context(), posted, c.backend)
	if apperrors.Is(err, apperrors.ErrSubmitInProgress) {
		middleware.HandleAppError(ctx, err)
		return
	}
	if err != nil {
		_ = ctx.Error(err)
	}
	seeOther(ctx, enrollmentPath)
}

func (c *EnrollmentController) activate(ctx *gin.Context, session *sessions.Session, fresh bool) *screens.EnrollmentForm {
	if !fresh {
		if scr, ok := session.Screen(screens.KindEnrollment); ok {
			return scr.(*screens.EnrollmentForm)
		}
	}
	form := screens.NewEnrollmentForm()
	session.Replace(form)
	form.Activate(ctx.Request.Context(), c.backend)
	return form
}
