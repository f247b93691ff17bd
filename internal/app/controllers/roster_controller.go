package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/drivingschool/internal/app/models"
	"github.com/yigit/drivingschool/internal/app/models/dto"
	"github.com/yigit/drivingschool/internal/app/screens"
	"github.com/yigit/drivingschool/internal/app/sessions"
	"github.com/yigit/drivingschool/internal/middleware"
	"github.com/yigit/drivingschool/internal/pkg/apperrors"
	"github.com/yigit/drivingschool/internal/pkg/helpers"
)

const (
	rosterPath       = "/students"
	manageRosterPath = "/students/manage"
)

// StudentsBackend is what the roster screens need from the school API
type StudentsBackend interface {
	screens.StudentLister
	screens.StudentUpdater
}

// RosterController serves the read-only and editable student rosters
type RosterController struct {
	backend      StudentsBackend
	pageSize     int
	editableHome bool
}

// NewRosterController creates a new RosterController. pageSize is the
// initial page size of the read-only roster; editableHome picks which
// variant "/" opens.
func NewRosterController(backend StudentsBackend, pageSize int, editableHome bool) *RosterController {
	return &RosterController{
		backend:      backend,
		pageSize:     pageSize,
		editableHome: editableHome,
	}
}

// Home redirects to the configured roster variant
func (c *RosterController) Home(ctx *gin.Context) {
	if c.editableHome {
		ctx.Redirect(http.StatusFound, manageRosterPath)
		return
	}
	ctx.Redirect(http.StatusFound, rosterPath)
}

// List renders the paginated roster. ?size= switches the page size (and
// returns to the first page); ?page= moves to a 0-based page.
func (c *RosterController) List(ctx *gin.Context) {
	session, ok := currentSession(ctx)
	if !ok {
		return
	}
	roster := c.activate(ctx, session, false)

	if size, ok := helpers.ParseSizeParam(ctx.Query("size")); ok {
		if _, current := roster.Page(); current != size {
			roster.SetPageSize(size)
		}
	}
	if page, ok := helpers.ParsePageParam(ctx.Query("page")); ok {
		roster.SetPage(page)
	}

	c.render(ctx, roster, "Students")
}

// Manage renders the editable roster with its edit dialog
func (c *RosterController) Manage(ctx *gin.Context) {
	session, ok := currentSession(ctx)
	if !ok {
		return
	}
	roster := c.activate(ctx, session, true)
	c.render(ctx, roster, "Manage students")
}

// Edit opens the edit dialog for the student in the :id path segment
func (c *RosterController) Edit(ctx *gin.Context) {
	roster, ok := c.editableRoster(ctx)
	if !ok {
		return
	}
	if err := roster.Select(models.ID(ctx.Param("id"))); err != nil {
		middleware.HandleAppError(ctx, err)
		return
	}
	seeOther(ctx, manageRosterPath)
}

// SaveDialog applies the posted fields to the draft and saves it. A backend
// failure keeps the dialog open with its message; only state conflicts
// render an error page.
func (c *RosterController) SaveDialog(ctx *gin.Context) {
	roster, ok := c.editableRoster(ctx)
	if !ok {
		return
	}
	dialog := roster.Dialog()
	for name, value := range middleware.PostedFields(ctx, dto.UpdateFields) {
		if err := dialog.SetField(name, value); err != nil {
			middleware.HandleAppError(ctx, err)
			return
		}
	}

	err := dialog.Save(ctx.Request.Context(), c.backend)
	if apperrors.Is(err, apperrors.ErrSubmitInProgress, apperrors.ErrDialogClosed) {
		middleware.HandleAppError(ctx, err)
		return
	}
	if err != nil {
		_ = ctx.Error(err)
	}
	seeOther(ctx, manageRosterPath)
}

// CancelDialog closes the dialog without a request
func (c *RosterController) CancelDialog(ctx *gin.Context) {
	roster, ok := c.editableRoster(ctx)
	if !ok {
		return
	}
	if err := roster.Dialog().Cancel(); err != nil {
		middleware.HandleAppError(ctx, err)
		return
	}
	seeOther(ctx, manageRosterPath)
}

// activate returns the session's roster of the requested variant, starting a
// new one (and fetching the list) when another screen is active or a
// refresh was asked for.
func (c *RosterController) activate(ctx *gin.Context, session *sessions.Session, editable bool) *screens.Roster {
	kind := screens.KindRoster
	if editable {
		kind = screens.KindEditableRoster
	}
	if !refreshRequested(ctx) {
		if scr, ok := session.Screen(kind); ok {
			return scr.(*screens.Roster)
		}
	}

	roster := screens.NewRoster(screens.RosterOptions{Editable: editable, PageSize: c.pageSize})
	session.Replace(roster)
	if err := roster.Activate(ctx.Request.Context(), c.backend); err != nil {
		_ = ctx.Error(err)
	}
	return roster
}

func (c *RosterController) editableRoster(ctx *gin.Context) (*screens.Roster, bool) {
	session, ok := currentSession(ctx)
	if !ok {
		return nil, false
	}
	scr, ok := session.Screen(screens.KindEditableRoster)
	if !ok {
		middleware.HandleAppError(ctx, apperrors.ErrScreenNotActive)
		return nil, false
	}
	return scr.(*screens.Roster), true
}

func (c *RosterController) render(ctx *gin.Context, roster *screens.Roster, title string) {
	status := http.StatusOK
	if roster.Status() == screens.RosterFailed {
		status = http.StatusBadGateway
	}
	ctx.HTML(status, "roster.html", gin.H{
		"Title": title,
		"View":  roster.View(),
	})
}
