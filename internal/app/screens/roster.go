package screens

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/drivingschool/internal/app/models"
	"github.com/yigit/drivingschool/internal/app/models/dto"
	"github.com/yigit/drivingschool/internal/pkg/apperrors"
	"github.com/yigit/drivingschool/internal/pkg/helpers"
	"github.com/yigit/drivingschool/internal/pkg/logger"
)

const rosterFetchError = "Error fetching students data"

// RosterStatus is where the roster is in its single fetch
type RosterStatus int

const (
	RosterLoading RosterStatus = iota
	RosterReady
	RosterFailed
)

// RosterOptions selects the roster variant
type RosterOptions struct {
	// Editable enables row selection into the edit dialog. The editable
	// variant lists every student on one page.
	Editable bool
	// PageSize is the initial page size of the paginated variant
	PageSize int
}

// Roster is the student list screen.
type Roster struct {
	mu       sync.Mutex
	opts     RosterOptions
	status   RosterStatus
	errMsg   string
	students []models.Student
	page     int
	pageSize int

	dialog *EditDialog
	log    zerolog.Logger
}

// NewRoster creates a roster in the loading state
func NewRoster(opts RosterOptions) *Roster {
	size := opts.PageSize
	if !helpers.IsPageSize(size) {
		size = helpers.DefaultPageSize
	}
	r := &Roster{
		opts:     opts,
		status:   RosterLoading,
		pageSize: size,
		log:      logger.Component("roster"),
	}
	r.dialog = newEditDialog(r.replace)
	return r
}

// Kind implements Screen
func (r *Roster) Kind() Kind {
	if r.opts.Editable {
		return KindEditableRoster
	}
	return KindRoster
}

// Editable reports the variant
func (r *Roster) Editable() bool {
	return r.opts.Editable
}

// Activate performs the roster's one fetch of all students.
func (r *Roster) Activate(ctx context.Context, lister StudentLister) error {
	r.mu.Lock()
	r.status = RosterLoading
	r.errMsg = ""
	r.mu.Unlock()

	students, err := lister.ListStudents(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to fetch students")
		r.status = RosterFailed
		r.errMsg = rosterFetchError
		r.students = nil
		return err
	}
	r.status = RosterReady
	r.students = students
	r.page = 0
	return nil
}

// Status returns the fetch state
func (r *Roster) Status() RosterStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// SetPage moves to a 0-based page, clamped to the pages that exist
func (r *Roster) SetPage(page int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.page = helpers.ClampPage(page, r.pageSize, len(r.students))
}

// SetPageSize switches to one of 10, 25 or 100 rows per page and returns to
// the first page. Other sizes are ignored and reported as false.
func (r *Roster) SetPageSize(size int) bool {
	if !helpers.IsPageSize(size) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pageSize = size
	r.page = 0
	return true
}

// Page returns the 0-based page index and the page size
func (r *Roster) Page() (page, size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page, r.pageSize
}

// Students returns a copy of the in-memory roster
func (r *Roster) Students() []models.Student {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Student, len(r.students))
	copy(out, r.students)
	return out
}

// Dialog returns the roster's edit dialog
func (r *Roster) Dialog() *EditDialog {
	return r.dialog
}

// Select opens the edit dialog for student id
func (r *Roster) Select(id models.ID) error {
	r.mu.Lock()
	if !r.opts.Editable {
		r.mu.Unlock()
		return apperrors.ErrRosterReadOnly
	}
	if r.status != RosterReady {
		r.mu.Unlock()
		return apperrors.ErrScreenNotReady
	}
	student, ok := r.find(id)
	r.mu.Unlock()
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	return r.dialog.Open(student)
}

// View renders the current state
func (r *Roster) View() dto.RosterView {
	r.mu.Lock()
	v := dto.RosterView{Editable: r.opts.Editable}
	switch r.status {
	case RosterLoading:
		r.mu.Unlock()
		v.Loading = true
		return v
	case RosterFailed:
		v.Error = r.errMsg
		r.mu.Unlock()
		return v
	}

	v.Total = len(r.students)
	visible := r.students
	if !r.opts.Editable {
		start, end := helpers.CalculateSliceIndices(r.page, r.pageSize, v.Total)
		visible = r.students[start:end]

		v.Paginated = true
		v.Page = r.page
		v.PageSize = r.pageSize
		v.PageCount = helpers.PageCount(v.Total, r.pageSize)
		v.PageSizes = helpers.PageSizeOptions
		v.HasPrev = r.page > 0
		v.HasNext = r.page < v.PageCount-1
		if end > start {
			v.FirstRow, v.LastRow = start+1, end
		}
	}
	v.Rows = make([]dto.StudentRow, 0, len(visible))
	for _, s := range visible {
		v.Rows = append(v.Rows, rowOf(s))
	}
	r.mu.Unlock()

	if r.opts.Editable {
		v.Dialog = r.dialog.View()
	}
	return v
}

// replace merges a saved update into the roster entry with that id. No other
// entry is touched.
func (r *Roster) replace(id models.ID, update dto.StudentUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.students {
		if r.students[i].ID == id {
			r.students[i] = update.ApplyTo(r.students[i])
			return
		}
	}
}

func (r *Roster) find(id models.ID) (models.Student, bool) {
	for _, s := range r.students {
		if s.ID == id {
			return s, true
		}
	}
	return models.Student{}, false
}

func rowOf(s models.Student) dto.StudentRow {
	return dto.StudentRow{
		ID:        s.ID.String(),
		FirstName: dto.OrNA(s.FirstName),
		LastName:  dto.OrNA(s.LastName),
		Birthday:  dto.OrNA(s.Birthday),
		City:      dto.OrNA(s.City),
		Course:    dto.OrNA(s.CourseName()),
		Teacher:   dto.OrNA(s.TeacherName()),
		SubCity:   dto.OrNA(s.SubCity),
		IDNumber:  dto.OrNA(s.IDNumber),
	}
}
