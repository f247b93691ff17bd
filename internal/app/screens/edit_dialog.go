package screens

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/drivingschool/internal/app/models"
	"github.com/yigit/drivingschool/internal/app/models/dto"
	"github.com/yigit/drivingschool/internal/pkg/apperrors"
	"github.com/yigit/drivingschool/internal/pkg/backend"
	"github.com/yigit/drivingschool/internal/pkg/logger"
)

const updateFailedMessage = "Failed to update student. Please try again."

// DialogState is the edit dialog's position in closed → open → submitting
type DialogState int

const (
	DialogClosed DialogState = iota
	DialogOpen
	DialogSubmitting
)

// EditDialog edits one student's scalar fields. Course and teacher are
// shown but never part of the draft.
type EditDialog struct {
	mu          sync.Mutex
	state       DialogState
	studentID   models.ID
	draft       dto.StudentUpdate
	courseName  string
	teacherName string
	errMsg      string

	onSaved func(models.ID, dto.StudentUpdate)
	log     zerolog.Logger
}

func newEditDialog(onSaved func(models.ID, dto.StudentUpdate)) *EditDialog {
	return &EditDialog{
		onSaved: onSaved,
		log:     logger.Component("edit_dialog"),
	}
}

// Open seeds the draft from s. Only one student can be selected at a time;
// the dialog must be closed first.
func (d *EditDialog) Open(s models.Student) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != DialogClosed {
		return apperrors.ErrDialogAlreadyOpen
	}
	d.state = DialogOpen
	d.studentID = s.ID
	d.draft = dto.NewStudentUpdate(s)
	d.courseName = s.CourseName()
	d.teacherName = s.TeacherName()
	d.errMsg = ""
	return nil
}

// State returns the dialog state
func (d *EditDialog) State() DialogState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Busy reports whether a save is outstanding
func (d *EditDialog) Busy() bool {
	return d.State() == DialogSubmitting
}

// Draft returns the current draft and the student it belongs to
func (d *EditDialog) Draft() (models.ID, dto.StudentUpdate) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.studentID, d.draft
}

// Error returns the message of the last failed save
func (d *EditDialog) Error() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errMsg
}

// SetField edits one draft field. Nothing is sent until Save.
func (d *EditDialog) SetField(name, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.state {
	case DialogClosed:
		return apperrors.ErrDialogClosed
	case DialogSubmitting:
		return apperrors.ErrSubmitInProgress
	}
	if !d.draft.Set(name, value) {
		return apperrors.NewCustomError(apperrors.ErrUnknownField, "unknown field: "+name)
	}
	return nil
}

// Save sends the whole draft. On success the roster entry is merged and the
// dialog closes; on failure it stays open with the draft intact and Error set.
func (d *EditDialog) Save(ctx context.Context, updater StudentUpdater) error {
	d.mu.Lock()
	switch d.state {
	case DialogClosed:
		d.mu.Unlock()
		return apperrors.ErrDialogClosed
	case DialogSubmitting:
		d.mu.Unlock()
		return apperrors.ErrSubmitInProgress
	}
	d.state = DialogSubmitting
	d.errMsg = ""
	id, draft := d.studentID, d.draft
	d.mu.Unlock()

	err := updater.UpdateStudent(ctx, id, draft)
	if err == nil && d.onSaved != nil {
		d.onSaved(id, draft)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.log.Error().Err(err).Str("student_id", id.String()).Msg("Failed to update student")
		d.state = DialogOpen
		if msg, ok := backend.ServerMessage(err); ok {
			d.errMsg = msg
		} else {
			d.errMsg = updateFailedMessage
		}
		return err
	}
	d.reset()
	return nil
}

// Cancel discards the draft and closes without a request
func (d *EditDialog) Cancel() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == DialogSubmitting {
		return apperrors.ErrSubmitInProgress
	}
	d.reset()
	return nil
}

// View renders the dialog, nil when closed
func (d *EditDialog) View() *dto.DialogView {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == DialogClosed {
		return nil
	}
	return &dto.DialogView{
		StudentID:   d.studentID.String(),
		Draft:       d.draft,
		CourseName:  dto.OrNA(d.courseName),
		TeacherName: dto.OrNA(d.teacherName),
		Busy:        d.state == DialogSubmitting,
		Error:       d.errMsg,
		Genders:     dialogGenderOptions(d.draft.Gender),
	}
}

func (d *EditDialog) reset() {
	d.state = DialogClosed
	d.studentID = ""
	d.draft = dto.StudentUpdate{}
	d.courseName = ""
	d.teacherName = ""
	d.errMsg = ""
}
