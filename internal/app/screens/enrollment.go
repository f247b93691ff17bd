package screens

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/drivingschool/internal/app/models"
	"github.com/yigit/drivingschool/internal/app/models/dto"
	"github.com/yigit/drivingschool/internal/pkg/apperrors"
	"github.com/yigit/drivingschool/internal/pkg/backend"
	"github.com/yigit/drivingschool/internal/pkg/logger"
)

const (
	coursesLoadError  = "Failed to load courses. Please try again later."
	teachersLoadError = "Failed to load teachers. Please try again later."
	fillAllFields     = "Please fill in all fields."
	createdMessage    = "Student created successfully!"
	createFailed      = "Error creating student. Please check your input."
)

var validate = newDraftValidator()

// newDraftValidator reports failed fields by their form names
func newDraftValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// EnrollmentForm collects and submits a new student.
type EnrollmentForm struct {
	mu         sync.Mutex
	draft      dto.StudentDraft
	courses    []models.Course
	teachers   []models.Teacher
	loadErrors []string
	message    string
	succeeded  bool
	missing    []string
	busy       bool

	log zerolog.Logger
}

// NewEnrollmentForm creates an empty form
func NewEnrollmentForm() *EnrollmentForm {
	return &EnrollmentForm{log: logger.Component("enrollment")}
}

// Kind implements Screen
func (f *EnrollmentForm) Kind() Kind {
	return KindEnrollment
}

// Activate loads courses and teachers with two independent concurrent
// requests. A failure only empties its own selector; the form is usable
// either way, so Activate never returns an error.
func (f *EnrollmentForm) Activate(ctx context.Context, catalog Catalog) {
	var (
		g                     errgroup.Group
		courses               []models.Course
		teachers              []models.Teacher
		courseErr, teacherErr error
	)
	g.Go(func() error {
		courses, courseErr = catalog.ListCourses(ctx)
		return nil
	})
	g.Go(func() error {
		teachers, teacherErr = catalog.ListTeachers(ctx)
		return nil
	})
	_ = g.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadErrors = nil
	f.courses, f.teachers = nil, nil
	if courseErr != nil {
		f.log.Error().Err(courseErr).Msg("Error fetching courses")
		f.loadErrors = append(f.loadErrors, coursesLoadError)
	} else {
		f.courses = courses
	}
	if teacherErr != nil {
		f.log.Error().Err(teacherErr).Msg("Error fetching teachers")
		f.loadErrors = append(f.loadErrors, teachersLoadError)
	} else {
		f.teachers = teachers
	}
}

// SetField edits one draft field
func (f *EnrollmentForm) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.draft.Set(name, value) {
		return apperrors.NewCustomError(apperrors.ErrUnknownField, "unknown field: "+name)
	}
	return nil
}

// Draft returns a copy of the draft
func (f *EnrollmentForm) Draft() dto.StudentDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Busy reports whether a submission is outstanding
func (f *EnrollmentForm) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// Missing lists the required fields the last submit found empty
func (f *EnrollmentForm) Missing() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.missing...)
}

// Message returns the feedback line and whether it reports success
func (f *EnrollmentForm) Message() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message, f.succeeded
}

// Submit copies the known fields present in values into the draft, gates on
// all nine being set, then posts it. On success the draft is cleared; on
// failure it is kept for correction. While another submission is
// outstanding the draft is left untouched.
func (f *EnrollmentForm) Submit(ctx context.Context, values map[string]string, creator StudentCreator) error {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return apperrors.ErrSubmitInProgress
	}
	for _, name := range dto.DraftFields {
		if v, ok := values[name]; ok {
			f.draft.Set(name, v)
		}
	}
	draft := f.draft
	if missing := missingFields(draft); len(missing) > 0 {
		f.message = fillAllFields
		f.succeeded = false
		f.missing = missing
		f.mu.Unlock()
		return apperrors.NewValidationError(fillAllFields)
	}
	f.busy = true
	f.message = ""
	f.succeeded = false
	f.missing = nil
	f.mu.Unlock()

	created, err := creator.CreateStudent(ctx, draft)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if err != nil {
		f.log.Error().Err(err).Msg("Error creating student")
		f.message = createFailed
		if msg, ok := backend.ServerMessage(err); ok {
			f.message = createFailed + " " + msg
		}
		return err
	}
	if created != nil {
		f.log.Info().Str("student_id", created.ID.String()).Msg("Student created")
	}
	f.draft = dto.StudentDraft{}
	f.message = createdMessage
	f.succeeded = true
	return nil
}

// View renders the form
func (f *EnrollmentForm) View() dto.EnrollmentView {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := dto.EnrollmentView{
		Draft:      f.draft,
		Genders:    genderOptions(f.draft.Gender),
		LoadErrors: append([]string(nil), f.loadErrors...),
		Message:    f.message,
		Succeeded:  f.succeeded,
		Missing:    append([]string(nil), f.missing...),
		Busy:       f.busy,
	}
	for _, c := range f.courses {
		id := c.ID.String()
		v.Courses = append(v.Courses, dto.Option{Value: id, Label: c.Name, Selected: id == f.draft.CourseID})
	}
	for _, t := range f.teachers {
		id := t.ID.String()
		v.Teachers = append(v.Teachers, dto.Option{Value: id, Label: t.Name, Selected: id == f.draft.TeacherID})
	}
	return v
}

func missingFields(draft dto.StudentDraft) []string {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return append([]string(nil), dto.DraftFields...)
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return missing
}
