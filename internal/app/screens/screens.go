// Package screens holds the state of the three front-desk screens: the
// roster, the edit dialog embedded in the editable roster, and the
// enrollment form. A screen lives for one activation; nothing here is
// shared between screens or cached across activations.
package screens

import (
	"context"

	"github.com/yigit/drivingschool/internal/app/models"
	"github.com/yigit/drivingschool/internal/app/models/dto"
)

// StudentLister fetches the full student list
type StudentLister interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
}

// StudentUpdater replaces a student's scalar fields
type StudentUpdater interface {
	UpdateStudent(ctx context.Context, id models.ID, update dto.StudentUpdate) error
}

// StudentCreator registers a new student
type StudentCreator interface {
	CreateStudent(ctx context.Context, draft dto.StudentDraft) (*models.Student, error)
}

// Catalog supplies the reference data for the enrollment selectors
type Catalog interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	ListTeachers(ctx context.Context) ([]models.Teacher, error)
}

// Screen is anything a session can hold as its active screen
type Screen interface {
	Kind() Kind
}

// Kind identifies a screen for navigation
type Kind string

const (
	KindRoster         Kind = "roster"
	KindEditableRoster Kind = "roster:editable"
	KindEnrollment     Kind = "enrollment"
)

func genderOptions(selected string) []dto.Option {
	opts := make([]dto.Option, 0, len(models.Genders))
	for _, g := range models.Genders {
		v := string(g)
		label := "Male"
		if g == models.GenderFemale {
			label = "Female"
		}
		opts = append(opts, dto.Option{Value: v, Label: label, Selected: v == selected})
	}
	return opts
}

// dialogGenderOptions leads with the stored value when it is none of the
// enumerated genders, so an untouched select posts it back unchanged.
func dialogGenderOptions(current string) []dto.Option {
	opts := genderOptions(current)
	for _, o := range opts {
		if o.Selected {
			return opts
		}
	}
	label := current
	if label == "" {
		label = "Select Gender"
	}
	return append([]dto.Option{{Value: current, Label: label, Selected: true}}, opts...)
}
