package screens

import (
	"context"
	"fmt"
	"sync"

	"github.com/yigit/drivingschool/internal/app/models"
	"github.com/yigit/drivingschool/internal/app/models/dto"
)

type fakeLister struct {
	students []models.Student
	err      error
	calls    int
}

func (f *fakeLister) ListStudents(ctx context.Context) ([]models.Student, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.students, nil
}

type fakeUpdater struct {
	mu      sync.Mutex
	err     error
	calls   int
	gotID   models.ID
	gotBody dto.StudentUpdate
	block   chan struct{} // when set, holds the call until closed
	entered chan struct{}
}

func (f *fakeUpdater) UpdateStudent(ctx context.Context, id models.ID, u dto.StudentUpdate) error {
	f.mu.Lock()
	f.calls++
	f.gotID, f.gotBody = id, u
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	return f.err
}

type fakeCreator struct {
	mu      sync.Mutex
	err     error
	calls   int
	got     dto.StudentDraft
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeCreator) CreateStudent(ctx context.Context, d dto.StudentDraft) (*models.Student, error) {
	f.mu.Lock()
	f.calls++
	f.got = d
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.Student{ID: "99", FirstName: d.FirstName}, nil
}

type fakeCatalog struct {
	courses    []models.Course
	teachers   []models.Teacher
	courseErr  error
	teacherErr error
}

func (f *fakeCatalog) ListCourses(ctx context.Context) ([]models.Course, error) {
	return f.courses, f.courseErr
}

func (f *fakeCatalog) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	return f.teachers, f.teacherErr
}

// numberedStudents returns n students with ids and first names 1..n
func numberedStudents(n int) []models.Student {
	out := make([]models.Student, n)
	for i := range out {
		out[i] = models.Student{
			ID:        models.ID(fmt.Sprint(i + 1)),
			FirstName: fmt.Sprintf("Student%d", i+1),
			LastName:  "Last",
			Birthday:  "2000-01-01",
			City:      "Addis Ababa",
			SubCity:   "Bole",
			IDNumber:  fmt.Sprintf("ID-%d", i+1),
		}
	}
	return out
}
