package dto

import (
	"github.com/yigit/drivingschool/internal/app/models"
)

// Form/JSON field names shared by the drafts and the backend contract
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldBirthday  = "birthday"
	FieldGender    = "gender"
	FieldSubCity   = "sub_city"
	FieldCity      = "city"
	FieldCourseID  = "course_id"
	FieldIDNumber  = "id_number"
	FieldTeacherID = "teacher_id"
)

// StudentDraft is the write model for POST /students. Course and teacher
// are flat foreign keys here, unlike the nested objects of the read model.
type StudentDraft struct {
	FirstName string `json:"first_name" form:"first_name" validate:"required"`
	LastName  string `json:"last_name" form:"last_name" validate:"required"`
	Birthday  string `json:"birthday" form:"birthday" validate:"required"`
	Gender    string `json:"gender" form:"gender" validate:"required"`
	SubCity   string `json:"sub_city" form:"sub_city" validate:"required"`
	City      string `json:"city" form:"city" validate:"required"`
	CourseID  string `json:"course_id" form:"course_id" validate:"required"`
	IDNumber  string `json:"id_number" form:"id_number" validate:"required"`
	TeacherID string `json:"teacher_id" form:"teacher_id" validate:"required"`
}

// DraftFields lists the nine enrollment fields in form order
var DraftFields = []string{
	FieldFirstName, FieldLastName, FieldBirthday, FieldGender, FieldSubCity,
	FieldCity, FieldCourseID, FieldIDNumber, FieldTeacherID,
}

func (d *StudentDraft) field(name string) *string {
	switch name {
	case FieldFirstName:
		return &d.FirstName
	case FieldLastName:
		return &d.LastName
	case FieldBirthday:
		return &d.Birthday
	case FieldGender:
		return &d.Gender
	case FieldSubCity:
		return &d.SubCity
	case FieldCity:
		return &d.City
	case FieldCourseID:
		return &d.CourseID
	case FieldIDNumber:
		return &d.IDNumber
	case FieldTeacherID:
		return &d.TeacherID
	}
	return nil
}

// Set assigns one field by its form name; false when the name is unknown
func (d *StudentDraft) Set(name, value string) bool {
	p := d.field(name)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// CreateStudentEnvelope is the body POST /students expects: { "student": {...} }
type CreateStudentEnvelope struct {
	Student StudentDraft `json:"student"`
}

// StudentUpdate is the write model for PUT /students/{id}: the scalar fields
// only. Course and teacher reassignment is not offered by the edit dialog.
type StudentUpdate struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Birthday  string `json:"birthday" form:"birthday"`
	Gender    string `json:"gender" form:"gender"`
	SubCity   string `json:"sub_city" form:"sub_city"`
	City      string `json:"city" form:"city"`
	IDNumber  string `json:"id_number" form:"id_number"`
}

// UpdateFields lists the editable scalar fields in form order
var UpdateFields = []string{
	FieldFirstName, FieldLastName, FieldBirthday, FieldGender, FieldSubCity, FieldCity, FieldIDNumber,
}

// NewStudentUpdate seeds an update draft from a student's current scalar fields
func NewStudentUpdate(s models.Student) StudentUpdate {
	return StudentUpdate{
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Birthday:  s.Birthday,
		Gender:    string(s.Gender),
		SubCity:   s.SubCity,
		City:      s.City,
		IDNumber:  s.IDNumber,
	}
}

func (u *StudentUpdate) field(name string) *string {
	switch name {
	case FieldFirstName:
		return &u.FirstName
	case FieldLastName:
		return &u.LastName
	case FieldBirthday:
		return &u.Birthday
	case FieldGender:
		return &u.Gender
	case FieldSubCity:
		return &u.SubCity
	case FieldCity:
		return &u.City
	case FieldIDNumber:
		return &u.IDNumber
	}
	return nil
}

// Set assigns one scalar field by its form name; false when the name is unknown
func (u *StudentUpdate) Set(name, value string) bool {
	p := u.field(name)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// ApplyTo merges the update over s. Identity and associations are kept.
func (u StudentUpdate) ApplyTo(s models.Student) models.Student {
	s.FirstName = u.FirstName
	s.LastName = u.LastName
	s.Birthday = u.Birthday
	s.Gender = models.Gender(u.Gender)
	s.SubCity = u.SubCity
	s.City = u.City
	s.IDNumber = u.IDNumber
	return s
}
