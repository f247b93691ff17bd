package models

// Student is the read model returned by GET /students: scalar fields plus
// the nested Course and Teacher the backend resolved for display.
type Student struct {
	ID        ID     `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthday  string `json:"birthday"` // ISO date, e.g. 2001-04-30
	Gender    Gender `json:"gender"`
	SubCity   string `json:"sub_city"`
	City      string `json:"city"`
	IDNumber  string `json:"id_number"`
	CourseID  ID     `json:"course_id,omitempty"`
	TeacherID ID     `json:"teacher_id,omitempty"`

	// Relations, nil when the backend sends null or omits them
	Course  *Course  `json:"course,omitempty"`
	Teacher *Teacher `json:"teacher,omitempty"`
}

// CourseName returns the associated course's display name, "" when absent
func (s Student) CourseName() string {
	if s.Course == nil {
		return ""
	}
	return s.Course.Name
}

// TeacherName returns the associated teacher's display name, "" when absent
func (s Student) TeacherName() string {
	if s.Teacher == nil {
		return ""
	}
	return s.Teacher.Name
}
