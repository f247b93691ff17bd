package dto

// NotAvailable is rendered in place of any empty roster cell
const NotAvailable = "N/A"

// OrNA returns s, or the placeholder when s is empty
func OrNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// StudentRow is one roster table row, placeholders already applied
type StudentRow struct {
	ID        string
	FirstName string
	LastName  string
	Birthday  string
	City      string
	Course    string
	Teacher   string
	SubCity   string
	IDNumber  string
}

// RosterView is everything the roster template needs for one render
type RosterView struct {
	Loading  bool
	Error    string
	Editable bool

	Rows  []StudentRow
	Total int

	// Pagination; only meaningful when Paginated is true
	Paginated bool
	Page      int
	PageSize  int
	PageCount int
	PageSizes []int
	FirstRow  int
	LastRow   int
	HasPrev   bool
	HasNext   bool

	Dialog *DialogView
}

// PrevPage is the 0-based index of the previous page
func (v RosterView) PrevPage() int { return v.Page - 1 }

// NextPage is the 0-based index of the next page
func (v RosterView) NextPage() int { return v.Page + 1 }

// DialogView is the open edit dialog
type DialogView struct {
	StudentID   string
	Draft       StudentUpdate
	CourseName  string
	TeacherName string
	Busy        bool
	Error       string
	Genders     []Option
}

// Option is one entry of a select control
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// EnrollmentView is everything the enrollment template needs for one render
type EnrollmentView struct {
	Draft    StudentDraft
	Courses  []Option
	Teachers []Option
	Genders  []Option

	// LoadErrors are catalog fetch failures; the form still renders
	LoadErrors []string
	// Message is the validation/submission feedback line
	Message   string
	Succeeded bool
	Missing   []string
	Busy      bool
}
