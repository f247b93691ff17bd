package controllers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yigit/drivingschool/internal/app/controllers"
	"github.com/yigit/drivingschool/internal/app/models"
	"github.com/yigit/drivingschool/internal/app/models/dto"
	"github.com/yigit/drivingschool/internal/app/routes"
	"github.com/yigit/drivingschool/internal/app/sessions"
	"github.com/yigit/drivingschool/internal/middleware"
	"github.com/yigit/drivingschool/internal/pkg/backend"
	"github.com/yigit/drivingschool/internal/web"
)

type fakeBackend struct {
	mu        sync.Mutex
	students  []models.Student
	listErr   error
	listCalls int

	updateErr error
	updated   map[models.ID]dto.StudentUpdate

	courses    []models.Course
	teachers   []models.Teacher
	catalogErr error
	createErr  error
	created    []dto.StudentDraft
	healthErr  error
}

func (f *fakeBackend) ListStudents(ctx context.Context) ([]models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Student(nil), f.students...), nil
}

func (f *fakeBackend) UpdateStudent(ctx context.Context, id models.ID, u dto.StudentUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.updated == nil {
		f.updated = make(map[models.ID]dto.StudentUpdate)
	}
	f.updated[id] = u
	return nil
}

func (f *fakeBackend) ListCourses(ctx context.Context) ([]models.Course, error) {
	return f.courses, f.catalogErr
}

func (f *fakeBackend) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	return f.teachers, f.catalogErr
}

func (f *fakeBackend) CreateStudent(ctx context.Context, d dto.StudentDraft) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, d)
	return &models.Student{ID: "100"}, nil
}

func (f *fakeBackend) Health(ctx context.Context) error {
	return f.healthErr
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func newRouter(t *testing.T, fb *fakeBackend, editableHome bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tmpl, err := web.Templates()
	if err != nil {
		t.Fatal(err)
	}
	r.SetHTMLTemplate(tmpl)
	routes.SetupRouter(r,
		controllers.NewRosterController(fb, 10, editableHome),
		controllers.NewEnrollmentController(fb),
		controllers.NewHealthController(fb, time.Second),
		middleware.Sessions(sessions.NewStore(time.Minute, nil), false),
		promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{}),
		web.Static(),
	)
	return r
}

// browser carries the session cookie between requests
type browser struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			b.cookie = c
		}
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil)
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return b.do(http.MethodPost, path, form)
}

func numbered(n int) []models.Student {
	out := make([]models.Student, n)
	for i := range out {
		id := strconv.Itoa(i + 1)
		out[i] = models.Student{ID: models.ID(id), FirstName: "Student" + id, LastName: "Last"}
	}
	return out
}

func cell(s string) string { return "<td>" + s + "</td>" }

func assertContains(t *testing.T, body string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Errorf("body missing %q", w)
		}
	}
}

func assertNotContains(t *testing.T, body string, unwanted ...string) {
	t.Helper()
	for _, w := range unwanted {
		if strings.Contains(body, w) {
			t.Errorf("body unexpectedly contains %q", w)
		}
	}
}

func TestHomeRedirectsToConfiguredVariant(t *testing.T) {
	for editable, want := range map[bool]string{false: "/students", true: "/students/manage"} {
		b := &browser{t: t, router: newRouter(t, &fakeBackend{}, editable)}
		w := b.get("/")
		if w.Code != http.StatusFound || w.Header().Get("Location") != want {
			t.Errorf("editable=%v: %d → %q", editable, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestRosterPagesWithoutRefetching(t *testing.T) {
	fb := &fakeBackend{students: numbered(12)}
	b := &browser{t: t, router: newRouter(t, fb, false)}

	w := b.get("/students")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	assertContains(t, w.Body.String(), cell("Student1"), cell("Student10"), "1–10 of 12")
	assertNotContains(t, w.Body.String(), cell("Student11"))

	w = b.get("/students?page=1&size=10")
	assertContains(t, w.Body.String(), cell("Student11"), cell("Student12"), "11–12 of 12")
	assertNotContains(t, w.Body.String(), cell("Student1"), cell("Student10"))

	w = b.get("/students?size=25")
	assertContains(t, w.Body.String(), cell("Student1"), cell("Student12"), "1–12 of 12")

	if fb.calls() != 1 {
		t.Errorf("list fetched %d times, want 1", fb.calls())
	}
}

func TestRosterFetchFailure(t *testing.T) {
	fb := &fakeBackend{listErr: errors.New("connection refused")}
	b := &browser{t: t, router: newRouter(t, fb, false)}

	w := b.get("/students")
	if w.Code != http.StatusBadGateway {
		t.Errorf("status %d", w.Code)
	}
	assertContains(t, w.Body.String(), "Error fetching students data")
	assertNotContains(t, w.Body.String(), "<table")
}

func TestNavigationDiscardsScreen(t *testing.T) {
	fb := &fakeBackend{students: numbered(3)}
	b := &browser{t: t, router: newRouter(t, fb, false)}

	b.get("/students")
	b.get("/students")
	if fb.calls() != 1 {
		t.Fatalf("reload refetched: %d", fb.calls())
	}
	b.get("/enrollment")
	b.get("/students")
	if fb.calls() != 2 {
		t.Errorf("returning to the roster should refetch, calls=%d", fb.calls())
	}
	b.get("/students?refresh=1")
	if fb.calls() != 3 {
		t.Errorf("refresh should refetch, calls=%d", fb.calls())
	}
}

func TestEditFlow(t *testing.T) {
	students := numbered(2)
	students[1].Course = &models.Course{ID: "1", Name: "Manual"}
	fb := &fakeBackend{students: students}
	b := &browser{t: t, router: newRouter(t, fb, true)}

	b.get("/students/manage")
	w := b.post("/students/manage/edit/2", nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("edit: %d", w.Code)
	}
	w = b.get("/students/manage")
	assertContains(t, w.Body.String(), "Edit Student", `value="Student2"`, "Course: Manual", "Teacher: N/A")

	w = b.post("/students/manage/dialog", url.Values{"first_name": {"Renamed"}, "city": {"Adama"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("save: %d", w.Code)
	}
	got := fb.updated["2"]
	if got.FirstName != "Renamed" || got.City != "Adama" || got.LastName != "Last" {
		t.Errorf("update body = %+v", got)
	}

	w = b.get("/students/manage")
	assertContains(t, w.Body.String(), cell("Renamed"), cell("Adama"), cell("Student1"))
	assertNotContains(t, w.Body.String(), "Edit Student")
	if fb.calls() != 1 {
		t.Errorf("save must not refetch, calls=%d", fb.calls())
	}
}

func TestEditKeepsEmptyGender(t *testing.T) {
	fb := &fakeBackend{students: numbered(1)}
	b := &browser{t: t, router: newRouter(t, fb, true)}

	b.get("/students/manage")
	b.post("/students/manage/edit/1", nil)
	w := b.get("/students/manage")
	assertContains(t, w.Body.String(), `<option value="" selected>Select Gender</option>`)
	assertNotContains(t, w.Body.String(), `<option value="male" selected>`)

	// the browser posts the selected option along with the edited field
	w = b.post("/students/manage/dialog", url.Values{"first_name": {"Renamed"}, "gender": {""}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("save: %d", w.Code)
	}
	fb.mu.Lock()
	got := fb.updated["1"]
	fb.mu.Unlock()
	if got.FirstName != "Renamed" || got.Gender != "" {
		t.Errorf("update body = %+v", got)
	}
}

func TestEditSaveFailureKeepsDialog(t *testing.T) {
	fb := &fakeBackend{
		students:  numbered(1),
		updateErr: &backend.APIError{StatusCode: 422, Messages: []string{"Birthday is invalid"}},
	}
	b := &browser{t: t, router: newRouter(t, fb, true)}

	b.get("/students/manage")
	b.post("/students/manage/edit/1", nil)
	w := b.post("/students/manage/dialog", url.Values{"birthday": {"not-a-date"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("save: %d", w.Code)
	}
	w = b.get("/students/manage")
	assertContains(t, w.Body.String(), "Edit Student", "Birthday is invalid", `value="not-a-date"`)
}

func TestEditCancel(t *testing.T) {
	fb := &fakeBackend{students: numbered(1)}
	b := &browser{t: t, router: newRouter(t, fb, true)}

	b.get("/students/manage")
	b.post("/students/manage/edit/1", nil)
	w := b.post("/students/manage/dialog/cancel", nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("cancel: %d", w.Code)
	}
	assertNotContains(t, b.get("/students/manage").Body.String(), "Edit Student")
	if len(fb.updated) != 0 {
		t.Error("cancel sent an update")
	}
}

func TestEditErrors(t *testing.T) {
	fb := &fakeBackend{students: numbered(2)}

	t.Run("no active roster", func(t *testing.T) {
		b := &browser{t: t, router: newRouter(t, fb, true)}
		if w := b.post("/students/manage/edit/1", nil); w.Code != http.StatusConflict {
			t.Errorf("status %d", w.Code)
		}
	})
	t.Run("unknown student", func(t *testing.T) {
		b := &browser{t: t, router: newRouter(t, fb, true)}
		b.get("/students/manage")
		w := b.post("/students/manage/edit/404", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status %d", w.Code)
		}
		assertContains(t, w.Body.String(), "Student not found")
	})
	t.Run("second selection", func(t *testing.T) {
		b := &browser{t: t, router: newRouter(t, fb, true)}
		b.get("/students/manage")
		b.post("/students/manage/edit/1", nil)
		if w := b.post("/students/manage/edit/2", nil); w.Code != http.StatusConflict {
			t.Errorf("status %d", w.Code)
		}
	})
	t.Run("read-only roster active", func(t *testing.T) {
		b := &browser{t: t, router: newRouter(t, fb, false)}
		b.get("/students")
		if w := b.post("/students/manage/edit/1", nil); w.Code != http.StatusConflict {
			t.Errorf("status %d", w.Code)
		}
	})
}

func completeForm() url.Values {
	return url.Values{
		"first_name": {"Abel"},
		"last_name":  {"Girma"},
		"birthday":   {"1999-02-03"},
		"gender":     {"male"},
		"sub_city":   {"Bole"},
		"city":       {"Addis Ababa"},
		"course_id":  {"1"},
		"id_number":  {"ET-55"},
		"teacher_id": {"7"},
	}
}

func TestEnrollmentFlow(t *testing.T) {
	fb := &fakeBackend{
		courses:  []models.Course{{ID: "1", Name: "Manual"}},
		teachers: []models.Teacher{{ID: "7", Name: "Hana"}},
	}
	b := &browser{t: t, router: newRouter(t, fb, false)}

	w := b.get("/enrollment")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	assertContains(t, w.Body.String(), "Manual", "Hana", "Create Student")

	partial := completeForm()
	partial.Del("teacher_id")
	if w := b.post("/enrollment", partial); w.Code != http.StatusSeeOther {
		t.Fatalf("submit: %d", w.Code)
	}
	if len(fb.created) != 0 {
		t.Fatal("incomplete draft was sent")
	}
	w = b.get("/enrollment")
	assertContains(t, w.Body.String(), "Please fill in all fields.", `value="Abel"`)

	if w := b.post("/enrollment", completeForm()); w.Code != http.StatusSeeOther {
		t.Fatalf("submit: %d", w.Code)
	}
	if len(fb.created) != 1 || fb.created[0].TeacherID != "7" {
		t.Fatalf("created = %+v", fb.created)
	}
	w = b.get("/enrollment")
	assertContains(t, w.Body.String(), "Student created successfully!")
	assertNotContains(t, w.Body.String(), `value="Abel"`)
}

func TestEnrollmentBackendFailure(t *testing.T) {
	fb := &fakeBackend{
		catalogErr: errors.New("down"),
		createErr:  &backend.APIError{StatusCode: 422, Messages: []string{"Id number has already been taken"}},
	}
	b := &browser{t: t, router: newRouter(t, fb, false)}

	w := b.get("/enrollment")
	assertContains(t, w.Body.String(), "Failed to load courses", "Failed to load teachers", "Create Student")

	b.post("/enrollment", completeForm())
	w = b.get("/enrollment")
	assertContains(t, w.Body.String(),
		"Error creating student. Please check your input. Id number has already been taken",
		`value="Abel"`)
}

func TestHealth(t *testing.T) {
	fb := &fakeBackend{}
	r := newRouter(t, fb, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"backend":true`) {
		t.Errorf("healthy: %d %s", w.Code, w.Body.String())
	}

	fb.healthErr = errors.New("down")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy: %d", w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	b := &browser{t: t, router: newRouter(t, &fakeBackend{}, false)}
	w := b.get("/nope")
	if w.Code != http.StatusNotFound {
		t.Errorf("status %d", w.Code)
	}
	assertContains(t, w.Body.String(), "Page not found")
}
