package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yigit/drivingschool/internal/app/models"
	"github.com/yigit/drivingschool/internal/app/models/dto"
	"github.com/yigit/drivingschool/internal/pkg/apperrors"
)

const maxBodyBytes = 8 << 20

// DefaultTimeout bounds each backend call when no timeout is configured
const DefaultTimeout = 10 * time.Second

// Client calls the driving-school backend REST API under /api/v1.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Metrics *Metrics
}

// New creates a client for baseURL (already including /api/v1).
func New(baseURL string, timeout time.Duration, metrics *Metrics) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Metrics: metrics,
		HTTP: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListStudents fetches the full student list with nested course and teacher.
func (c *Client) ListStudents(ctx context.Context) (students []models.Student, err error) {
	defer c.Metrics.observe("list_students", time.Now(), &err)

	if err = c.do(ctx, http.MethodGet, "/students", nil, &students); err != nil {
		return nil, err
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, nil
}

// UpdateStudent replaces the scalar fields of student id.
func (c *Client) UpdateStudent(ctx context.Context, id models.ID, update dto.StudentUpdate) (err error) {
	defer c.Metrics.observe("update_student", time.Now(), &err)

	if id == "" {
		return apperrors.NewBadRequestError("student id required")
	}
	return c.do(ctx, http.MethodPut, "/students/"+url.PathEscape(id.String()), update, nil)
}

// CreateStudent posts the draft wrapped in its envelope. The created record
// is returned when the backend echoes it, nil otherwise.
func (c *Client) CreateStudent(ctx context.Context, draft dto.StudentDraft) (created *models.Student, err error) {
	defer c.Metrics.observe("create_student", time.Now(), &err)

	var out models.Student
	raw, err := c.send(ctx, http.MethodPost, "/students", dto.CreateStudentEnvelope{Student: draft})
	if err != nil {
		return nil, err
	}
	// The record is informational; a body we cannot read does not undo the create.
	if len(bytes.TrimSpace(raw)) > 0 && sonic.Unmarshal(raw, &out) == nil && out.ID != "" {
		return &out, nil
	}
	return nil, nil
}

// ListCourses fetches the course catalog.
func (c *Client) ListCourses(ctx context.Context) (courses []models.Course, err error) {
	defer c.Metrics.observe("list_courses", time.Now(), &err)

	if err = c.do(ctx, http.MethodGet, "/courses", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// ListTeachers fetches the teacher roster.
func (c *Client) ListTeachers(ctx context.Context) (teachers []models.Teacher, err error) {
	defer c.Metrics.observe("list_teachers", time.Now(), &err)

	if err = c.do(ctx, http.MethodGet, "/teachers", nil, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

// Health checks that the backend answers the cheapest read it offers.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodGet, "/courses", nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	raw, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", apperrors.ErrMalformedResponse, method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, in interface{}) ([]byte, error) {
	var body io.Reader
	if in != nil {
		payload, err := sonic.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %w", apperrors.ErrBackendUnavailable, method, path, err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
		var list dto.APIErrorList
		if sonic.Unmarshal(raw, &list) == nil {
			apiErr.Messages = list.Errors
		}
		return nil, apiErr
	}

	return raw, nil
}
