package client

import (
	"bytes"
	"catalogue/internal/config"
	"catalogue/internal/course"
	"context"
	"encoding/json"
	"fmt"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/juju/retry"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var logger = loggo.GetLogger("catalogue.client")

const (
	defaultAttempts = 3
	defaultDelay    = 200 * time.Millisecond
)

// errTransient marks failures worth another attempt: the request never got an
// answer or the backend reported itself unavailable.
var errTransient = errors.ConstError("backend temporarily unavailable")

// CourseClient talks to a remote catalogue over its REST API. It satisfies
// course.Service so the web forms can run against a separate backend.
type CourseClient struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	clock    clock.Clock
	attempts int
	delay    time.Duration
}

var _ course.Service = (*CourseClient)(nil)

func NewCourseClient(cfg config.BackendConfig) *CourseClient {
	return &CourseClient{
		baseURL:  strings.TrimRight(cfg.URL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		http:     &http.Client{Timeout: cfg.Timeout},
		clock:    clock.WallClock,
		attempts: defaultAttempts,
		delay:    defaultDelay,
	}
}

func (c *CourseClient) GetAllCourses(ctx context.Context) ([]course.Course, error) {
	var courses []course.Course
	err := c.call(ctx, http.MethodGet, "/courses/", nil, nil, &courses)
	return courses, errors.Annotate(err, "listing courses")
}

func (c *CourseClient) GetCourseByID(ctx context.Context, id int64) (course.Course, error) {
	var found course.Course
	if err := c.call(ctx, http.MethodGet, coursePath(id), nil, nil, &found); err != nil {
		return course.Course{}, notFoundAs(err, id)
	}
	return found, nil
}

func (c *CourseClient) SearchSimilarCourses(ctx context.Context, name, category string, minRating int) ([]course.Course, error) {
	query := url.Values{
		"name":     {name},
		"category": {category},
		"rating":   {strconv.Itoa(minRating)},
	}
	var courses []course.Course
	err := c.call(ctx, http.MethodGet, "/courses/search", query, nil, &courses)
	return courses, errors.Annotate(err, "searching courses")
}

func (c *CourseClient) CreateCourse(ctx context.Context, created course.Course) (course.Course, error) {
	var result course.Course
	if err := c.call(ctx, http.MethodPost, "/courses/", nil, toRequest(created), &result); err != nil {
		return course.Course{}, err
	}
	return result, nil
}

func (c *CourseClient) UpdateCourse(ctx context.Context, id int64, patch course.Course) (course.Course, error) {
	var result course.Course
	if err := c.call(ctx, http.MethodPut, coursePath(id), nil, toRequest(patch), &result); err != nil {
		return course.Course{}, notFoundAs(err, id)
	}
	return result, nil
}

func (c *CourseClient) DeleteCourseByID(ctx context.Context, id int64) error {
	return notFoundAs(c.call(ctx, http.MethodDelete, coursePath(id), nil, nil, nil), id)
}

func (c *CourseClient) DeleteCourses(ctx context.Context) error {
	return errors.Annotate(c.call(ctx, http.MethodDelete, "/courses/", nil, nil, nil), "deleting all courses")
}

// call performs one API request. Idempotent methods are retried on transient
// failures; POST is sent once.
func (c *CourseClient) call(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return errors.Annotate(err, "encoding request")
		}
	}

	attempts := c.attempts
	if method == http.MethodPost {
		attempts = 1
	}
	err := retry.Call(retry.CallArgs{
		Func: func() error {
			return c.do(ctx, method, path, query, payload, out)
		},
		IsFatalError: func(err error) bool {
			return !errors.Is(err, errTransient)
		},
		NotifyFunc: func(err error, attempt int) {
			if attempt < attempts {
				logger.Warningf("%s %s failed (attempt %d of %d): %v", method, path, attempt, attempts, err)
			}
		},
		Attempts:    attempts,
		Delay:       c.delay,
		BackoffFunc: retry.DoubleDelay,
		Clock:       c.clock,
		Stop:        ctx.Done(),
	})
	if retry.IsAttemptsExceeded(err) || retry.IsRetryStopped(err) {
		err = retry.LastError(err)
	}
	return err
}

func (c *CourseClient) do(ctx context.Context, method, path string, query url.Values, payload []byte, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return errors.Annotate(err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", errTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		return errors.Annotate(json.NewDecoder(resp.Body).Decode(out), "decoding response")
	}
	return statusError(resp)
}

func statusError(resp *http.Response) error {
	var problem course.ErrorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&problem)
	message := problem.Error
	if message == "" {
		message = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return errors.NotFoundf("remote course")
	case http.StatusBadRequest:
		reason := strings.TrimPrefix(message, fmt.Sprintf("invalid course %s: ", problem.Field))
		return &course.ValidationError{Field: problem.Field, Reason: reason}
	case http.StatusUnauthorized:
		return errors.Unauthorizedf("backend rejected the credentials")
	case http.StatusForbidden:
		return errors.Forbiddenf("backend denied access: %s", message)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: backend answered %s", errTransient, resp.Status)
	}
	return errors.Errorf("backend answered %s: %s", resp.Status, message)
}

// notFoundAs turns a remote 404 into the error a local service would return.
func notFoundAs(err error, id int64) error {
	if errors.Is(err, errors.NotFound) {
		return &course.NotFoundError{ID: id}
	}
	return err
}

func coursePath(id int64) string {
	return "/courses/" + strconv.FormatInt(id, 10)
}

func toRequest(c course.Course) course.CourseRequest {
	return course.CourseRequest{
		Name:        c.Name,
		Category:    c.Category,
		Rating:      c.Rating,
		Description: c.Description,
		Author:      c.Author,
	}
}
