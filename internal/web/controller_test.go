package web

import (
	"catalogue/internal/course"
	"context"
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newTestRouter(t *testing.T, svc course.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(Templates())
	NewControllerImpl(svc).RegisterRoutes(router)
	return router
}

func seededService(t *testing.T) course.Service {
	t.Helper()
	svc := course.NewServiceImpl(course.NewMemoryRepository())
	require.NoError(t, course.Seed(context.Background(), svc))
	return svc
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func courseForm(name, category, rating, author string) url.Values {
	return url.Values{
		"name":        {name},
		"category":    {category},
		"rating":      {rating},
		"author":      {author},
		"description": {"Written for the web form tests."},
	}
}

func TestRootRedirectsToIndex(t *testing.T) {
	router := newTestRouter(t, seededService(t))

	w := get(router, "/")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/index", w.Header().Get("Location"))
}

func TestIndexListsCourses(t *testing.T) {
	router := newTestRouter(t, seededService(t))

	w := get(router, "/index")

	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range course.SampleCourses {
		assert.Contains(t, w.Body.String(), c.Name)
	}
	assert.Contains(t, w.Body.String(), `action="/search"`)
}

func TestIndexWithoutCourses(t *testing.T) {
	router := newTestRouter(t, course.NewServiceImpl(course.NewMemoryRepository()))

	w := get(router, "/index")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No courses found.")
}

func TestAddCourse(t *testing.T) {
	svc := seededService(t)
	router := newTestRouter(t, svc)

	w := get(router, "/addcourse")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/addcourse"`)

	w = postForm(router, "/addcourse", courseForm("Go in Practice", "Programming", "5", "Rob Pike"))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/index", w.Header().Get("Location"))

	results, err := svc.SearchSimilarCourses(context.Background(), "go in practice", "", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Rob Pike", results[0].Author)
}

func TestAddCourseRerendersInvalidForm(t *testing.T) {
	svc := seededService(t)
	router := newTestRouter(t, svc)

	tests := []struct {
		name    string
		form    url.Values
		message string
	}{
		{"missing name", courseForm("", "Programming", "3", "Someone"), "must not be empty"},
		{"rating too high", courseForm("Course", "Programming", "7", "Someone"), "must be at most 5"},
		{"rating missing", courseForm("Course", "Programming", "", "Someone"), "must be at least 1"},
		{"rating not a number", courseForm("Course", "Programming", "five", "Someone"), "must be a number between 1 and 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postForm(router, "/addcourse", tt.form)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
			assert.Contains(t, w.Body.String(), `action="/addcourse"`)
		})
	}

	all, err := svc.GetAllCourses(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, len(course.SampleCourses))
}

func TestUpdateCourse(t *testing.T) {
	svc := seededService(t)
	router := newTestRouter(t, svc)

	w := get(router, "/update/4")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Spanish for Beginners")
	assert.Contains(t, w.Body.String(), `action="/update/4"`)

	w = postForm(router, "/update/4", courseForm("Spanish for Travellers", "Languages", "4", "Maria Rodriguez"))
	assert.Equal(t, http.StatusSeeOther, w.Code)

	updated, err := svc.GetCourseByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Spanish for Travellers", updated.Name)
	assert.Equal(t, 4, updated.Rating)
}

func TestUpdateCourseRerendersInvalidForm(t *testing.T) {
	router := newTestRouter(t, seededService(t))

	w := postForm(router, "/update/4", courseForm("Spanish", "Languages", "3", ""))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `action="/update/4"`)
	assert.Contains(t, w.Body.String(), "must not be empty")
}

func TestDeleteCourse(t *testing.T) {
	svc := seededService(t)
	router := newTestRouter(t, svc)

	w := postForm(router, "/delete/1", url.Values{})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	_, err := svc.GetCourseByID(context.Background(), 1)
	assert.True(t, course.IsNotFound(err))
}

func TestUnknownCourseRendersNotFound(t *testing.T) {
	router := newTestRouter(t, seededService(t))

	tests := []struct {
		name string
		do   func() *httptest.ResponseRecorder
	}{
		{"update form", func() *httptest.ResponseRecorder { return get(router, "/update/42") }},
		{"update", func() *httptest.ResponseRecorder {
			return postForm(router, "/update/42", courseForm("Name", "Category", "3", "Author"))
		}},
		{"delete", func() *httptest.ResponseRecorder { return postForm(router, "/delete/42", url.Values{}) }},
		{"bad id", func() *httptest.ResponseRecorder { return get(router, "/update/abc") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.do()
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Contains(t, w.Body.String(), "Course not found")
		})
	}
}

func TestSearch(t *testing.T) {
	router := newTestRouter(t, seededService(t))

	w := get(router, "/search")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/search"`)

	w = postForm(router, "/search", url.Values{"name": {"java"}, "category": {""}, "rating": {"4"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Java Advanced Topics")
	assert.NotContains(t, w.Body.String(), "Java Programming 101")
	assert.Contains(t, w.Body.String(), `value="java"`)
}

func TestSearchRerendersInvalidForm(t *testing.T) {
	router := newTestRouter(t, seededService(t))

	tests := []struct {
		name    string
		rating  string
		message string
	}{
		{"rating too high", "7", "Rating must be at most 5"},
		{"rating negative", "-1", "Rating must be at least 0"},
		{"rating not a number", "high", "Rating must be a number between 0 and 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postForm(router, "/search", url.Values{"name": {"java"}, "category": {""}, "rating": {tt.rating}})

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
			assert.Contains(t, w.Body.String(), `action="/search"`)
			assert.Contains(t, w.Body.String(), `value="java"`)
		})
	}
}

type brokenService struct {
	course.Service
}

func (brokenService) GetAllCourses(context.Context) ([]course.Course, error) {
	return nil, errors.New("database is down")
}

func TestServiceFailureRendersErrorPage(t *testing.T) {
	router := newTestRouter(t, brokenService{})

	w := get(router, "/index")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Something went wrong")
	assert.NotContains(t, w.Body.String(), "database is down")
}
