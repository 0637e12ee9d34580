package cli

import (
	"catalogue/internal/auth"
	"catalogue/internal/config"
	"catalogue/internal/course"
	"catalogue/internal/webservice"
	"context"
	"encoding/json"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfigYAML = `
database:
  driver: memory
jwt:
  secret_key: test-secret
security:
  users:
    - username: user
      password: user
      role: USER
    - username: admin
      password: admin
      role: ADMIN
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func loadTestConfig(t *testing.T, extra string) *config.Config {
	t.Helper()
	c, err := config.LoadConfig(writeConfig(t, testConfigYAML+extra), "")
	require.NoError(t, err)
	return c
}

func newTestApplication(t *testing.T, c *config.Config, frontend bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := newApplication(context.Background(), c, frontend)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.close() })
	return app.router()
}

func send(router http.Handler, method, path string, setup func(r *http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if setup != nil {
		setup(req)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func basic(username, password string) func(r *http.Request) {
	return func(r *http.Request) { r.SetBasicAuth(username, password) }
}

func TestRouterRoutes(t *testing.T) {
	router := newTestApplication(t, loadTestConfig(t, ""), false)

	tests := []struct {
		name   string
		method string
		path   string
		setup  func(r *http.Request)
		code   int
	}{
		{"ping", http.MethodGet, "/ping", nil, http.StatusOK},
		{"json schema is public", http.MethodGet, "/docs/course.schema.json", nil, http.StatusOK},
		{"xml schema is public", http.MethodGet, "/ws/course.xsd", nil, http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", nil, http.StatusOK},
		{"courses need credentials", http.MethodGet, "/courses/", nil, http.StatusUnauthorized},
		{"courses for a user", http.MethodGet, "/courses/", basic("user", "user"), http.StatusOK},
		{"web forms need credentials", http.MethodGet, "/index", nil, http.StatusUnauthorized},
		{"web forms for a user", http.MethodGet, "/index", basic("user", "user"), http.StatusOK},
		{"bulk delete is admin only", http.MethodDelete, "/courses/", basic("user", "user"), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := send(router, tt.method, tt.path, tt.setup)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestApplicationSeedsCourses(t *testing.T) {
	router := newTestApplication(t, loadTestConfig(t, ""), false)

	w := send(router, http.MethodGet, "/courses/", basic("admin", "admin"))

	require.Equal(t, http.StatusOK, w.Code)
	var courses []course.Course
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &courses))
	assert.Len(t, courses, len(course.SampleCourses))

	assert.Equal(t, http.StatusNoContent, send(router, http.MethodDelete, "/courses/", basic("admin", "admin")).Code)
	w = send(router, http.MethodGet, "/courses/", basic("admin", "admin"))
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestApplicationWithoutSeed(t *testing.T) {
	t.Setenv("CATALOGUE_DATABASE_SEED", "false")
	router := newTestApplication(t, loadTestConfig(t, ""), false)

	w := send(router, http.MethodGet, "/courses/", basic("user", "user"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestSoapBulkDeleteIsAdminOnly(t *testing.T) {
	router := newTestApplication(t, loadTestConfig(t, ""), false)
	deleteAll := func(r *http.Request) {
		r.Body = io.NopCloser(strings.NewReader(`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>` +
			`<deleteAllCoursesRequest xmlns="` + webservice.Namespace + `"/></soap:Body></soap:Envelope>`))
		r.Header.Set("Content-Type", "text/xml; charset=utf-8")
	}
	as := func(username string) func(r *http.Request) {
		return func(r *http.Request) {
			deleteAll(r)
			r.SetBasicAuth(username, username)
		}
	}

	w := send(router, http.MethodPost, "/ws", as("user"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "<faultcode>soap:Client</faultcode>")
	assert.Contains(t, w.Body.String(), "<kind>Forbidden</kind>")

	var courses []course.Course
	w = send(router, http.MethodGet, "/courses/", basic("user", "user"))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &courses))
	assert.Len(t, courses, len(course.SampleCourses))

	w = send(router, http.MethodPost, "/ws", as("admin"))
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = send(router, http.MethodGet, "/courses/", basic("user", "user"))
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestLoginTokenOpensProtectedRoutes(t *testing.T) {
	router := newTestApplication(t, loadTestConfig(t, ""), false)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"user","password":"user"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var login auth.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = send(router, http.MethodGet, "/index", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+login.Token)
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), course.SampleCourses[0].Name)
}

func TestMetricsReportServedRequests(t *testing.T) {
	router := newTestApplication(t, loadTestConfig(t, ""), false)
	send(router, http.MethodGet, "/ping", nil)

	w := send(router, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `catalogue_http_requests_total{code="200",method="GET",route="/ping"} 1`)
}

func TestFrontendServesBackendCourses(t *testing.T) {
	backend := httptest.NewServer(newTestApplication(t, loadTestConfig(t, ""), false))
	defer backend.Close()

	c := loadTestConfig(t, "backend:\n  url: "+backend.URL+"\n  username: user\n  password: user\n")
	frontend := newTestApplication(t, c, true)

	w := send(frontend, http.MethodGet, "/index", basic("user", "user"))
	require.Equal(t, http.StatusOK, w.Code)
	for _, sample := range course.SampleCourses {
		assert.Contains(t, w.Body.String(), sample.Name)
	}

	assert.Equal(t, http.StatusNotFound, send(frontend, http.MethodGet, "/courses/", basic("user", "user")).Code)
	assert.Equal(t, http.StatusNotFound, send(frontend, http.MethodGet, "/update/99", basic("user", "user")).Code)
}

func TestFrontendNeedsBackendURL(t *testing.T) {
	_, err := newApplication(context.Background(), loadTestConfig(t, ""), true)
	assert.ErrorContains(t, err, "backend.url is required")
}
