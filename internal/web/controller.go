package web

import (
	"catalogue/internal/course"
	"embed"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/juju/loggo/v2"
	"html/template"
	"net/http"
	"strconv"
	"strings"
)

var logger = loggo.GetLogger("catalogue.web")

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the page templates. Install them with
// gin.Engine.SetHTMLTemplate before serving the routes.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

type ControllerImpl struct {
	service course.Service
}

func NewControllerImpl(service course.Service) *ControllerImpl {
	return &ControllerImpl{service: service}
}

func (c *ControllerImpl) Redirect(ctx *gin.Context) {
	ctx.Redirect(http.StatusFound, "/index")
}

func (c *ControllerImpl) Index(ctx *gin.Context) {
	courses, err := c.service.GetAllCourses(ctx.Request.Context())
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "index", listPage{Title: "Courses", Courses: courses})
}

func (c *ControllerImpl) ShowAddCourseForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "add-course", formPage{Title: "Add a course", Errors: map[string]string{}})
}

func (c *ControllerImpl) AddCourse(ctx *gin.Context) {
	page := formPage{Title: "Add a course"}
	if err := ctx.ShouldBind(&page.Course); err != nil {
		page.Errors = formErrors(err, "must be a number between 1 and 5")
		ctx.HTML(http.StatusBadRequest, "add-course", page)
		return
	}
	if _, err := c.service.CreateCourse(ctx.Request.Context(), page.Course.ToCourse()); err != nil {
		c.renderFormError(ctx, "add-course", page, err)
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/index")
}

func (c *ControllerImpl) ShowUpdateCourseForm(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	found, err := c.service.GetCourseByID(ctx.Request.Context(), id)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "update-course", formPage{
		Title: "Update course",
		ID:    id,
		Course: course.CourseRequest{
			Name:        found.Name,
			Category:    found.Category,
			Rating:      found.Rating,
			Description: found.Description,
			Author:      found.Author,
		},
		Errors: map[string]string{},
	})
}

func (c *ControllerImpl) UpdateCourse(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	page := formPage{Title: "Update course", ID: id}
	if err := ctx.ShouldBind(&page.Course); err != nil {
		page.Errors = formErrors(err, "must be a number between 1 and 5")
		ctx.HTML(http.StatusBadRequest, "update-course", page)
		return
	}
	if _, err := c.service.UpdateCourse(ctx.Request.Context(), id, page.Course.ToCourse()); err != nil {
		c.renderFormError(ctx, "update-course", page, err)
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/index")
}

func (c *ControllerImpl) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.service.DeleteCourseByID(ctx.Request.Context(), id); err != nil {
		renderError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/index")
}

func (c *ControllerImpl) ShowSearchForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "search-course", listPage{Title: "Search courses"})
}

func (c *ControllerImpl) Search(ctx *gin.Context) {
	var req course.SearchRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.HTML(http.StatusBadRequest, "search-course", listPage{
			Title:  "Search courses",
			Search: req,
			Errors: formErrors(err, "must be a number between 0 and 5"),
		})
		return
	}
	courses, err := c.service.SearchSimilarCourses(ctx.Request.Context(), req.Name, req.Category, req.Rating)
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "index", listPage{Title: "Search results", Courses: courses, Search: req})
}

func (c *ControllerImpl) RegisterRoutes(router gin.IRouter) {
	router.GET("/", c.Redirect)
	router.GET("/index", c.Index)
	router.GET("/addcourse", c.ShowAddCourseForm)
	router.POST("/addcourse", c.AddCourse)
	router.GET("/update/:id", c.ShowUpdateCourseForm)
	router.POST("/update/:id", c.UpdateCourse)
	router.POST("/delete/:id", c.DeleteCourse)
	router.GET("/search", c.ShowSearchForm)
	router.POST("/search", c.Search)
}

// renderFormError puts a service-side validation failure back on the form and
// hands every other error to renderError.
func (c *ControllerImpl) renderFormError(ctx *gin.Context, name string, page formPage, err error) {
	var validationErr *course.ValidationError
	if !errors.As(err, &validationErr) {
		renderError(ctx, err)
		return
	}
	page.Errors = map[string]string{validationErr.Field: validationErr.Reason}
	ctx.HTML(http.StatusBadRequest, name, page)
}

func renderError(ctx *gin.Context, err error) {
	if course.IsNotFound(err) {
		ctx.HTML(http.StatusNotFound, "not-found", messagePage{Title: "Course not found", Message: err.Error()})
		return
	}
	logger.Errorf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
	ctx.HTML(http.StatusInternalServerError, "error", messagePage{Title: "Something went wrong", Message: "The request could not be completed."})
}

func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.HTML(http.StatusNotFound, "not-found", messagePage{Title: "Course not found", Message: "invalid course id: " + ctx.Param("id")})
		return 0, false
	}
	return id, true
}

// formErrors maps a binding failure to messages keyed by form field. Any
// failure other than a validation one is a rating that does not parse.
func formErrors(err error, badRating string) map[string]string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"rating": badRating}
	}
	result := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		result[strings.ToLower(fe.Field())] = fieldMessage(fe)
	}
	return result
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}
