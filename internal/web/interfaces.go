package web

import (
	"catalogue/internal/course"
	"github.com/gin-gonic/gin"
)

type Controller interface {
	Redirect(ctx *gin.Context)
	Index(ctx *gin.Context)
	ShowAddCourseForm(ctx *gin.Context)
	AddCourse(ctx *gin.Context)
	ShowUpdateCourseForm(ctx *gin.Context)
	UpdateCourse(ctx *gin.Context)
	DeleteCourse(ctx *gin.Context)
	ShowSearchForm(ctx *gin.Context)
	Search(ctx *gin.Context)
	RegisterRoutes(router gin.IRouter)
}

// listPage backs the course list and the search form. Errors is keyed by
// search field name.
type listPage struct {
	Title   string
	Courses []course.Course
	Search  course.SearchRequest
	Errors  map[string]string
}

// formPage backs the add and update forms. Errors is keyed by form field name;
// the empty key holds a message that belongs to no single field.
type formPage struct {
	Title  string
	ID     int64
	Course course.CourseRequest
	Errors map[string]string
}

type messagePage struct {
	Title   string
	Message string
}
