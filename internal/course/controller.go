package course

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"
	"net/http"
	"strconv"
)

type ControllerImpl struct {
	service Service
}

func NewControllerImpl(service Service) *ControllerImpl {
	return &ControllerImpl{service: service}
}

func (c *ControllerImpl) GetAllCourses(ctx *gin.Context) {
	courses, err := c.service.GetAllCourses(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

func (c *ControllerImpl) GetCourse(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	course, err := c.service.GetCourseByID(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

func (c *ControllerImpl) SearchCourses(ctx *gin.Context) {
	var req SearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}
	courses, err := c.service.SearchSimilarCourses(ctx.Request.Context(), req.Name, req.Category, req.Rating)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

func (c *ControllerImpl) CreateCourse(ctx *gin.Context) {
	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}
	course, err := c.service.CreateCourse(ctx.Request.Context(), req.ToCourse())
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

func (c *ControllerImpl) UpdateCourse(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}
	course, err := c.service.UpdateCourse(ctx.Request.Context(), id, req.ToCourse())
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

func (c *ControllerImpl) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.service.DeleteCourseByID(ctx.Request.Context(), id); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *ControllerImpl) DeleteCourses(ctx *gin.Context) {
	if err := c.service.DeleteCourses(ctx.Request.Context()); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetSchema serves the JSON Schema describing a course payload.
func (c *ControllerImpl) GetSchema(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, Schema())
}

// RegisterRoutes mounts the REST API under /courses. The admin handlers guard
// the bulk delete.
func (c *ControllerImpl) RegisterRoutes(router gin.IRouter, admin ...gin.HandlerFunc) {
	courses := router.Group("/courses")
	courses.GET("/", c.GetAllCourses)
	courses.GET("/search", c.SearchCourses)
	courses.GET("/:id", c.GetCourse)
	courses.POST("/", c.CreateCourse)
	courses.PUT("/:id", c.UpdateCourse)
	courses.DELETE("/:id", c.DeleteCourse)
	courses.DELETE("/", append(admin, c.DeleteCourses)...)
}

// RegisterDocs mounts the schema document, which needs no authentication.
func (c *ControllerImpl) RegisterDocs(router gin.IRouter) {
	router.GET("/docs/course.schema.json", c.GetSchema)
}

func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	s := r.Reflect(&Course{})
	s.Title = "Course"
	s.Description = "A course in the catalogue. The id is assigned by the server."
	return s
}

func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid course id: " + ctx.Param("id")})
		return 0, false
	}
	return id, true
}

func writeError(ctx *gin.Context, err error) {
	var validationErr *ValidationError
	switch {
	case IsNotFound(err):
		ctx.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: validationErr.Field})
	default:
		logger.Errorf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
