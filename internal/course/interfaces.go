package course

import (
	"context"
	"github.com/gin-gonic/gin"
)

type Controller interface {
	GetAllCourses(ctx *gin.Context)
	GetCourse(ctx *gin.Context)
	SearchCourses(ctx *gin.Context)
	CreateCourse(ctx *gin.Context)
	UpdateCourse(ctx *gin.Context)
	DeleteCourse(ctx *gin.Context)
	DeleteCourses(ctx *gin.Context)
	RegisterRoutes(router gin.IRouter, admin ...gin.HandlerFunc)
}

// Service is the set of course operations every transport calls into.
type Service interface {
	GetAllCourses(ctx context.Context) ([]Course, error)
	GetCourseByID(ctx context.Context, id int64) (Course, error)
	SearchSimilarCourses(ctx context.Context, name, category string, minRating int) ([]Course, error)
	CreateCourse(ctx context.Context, course Course) (Course, error)
	UpdateCourse(ctx context.Context, id int64, patch Course) (Course, error)
	DeleteCourseByID(ctx context.Context, id int64) error
	DeleteCourses(ctx context.Context) error
}

// Repository is the storage the service depends on.
type Repository interface {
	FindAll(ctx context.Context) ([]Course, error)
	// FindByID reports found=false, with a nil error, when no course has id.
	FindByID(ctx context.Context, id int64) (course Course, found bool, err error)
	// Save inserts c when its ID is zero and updates the stored row otherwise.
	Save(ctx context.Context, c Course) (Course, error)
	// DeleteByID is a no-op when no course has id.
	DeleteByID(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	SearchSimilarCourses(ctx context.Context, name, category string, minRating int) ([]Course, error)
}

type CourseRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Category    string `json:"category" form:"category" binding:"required"`
	Rating      int    `json:"rating" form:"rating" binding:"min=1,max=5"`
	Description string `json:"description" form:"description"`
	Author      string `json:"author" form:"author" binding:"required"`
}

func (r CourseRequest) ToCourse() Course {
	return Course{
		Name:        r.Name,
		Category:    r.Category,
		Rating:      r.Rating,
		Description: r.Description,
		Author:      r.Author,
	}
}

type SearchRequest struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Rating   int    `form:"rating" binding:"min=0,max=5"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
