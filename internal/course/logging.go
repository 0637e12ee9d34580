package course

import (
	"context"
	"github.com/juju/loggo/v2"
)

var logger = loggo.GetLogger("catalogue.course")

// LoggingService logs every call made to the wrapped Service together with its
// arguments and outcome.
type LoggingService struct {
	next Service
}

func NewLoggingService(next Service) *LoggingService {
	return &LoggingService{next: next}
}

func (s *LoggingService) GetAllCourses(ctx context.Context) ([]Course, error) {
	logger.Debugf("GetAllCourses()")
	courses, err := s.next.GetAllCourses(ctx)
	s.after("GetAllCourses", err, "%d courses", len(courses))
	return courses, err
}

func (s *LoggingService) GetCourseByID(ctx context.Context, id int64) (Course, error) {
	logger.Debugf("GetCourseByID(%d)", id)
	course, err := s.next.GetCourseByID(ctx, id)
	s.after("GetCourseByID", err, "%+v", course)
	return course, err
}

func (s *LoggingService) SearchSimilarCourses(ctx context.Context, name, category string, minRating int) ([]Course, error) {
	logger.Debugf("SearchSimilarCourses(%q, %q, %d)", name, category, minRating)
	courses, err := s.next.SearchSimilarCourses(ctx, name, category, minRating)
	s.after("SearchSimilarCourses", err, "%d courses", len(courses))
	return courses, err
}

func (s *LoggingService) CreateCourse(ctx context.Context, course Course) (Course, error) {
	logger.Debugf("CreateCourse(%+v)", course)
	created, err := s.next.CreateCourse(ctx, course)
	s.after("CreateCourse", err, "%+v", created)
	return created, err
}

func (s *LoggingService) UpdateCourse(ctx context.Context, id int64, patch Course) (Course, error) {
	logger.Debugf("UpdateCourse(%d, %+v)", id, patch)
	updated, err := s.next.UpdateCourse(ctx, id, patch)
	s.after("UpdateCourse", err, "%+v", updated)
	return updated, err
}

func (s *LoggingService) DeleteCourseByID(ctx context.Context, id int64) error {
	logger.Debugf("DeleteCourseByID(%d)", id)
	err := s.next.DeleteCourseByID(ctx, id)
	s.after("DeleteCourseByID", err, "deleted course %d", id)
	return err
}

func (s *LoggingService) DeleteCourses(ctx context.Context) error {
	logger.Debugf("DeleteCourses()")
	err := s.next.DeleteCourses(ctx)
	s.after("DeleteCourses", err, "deleted all courses")
	return err
}

func (s *LoggingService) after(op string, err error, format string, args ...interface{}) {
	switch {
	case err == nil:
		logger.Infof(op+": "+format, args...)
	case IsNotFound(err), IsValidation(err):
		logger.Infof("%s: %v", op, err)
	default:
		logger.Errorf("%s failed: %v", op, err)
	}
}
