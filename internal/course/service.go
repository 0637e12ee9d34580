package course

import (
	"context"
)

type ServiceImpl struct {
	repo Repository
}

func NewServiceImpl(repo Repository) *ServiceImpl {
	return &ServiceImpl{
		repo: repo,
	}
}

func (s *ServiceImpl) GetAllCourses(ctx context.Context) ([]Course, error) {
	return s.repo.FindAll(ctx)
}

func (s *ServiceImpl) GetCourseByID(ctx context.Context, id int64) (Course, error) {
	return s.findExisting(ctx, id)
}

func (s *ServiceImpl) SearchSimilarCourses(ctx context.Context, name, category string, minRating int) ([]Course, error) {
	return s.repo.SearchSimilarCourses(ctx, name, category, minRating)
}

func (s *ServiceImpl) CreateCourse(ctx context.Context, course Course) (Course, error) {
	// The store assigns identity; whatever the caller sent is discarded.
	course.ID = 0
	if err := Validate(course); err != nil {
		return Course{}, err
	}
	return s.repo.Save(ctx, course)
}

func (s *ServiceImpl) UpdateCourse(ctx context.Context, id int64, patch Course) (Course, error) {
	existing, err := s.findExisting(ctx, id)
	if err != nil {
		return Course{}, err
	}
	merged := Merge(existing, patch)
	if err := Validate(merged); err != nil {
		return Course{}, err
	}
	return s.repo.Save(ctx, merged)
}

func (s *ServiceImpl) DeleteCourseByID(ctx context.Context, id int64) error {
	if _, err := s.findExisting(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteByID(ctx, id)
}

func (s *ServiceImpl) DeleteCourses(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

func (s *ServiceImpl) findExisting(ctx context.Context, id int64) (Course, error) {
	course, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Course{}, err
	}
	if !found {
		return Course{}, &NotFoundError{ID: id}
	}
	return course, nil
}
