package course

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository keeps courses in process memory. Identifiers are handed out
// from a sequence that is never reused, even after deletes.
type MemoryRepository struct {
	mu      sync.RWMutex
	courses map[int64]Course
	nextID  int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		courses: make(map[int64]Course),
		nextID:  1,
	}
}

func (r *MemoryRepository) FindAll(_ context.Context) ([]Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(Course) bool { return true }), nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (Course, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.courses[id]
	return c, ok, nil
}

func (r *MemoryRepository) Save(_ context.Context, c Course) (Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	} else if _, ok := r.courses[c.ID]; !ok {
		return Course{}, &NotFoundError{ID: c.ID}
	}
	r.courses[c.ID] = c
	return c, nil
}

func (r *MemoryRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.courses, id)
	return nil
}

func (r *MemoryRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses = make(map[int64]Course)
	return nil
}

func (r *MemoryRepository) SearchSimilarCourses(_ context.Context, name, category string, minRating int) ([]Course, error) {
	criteria := SearchCriteria{Name: name, Category: category, MinRating: minRating}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(c Course) bool { return Matches(c, criteria) }), nil
}

// filter returns matching courses ordered by id. Callers hold the lock.
func (r *MemoryRepository) filter(keep func(Course) bool) []Course {
	result := make([]Course, 0, len(r.courses))
	for _, c := range r.courses {
		if keep(c) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
