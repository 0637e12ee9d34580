package course

import (
	"catalogue/internal/db"
	"context"
	"fmt"
	"github.com/juju/errors"
	"strings"
)

const courseColumns = "id, name, category, rating, description, author"

type RepositoryImpl struct {
	db *db.HDb
}

func NewRepositoryImpl(db *db.HDb) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) FindAll(ctx context.Context) ([]Course, error) {
	courses := []Course{}
	err := r.db.SelectContext(ctx, &courses, "SELECT "+courseColumns+" FROM courses ORDER BY id")
	if err != nil {
		return nil, errors.Annotate(err, "selecting courses")
	}
	return courses, nil
}

func (r *RepositoryImpl) FindByID(ctx context.Context, id int64) (Course, bool, error) {
	var course Course
	err := r.db.GetContext(ctx, &course, r.db.Rebind("SELECT "+courseColumns+" FROM courses WHERE id = ?"), id)
	if db.IsNoRows(err) {
		return Course{}, false, nil
	}
	if err != nil {
		return Course{}, false, errors.Annotatef(err, "selecting course %d", id)
	}
	return course, true, nil
}

func (r *RepositoryImpl) Save(ctx context.Context, c Course) (Course, error) {
	if c.ID == 0 {
		return r.insert(ctx, c)
	}
	return r.update(ctx, c)
}

func (r *RepositoryImpl) insert(ctx context.Context, c Course) (Course, error) {
	query := r.db.Rebind(`INSERT INTO courses (name, category, rating, description, author)
		VALUES (?, ?, ?, ?, ?) RETURNING id`)
	if err := r.db.GetContext(ctx, &c.ID, query, c.Name, c.Category, c.Rating, c.Description, c.Author); err != nil {
		return Course{}, errors.Annotate(err, "inserting course")
	}
	return c, nil
}

func (r *RepositoryImpl) update(ctx context.Context, c Course) (Course, error) {
	query := r.db.Rebind(`UPDATE courses
		SET name = ?, category = ?, rating = ?, description = ?, author = ?
		WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Category, c.Rating, c.Description, c.Author, c.ID)
	if err != nil {
		return Course{}, errors.Annotatef(err, "updating course %d", c.ID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Course{}, errors.Annotatef(err, "updating course %d", c.ID)
	}
	if n == 0 {
		return Course{}, &NotFoundError{ID: c.ID}
	}
	return c, nil
}

func (r *RepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM courses WHERE id = ?"), id)
	return errors.Annotatef(err, "deleting course %d", id)
}

func (r *RepositoryImpl) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM courses")
	return errors.Annotate(err, "deleting courses")
}

func (r *RepositoryImpl) SearchSimilarCourses(ctx context.Context, name, category string, minRating int) ([]Course, error) {
	lower := r.db.LowerFunc()
	query := r.db.Rebind(fmt.Sprintf(`SELECT %s FROM courses
		WHERE %s(name) LIKE ? ESCAPE '\'
		AND %s(category) LIKE ? ESCAPE '\'
		AND rating >= ?
		ORDER BY id`, courseColumns, lower, lower))
	courses := []Course{}
	err := r.db.SelectContext(ctx, &courses, query, likePattern(name), likePattern(category), minRating)
	if err != nil {
		return nil, errors.Annotate(err, "searching courses")
	}
	return courses, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns term into a LIKE pattern matching it as a literal,
// lower-cased substring.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
