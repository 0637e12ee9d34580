package course

import (
	"strings"
)

type Course struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name" validate:"required" jsonschema:"required,minLength=1"`
	Category    string `json:"category" db:"category" validate:"required" jsonschema:"required,minLength=1"`
	Rating      int    `json:"rating" db:"rating" validate:"min=1,max=5" jsonschema:"required,minimum=1,maximum=5"`
	Description string `json:"description" db:"description"`
	Author      string `json:"author" db:"author" validate:"required" jsonschema:"required,minLength=1"`
}

// SearchCriteria holds the filters of a similarity search. Empty strings and a
// zero MinRating match everything.
type SearchCriteria struct {
	Name      string
	Category  string
	MinRating int
}

// Merge returns existing with every field except ID replaced by the value
// carried in patch. Empty values in patch overwrite stored ones.
func Merge(existing, patch Course) Course {
	existing.Name = patch.Name
	existing.Category = patch.Category
	existing.Rating = patch.Rating
	existing.Description = patch.Description
	existing.Author = patch.Author
	return existing
}

// Matches reports whether c satisfies the search criteria: name and category
// contain the given terms ignoring case, and the rating is at least MinRating.
func Matches(c Course, criteria SearchCriteria) bool {
	return containsFold(c.Name, criteria.Name) &&
		containsFold(c.Category, criteria.Category) &&
		c.Rating >= criteria.MinRating
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
