package course

import (
	"context"
	"github.com/juju/errors"
)

var SampleCourses = []Course{
	{Name: "Machine Learning Fundamentals", Category: "Data Science", Rating: 4, Description: "Introduction to Machine Learning concepts.", Author: "Jane Smith"},
	{Name: "Web Development Bootcamp", Category: "Web Development", Rating: 5, Description: "Learn full-stack web development.", Author: "Mike Johnson"},
	{Name: "Artificial Intelligence Foundations", Category: "Artificial Intelligence", Rating: 4, Description: "Foundational concepts of Artificial Intelligence.", Author: "Alex Lee"},
	{Name: "Spanish for Beginners", Category: "Languages", Rating: 3, Description: "Beginner's course in learning Spanish.", Author: "Maria Rodriguez"},
	{Name: "React.js Crash Course", Category: "Web Development", Rating: 4, Description: "Quick overview of React.js fundamentals.", Author: "Chris Brown"},
	{Name: "Python for Data Analysis", Category: "Data Science", Rating: 4, Description: "Using Python for data analysis.", Author: "Emily Wang"},
	{Name: "Java Programming 101", Category: "Programming", Rating: 3, Description: "Introduction to Java programming.", Author: "John Doe"},
	{Name: "Java Advanced Topics", Category: "Programming", Rating: 4, Description: "Advanced Java programming concepts.", Author: "John Doe"},
}

// Seed preloads the sample courses through svc.
func Seed(ctx context.Context, svc Service) error {
	for _, c := range SampleCourses {
		created, err := svc.CreateCourse(ctx, c)
		if err != nil {
			return errors.Annotatef(err, "preloading %q", c.Name)
		}
		logger.Infof("preloading data: %+v", created)
	}
	return nil
}

// SeedIfEmpty runs Seed only when the catalogue holds no course yet.
func SeedIfEmpty(ctx context.Context, svc Service) (bool, error) {
	existing, err := svc.GetAllCourses(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	return true, Seed(ctx, svc)
}
