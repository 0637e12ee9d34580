package cli

import (
	"catalogue/internal/config"
	"catalogue/internal/course"
	"catalogue/internal/db"
	"catalogue/internal/user"
	"context"
	"github.com/juju/errors"
)

// storage holds the repositories selected by database.driver.
type storage struct {
	courses course.Repository
	users   user.Repository
	close   func() error
}

func openStorage(ctx context.Context, c config.DatabaseConfig) (*storage, error) {
	if c.Driver == config.DriverMemory {
		logger.Infof("using in-memory storage")
		return &storage{
			courses: course.NewMemoryRepository(),
			users:   user.NewMemoryRepository(),
			close:   func() error { return nil },
		}, nil
	}

	hdb, err := db.NewHDb(c.Driver, c.URL)
	if err != nil {
		return nil, errors.Annotatef(err, "connecting to %s database", c.Driver)
	}
	if err := hdb.EnsureSchema(ctx); err != nil {
		_ = hdb.Close()
		return nil, err
	}
	logger.Infof("using %s storage", c.Driver)
	return &storage{
		courses: course.NewRepositoryImpl(hdb),
		users:   user.NewRepositoryImpl(hdb),
		close:   hdb.Close,
	}, nil
}
