package db

import (
	"context"
	"database/sql"
	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"strings"
)

var logger = loggo.GetLogger("catalogue.db")

var ddlLoaders = make(map[string]DDLLoader)

type HDb struct {
	*sqlx.DB
	DDLLoader
}

func NewHDb(driverName, dataSourceUrl string) (*HDb, error) {
	ddlLoader, ok := ddlLoaders[driverName]
	if !ok {
		return nil, errors.NotSupportedf("database driver %q", driverName)
	}
	db, err := sqlx.Open(driverName, dataSourceUrl)
	if err != nil {
		return nil, errors.Annotatef(err, "opening %s database", driverName)
	}
	if driverName == SQLiteDriver {
		// Every connection to an in-memory database sees its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Annotatef(err, "connecting to %s database", driverName)
	}
	logger.Debugf("connected to %s database", driverName)

	return &HDb{db, ddlLoader}, nil
}

func (hdb *HDb) LoadDDL() (string, error) {
	return hdb.DDLLoader.LoadDDL()
}

// EnsureSchema creates the tables the service needs when they do not exist yet.
func (hdb *HDb) EnsureSchema(ctx context.Context) error {
	ddl, err := hdb.LoadDDL()
	if err != nil {
		return errors.Annotate(err, "loading schema")
	}
	for _, stmt := range strings.Split(ddl, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := hdb.ExecContext(ctx, stmt); err != nil {
			return errors.Annotatef(err, "applying schema statement %q", firstLine(stmt))
		}
	}
	return nil
}

// LowerFunc names the SQL function that lower-cases text the same way
// strings.ToLower does on this database.
func (hdb *HDb) LowerFunc() string {
	return lowerFuncs[hdb.DriverName()]
}

// IsNoRows reports whether err comes from a single-row query that matched nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

type DDLLoader interface {
	LoadDDL() (string, error)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
