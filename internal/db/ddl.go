package db

import (
	"database/sql/driver"
	"embed"
	_ "github.com/lib/pq"
	"modernc.org/sqlite"
	"strings"
)

const (
	PostgresDriver = "postgres"
	SQLiteDriver   = "sqlite"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// FileDDLLoader reads the schema of one driver from the embedded SQL files.
type FileDDLLoader struct {
	path string
}

// sqliteLower folds case over all of Unicode; SQLite's own LOWER only folds ASCII.
const sqliteLower = "unicode_lower"

// lowerFuncs names the SQL function each driver uses to fold text the way
// strings.ToLower does.
var lowerFuncs = map[string]string{
	PostgresDriver: "LOWER",
	SQLiteDriver:   sqliteLower,
}

func init() {
	ddlLoaders[PostgresDriver] = &FileDDLLoader{path: "schema/postgres.sql"}
	ddlLoaders[SQLiteDriver] = &FileDDLLoader{path: "schema/sqlite.sql"}

	if err := sqlite.RegisterDeterministicScalarFunction(sqliteLower, 1, unicodeLower); err != nil {
		panic(err)
	}
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	}
	return args[0], nil
}

func (d *FileDDLLoader) LoadDDL() (string, error) {
	content, err := schemaFS.ReadFile(d.path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
