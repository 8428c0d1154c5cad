package executor

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	_ "github.com/jackc/pgx/v5/stdlib"  // pgx driver
	_ "github.com/marcboeker/go-duckdb" // duckdb driver
	_ "modernc.org/sqlite"              // SQLite driver (pure Go)
)

// Supported database/sql driver names.
const (
	DriverSQLite = "sqlite"
	DriverDuckDB = "duckdb"
	DriverPgx    = "pgx"
)

// driverDialects maps each driver to the dialect its scripts are split with.
var driverDialects = map[string]string{
	DriverSQLite: "ansi",
	DriverDuckDB: "duckdb",
	DriverPgx:    "postgres",
}

// Drivers returns the supported driver names (sorted).
func Drivers() []string {
	names := make([]string, 0, len(driverDialects))
	for name := range driverDialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DialectFor returns the dialect name matching a driver, or "" if unknown.
func DialectFor(driver string) string {
	return driverDialects[driver]
}

// Open opens and pings a database. An empty DSN opens an in-memory database
// for sqlite and duckdb; pgx requires one.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if _, ok := driverDialects[driver]; !ok {
		return nil, fmt.Errorf("unknown driver %q (available: %v)", driver, Drivers())
	}
	if dsn == "" {
		switch driver {
		case DriverSQLite:
			dsn = ":memory:"
		case DriverPgx:
			return nil, fmt.Errorf("driver %s requires a database connection string", driver)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if driver == DriverSQLite && dsn == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}
	return db, nil
}
