package sql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/syssam/relcheck/dialect"
)

// ExecQuerier wraps the standard Exec and Query methods.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Driver is a database handle bound to a dialect.
type Driver struct {
	ExecQuerier
	dialect string
}

// Open wraps the database/sql.Open method and returns a Driver. The dialect
// name also selects the registered database/sql driver, so the caller must
// import one of github.com/lib/pq, github.com/go-sql-driver/mysql or
// modernc.org/sqlite.
func Open(name, source string) (*Driver, error) {
	d, err := dialect.Parse(name)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(d, source)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: open %s: %w", d, err)
	}
	return &Driver{ExecQuerier: db, dialect: d}, nil
}

// OpenDB wraps the given database/sql.DB method with a Driver.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return &Driver{ExecQuerier: db, dialect: dialect}
}

// DB returns the underlying *sql.DB instance.
func (d *Driver) DB() *sql.DB {
	return d.ExecQuerier.(*sql.DB)
}

// Dialect returns the canonical dialect name of the driver.
func (d *Driver) Dialect() string {
	// If the underlying driver is registered under a suffixed name.
	for _, name := range []string{dialect.MySQL, dialect.SQLite, dialect.Postgres} {
		if strings.HasPrefix(d.dialect, name) {
			return name
		}
	}
	return d.dialect
}

// Ping verifies the connection to the database.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.DB().PingContext(ctx); err != nil {
		return fmt.Errorf("dialect/sql: ping %s: %w", d.Dialect(), err)
	}
	return nil
}

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.DB().Close() }

type (
	// Result is an alias to sql.Result.
	Result = sql.Result
	// Rows is an alias to sql.Rows.
	Rows = sql.Rows
)
