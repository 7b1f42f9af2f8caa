// Package dialect names the database dialects understood by relcheck.
//
// The dialect decides the default store type of a property whose column
// type is not configured explicitly, and which atlas inspector is used for
// live drift checks.
//
// # Supported Dialects
//
//   - Postgres: PostgreSQL database
//   - MySQL: MySQL/MariaDB database
//   - SQLite: SQLite database
//
// # Dialect Constants
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Sub-packages
//
//   - dialect/sql: database/sql driver wrapper
//   - dialect/sql/schema: mapping validation and live drift inspection
//   - dialect/sqlschema: relational facets of model elements
package dialect
