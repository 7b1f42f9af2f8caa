// Package sqlschema holds the relational facets attached to model elements:
// the table an entity type maps to, the column a property maps to, and the
// delete behavior of a foreign key.
//
// Facets are plain structs that are set once when the model is built and
// read by the validator without further lookups:
//
//	vehicles := &sqlschema.Table{Name: "Vehicles"}
//	name.Column = sqlschema.Column{
//	    Name:        "Name",
//	    Type:        "nvarchar(128)",
//	    DefaultExpr: "''",
//	}
//
// # Delete Behaviors
//
// Available constants for a foreign key's OnDelete:
//
//	sqlschema.Cascade       - Delete dependent rows
//	sqlschema.Restrict      - Prevent delete if dependent rows exist
//	sqlschema.SetNull       - Set the foreign key columns to NULL
//	sqlschema.ClientSetNull - Like Restrict in the database, nulled by the client
//	sqlschema.SetDefault    - Set the foreign key columns to their default
//	sqlschema.NoAction      - No action (database default)
package sqlschema

import (
	"fmt"
	"strings"
)

// DeleteBehavior defines the ON DELETE behavior of a foreign key constraint.
type DeleteBehavior string

const (
	Cascade       DeleteBehavior = "CASCADE"
	Restrict      DeleteBehavior = "RESTRICT"
	SetNull       DeleteBehavior = "SET NULL"
	ClientSetNull DeleteBehavior = "CLIENT SET NULL"
	SetDefault    DeleteBehavior = "SET DEFAULT"
	NoAction      DeleteBehavior = "NO ACTION"
)

// ParseDeleteBehavior returns the behavior with the given name. Matching is
// case-insensitive and accepts underscores for spaces. The empty string
// yields ClientSetNull, the default for optional relationships.
func ParseDeleteBehavior(s string) (DeleteBehavior, error) {
	s = strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(s, "_", " ")))
	if s == "" {
		return ClientSetNull, nil
	}
	for _, b := range []DeleteBehavior{Cascade, Restrict, SetNull, ClientSetNull, SetDefault, NoAction} {
		if string(b) == s || strings.ReplaceAll(string(b), " ", "") == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("sqlschema: unknown delete behavior %q", s)
}

// Table identifies a physical table.
type Table struct {
	// Schema is the database schema. Empty means the default schema.
	Schema string
	// Name is the table name.
	Name string
}

// String returns the table identity: "schema.name", or "name" when the
// schema is empty. Two tables are the same table iff their strings are equal.
func (t Table) String() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// Column holds the column settings of a property. Zero fields are unset.
type Column struct {
	// Name overrides the column name. Defaults to the property name.
	Name string

	// Type sets an explicit database column type. When empty, the store type
	// comes from the dialect's default mapping of the property value type.
	Type string

	// Default is the constant default value of the column. Nil means unset.
	Default any

	// DefaultExpr is an SQL expression for the default value.
	DefaultExpr string

	// ComputedExpr is the SQL expression of a computed column.
	ComputedExpr string

	// Nullable overrides the nullability derived from the property.
	Nullable *bool
}

// GetDefault returns the constant default value and whether it was set.
func (c Column) GetDefault() (any, bool) {
	return c.Default, c.Default != nil
}

// GetDefaultExpr returns the SQL default expression and whether it was set.
func (c Column) GetDefaultExpr() (string, bool) {
	return c.DefaultExpr, c.DefaultExpr != ""
}

// GetComputedExpr returns the computed column expression and whether it was set.
func (c Column) GetComputedExpr() (string, bool) {
	return c.ComputedExpr, c.ComputedExpr != ""
}
