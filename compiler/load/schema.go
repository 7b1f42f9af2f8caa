// Package load reads model descriptions from YAML, JSON or msgpack files and
// builds the model graph the validator checks.
package load

import (
	"github.com/syssam/relcheck/schema/field"
)

// Spec is a model description.
type Spec struct {
	// Dialect is the target database dialect. Empty means Postgres.
	Dialect string `json:"dialect,omitempty" yaml:"dialect,omitempty"`
	// Types holds the entity types in declaration order.
	Types []*Schema `json:"types,omitempty" yaml:"types,omitempty"`
}

// Schema describes one entity type.
type Schema struct {
	Name string `json:"name" yaml:"name"`
	// Base is the name of the base type.
	Base     string `json:"base,omitempty" yaml:"base,omitempty"`
	Abstract bool   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	// Query marks types that are never mapped to a table.
	Query bool `json:"query,omitempty" yaml:"query,omitempty"`
	// Table is the table name. Roots without a table get the snake-cased
	// plural of their name; derived types inherit the table of their base.
	Table              string        `json:"table,omitempty" yaml:"table,omitempty"`
	TableSchema        string        `json:"schema,omitempty" yaml:"schema,omitempty"`
	Discriminator      string        `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`
	DiscriminatorValue any           `json:"discriminator_value,omitempty" yaml:"discriminator_value,omitempty"`
	Fields             []*Field      `json:"fields,omitempty" yaml:"fields,omitempty"`
	PrimaryKey         *Key          `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	Keys               []*Key        `json:"keys,omitempty" yaml:"keys,omitempty"`
	ForeignKeys        []*ForeignKey `json:"foreign_keys,omitempty" yaml:"foreign_keys,omitempty"`
	Indexes            []*Index      `json:"indexes,omitempty" yaml:"indexes,omitempty"`
}

// Field describes a property and its column.
type Field struct {
	Name     string     `json:"name" yaml:"name"`
	Type     field.Type `json:"type" yaml:"type"`
	Nullable bool       `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Identity bool       `json:"identity,omitempty" yaml:"identity,omitempty"`
	// Column overrides the column name.
	Column         string `json:"column,omitempty" yaml:"column,omitempty"`
	ColumnType     string `json:"column_type,omitempty" yaml:"column_type,omitempty"`
	ColumnNullable *bool  `json:"column_nullable,omitempty" yaml:"column_nullable,omitempty"`
	Default        any    `json:"default,omitempty" yaml:"default,omitempty"`
	DefaultExpr    string `json:"default_expr,omitempty" yaml:"default_expr,omitempty"`
	ComputedExpr   string `json:"computed_expr,omitempty" yaml:"computed_expr,omitempty"`
}

// Key describes a primary or alternate key.
type Key struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Fields []string `json:"fields" yaml:"fields"`
}

// ForeignKey describes a foreign key of the dependent type it is declared on.
type ForeignKey struct {
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Fields    []string `json:"fields" yaml:"fields"`
	Principal string   `json:"principal" yaml:"principal"`
	// PrincipalKey lists the fields of the referenced principal key. Empty
	// references the principal's primary key.
	PrincipalKey []string `json:"principal_key,omitempty" yaml:"principal_key,omitempty"`
	// Unique defaults to true when Fields are the dependent's primary key.
	Unique   *bool  `json:"unique,omitempty" yaml:"unique,omitempty"`
	OnDelete string `json:"on_delete,omitempty" yaml:"on_delete,omitempty"`
}

// Index describes an index.
type Index struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Fields []string `json:"fields" yaml:"fields"`
	Unique bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
}
