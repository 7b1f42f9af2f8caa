package schema

import (
	"github.com/syssam/relcheck/dialect"
	"github.com/syssam/relcheck/graph"
	"github.com/syssam/relcheck/schema/field"
)

// TypeMapper returns the default store type of a property, used when the
// property has no explicit column type.
type TypeMapper interface {
	StoreType(p *graph.Property) string
}

// TypeMapperFunc is an adapter to allow the use of ordinary functions as
// TypeMapper.
type TypeMapperFunc func(*graph.Property) string

// StoreType calls f(p).
func (f TypeMapperFunc) StoreType(p *graph.Property) string { return f(p) }

var storeTypes = map[string]map[field.Type]string{
	dialect.Postgres: {
		field.TypeBool:    "boolean",
		field.TypeTime:    "timestamp with time zone",
		field.TypeJSON:    "jsonb",
		field.TypeUUID:    "uuid",
		field.TypeBytes:   "bytea",
		field.TypeEnum:    "character varying",
		field.TypeString:  "character varying",
		field.TypeDecimal: "numeric",
		field.TypeInt8:    "smallint",
		field.TypeInt16:   "smallint",
		field.TypeInt32:   "integer",
		field.TypeInt:     "bigint",
		field.TypeInt64:   "bigint",
		field.TypeUint8:   "smallint",
		field.TypeUint16:  "integer",
		field.TypeUint32:  "bigint",
		field.TypeUint:    "bigint",
		field.TypeUint64:  "bigint",
		field.TypeFloat32: "real",
		field.TypeFloat64: "double precision",
	},
	dialect.MySQL: {
		field.TypeBool:    "tinyint(1)",
		field.TypeTime:    "timestamp",
		field.TypeJSON:    "json",
		field.TypeUUID:    "char(36)",
		field.TypeBytes:   "blob",
		field.TypeEnum:    "varchar(255)",
		field.TypeString:  "varchar(255)",
		field.TypeDecimal: "decimal(18,2)",
		field.TypeInt8:    "tinyint",
		field.TypeInt16:   "smallint",
		field.TypeInt32:   "int",
		field.TypeInt:     "bigint",
		field.TypeInt64:   "bigint",
		field.TypeUint8:   "tinyint unsigned",
		field.TypeUint16:  "smallint unsigned",
		field.TypeUint32:  "int unsigned",
		field.TypeUint:    "bigint unsigned",
		field.TypeUint64:  "bigint unsigned",
		field.TypeFloat32: "float",
		field.TypeFloat64: "double",
	},
	dialect.SQLite: {
		field.TypeBool:    "bool",
		field.TypeTime:    "datetime",
		field.TypeJSON:    "json",
		field.TypeUUID:    "uuid",
		field.TypeBytes:   "blob",
		field.TypeEnum:    "text",
		field.TypeString:  "text",
		field.TypeDecimal: "decimal",
		field.TypeInt8:    "integer",
		field.TypeInt16:   "integer",
		field.TypeInt32:   "integer",
		field.TypeInt:     "integer",
		field.TypeInt64:   "integer",
		field.TypeUint8:   "integer",
		field.TypeUint16:  "integer",
		field.TypeUint32:  "integer",
		field.TypeUint:    "integer",
		field.TypeUint64:  "integer",
		field.TypeFloat32: "real",
		field.TypeFloat64: "real",
	},
}

// DialectTypeMapper returns the default type mapping of the given dialect.
// Unknown dialects fall back to Postgres; unmapped value types (TypeOther)
// map to the empty string.
func DialectTypeMapper(name string) TypeMapper {
	types, ok := storeTypes[name]
	if !ok {
		types = storeTypes[dialect.Postgres]
	}
	return TypeMapperFunc(func(p *graph.Property) string {
		return types[p.Type]
	})
}

// StoreType returns the effective store type of p: the explicit column type
// when configured, otherwise the mapper's default.
func StoreType(m TypeMapper, p *graph.Property) string {
	if p.Column.Type != "" {
		return p.Column.Type
	}
	return m.StoreType(p)
}
