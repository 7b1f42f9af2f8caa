package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/relcheck/dialect"
	"github.com/syssam/relcheck/graph"
	"github.com/syssam/relcheck/schema/field"
)

func TestDialectTypeMapper(t *testing.T) {
	b := newBuilder(t)
	owner := b.entity("Owner", nil, "Owners")
	id := b.prop(owner, "Id", field.TypeInt)
	active := b.prop(owner, "Active", field.TypeBool)
	data := b.prop(owner, "Data", field.TypeOther)

	tests := []struct {
		dialect    string
		id, active string
	}{
		{dialect.Postgres, "bigint", "boolean"},
		{dialect.MySQL, "bigint", "tinyint(1)"},
		{dialect.SQLite, "integer", "bool"},
		{"oracle", "bigint", "boolean"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			m := DialectTypeMapper(tt.dialect)
			assert.Equal(t, tt.id, StoreType(m, id))
			assert.Equal(t, tt.active, StoreType(m, active))
			assert.Empty(t, StoreType(m, data))
		})
	}

	id.Column.Type = "int"
	assert.Equal(t, "int", StoreType(DialectTypeMapper(dialect.Postgres), id))

	custom := TypeMapperFunc(func(p *graph.Property) string { return "custom_" + p.Type.String() })
	assert.Equal(t, "custom_bool", StoreType(custom, active))
}
