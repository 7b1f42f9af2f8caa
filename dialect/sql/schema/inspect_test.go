package schema

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/relcheck"
	"github.com/syssam/relcheck/dialect"
	"github.com/syssam/relcheck/dialect/sql"
	"github.com/syssam/relcheck/schema/field"
)

func openSQLite(t *testing.T, stmts ...string) *sql.Driver {
	t.Helper()
	drv, err := sql.Open(dialect.SQLite, fmt.Sprintf("file:%s?mode=memory&_pragma=foreign_keys(1)", t.Name()))
	require.NoError(t, err)
	// Every connection to a memory database is a new database.
	drv.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { drv.Close() })
	for _, stmt := range stmts {
		_, err := drv.ExecContext(context.Background(), stmt)
		require.NoError(t, err)
	}
	return drv
}

func TestDrift(t *testing.T) {
	drv := openSQLite(t,
		`CREATE TABLE Vehicles (
			Id integer NOT NULL PRIMARY KEY,
			Discriminator text NOT NULL,
			Name text NULL,
			Seats real NOT NULL
		)`,
	)
	b, vehicle := vehicles(t)
	b.prop(vehicle, "Name", field.TypeString)
	b.prop(vehicle, "Seats", field.TypeInt)
	powered := b.derived("PoweredVehicle", vehicle)
	b.prop(powered, "Color", field.TypeString).Nullable = true
	owner := b.entity("Owner", nil, "Owners")
	b.pk(owner, "PK_Owner", b.prop(owner, "Id", field.TypeInt))

	stats := sql.NewStatsDriver(drv)
	warnings, err := Drift(context.Background(), stats, b.m, WithLogger(discard))
	require.NoError(t, err)
	require.Len(t, warnings, 4)

	assert.Equal(t, relcheck.KindColumnNullabilityDrift, warnings[0].Kind)
	assert.Equal(t, "Name", warnings[0].Artifact)
	assert.Equal(t, "NOT NULL", warnings[0].Value)
	assert.Equal(t, "NULL", warnings[0].OtherValue)

	assert.Equal(t, relcheck.KindColumnTypeDrift, warnings[1].Kind)
	assert.Equal(t, "Seats", warnings[1].Artifact)
	assert.Equal(t, "integer", warnings[1].Value)
	assert.Equal(t, "real", warnings[1].OtherValue)

	assert.Equal(t, relcheck.KindColumnMissing, warnings[2].Kind)
	assert.Equal(t, "PoweredVehicle", warnings[2].EntityType)
	assert.Equal(t, "Color", warnings[2].Artifact)

	assert.Equal(t, relcheck.KindTableMissing, warnings[3].Kind)
	assert.Equal(t, "Owners", warnings[3].Table)

	for _, w := range warnings {
		assert.True(t, w.Kind.Advisory())
		assert.ErrorIs(t, w, relcheck.ErrAdvisory)
	}
	assert.Positive(t, stats.QueryStats().Stats().TotalQueries)
}

func TestDrift_InSync(t *testing.T) {
	drv := openSQLite(t,
		`CREATE TABLE Owners (Id integer NOT NULL PRIMARY KEY, Name text NULL)`,
	)
	b := newBuilder(t)
	owner := b.entity("Owner", nil, "Owners")
	b.pk(owner, "PK_Owner", b.prop(owner, "Id", field.TypeInt))
	b.prop(owner, "Name", field.TypeString).Nullable = true

	warnings, err := Drift(context.Background(), drv, b.m, WithLogger(discard))
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestDrift_ExplicitColumnType(t *testing.T) {
	drv := openSQLite(t,
		`CREATE TABLE Owners (Id integer NOT NULL PRIMARY KEY, Code varchar(8) NOT NULL)`,
	)
	b := newBuilder(t)
	owner := b.entity("Owner", nil, "Owners")
	b.pk(owner, "PK_Owner", b.prop(owner, "Id", field.TypeInt))
	b.prop(owner, "Code", field.TypeString).Column.Type = "VARCHAR(8)"

	warnings, err := Drift(context.Background(), drv, b.m, WithLogger(discard))
	require.NoError(t, err)
	assert.Empty(t, warnings)
}
