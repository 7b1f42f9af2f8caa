package schema

import (
	"context"
	"fmt"
	"strings"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/relcheck"
	"github.com/syssam/relcheck/dialect"
	"github.com/syssam/relcheck/dialect/sql"
	"github.com/syssam/relcheck/graph"
)

// Conn is a database connection that knows its dialect. Both *sql.Driver
// and *sql.StatsDriver implement it.
type Conn interface {
	sql.ExecQuerier
	Dialect() string
}

// Drift inspects the live database behind conn and reports where it differs
// from the relational mapping of m: missing tables, missing columns, and
// columns whose type or nullability is not the mapped one. Drift never
// produces fatal diagnostics; every result is advisory.
func Drift(ctx context.Context, conn Conn, m *graph.Model, opts ...ValidateOption) ([]*relcheck.MappingError, error) {
	v := newValidator(append([]ValidateOption{WithDialect(conn.Dialect())}, opts...)...)
	drv, err := atlasDriver(conn)
	if err != nil {
		return nil, err
	}
	var (
		warnings []*relcheck.MappingError
		realm    = make(map[string]*schema.Schema)
	)
	for _, g := range GroupTables(m) {
		s, err := inspectSchema(ctx, drv, conn.Dialect(), g.Table.Schema, realm)
		if err != nil {
			return nil, err
		}
		var tbl *schema.Table
		if s != nil {
			tbl, _ = s.Table(g.Table.Name)
		}
		if tbl == nil {
			warnings = append(warnings, &relcheck.MappingError{
				Kind:       relcheck.KindTableMissing,
				Table:      g.Name(),
				EntityType: g.EntityTypes[0].Name,
				Message:    fmt.Sprintf("table %q of entity type %s does not exist in the database", g.Name(), g.EntityTypes[0].Name),
			})
			continue
		}
		warnings = append(warnings, v.columnDrift(g, tbl)...)
	}
	for _, w := range warnings {
		v.logger.WarnContext(ctx, w.Message, "kind", w.Kind, "table", w.Table, "column", w.Artifact)
	}
	return warnings, nil
}

// columnDrift compares the first property mapped to each column of the group
// with the inspected table.
func (v *validator) columnDrift(g *TableGroup, tbl *schema.Table) []*relcheck.MappingError {
	var (
		warnings []*relcheck.MappingError
		seen     = make(map[string]bool)
	)
	for _, t := range g.EntityTypes {
		for _, p := range t.AllProperties() {
			name := p.ColumnName()
			if seen[name] {
				continue
			}
			seen[name] = true
			col, ok := tbl.Column(name)
			if !ok {
				warnings = append(warnings, driftError(relcheck.KindColumnMissing, g, p, nil, nil,
					fmt.Sprintf("column %q of %s does not exist in table %q", name, p, g.Name())))
				continue
			}
			if want, got := StoreType(v.mapper, p), col.Type.Raw; want != "" && !strings.EqualFold(want, got) {
				warnings = append(warnings, driftError(relcheck.KindColumnTypeDrift, g, p, want, got,
					fmt.Sprintf("column %q of %s is mapped as %q but has type %q in table %q", name, p, want, got, g.Name())))
			}
			if want, got := p.ColumnNullable(), col.Type.Null; want != got {
				warnings = append(warnings, driftError(relcheck.KindColumnNullabilityDrift, g, p, nullability(want), nullability(got),
					fmt.Sprintf("column %q of %s is mapped as %s but is %s in table %q", name, p, nullability(want), nullability(got), g.Name())))
			}
		}
	}
	return warnings
}

func driftError(kind relcheck.Kind, g *TableGroup, p *graph.Property, want, got any, msg string) *relcheck.MappingError {
	return &relcheck.MappingError{
		Kind:       kind,
		Table:      g.Name(),
		EntityType: p.Owner().Name,
		Artifact:   p.ColumnName(),
		Members:    []string{p.Name},
		Value:      want,
		OtherValue: got,
		Message:    msg,
	}
}

func atlasDriver(conn Conn) (migrate.Driver, error) {
	var (
		drv migrate.Driver
		err error
	)
	switch conn.Dialect() {
	case dialect.SQLite:
		drv, err = sqlite.Open(conn)
	case dialect.Postgres:
		drv, err = postgres.Open(conn)
	case dialect.MySQL:
		drv, err = mysql.Open(conn)
	default:
		return nil, fmt.Errorf("sql/schema: unsupported dialect %q", conn.Dialect())
	}
	if err != nil {
		return nil, fmt.Errorf("sql/schema: open %s inspector: %w", conn.Dialect(), err)
	}
	return drv, nil
}

// inspectSchema inspects the named schema once per pass. An empty name is the
// connection's current schema. It returns nil if the schema does not exist.
func inspectSchema(ctx context.Context, drv migrate.Driver, dialectName, name string, realm map[string]*schema.Schema) (*schema.Schema, error) {
	if s, ok := realm[name]; ok {
		return s, nil
	}
	target := name
	if target == "" && dialectName == dialect.SQLite {
		target = "main"
	}
	s, err := drv.InspectSchema(ctx, target, &schema.InspectOptions{})
	switch {
	case schema.IsNotExistError(err):
		s = nil
	case err != nil:
		return nil, fmt.Errorf("sql/schema: inspect schema %q: %w", target, err)
	}
	realm[name] = s
	return s, nil
}
