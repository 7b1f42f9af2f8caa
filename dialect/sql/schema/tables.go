package schema

import (
	"github.com/syssam/relcheck/dialect/sqlschema"
	"github.com/syssam/relcheck/graph"
)

// TableGroup is the set of entity types mapped to one table.
type TableGroup struct {
	Table sqlschema.Table
	// EntityTypes holds the mapped types in model declaration order.
	EntityTypes []*graph.EntityType
}

// Name returns the table identity used in diagnostics.
func (g *TableGroup) Name() string { return g.Table.String() }

// GroupTables partitions the mapped entity types of m by table identity.
// Groups are returned in the order their table is first seen; unmapped
// (query) types are skipped.
func GroupTables(m *graph.Model) []*TableGroup {
	var (
		groups []*TableGroup
		byName = make(map[string]*TableGroup)
	)
	for _, t := range m.EntityTypes() {
		tbl, ok := t.TableRef()
		if !ok {
			continue
		}
		g, ok := byName[tbl.String()]
		if !ok {
			g = &TableGroup{Table: tbl}
			byName[tbl.String()] = g
			groups = append(groups, g)
		}
		g.EntityTypes = append(g.EntityTypes, t)
	}
	return groups
}
