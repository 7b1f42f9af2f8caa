package schema

import (
	"fmt"
	"slices"

	"github.com/syssam/relcheck"
	"github.com/syssam/relcheck/graph"
)

// validateKeys compares the keys of the group that share a constraint name.
func (v *validator) validateKeys(g *TableGroup) error {
	table := g.Name()
	keys := make(map[string]*graph.Key)
	for _, t := range g.EntityTypes {
		for _, k := range t.Keys() {
			name := k.StorageName()
			first, ok := keys[name]
			if !ok {
				keys[name] = k
				continue
			}
			cols, otherCols := graph.ColumnNames(first.Properties()), graph.ColumnNames(k.Properties())
			if !slices.Equal(cols, otherCols) {
				return errArtifactMismatch(relcheck.KindKeyColumnMismatch, "key", table, name,
					first.Owner(), k.Owner(), cols, otherCols,
					fmt.Sprintf("use different columns (%s and %s)", formatList(cols), formatList(otherCols)))
			}
		}
	}
	return nil
}

// validateForeignKeys compares the foreign keys of the group that share a
// constraint name: principal table, dependent columns, principal columns,
// uniqueness and delete behavior, in this order.
func (v *validator) validateForeignKeys(g *TableGroup) error {
	table := g.Name()
	fks := make(map[string]*graph.ForeignKey)
	for _, t := range g.EntityTypes {
		for _, fk := range t.ForeignKeys() {
			name := fk.StorageName()
			first, ok := fks[name]
			if !ok {
				fks[name] = fk
				continue
			}
			if err := compareForeignKeys(table, name, first, fk); err != nil {
				return err
			}
		}
	}
	return nil
}

func compareForeignKeys(table, name string, fk, other *graph.ForeignKey) error {
	cols, otherCols := graph.ColumnNames(fk.Properties()), graph.ColumnNames(other.Properties())
	mismatch := func(kind relcheck.Kind, value, otherValue any, format string, args ...any) error {
		e := errArtifactMismatch(kind, "foreign key", table, name, fk.Owner(), other.Owner(), cols, otherCols, fmt.Sprintf(format, args...))
		e.Value, e.OtherValue = value, otherValue
		return e
	}
	principal, otherPrincipal := principalTable(fk), principalTable(other)
	if principal != otherPrincipal {
		return mismatch(relcheck.KindForeignKeyPrincipalTableMismatch, principal, otherPrincipal,
			"reference different principal tables (%q and %q)", principal, otherPrincipal)
	}
	if !slices.Equal(cols, otherCols) {
		return mismatch(relcheck.KindForeignKeyColumnMismatch, cols, otherCols,
			"use different columns (%s and %s)", formatList(cols), formatList(otherCols))
	}
	pcols := graph.ColumnNames(fk.PrincipalKey().Properties())
	otherPcols := graph.ColumnNames(other.PrincipalKey().Properties())
	if !slices.Equal(pcols, otherPcols) {
		return mismatch(relcheck.KindForeignKeyPrincipalColumnMismatch, pcols, otherPcols,
			"reference different principal columns (%s and %s)", formatList(pcols), formatList(otherPcols))
	}
	if fk.Unique != other.Unique {
		return mismatch(relcheck.KindForeignKeyUniquenessMismatch, fk.Unique, other.Unique,
			"have different uniqueness (%s and %s)", uniqueness(fk.Unique), uniqueness(other.Unique))
	}
	if fk.OnDelete != other.OnDelete {
		return mismatch(relcheck.KindForeignKeyDeleteBehaviorMismatch, fk.OnDelete, other.OnDelete,
			"have different delete behaviors (%s and %s)", fk.OnDelete, other.OnDelete)
	}
	return nil
}

func principalTable(fk *graph.ForeignKey) string {
	if tbl, ok := fk.Principal().TableRef(); ok {
		return tbl.String()
	}
	return ""
}

// validateIndexes compares the indexes of the group that share a name.
func (v *validator) validateIndexes(g *TableGroup) error {
	table := g.Name()
	indexes := make(map[string]*graph.Index)
	for _, t := range g.EntityTypes {
		for _, ix := range t.Indexes() {
			name := ix.StorageName()
			first, ok := indexes[name]
			if !ok {
				indexes[name] = ix
				continue
			}
			cols, otherCols := graph.ColumnNames(first.Properties()), graph.ColumnNames(ix.Properties())
			if !slices.Equal(cols, otherCols) {
				return errArtifactMismatch(relcheck.KindIndexColumnMismatch, "index", table, name,
					first.Owner(), ix.Owner(), cols, otherCols,
					fmt.Sprintf("use different columns (%s and %s)", formatList(cols), formatList(otherCols)))
			}
			if first.Unique != ix.Unique {
				e := errArtifactMismatch(relcheck.KindIndexUniquenessMismatch, "index", table, name,
					first.Owner(), ix.Owner(), cols, otherCols,
					fmt.Sprintf("have different uniqueness (%s and %s)", uniqueness(first.Unique), uniqueness(ix.Unique)))
				e.Value, e.OtherValue = first.Unique, ix.Unique
				return e
			}
		}
	}
	return nil
}

func uniqueness(unique bool) string {
	if unique {
		return "unique"
	}
	return "non-unique"
}
