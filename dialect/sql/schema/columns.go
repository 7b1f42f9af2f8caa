package schema

import (
	"reflect"
	"strings"

	"github.com/syssam/relcheck"
	"github.com/syssam/relcheck/graph"
)

// validateColumns compares every pair of declared properties mapped to the
// same column of the group. The first property seen is the baseline; the
// first differing attribute of a pair is reported.
func (v *validator) validateColumns(g *TableGroup) error {
	var (
		table   = g.Name()
		columns = make(map[string]*graph.Property)
	)
	for _, t := range g.EntityTypes {
		for _, p := range t.Properties() {
			column := p.ColumnName()
			first, ok := columns[column]
			if !ok {
				columns[column] = p
				continue
			}
			if mm, ok := v.compareColumns(first, p); !ok {
				return errColumnMismatch(table, column, first, p, mm)
			}
		}
	}
	return nil
}

// compareColumns checks store type, nullability, computed SQL, default value
// and default SQL in this order.
func (v *validator) compareColumns(p, other *graph.Property) (columnMismatch, bool) {
	if typ, otherTyp := StoreType(v.mapper, p), StoreType(v.mapper, other); !strings.EqualFold(typ, otherTyp) {
		return columnMismatch{kind: relcheck.KindColumnTypeMismatch, attr: "data types", value: typ, otherValue: otherTyp, quoteValues: true}, false
	}
	if null, otherNull := p.ColumnNullable(), other.ColumnNullable(); null != otherNull {
		return columnMismatch{kind: relcheck.KindColumnNullabilityMismatch, attr: "nullability", value: nullability(null), otherValue: nullability(otherNull)}, false
	}
	if sql, otherSQL := p.Column.ComputedExpr, other.Column.ComputedExpr; !strings.EqualFold(sql, otherSQL) {
		return columnMismatch{kind: relcheck.KindColumnComputedSQLMismatch, attr: "computed values", value: sql, otherValue: otherSQL, quoteValues: true}, false
	}
	if val, otherVal := p.Column.Default, other.Column.Default; !reflect.DeepEqual(val, otherVal) {
		return columnMismatch{kind: relcheck.KindColumnDefaultValueMismatch, attr: "default values", value: val, otherValue: otherVal, quoteValues: true}, false
	}
	if sql, otherSQL := p.Column.DefaultExpr, other.Column.DefaultExpr; !strings.EqualFold(sql, otherSQL) {
		return columnMismatch{kind: relcheck.KindColumnDefaultSQLMismatch, attr: "default SQL", value: sql, otherValue: otherSQL, quoteValues: true}, false
	}
	return columnMismatch{}, true
}

func nullability(nullable bool) string {
	if nullable {
		return "NULL"
	}
	return "NOT NULL"
}
