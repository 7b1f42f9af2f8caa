package schema

import (
	"fmt"
	"strings"

	"github.com/syssam/relcheck"
	"github.com/syssam/relcheck/graph"
)

// formatList formats names as "{A, B}".
func formatList(names []string) string {
	return "{" + strings.Join(names, ", ") + "}"
}

// formatValue formats a default or discriminator value. Nil prints as NULL.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func errNoRelationship(table string, t, other *graph.EntityType) *relcheck.MappingError {
	e := &relcheck.MappingError{
		Kind:       relcheck.KindTableMemberUnreachable,
		Table:      table,
		EntityType: t.Name,
		Message: fmt.Sprintf("no relationship links table %q: entity type %s is not linked to root %s by inheritance or an identifying foreign key",
			table, t.Name, nameOf(other)),
	}
	if other != nil {
		e.OtherEntityType = other.Name
	}
	return e
}

func errNoRoot(table string, last *graph.EntityType) *relcheck.MappingError {
	return &relcheck.MappingError{
		Kind:       relcheck.KindTableRootAmbiguous,
		Table:      table,
		EntityType: last.Name,
		Message:    fmt.Sprintf("no relationship links table %q: no root found, last examined entity type %s", table, last.Name),
	}
}

func errKeyNameMismatch(table string, t *graph.EntityType, k *graph.Key, other *graph.EntityType, otherKey *graph.Key) *relcheck.MappingError {
	return &relcheck.MappingError{
		Kind:            relcheck.KindTableKeyNameMismatch,
		Table:           table,
		EntityType:      t.Name,
		OtherEntityType: other.Name,
		Artifact:        k.StorageName(),
		Members:         graph.PropertyNames(k.Properties()),
		OtherMembers:    graph.PropertyNames(otherKey.Properties()),
		Value:           k.StorageName(),
		OtherValue:      otherKey.StorageName(),
		Message: fmt.Sprintf("incompatible table %q: key name mismatch between primary key %s %q of %s and primary key %s %q of %s",
			table,
			formatList(graph.PropertyNames(k.Properties())), k.StorageName(), t.Name,
			formatList(graph.PropertyNames(otherKey.Properties())), otherKey.StorageName(), other.Name),
	}
}

// columnMismatch describes the disagreement between two properties mapped to
// the same column.
type columnMismatch struct {
	kind        relcheck.Kind
	attr        string
	value       any
	otherValue  any
	quoteValues bool
}

func errColumnMismatch(table, column string, p, other *graph.Property, mm columnMismatch) *relcheck.MappingError {
	v1, v2 := formatValue(mm.value), formatValue(mm.otherValue)
	if !mm.quoteValues {
		v1, v2 = fmt.Sprint(mm.value), fmt.Sprint(mm.otherValue)
	}
	return &relcheck.MappingError{
		Kind:            mm.kind,
		Table:           table,
		EntityType:      p.Owner().Name,
		OtherEntityType: other.Owner().Name,
		Artifact:        column,
		Members:         []string{p.Name},
		OtherMembers:    []string{other.Name},
		Value:           mm.value,
		OtherValue:      mm.otherValue,
		Message: fmt.Sprintf("%s and %s are both mapped to column %q in %q but use different %s (%s and %s)",
			p, other, column, table, mm.attr, v1, v2),
	}
}

// errArtifactMismatch builds the diagnostic of two keys, foreign keys or
// indexes sharing a name.
func errArtifactMismatch(kind relcheck.Kind, what, table, name string, owner, otherOwner *graph.EntityType, cols, otherCols []string, detail string) *relcheck.MappingError {
	return &relcheck.MappingError{
		Kind:            kind,
		Table:           table,
		EntityType:      owner.Name,
		OtherEntityType: otherOwner.Name,
		Artifact:        name,
		Members:         cols,
		OtherMembers:    otherCols,
		Message: fmt.Sprintf("the %s %s on %s and the %s %s on %s are both mapped to %q in %q but %s",
			what, formatList(cols), owner.Name, what, formatList(otherCols), otherOwner.Name, name, table, detail),
	}
}

func errNoDiscriminatorProperty(t *graph.EntityType) *relcheck.MappingError {
	return &relcheck.MappingError{
		Kind:       relcheck.KindDiscriminatorPropertyMissing,
		EntityType: t.Name,
		Message:    fmt.Sprintf("no discriminator property configured for entity type %s of hierarchy %s", t.Name, t.Root().Name),
	}
}

func errNoDiscriminatorValue(t *graph.EntityType) *relcheck.MappingError {
	return &relcheck.MappingError{
		Kind:       relcheck.KindDiscriminatorValueMissing,
		EntityType: t.Name,
		Message:    fmt.Sprintf("no discriminator value configured for entity type %s of hierarchy %s", t.Name, t.Root().Name),
	}
}

func errDuplicateDiscriminator(t, other *graph.EntityType) *relcheck.MappingError {
	return &relcheck.MappingError{
		Kind:            relcheck.KindDiscriminatorValueDuplicate,
		EntityType:      t.Name,
		OtherEntityType: other.Name,
		Value:           t.DiscriminatorValue,
		OtherValue:      other.DiscriminatorValue,
		Message: fmt.Sprintf("duplicate discriminator value %s for entity type %s: already used by %s",
			formatValue(t.DiscriminatorValue), t.Name, other.Name),
	}
}

func errDerivedTable(t *graph.EntityType, table, rootTable string) *relcheck.MappingError {
	root := t.Root()
	return &relcheck.MappingError{
		Kind:            relcheck.KindDerivedTableMismatch,
		Table:           table,
		EntityType:      t.Name,
		OtherEntityType: root.Name,
		Value:           table,
		OtherValue:      rootTable,
		Message: fmt.Sprintf("derived entity type %s is mapped to table %q but its root %s is mapped to %q",
			t.Name, table, root.Name, rootTable),
	}
}

func nameOf(t *graph.EntityType) string {
	if t == nil {
		return "<none>"
	}
	return t.Name
}
