package schema

import (
	"reflect"

	"github.com/syssam/relcheck/graph"
)

// validateHierarchy checks the inheritance mapping of the hierarchy rooted at
// root. Every instantiable member of a multi-type hierarchy needs a
// discriminator property and a value that no other member uses. Values are
// compared without type normalization: "1" and 1 are distinct.
func (v *validator) validateHierarchy(root *graph.EntityType) error {
	if root.Query {
		return nil
	}
	types := root.InclusiveHierarchy()
	if len(types) == 1 {
		return nil
	}
	if v.strictInheritance {
		if err := checkDerivedTables(root, types[1:]); err != nil {
			return err
		}
	}
	var seen []*graph.EntityType
	for _, t := range types {
		if !t.IsInstantiable() {
			continue
		}
		if t.DiscriminatorProperty() == nil {
			return errNoDiscriminatorProperty(t)
		}
		if t.DiscriminatorValue == nil {
			return errNoDiscriminatorValue(t)
		}
		// Values may be unhashable, so a linear scan replaces a set.
		for _, s := range seen {
			if reflect.DeepEqual(s.DiscriminatorValue, t.DiscriminatorValue) {
				return errDuplicateDiscriminator(t, s)
			}
		}
		seen = append(seen, t)
	}
	return nil
}

// checkDerivedTables reports the first mapped derived type whose table is not
// the table of its root.
func checkDerivedTables(root *graph.EntityType, derived []*graph.EntityType) error {
	rootTable, ok := root.TableRef()
	if !ok {
		return nil
	}
	for _, t := range derived {
		tbl, ok := t.TableRef()
		if ok && tbl.String() != rootTable.String() {
			return errDerivedTable(t, tbl.String(), rootTable.String())
		}
	}
	return nil
}
