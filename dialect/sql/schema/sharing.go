package schema

import (
	"github.com/syssam/relcheck/graph"
)

// validateSharing proves that the entity types of a table group form one
// graph rooted at a single type, linked by inheritance or identifying
// foreign keys, and that linked types agree on the primary key name.
//
// A type is a root candidate when it has no base and no identifying foreign
// key to another member. Exactly one candidate must exist: a second one is
// reported as not linked to the first before any edge is walked.
func (v *validator) validateSharing(g *TableGroup) error {
	var (
		table       = g.Name()
		unvalidated = make(map[*graph.EntityType]bool, len(g.EntityTypes))
		candidates  []*graph.EntityType
	)
	for _, t := range g.EntityTypes {
		unvalidated[t] = true
	}
	for _, t := range g.EntityTypes {
		if t.Base() == nil && !dependsOn(t, unvalidated) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return errNoRoot(table, g.EntityTypes[len(g.EntityTypes)-1])
	}
	root := candidates[0]
	if len(candidates) > 1 {
		return errNoRelationship(table, candidates[1], root)
	}
	delete(unvalidated, root)
	// Candidates are scanned in group order so the first diagnostic does not
	// depend on map iteration.
	for queue := []*graph.EntityType{root}; len(queue) > 0; queue = queue[1:] {
		cur := queue[0]
		for _, t := range g.EntityTypes {
			if !unvalidated[t] || !linked(cur, t) {
				continue
			}
			if err := checkKeyNames(table, t, cur); err != nil {
				return err
			}
			delete(unvalidated, t)
			queue = append(queue, t)
		}
	}
	for _, t := range g.EntityTypes {
		if unvalidated[t] {
			return errNoRelationship(table, t, root)
		}
	}
	return nil
}

// dependsOn reports whether t has an identifying foreign key to one of the
// types in set.
func dependsOn(t *graph.EntityType, set map[*graph.EntityType]bool) bool {
	for _, fk := range t.IdentifyingForeignKeys() {
		if fk.Principal() != t && set[fk.Principal()] {
			return true
		}
	}
	return false
}

// linked reports whether t is reachable from cur in one step: t derives from
// cur, or an identifying foreign key joins the two in either direction.
func linked(cur, t *graph.EntityType) bool {
	if cur.IsAssignableFrom(t) {
		return true
	}
	for _, fk := range cur.IdentifyingForeignKeys() {
		if fk.Principal() == t {
			return true
		}
	}
	for _, fk := range t.IdentifyingForeignKeys() {
		if fk.Principal() == cur {
			return true
		}
	}
	return false
}

func checkKeyNames(table string, t, other *graph.EntityType) error {
	pk, otherPK := t.PrimaryKey(), other.PrimaryKey()
	if pk == nil || otherPK == nil {
		return nil
	}
	if pk.StorageName() != otherPK.StorageName() {
		return errKeyNameMismatch(table, t, pk, other, otherPK)
	}
	return nil
}
