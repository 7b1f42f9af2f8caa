package schema

import (
	"fmt"

	"github.com/syssam/relcheck"
	"github.com/syssam/relcheck/graph"
	"github.com/syssam/relcheck/schema/field"
)

// advisories returns the non-fatal diagnostics of m in declaration order.
func (v *validator) advisories(m *graph.Model) []*relcheck.MappingError {
	var warnings []*relcheck.MappingError
	for _, t := range m.EntityTypes() {
		for _, p := range t.Properties() {
			if w := boolWithDefault(p); w != nil {
				warnings = append(warnings, w)
			}
			if w := keyWithDefault(p); w != nil {
				warnings = append(warnings, w)
			}
		}
	}
	return warnings
}

// boolWithDefault flags non-nullable bool columns whose store default is not
// false. Rows inserted with the value false then silently get the default.
func boolWithDefault(p *graph.Property) *relcheck.MappingError {
	if p.Type != field.TypeBool || p.ColumnNullable() {
		return nil
	}
	def, hasDef := p.Column.GetDefault()
	expr, hasExpr := p.Column.GetDefaultExpr()
	if (!hasDef || def == false) && !hasExpr {
		return nil
	}
	value := def
	if hasExpr {
		value = expr
	}
	return &relcheck.MappingError{
		Kind:       relcheck.KindBoolWithDefault,
		EntityType: p.Owner().Name,
		Artifact:   p.ColumnName(),
		Members:    []string{p.Name},
		Value:      value,
		Message: fmt.Sprintf("the bool property %s is configured with a store default (%s); false values will be replaced by it on insert, use a nullable type instead",
			p, formatValue(value)),
	}
}

// keyWithDefault flags key properties with a constant default value.
func keyWithDefault(p *graph.Property) *relcheck.MappingError {
	def, ok := p.Column.GetDefault()
	if !ok || !p.IsKey() {
		return nil
	}
	return &relcheck.MappingError{
		Kind:       relcheck.KindKeyWithDefault,
		EntityType: p.Owner().Name,
		Artifact:   p.ColumnName(),
		Members:    []string{p.Name},
		Value:      def,
		Message:    fmt.Sprintf("the key property %s is configured with the default value %s; every inserted row gets the same key unless it is set explicitly", p, formatValue(def)),
	}
}
