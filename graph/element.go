package graph

import (
	"strings"

	"github.com/syssam/relcheck/dialect/sqlschema"
	"github.com/syssam/relcheck/schema/field"
)

// Property is a scalar attribute of an entity type.
type Property struct {
	owner *EntityType
	// Name is the property name.
	Name string
	// Type is the value type of the property.
	Type field.Type
	// Nullable indicates that the property accepts null values.
	Nullable bool
	// Identity marks store-generated identity values, which are never null.
	Identity bool
	// Column holds the column settings of the property.
	Column sqlschema.Column
}

// Owner returns the entity type declaring the property.
func (p *Property) Owner() *EntityType { return p.owner }

// String returns "Type.Property".
func (p *Property) String() string { return p.owner.Name + "." + p.Name }

// ColumnName returns the column the property maps to.
func (p *Property) ColumnName() string {
	if p.Column.Name != "" {
		return p.Column.Name
	}
	return p.Name
}

// IsPrimaryKey reports whether the property is part of the primary key of
// its declaring type.
func (p *Property) IsPrimaryKey() bool {
	pk := p.owner.PrimaryKey()
	return pk != nil && pk.Contains(p)
}

// IsKey reports whether the property is part of any key declared on its
// type or a derived type.
func (p *Property) IsKey() bool {
	for _, t := range p.owner.InclusiveHierarchy() {
		for _, k := range t.keys {
			if k.Contains(p) {
				return true
			}
		}
	}
	return false
}

// ColumnNullable reports whether the column of the property accepts NULL.
// Primary key and identity columns never do; otherwise an explicit column
// setting wins over the property nullability.
func (p *Property) ColumnNullable() bool {
	if p.IsPrimaryKey() || p.Identity {
		return false
	}
	if p.Column.Nullable != nil {
		return *p.Column.Nullable
	}
	return p.Nullable
}

// Key is a primary or alternate key.
type Key struct {
	owner      *EntityType
	properties []*Property
	primary    bool
	// Name overrides the constraint name.
	Name string
}

// Owner returns the entity type declaring the key.
func (k *Key) Owner() *EntityType { return k.owner }

// Properties returns the key properties in order.
func (k *Key) Properties() []*Property { return append([]*Property(nil), k.properties...) }

// IsPrimary reports whether the key is the primary key of its owner.
func (k *Key) IsPrimary() bool { return k.primary }

// Contains reports whether p is one of the key properties.
func (k *Key) Contains(p *Property) bool {
	for _, kp := range k.properties {
		if kp == p {
			return true
		}
	}
	return false
}

// StorageName returns the constraint name of the key.
func (k *Key) StorageName() string {
	switch {
	case k.Name != "":
		return k.Name
	case k.primary:
		return "PK_" + k.owner.tableName()
	default:
		return "AK_" + k.owner.tableName() + "_" + strings.Join(ColumnNames(k.properties), "_")
	}
}

// ForeignKey links dependent properties to a principal key.
type ForeignKey struct {
	owner        *EntityType
	properties   []*Property
	principal    *EntityType
	principalKey *Key
	// Name overrides the constraint name.
	Name string
	// Unique marks one-to-one relationships.
	Unique bool
	// OnDelete is the delete behavior of the constraint.
	OnDelete sqlschema.DeleteBehavior
}

// Owner returns the dependent entity type declaring the foreign key.
func (fk *ForeignKey) Owner() *EntityType { return fk.owner }

// Properties returns the dependent properties in order.
func (fk *ForeignKey) Properties() []*Property { return append([]*Property(nil), fk.properties...) }

// Principal returns the principal entity type.
func (fk *ForeignKey) Principal() *EntityType { return fk.principal }

// PrincipalKey returns the referenced key.
func (fk *ForeignKey) PrincipalKey() *Key { return fk.principalKey }

// StorageName returns the constraint name of the foreign key.
func (fk *ForeignKey) StorageName() string {
	if fk.Name != "" {
		return fk.Name
	}
	return "FK_" + fk.owner.tableName() + "_" + fk.principal.tableName() + "_" + strings.Join(ColumnNames(fk.properties), "_")
}

// IsIdentifying reports whether the foreign key is unique, spans exactly the
// dependent's primary key and references the principal's primary key.
func (fk *ForeignKey) IsIdentifying() bool {
	if !fk.Unique {
		return false
	}
	pk := fk.owner.PrimaryKey()
	return pk != nil && sameProperties(pk.properties, fk.properties) && fk.principalKey == fk.principal.PrimaryKey()
}

// Index is a database index over properties of a type.
type Index struct {
	owner      *EntityType
	properties []*Property
	// Name overrides the index name.
	Name string
	// Unique marks unique indexes.
	Unique bool
}

// Owner returns the entity type declaring the index.
func (ix *Index) Owner() *EntityType { return ix.owner }

// Properties returns the indexed properties in order.
func (ix *Index) Properties() []*Property { return append([]*Property(nil), ix.properties...) }

// StorageName returns the name of the index.
func (ix *Index) StorageName() string {
	if ix.Name != "" {
		return ix.Name
	}
	return "IX_" + ix.owner.tableName() + "_" + strings.Join(ColumnNames(ix.properties), "_")
}

// ColumnNames returns the column names of props.
func ColumnNames(props []*Property) []string {
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.ColumnName()
	}
	return names
}

// PropertyNames returns the names of props.
func PropertyNames(props []*Property) []string {
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.Name
	}
	return names
}
