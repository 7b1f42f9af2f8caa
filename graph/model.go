package graph

import (
	"fmt"

	"github.com/syssam/relcheck/dialect/sqlschema"
	"github.com/syssam/relcheck/schema/field"
)

// Model holds the entity types of a model in declaration order.
type Model struct {
	types  []*EntityType
	byName map[string]*EntityType
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{byName: make(map[string]*EntityType)}
}

// AddEntityType declares a new entity type. Names are unique per model.
func (m *Model) AddEntityType(name string) (*EntityType, error) {
	if name == "" {
		return nil, fmt.Errorf("graph: entity type name cannot be empty")
	}
	if _, ok := m.byName[name]; ok {
		return nil, fmt.Errorf("graph: duplicate entity type %q", name)
	}
	t := &EntityType{model: m, Name: name}
	m.types = append(m.types, t)
	m.byName[name] = t
	return t, nil
}

// EntityTypes returns all entity types in declaration order.
func (m *Model) EntityTypes() []*EntityType {
	return append([]*EntityType(nil), m.types...)
}

// FindEntityType returns the entity type with the given name, or nil.
func (m *Model) FindEntityType(name string) *EntityType {
	return m.byName[name]
}

// RootEntityTypes returns the entity types without a base type.
func (m *Model) RootEntityTypes() []*EntityType {
	var roots []*EntityType
	for _, t := range m.types {
		if t.base == nil {
			roots = append(roots, t)
		}
	}
	return roots
}

// EntityType is one node of the model.
type EntityType struct {
	model *Model
	// Name is the display name of the type.
	Name string
	// Abstract marks types that can never be instantiated.
	Abstract bool
	// Table is the table the type maps to. Nil inherits the base type's
	// table; a root with a nil table is not physically mapped.
	Table *sqlschema.Table
	// Query marks types that are never physically mapped, regardless of
	// their base type.
	Query bool
	// DiscriminatorValue tags the rows of this type in a shared table.
	// Nil means unset.
	DiscriminatorValue any

	base          *EntityType
	derived       []*EntityType
	properties    []*Property
	keys          []*Key
	primaryKey    *Key
	foreignKeys   []*ForeignKey
	indexes       []*Index
	discriminator *Property
}

// String returns the display name of the type.
func (t *EntityType) String() string { return t.Name }

// Model returns the model the type belongs to.
func (t *EntityType) Model() *Model { return t.model }

// Base returns the base type, or nil for a root.
func (t *EntityType) Base() *EntityType { return t.base }

// SetBase makes t derive from base. A base from another model or a base
// that would make the hierarchy cyclic is rejected.
func (t *EntityType) SetBase(base *EntityType) error {
	if t.base == base {
		return nil
	}
	if base != nil {
		if base.model != t.model {
			return fmt.Errorf("graph: base type %q of %q belongs to another model", base.Name, t.Name)
		}
		for b := base; b != nil; b = b.base {
			if b == t {
				return fmt.Errorf("graph: setting base %q of %q creates an inheritance cycle", base.Name, t.Name)
			}
		}
	}
	if t.base != nil {
		siblings := t.base.derived[:0]
		for _, d := range t.base.derived {
			if d != t {
				siblings = append(siblings, d)
			}
		}
		t.base.derived = siblings
	}
	t.base = base
	if base != nil {
		base.derived = append(base.derived, t)
	}
	return nil
}

// Root returns the root of the type's hierarchy.
func (t *EntityType) Root() *EntityType {
	r := t
	for r.base != nil {
		r = r.base
	}
	return r
}

// DerivedTypes returns the direct children of the type.
func (t *EntityType) DerivedTypes() []*EntityType {
	return append([]*EntityType(nil), t.derived...)
}

// InclusiveHierarchy returns t followed by all of its transitive descendants
// in breadth-first order.
func (t *EntityType) InclusiveHierarchy() []*EntityType {
	types := []*EntityType{t}
	for i := 0; i < len(types); i++ {
		types = append(types, types[i].derived...)
	}
	return types
}

// IsAssignableFrom reports whether other is t or derives from t.
func (t *EntityType) IsAssignableFrom(other *EntityType) bool {
	for o := other; o != nil; o = o.base {
		if o == t {
			return true
		}
	}
	return false
}

// IsInstantiable reports whether rows of exactly this type can exist.
func (t *EntityType) IsInstantiable() bool { return !t.Abstract }

// TableRef returns the table the type maps to and whether it is mapped.
func (t *EntityType) TableRef() (sqlschema.Table, bool) {
	for c := t; c != nil; c = c.base {
		if c.Query {
			return sqlschema.Table{}, false
		}
		if c.Table != nil {
			return *c.Table, true
		}
	}
	return sqlschema.Table{}, false
}

// tableName returns the mapped table name, or the type name for unmapped
// types. It only feeds default constraint names.
func (t *EntityType) tableName() string {
	if tbl, ok := t.TableRef(); ok {
		return tbl.Name
	}
	return t.Name
}

// AddProperty declares a property on the type.
func (t *EntityType) AddProperty(name string, typ field.Type) (*Property, error) {
	if name == "" {
		return nil, fmt.Errorf("graph: property name on %q cannot be empty", t.Name)
	}
	if p := t.FindDeclaredProperty(name); p != nil {
		return nil, fmt.Errorf("graph: duplicate property %q on %q", name, t.Name)
	}
	p := &Property{owner: t, Name: name, Type: typ}
	t.properties = append(t.properties, p)
	return p, nil
}

// Properties returns the declared properties in declaration order.
func (t *EntityType) Properties() []*Property {
	return append([]*Property(nil), t.properties...)
}

// AllProperties returns inherited properties followed by declared ones.
func (t *EntityType) AllProperties() []*Property {
	if t.base == nil {
		return t.Properties()
	}
	return append(t.base.AllProperties(), t.properties...)
}

// FindDeclaredProperty returns the property declared on t with the given name.
func (t *EntityType) FindDeclaredProperty(name string) *Property {
	for _, p := range t.properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// FindProperty returns the declared or inherited property with the given name.
func (t *EntityType) FindProperty(name string) *Property {
	for c := t; c != nil; c = c.base {
		if p := c.FindDeclaredProperty(name); p != nil {
			return p
		}
	}
	return nil
}

// SetPrimaryKey declares the primary key of the type, replacing a previously
// declared one.
func (t *EntityType) SetPrimaryKey(props ...*Property) (*Key, error) {
	if err := t.checkProperties("primary key", props); err != nil {
		return nil, err
	}
	if t.primaryKey != nil {
		t.primaryKey.primary = false
	}
	k := t.findKey(props)
	if k == nil {
		k = &Key{owner: t, properties: props}
		t.keys = append(t.keys, k)
	}
	k.primary = true
	t.primaryKey = k
	return k, nil
}

// AddKey declares an alternate key on the type.
func (t *EntityType) AddKey(props ...*Property) (*Key, error) {
	if err := t.checkProperties("key", props); err != nil {
		return nil, err
	}
	if k := t.findKey(props); k != nil {
		return k, nil
	}
	k := &Key{owner: t, properties: props}
	t.keys = append(t.keys, k)
	return k, nil
}

func (t *EntityType) findKey(props []*Property) *Key {
	for _, k := range t.keys {
		if sameProperties(k.properties, props) {
			return k
		}
	}
	return nil
}

// Keys returns the declared keys, including the primary key when declared on t.
func (t *EntityType) Keys() []*Key {
	return append([]*Key(nil), t.keys...)
}

// PrimaryKey returns the declared primary key, or the inherited one.
func (t *EntityType) PrimaryKey() *Key {
	for c := t; c != nil; c = c.base {
		if c.primaryKey != nil {
			return c.primaryKey
		}
	}
	return nil
}

// AddForeignKey declares a foreign key from props to the principal key of
// principal. A nil principalKey references the principal's primary key.
func (t *EntityType) AddForeignKey(props []*Property, principal *EntityType, principalKey *Key) (*ForeignKey, error) {
	if err := t.checkProperties("foreign key", props); err != nil {
		return nil, err
	}
	if principal == nil {
		return nil, fmt.Errorf("graph: foreign key on %q has no principal type", t.Name)
	}
	if principalKey == nil {
		principalKey = principal.PrimaryKey()
		if principalKey == nil {
			return nil, fmt.Errorf("graph: principal %q of foreign key on %q has no primary key", principal.Name, t.Name)
		}
	}
	if !principalKey.owner.IsAssignableFrom(principal) {
		return nil, fmt.Errorf("graph: principal key of foreign key on %q is not a key of %q", t.Name, principal.Name)
	}
	if len(principalKey.properties) != len(props) {
		return nil, fmt.Errorf("graph: foreign key on %q has %d properties, principal key of %q has %d",
			t.Name, len(props), principal.Name, len(principalKey.properties))
	}
	fk := &ForeignKey{
		owner:        t,
		properties:   props,
		principal:    principal,
		principalKey: principalKey,
		OnDelete:     sqlschema.ClientSetNull,
	}
	t.foreignKeys = append(t.foreignKeys, fk)
	return fk, nil
}

// ForeignKeys returns the declared foreign keys.
func (t *EntityType) ForeignKeys() []*ForeignKey {
	return append([]*ForeignKey(nil), t.foreignKeys...)
}

// FindForeignKeys returns the declared and inherited foreign keys defined
// over exactly props, in order.
func (t *EntityType) FindForeignKeys(props []*Property) []*ForeignKey {
	var fks []*ForeignKey
	for c := t; c != nil; c = c.base {
		for _, fk := range c.foreignKeys {
			if sameProperties(fk.properties, props) {
				fks = append(fks, fk)
			}
		}
	}
	return fks
}

// IdentifyingForeignKeys returns the identifying foreign keys of the type.
func (t *EntityType) IdentifyingForeignKeys() []*ForeignKey {
	pk := t.PrimaryKey()
	if pk == nil {
		return nil
	}
	var fks []*ForeignKey
	for _, fk := range t.FindForeignKeys(pk.properties) {
		if fk.IsIdentifying() {
			fks = append(fks, fk)
		}
	}
	return fks
}

// AddIndex declares an index on the type.
func (t *EntityType) AddIndex(props ...*Property) (*Index, error) {
	if err := t.checkProperties("index", props); err != nil {
		return nil, err
	}
	ix := &Index{owner: t, properties: props}
	t.indexes = append(t.indexes, ix)
	return ix, nil
}

// Indexes returns the declared indexes.
func (t *EntityType) Indexes() []*Index {
	return append([]*Index(nil), t.indexes...)
}

// SetDiscriminator configures the discriminator property of the hierarchy
// rooted at t. The property must be declared on t or one of its bases.
func (t *EntityType) SetDiscriminator(p *Property) error {
	if p != nil && !p.owner.IsAssignableFrom(t) {
		return fmt.Errorf("graph: discriminator %q is not a property of %q", p.Name, t.Name)
	}
	t.discriminator = p
	return nil
}

// DiscriminatorProperty returns the configured discriminator property,
// looking up the base chain.
func (t *EntityType) DiscriminatorProperty() *Property {
	for c := t; c != nil; c = c.base {
		if c.discriminator != nil {
			return c.discriminator
		}
	}
	return nil
}

func (t *EntityType) checkProperties(what string, props []*Property) error {
	if len(props) == 0 {
		return fmt.Errorf("graph: %s on %q has no properties", what, t.Name)
	}
	for _, p := range props {
		if p == nil {
			return fmt.Errorf("graph: %s on %q has a nil property", what, t.Name)
		}
		if !p.owner.IsAssignableFrom(t) {
			return fmt.Errorf("graph: %s on %q uses property %s.%s", what, t.Name, p.owner.Name, p.Name)
		}
	}
	return nil
}

func sameProperties(a, b []*Property) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
