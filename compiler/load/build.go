package load

import (
	"fmt"
	"slices"

	"github.com/go-openapi/inflect"

	"github.com/syssam/relcheck/dialect"
	"github.com/syssam/relcheck/dialect/sqlschema"
	"github.com/syssam/relcheck/graph"
)

// DialectName returns the canonical dialect of the description.
func (s *Spec) DialectName() (string, error) {
	if s.Dialect == "" {
		return dialect.Postgres, nil
	}
	return dialect.Parse(s.Dialect)
}

// Build creates the model graph of the description. Types are declared in
// order first, so bases and principals may be declared after their users.
func (s *Spec) Build() (*graph.Model, error) {
	b := &builder{
		spec:  s,
		m:     graph.NewModel(),
		types: make(map[string]*graph.EntityType, len(s.Types)),
		rules: inflect.NewDefaultRuleset(),
	}
	for _, step := range []func() error{
		b.declare,
		b.bases,
		b.properties,
		b.keys,
		b.foreignKeys,
		b.indexes,
	} {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return b.m, nil
}

type builder struct {
	spec  *Spec
	m     *graph.Model
	types map[string]*graph.EntityType
	rules *inflect.Ruleset
}

func (b *builder) declare() error {
	for _, ts := range b.spec.Types {
		if ts == nil {
			return fmt.Errorf("load: nil type")
		}
		et, err := b.m.AddEntityType(ts.Name)
		if err != nil {
			return fmt.Errorf("load: %w", err)
		}
		et.Abstract = ts.Abstract
		et.Query = ts.Query
		et.DiscriminatorValue = ts.DiscriminatorValue
		if ts.Table != "" {
			et.Table = &sqlschema.Table{Schema: ts.TableSchema, Name: ts.Table}
		}
		b.types[ts.Name] = et
	}
	return nil
}

func (b *builder) bases() error {
	for _, ts := range b.spec.Types {
		et := b.types[ts.Name]
		if ts.Base != "" {
			base, err := b.lookup(ts.Name, "base", ts.Base)
			if err != nil {
				return err
			}
			if err := et.SetBase(base); err != nil {
				return fmt.Errorf("load: %w", err)
			}
		}
	}
	// Defaults need the final hierarchy.
	for _, ts := range b.spec.Types {
		et := b.types[ts.Name]
		if et.Base() == nil && et.Table == nil && !et.Query {
			et.Table = &sqlschema.Table{Schema: ts.TableSchema, Name: b.tableName(et.Name)}
		}
	}
	return nil
}

// tableName returns the default table name of a root type: "VehicleOwner"
// maps to "vehicle_owners".
func (b *builder) tableName(name string) string {
	return b.rules.Underscore(b.rules.Pluralize(name))
}

func (b *builder) properties() error {
	for _, ts := range b.spec.Types {
		et := b.types[ts.Name]
		for _, f := range ts.Fields {
			if f == nil {
				return fmt.Errorf("load: type %q: nil field", ts.Name)
			}
			if !f.Type.Valid() {
				return fmt.Errorf("load: type %q: field %q has invalid type", ts.Name, f.Name)
			}
			p, err := et.AddProperty(f.Name, f.Type)
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			p.Nullable = f.Nullable
			p.Identity = f.Identity
			p.Column = sqlschema.Column{
				Name:         f.Column,
				Type:         f.ColumnType,
				Default:      f.Default,
				DefaultExpr:  f.DefaultExpr,
				ComputedExpr: f.ComputedExpr,
				Nullable:     f.ColumnNullable,
			}
		}
	}
	return nil
}

func (b *builder) keys() error {
	for _, ts := range b.spec.Types {
		et := b.types[ts.Name]
		if ts.Discriminator != "" {
			p := et.FindProperty(ts.Discriminator)
			if p == nil {
				return fmt.Errorf("load: type %q: unknown discriminator field %q", ts.Name, ts.Discriminator)
			}
			if err := et.SetDiscriminator(p); err != nil {
				return fmt.Errorf("load: %w", err)
			}
		}
		if ts.PrimaryKey != nil {
			props, err := b.fields(et, "primary key", ts.PrimaryKey.Fields)
			if err != nil {
				return err
			}
			k, err := et.SetPrimaryKey(props...)
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			k.Name = ts.PrimaryKey.Name
		}
		for _, ks := range ts.Keys {
			props, err := b.fields(et, "key", ks.Fields)
			if err != nil {
				return err
			}
			k, err := et.AddKey(props...)
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			k.Name = ks.Name
		}
	}
	return nil
}

func (b *builder) foreignKeys() error {
	for _, ts := range b.spec.Types {
		et := b.types[ts.Name]
		for _, fs := range ts.ForeignKeys {
			principal, err := b.lookup(ts.Name, "principal", fs.Principal)
			if err != nil {
				return err
			}
			props, err := b.fields(et, "foreign key", fs.Fields)
			if err != nil {
				return err
			}
			var key *graph.Key
			if len(fs.PrincipalKey) > 0 {
				if key, err = b.principalKey(ts.Name, principal, fs.PrincipalKey); err != nil {
					return err
				}
			}
			fk, err := et.AddForeignKey(props, principal, key)
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			fk.Name = fs.Name
			if fk.OnDelete, err = sqlschema.ParseDeleteBehavior(fs.OnDelete); err != nil {
				return fmt.Errorf("load: type %q: %w", ts.Name, err)
			}
			if fs.Unique != nil {
				fk.Unique = *fs.Unique
			} else if pk := et.PrimaryKey(); pk != nil {
				fk.Unique = slices.Equal(pk.Properties(), props)
			}
		}
	}
	return nil
}

// principalKey finds the key of principal (or one of its bases) over the
// named fields.
func (b *builder) principalKey(owner string, principal *graph.EntityType, names []string) (*graph.Key, error) {
	props, err := b.fields(principal, "principal key", names)
	if err != nil {
		return nil, err
	}
	for t := principal; t != nil; t = t.Base() {
		for _, k := range t.Keys() {
			if slices.Equal(k.Properties(), props) {
				return k, nil
			}
		}
	}
	return nil, fmt.Errorf("load: type %q: principal %q has no key over %v", owner, principal.Name, names)
}

func (b *builder) indexes() error {
	for _, ts := range b.spec.Types {
		et := b.types[ts.Name]
		for _, is := range ts.Indexes {
			props, err := b.fields(et, "index", is.Fields)
			if err != nil {
				return err
			}
			ix, err := et.AddIndex(props...)
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			ix.Name = is.Name
			ix.Unique = is.Unique
		}
	}
	return nil
}

func (b *builder) lookup(owner, what, name string) (*graph.EntityType, error) {
	t, ok := b.types[name]
	if !ok {
		return nil, fmt.Errorf("load: type %q: unknown %s type %q", owner, what, name)
	}
	return t, nil
}

// fields resolves declared or inherited field names of et.
func (b *builder) fields(et *graph.EntityType, what string, names []string) ([]*graph.Property, error) {
	props := make([]*graph.Property, 0, len(names))
	for _, name := range names {
		p := et.FindProperty(name)
		if p == nil {
			return nil, fmt.Errorf("load: type %q: %s references unknown field %q", et.Name, what, name)
		}
		props = append(props, p)
	}
	return props, nil
}
