// Package schema validates how the entity types of a model map to tables.
//
// Several entity types may share one table, through inheritance
// (table-per-hierarchy) or table splitting. Validate groups the types by
// table and checks, per group, that:
//
//   - the types are connected to a single root by inheritance or
//     identifying foreign keys, and agree on the primary key name;
//   - properties mapped to the same column agree on store type,
//     nullability, computed SQL and defaults;
//   - keys, foreign keys and indexes mapped to the same name agree;
//   - every hierarchy sharing a table can tell its rows apart by a
//     discriminator.
//
// Validation stops at the first fatal diagnostic unless WithCollectAll is
// given. Advisory diagnostics never fail a pass; they are returned as
// warnings and logged.
//
//	r := schema.Validate(model, schema.WithDialect(dialect.SQLite))
//	if err := r.Err(); err != nil {
//	    return err
//	}
//
// Drift compares the model against a live database through atlas and
// reports missing tables and columns and differing column types or
// nullability.
package schema
