// Package graph provides the entity-relationship model consumed by the
// relational mapping validator.
//
// A Model is a forest of entity types. Each EntityType declares properties,
// keys, foreign keys and indexes, optionally derives from a single base type
// and optionally maps to a table. The relational side of every element is an
// explicit facet from the sqlschema package; names that are not configured
// fall back to conventional defaults (PK_<table>, FK_<table>_<principal>_<cols>,
// IX_<table>_<cols>).
//
// # Building a Model
//
//	m := graph.NewModel()
//	vehicle, _ := m.AddEntityType("Vehicle")
//	vehicle.Table = &sqlschema.Table{Name: "Vehicles"}
//	id, _ := vehicle.AddProperty("Id", field.TypeInt)
//	pk, _ := vehicle.SetPrimaryKey(id)
//	pk.Name = "PK_Vehicle"
//
//	powered, _ := m.AddEntityType("PoweredVehicle")
//	_ = powered.SetBase(vehicle) // shares the Vehicles table
//
// # Hierarchies
//
// Inheritance edges are explicit: Base returns the parent, DerivedTypes the
// direct children in declaration order, and InclusiveHierarchy the type and
// all of its transitive descendants in breadth-first order.
//
// # Table Splitting
//
// Two unrelated types may share a table when the dependent declares an
// identifying foreign key: a unique foreign key over exactly its primary key
// properties that references the principal's primary key.
//
// The validator treats a Model as a frozen snapshot and never mutates it.
package graph
