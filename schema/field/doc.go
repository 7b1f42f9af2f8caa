// Package field defines the value types of entity properties.
//
// A property's type selects its default store type when no explicit column
// type is configured, and drives the bool-with-default advisory. Types are
// written by name in model files:
//
//	fields:
//	  - name: Id
//	    type: int
//	  - name: Active
//	    type: bool
//
// ParseType accepts a few common aliases ("boolean", "text", "timestamp",
// "double", "blob") in addition to the canonical names.
package field
