package relcheck

import (
	"errors"
	"fmt"
	"strings"
)

// Category sentinel errors. Every fatal *MappingError matches exactly one of
// them with errors.Is.
var (
	// ErrIncompatibleTable is returned when entity types sharing a table are
	// not linked by inheritance or an identifying foreign key, or disagree on
	// their primary key name.
	ErrIncompatibleTable = errors.New("relcheck: incompatible table sharing")

	// ErrColumnMismatch is returned when properties mapped to the same column
	// disagree on a physical attribute.
	ErrColumnMismatch = errors.New("relcheck: column mismatch")

	// ErrKeyMismatch is returned when keys mapped to the same name disagree.
	ErrKeyMismatch = errors.New("relcheck: key mismatch")

	// ErrForeignKeyMismatch is returned when foreign keys mapped to the same
	// constraint name disagree.
	ErrForeignKeyMismatch = errors.New("relcheck: foreign key mismatch")

	// ErrIndexMismatch is returned when indexes mapped to the same name disagree.
	ErrIndexMismatch = errors.New("relcheck: index mismatch")

	// ErrInheritance is returned when a hierarchy cannot be told apart in its
	// table (discriminator problems) or is mapped inconsistently.
	ErrInheritance = errors.New("relcheck: invalid inheritance mapping")

	// ErrAdvisory is matched by non-fatal diagnostics.
	ErrAdvisory = errors.New("relcheck: advisory")
)

// Kind is the stable code of a diagnostic.
type Kind string

// Fatal kinds.
const (
	KindTableRootAmbiguous     Kind = "table-root-ambiguous"
	KindTableMemberUnreachable Kind = "table-member-unreachable"
	KindTableKeyNameMismatch   Kind = "table-key-name-mismatch"

	KindColumnTypeMismatch         Kind = "column-type-mismatch"
	KindColumnNullabilityMismatch  Kind = "column-nullability-mismatch"
	KindColumnComputedSQLMismatch  Kind = "column-computed-sql-mismatch"
	KindColumnDefaultValueMismatch Kind = "column-default-value-mismatch"
	KindColumnDefaultSQLMismatch   Kind = "column-default-sql-mismatch"

	KindKeyColumnMismatch Kind = "key-column-mismatch"

	KindForeignKeyPrincipalTableMismatch  Kind = "foreign-key-principal-table-mismatch"
	KindForeignKeyColumnMismatch          Kind = "foreign-key-column-mismatch"
	KindForeignKeyPrincipalColumnMismatch Kind = "foreign-key-principal-column-mismatch"
	KindForeignKeyUniquenessMismatch      Kind = "foreign-key-uniqueness-mismatch"
	KindForeignKeyDeleteBehaviorMismatch  Kind = "foreign-key-delete-behavior-mismatch"

	KindIndexColumnMismatch     Kind = "index-column-mismatch"
	KindIndexUniquenessMismatch Kind = "index-uniqueness-mismatch"

	KindDiscriminatorPropertyMissing Kind = "discriminator-property-missing"
	KindDiscriminatorValueMissing    Kind = "discriminator-value-missing"
	KindDiscriminatorValueDuplicate  Kind = "discriminator-value-duplicate"
	KindDerivedTableMismatch         Kind = "derived-table-mismatch"
)

// Advisory kinds. They never abort a validation pass.
const (
	KindBoolWithDefault Kind = "bool-with-default"
	KindKeyWithDefault  Kind = "key-with-default"

	KindTableMissing           Kind = "table-missing"
	KindColumnMissing          Kind = "column-missing"
	KindColumnTypeDrift        Kind = "column-type-drift"
	KindColumnNullabilityDrift Kind = "column-nullability-drift"
)

var categories = map[Kind]error{
	KindTableRootAmbiguous:     ErrIncompatibleTable,
	KindTableMemberUnreachable: ErrIncompatibleTable,
	KindTableKeyNameMismatch:   ErrIncompatibleTable,

	KindColumnTypeMismatch:         ErrColumnMismatch,
	KindColumnNullabilityMismatch:  ErrColumnMismatch,
	KindColumnComputedSQLMismatch:  ErrColumnMismatch,
	KindColumnDefaultValueMismatch: ErrColumnMismatch,
	KindColumnDefaultSQLMismatch:   ErrColumnMismatch,

	KindKeyColumnMismatch: ErrKeyMismatch,

	KindForeignKeyPrincipalTableMismatch:  ErrForeignKeyMismatch,
	KindForeignKeyColumnMismatch:          ErrForeignKeyMismatch,
	KindForeignKeyPrincipalColumnMismatch: ErrForeignKeyMismatch,
	KindForeignKeyUniquenessMismatch:      ErrForeignKeyMismatch,
	KindForeignKeyDeleteBehaviorMismatch:  ErrForeignKeyMismatch,

	KindIndexColumnMismatch:     ErrIndexMismatch,
	KindIndexUniquenessMismatch: ErrIndexMismatch,

	KindDiscriminatorPropertyMissing: ErrInheritance,
	KindDiscriminatorValueMissing:    ErrInheritance,
	KindDiscriminatorValueDuplicate:  ErrInheritance,
	KindDerivedTableMismatch:         ErrInheritance,
}

// Category returns the sentinel error of the kind. Unknown and advisory
// kinds map to ErrAdvisory.
func (k Kind) Category() error {
	if err, ok := categories[k]; ok {
		return err
	}
	return ErrAdvisory
}

// Advisory reports whether diagnostics of this kind are non-fatal.
func (k Kind) Advisory() bool {
	_, ok := categories[k]
	return !ok
}

// MappingError is a diagnostic raised against the relational mapping of a
// model. The same type carries fatal errors and advisory warnings.
type MappingError struct {
	Kind Kind
	// Table is the display name of the table ("schema.name" or "name").
	Table string
	// EntityType is the entity type that owns the baseline (first-seen)
	// artifact, or the offending type for single-type diagnostics.
	EntityType string
	// OtherEntityType is the entity type the baseline collided with.
	OtherEntityType string
	// Artifact is the shared column, key, constraint or index name.
	Artifact string
	// Members and OtherMembers hold the property names (or the single
	// property name) on each side.
	Members      []string
	OtherMembers []string
	// Value and OtherValue carry the two disagreeing values.
	Value      any
	OtherValue any
	// Message is the human-readable description without the package prefix.
	Message string
}

// Error returns the error string.
func (e *MappingError) Error() string {
	return "relcheck: " + e.Message
}

// Is reports whether target is the category sentinel of the error kind.
func (e *MappingError) Is(target error) bool {
	return target == e.Kind.Category()
}

// IsMappingError returns true if the error is a MappingError.
func IsMappingError(err error) bool {
	if err == nil {
		return false
	}
	var e *MappingError
	return errors.As(err, &e)
}

// KindOf returns the kind of the first MappingError in err's chain, or the
// empty kind when there is none.
func KindOf(err error) Kind {
	var e *MappingError
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// AggregateError represents multiple mapping errors collected during a pass.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "relcheck: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("relcheck: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
