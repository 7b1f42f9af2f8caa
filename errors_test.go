package relcheck_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relcheck"
)

func TestMappingError(t *testing.T) {
	err := &relcheck.MappingError{
		Kind:            relcheck.KindColumnTypeMismatch,
		Table:           "Vehicles",
		EntityType:      "Vehicle",
		OtherEntityType: "VehicleDetails",
		Artifact:        "Name",
		Value:           "text",
		OtherValue:      "integer",
		Message:         `Vehicle.Name and VehicleDetails.Name are both mapped to column "Name" in "Vehicles" but use different column types ("text" and "integer")`,
	}

	t.Run("Error", func(t *testing.T) {
		assert.Equal(t, "relcheck: "+err.Message, err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		assert.True(t, errors.Is(err, relcheck.ErrColumnMismatch))
		assert.False(t, errors.Is(err, relcheck.ErrKeyMismatch))
		assert.False(t, errors.Is(err, relcheck.ErrAdvisory))
	})

	t.Run("IsMappingError", func(t *testing.T) {
		assert.True(t, relcheck.IsMappingError(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, relcheck.IsMappingError(wrapped))
		assert.True(t, errors.Is(wrapped, relcheck.ErrColumnMismatch))
		assert.Equal(t, relcheck.KindColumnTypeMismatch, relcheck.KindOf(wrapped))

		assert.False(t, relcheck.IsMappingError(errors.New("other")))
		assert.False(t, relcheck.IsMappingError(nil))
		assert.Equal(t, relcheck.Kind(""), relcheck.KindOf(errors.New("other")))
	})
}

func TestKind(t *testing.T) {
	tests := []struct {
		kind     relcheck.Kind
		category error
	}{
		{relcheck.KindTableRootAmbiguous, relcheck.ErrIncompatibleTable},
		{relcheck.KindTableMemberUnreachable, relcheck.ErrIncompatibleTable},
		{relcheck.KindTableKeyNameMismatch, relcheck.ErrIncompatibleTable},
		{relcheck.KindColumnNullabilityMismatch, relcheck.ErrColumnMismatch},
		{relcheck.KindColumnDefaultSQLMismatch, relcheck.ErrColumnMismatch},
		{relcheck.KindKeyColumnMismatch, relcheck.ErrKeyMismatch},
		{relcheck.KindForeignKeyDeleteBehaviorMismatch, relcheck.ErrForeignKeyMismatch},
		{relcheck.KindIndexUniquenessMismatch, relcheck.ErrIndexMismatch},
		{relcheck.KindDiscriminatorValueDuplicate, relcheck.ErrInheritance},
		{relcheck.KindDerivedTableMismatch, relcheck.ErrInheritance},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.category, tt.kind.Category())
			assert.False(t, tt.kind.Advisory())
			assert.ErrorIs(t, &relcheck.MappingError{Kind: tt.kind}, tt.category)
		})
	}

	t.Run("Advisory", func(t *testing.T) {
		for _, k := range []relcheck.Kind{
			relcheck.KindBoolWithDefault,
			relcheck.KindKeyWithDefault,
			relcheck.KindTableMissing,
			relcheck.KindColumnMissing,
			relcheck.KindColumnTypeDrift,
			relcheck.KindColumnNullabilityDrift,
		} {
			assert.True(t, k.Advisory(), k)
			assert.ErrorIs(t, &relcheck.MappingError{Kind: k}, relcheck.ErrAdvisory)
		}
	})
}

func TestAggregateError(t *testing.T) {
	t.Run("NoErrors", func(t *testing.T) {
		err := relcheck.NewAggregateError()
		assert.Nil(t, err)
	})

	t.Run("NilErrors", func(t *testing.T) {
		err := relcheck.NewAggregateError(nil, nil, nil)
		assert.Nil(t, err)
	})

	t.Run("SingleError", func(t *testing.T) {
		single := &relcheck.MappingError{Kind: relcheck.KindKeyColumnMismatch, Message: "single"}
		err := relcheck.NewAggregateError(nil, single)
		assert.Equal(t, single, err)
	})

	t.Run("MultipleErrors", func(t *testing.T) {
		err1 := &relcheck.MappingError{Kind: relcheck.KindIndexColumnMismatch, Message: "error 1"}
		err2 := &relcheck.MappingError{Kind: relcheck.KindDiscriminatorValueMissing, Message: "error 2"}
		err := relcheck.NewAggregateError(err1, err2)

		require.NotNil(t, err)
		assert.Contains(t, err.Error(), "multiple errors")
		assert.Contains(t, err.Error(), "[1] relcheck: error 1")
		assert.Contains(t, err.Error(), "[2] relcheck: error 2")
		assert.ErrorIs(t, err, relcheck.ErrIndexMismatch)
		assert.ErrorIs(t, err, relcheck.ErrInheritance)
		assert.NotErrorIs(t, err, relcheck.ErrColumnMismatch)
		assert.Equal(t, relcheck.KindIndexColumnMismatch, relcheck.KindOf(err))

		var agg *relcheck.AggregateError
		require.ErrorAs(t, err, &agg)
		assert.Len(t, agg.Errors, 2)
	})
}

func TestSentinelErrors(t *testing.T) {
	for _, err := range []error{
		relcheck.ErrIncompatibleTable,
		relcheck.ErrColumnMismatch,
		relcheck.ErrKeyMismatch,
		relcheck.ErrForeignKeyMismatch,
		relcheck.ErrIndexMismatch,
		relcheck.ErrInheritance,
		relcheck.ErrAdvisory,
	} {
		assert.Contains(t, err.Error(), "relcheck: ")
	}
}

func BenchmarkErrors(b *testing.B) {
	err := fmt.Errorf("wrapped: %w", &relcheck.MappingError{Kind: relcheck.KindColumnTypeMismatch})
	b.Run("Is", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = errors.Is(err, relcheck.ErrColumnMismatch)
		}
	})
	b.Run("KindOf", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = relcheck.KindOf(err)
		}
	})
}
