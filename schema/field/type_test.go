package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType(t *testing.T) {
	for typ := TypeBool; typ < endTypes; typ++ {
		assert.True(t, typ.Valid(), typ.String())
		parsed, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}
	assert.False(t, TypeInvalid.Valid())
	assert.False(t, endTypes.Valid())
	assert.Equal(t, "invalid", Type(200).String())

	assert.True(t, TypeInt32.Integer())
	assert.True(t, TypeUint64.Numeric())
	assert.True(t, TypeDecimal.Numeric())
	assert.False(t, TypeDecimal.Integer())
	assert.True(t, TypeFloat32.Float())
	assert.False(t, TypeString.Numeric())
}

func TestParseType(t *testing.T) {
	tests := map[string]Type{
		"Boolean":   TypeBool,
		" text ":    TypeString,
		"TIMESTAMP": TypeTime,
		"double":    TypeFloat64,
		"[]byte":    TypeBytes,
		"UUID":      TypeUUID,
	}
	for name, want := range tests {
		got, err := ParseType(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseType("money")
	assert.EqualError(t, err, `field: unknown type "money"`)
	_, err = ParseType("invalid")
	assert.Error(t, err)
}

func TestType_Text(t *testing.T) {
	b, err := TypeInt64.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "int64", string(b))

	var typ Type
	require.NoError(t, typ.UnmarshalText([]byte("float")))
	assert.Equal(t, TypeFloat64, typ)
	assert.Error(t, typ.UnmarshalText([]byte("")))
	assert.Equal(t, TypeFloat64, typ, "failed unmarshal keeps the value")
}
