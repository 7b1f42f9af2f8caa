package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relcheck/dialect/sqlschema"
	"github.com/syssam/relcheck/schema/field"
)

func newType(t *testing.T, m *Model, name string, base *EntityType) *EntityType {
	t.Helper()
	et, err := m.AddEntityType(name)
	require.NoError(t, err)
	if base != nil {
		require.NoError(t, et.SetBase(base))
	}
	return et
}

func TestModel_AddEntityType(t *testing.T) {
	m := NewModel()
	v, err := m.AddEntityType("Vehicle")
	require.NoError(t, err)
	assert.Same(t, v, m.FindEntityType("Vehicle"))
	assert.Same(t, m, v.Model())

	_, err = m.AddEntityType("Vehicle")
	assert.ErrorContains(t, err, `duplicate entity type "Vehicle"`)
	_, err = m.AddEntityType("")
	assert.Error(t, err)
	assert.Nil(t, m.FindEntityType("Engine"))
}

func TestEntityType_Hierarchy(t *testing.T) {
	m := NewModel()
	vehicle := newType(t, m, "Vehicle", nil)
	powered := newType(t, m, "PoweredVehicle", vehicle)
	passenger := newType(t, m, "PassengerVehicle", vehicle)
	competition := newType(t, m, "CompetitionVehicle", powered)
	engine := newType(t, m, "Engine", nil)

	assert.Equal(t, []*EntityType{vehicle, engine}, m.RootEntityTypes())
	assert.Equal(t, []*EntityType{powered, passenger}, vehicle.DerivedTypes())
	assert.Equal(t, []*EntityType{vehicle, powered, passenger, competition}, vehicle.InclusiveHierarchy())
	assert.Equal(t, []*EntityType{powered, competition}, powered.InclusiveHierarchy())
	assert.Same(t, vehicle, competition.Root())

	assert.True(t, vehicle.IsAssignableFrom(competition))
	assert.True(t, vehicle.IsAssignableFrom(vehicle))
	assert.False(t, competition.IsAssignableFrom(vehicle))
	assert.False(t, engine.IsAssignableFrom(powered))

	t.Run("Cycle", func(t *testing.T) {
		err := vehicle.SetBase(competition)
		assert.ErrorContains(t, err, "inheritance cycle")
		assert.Nil(t, vehicle.Base())
	})

	t.Run("Rebase", func(t *testing.T) {
		require.NoError(t, passenger.SetBase(engine))
		assert.Equal(t, []*EntityType{powered}, vehicle.DerivedTypes())
		assert.Equal(t, []*EntityType{passenger}, engine.DerivedTypes())
	})

	t.Run("OtherModel", func(t *testing.T) {
		other := newType(t, NewModel(), "Truck", nil)
		assert.Error(t, other.SetBase(vehicle))
	})
}

func TestEntityType_TableRef(t *testing.T) {
	m := NewModel()
	vehicle := newType(t, m, "Vehicle", nil)
	vehicle.Table = &sqlschema.Table{Schema: "fleet", Name: "Vehicles"}
	powered := newType(t, m, "PoweredVehicle", vehicle)
	report := newType(t, m, "VehicleReport", nil)
	view := newType(t, m, "VehicleView", vehicle)
	view.Query = true

	tbl, ok := powered.TableRef()
	require.True(t, ok)
	assert.Equal(t, "fleet.Vehicles", tbl.String())

	_, ok = report.TableRef()
	assert.False(t, ok)
	_, ok = view.TableRef()
	assert.False(t, ok)
}

func TestEntityType_Keys(t *testing.T) {
	m := NewModel()
	vehicle := newType(t, m, "Vehicle", nil)
	vehicle.Table = &sqlschema.Table{Name: "Vehicles"}
	id, err := vehicle.AddProperty("Id", field.TypeInt)
	require.NoError(t, err)
	name, err := vehicle.AddProperty("Name", field.TypeString)
	require.NoError(t, err)
	_, err = vehicle.AddProperty("Name", field.TypeString)
	assert.Error(t, err)

	pk, err := vehicle.SetPrimaryKey(id)
	require.NoError(t, err)
	assert.True(t, pk.IsPrimary())
	assert.Equal(t, "PK_Vehicles", pk.StorageName())
	pk.Name = "PK_Vehicle"
	assert.Equal(t, "PK_Vehicle", pk.StorageName())

	ak, err := vehicle.AddKey(name)
	require.NoError(t, err)
	assert.False(t, ak.IsPrimary())
	assert.Equal(t, "AK_Vehicles_Name", ak.StorageName())
	assert.Len(t, vehicle.Keys(), 2)

	powered := newType(t, m, "PoweredVehicle", vehicle)
	assert.Same(t, pk, powered.PrimaryKey())
	assert.True(t, id.IsPrimaryKey())
	assert.True(t, name.IsKey())
	assert.Same(t, id, powered.FindProperty("Id"))
	assert.Nil(t, powered.FindDeclaredProperty("Id"))
	assert.Equal(t, []string{"Id", "Name"}, PropertyNames(powered.AllProperties()))

	other := newType(t, m, "Engine", nil)
	_, err = other.SetPrimaryKey(id)
	assert.ErrorContains(t, err, "uses property Vehicle.Id")
	_, err = other.AddIndex()
	assert.ErrorContains(t, err, "has no properties")
}

func TestProperty_ColumnNullable(t *testing.T) {
	m := NewModel()
	vehicle := newType(t, m, "Vehicle", nil)
	id, _ := vehicle.AddProperty("Id", field.TypeInt)
	id.Nullable = true
	_, err := vehicle.SetPrimaryKey(id)
	require.NoError(t, err)
	seq, _ := vehicle.AddProperty("Seq", field.TypeInt64)
	seq.Nullable, seq.Identity = true, true
	name, _ := vehicle.AddProperty("Name", field.TypeString)
	name.Nullable = true
	code, _ := vehicle.AddProperty("Code", field.TypeString)
	code.Nullable = true
	notNull := false
	code.Column.Nullable = &notNull
	code.Column.Name = "code"

	assert.False(t, id.ColumnNullable())
	assert.False(t, seq.ColumnNullable())
	assert.True(t, name.ColumnNullable())
	assert.False(t, code.ColumnNullable())
	assert.Equal(t, "code", code.ColumnName())
	assert.Equal(t, "Name", name.ColumnName())
	assert.Equal(t, "Vehicle.Name", name.String())
}

func TestForeignKey_IsIdentifying(t *testing.T) {
	m := NewModel()
	vehicle := newType(t, m, "Vehicle", nil)
	vehicle.Table = &sqlschema.Table{Name: "Vehicles"}
	vid, _ := vehicle.AddProperty("Id", field.TypeInt)
	_, err := vehicle.SetPrimaryKey(vid)
	require.NoError(t, err)

	engine := newType(t, m, "Engine", nil)
	engine.Table = &sqlschema.Table{Name: "Vehicles"}
	eid, _ := engine.AddProperty("VehicleId", field.TypeInt)
	ownerID, _ := engine.AddProperty("OwnerId", field.TypeInt)
	_, err = engine.SetPrimaryKey(eid)
	require.NoError(t, err)

	fk, err := engine.AddForeignKey([]*Property{eid}, vehicle, nil)
	require.NoError(t, err)
	assert.Same(t, vehicle.PrimaryKey(), fk.PrincipalKey())
	assert.Equal(t, sqlschema.ClientSetNull, fk.OnDelete)
	assert.Equal(t, "FK_Vehicles_Vehicles_VehicleId", fk.StorageName())
	assert.False(t, fk.IsIdentifying(), "non-unique foreign keys are not identifying")
	fk.Unique = true
	assert.True(t, fk.IsIdentifying())
	assert.Equal(t, []*ForeignKey{fk}, engine.IdentifyingForeignKeys())

	other, err := engine.AddForeignKey([]*Property{ownerID}, vehicle, nil)
	require.NoError(t, err)
	other.Unique = true
	assert.False(t, other.IsIdentifying(), "foreign key outside the primary key")
	assert.Equal(t, []*ForeignKey{other}, engine.FindForeignKeys([]*Property{ownerID}))

	_, err = engine.AddForeignKey([]*Property{eid, ownerID}, vehicle, nil)
	assert.ErrorContains(t, err, "has 2 properties")
}

func TestEntityType_Discriminator(t *testing.T) {
	m := NewModel()
	vehicle := newType(t, m, "Vehicle", nil)
	kind, _ := vehicle.AddProperty("Discriminator", field.TypeString)
	require.NoError(t, vehicle.SetDiscriminator(kind))
	powered := newType(t, m, "PoweredVehicle", vehicle)
	assert.Same(t, kind, powered.DiscriminatorProperty())

	engine := newType(t, m, "Engine", nil)
	assert.Error(t, engine.SetDiscriminator(kind))
	assert.Nil(t, engine.DiscriminatorProperty())
}
