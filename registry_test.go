package sandphys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialRegistry_AirIsAlwaysZero(t *testing.T) {
	reg := NewMaterialRegistry()
	assert.Equal(t, AirID, reg.Air())
	assert.Equal(t, "Air", reg.Get(AirID).Name)
}

func TestMaterialRegistry_RegisterIsIdempotentByName(t *testing.T) {
	reg := NewMaterialRegistry()
	first := reg.Register(MaterialProperties{Name: "Glass", Type: TypeSolid})
	second := reg.Register(MaterialProperties{Name: "Glass", Type: TypeLiquid})
	assert.Equal(t, first, second)
	assert.Equal(t, TypeSolid, reg.Get(first).Type, "second registration must not overwrite the first")
}

func TestMaterialRegistry_GetDegradesToAir(t *testing.T) {
	reg := NewMaterialRegistry()
	props := reg.Get(MaterialID(999))
	assert.Equal(t, "Air", props.Name)
}

func TestMaterialRegistry_IDOfUnknownNameDegradesToAir(t *testing.T) {
	reg := NewMaterialRegistry()
	assert.Equal(t, AirID, reg.IDOf("Unobtainium"))
}

func TestRegisterBasicMaterials_PopulatesWellKnownAccessors(t *testing.T) {
	reg := NewMaterialRegistry()
	RegisterBasicMaterials(reg)

	require.NotEqual(t, AirID, reg.Stone())
	require.NotEqual(t, AirID, reg.Sand())
	require.NotEqual(t, AirID, reg.Water())

	assert.Equal(t, TypeSolid, reg.Get(reg.Stone()).Type)
	assert.False(t, reg.Get(reg.Stone()).Movable)
	assert.Equal(t, TypePowder, reg.Get(reg.Sand()).Type)
	assert.Equal(t, TypeLiquid, reg.Get(reg.Water()).Type)
	assert.Contains(t, reg.Names(), "Water")
	assert.Equal(t, reg.Count(), len(reg.Names()))
}

func TestRegisterBasicMaterials_WaterBoilsToSteam(t *testing.T) {
	reg := NewMaterialRegistry()
	RegisterBasicMaterials(reg)

	water := reg.Get(reg.Water())
	require.Len(t, water.StateChanges, 2)
	assert.Equal(t, reg.Steam(), water.StateChanges[0].TargetMaterial)
}
