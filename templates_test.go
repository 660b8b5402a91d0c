package sandphys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateKind_String(t *testing.T) {
	assert.Equal(t, "FLAT_TERRAIN", TemplateFlatTerrain.String())
	assert.Equal(t, "UNKNOWN", TemplateKind(99).String())
}

func TestWorld_GenerateTemplateFlatTerrainFillsGroundOnly(t *testing.T) {
	w := newTestWorld(t, 30, 30, 1)
	w.GenerateTemplate(TemplateFlatTerrain)

	groundY := w.Height() * 2 / 3
	assert.True(t, w.GetCell(5, 0).IsAir())
	assert.Equal(t, w.Registry().Stone(), w.GetCell(5, groundY).Material)
	assert.Equal(t, w.Registry().Stone(), w.GetCell(5, w.Height()-1).Material)
}

func TestWorld_GenerateTemplateTerrainWithWaterLayersStoneBelowWater(t *testing.T) {
	w := newTestWorld(t, 30, 30, 1)
	w.GenerateTemplate(TemplateTerrainWithWater)

	groundY := w.Height() * 3 / 4
	waterY := w.Height() / 2
	assert.Equal(t, w.Registry().Stone(), w.GetCell(5, groundY).Material)
	assert.Equal(t, w.Registry().Water(), w.GetCell(5, waterY).Material)
}

func TestWorld_GenerateTemplateEmptyClearsExistingCells(t *testing.T) {
	w := newTestWorld(t, 30, 30, 1)
	w.SetCell(5, 5, w.Registry().Stone())
	w.GenerateTemplate(TemplateEmpty)
	assert.True(t, w.GetCell(5, 5).IsAir())
}

func TestWorld_GenerateTemplateSandboxAddsFloor(t *testing.T) {
	w := newTestWorld(t, 30, 30, 1)
	w.GenerateTemplate(TemplateSandbox)
	assert.Equal(t, w.Registry().Stone(), w.GetCell(10, w.Height()-1).Material)
	assert.True(t, w.GetCell(10, 0).IsAir())
}
