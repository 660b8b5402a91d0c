package sandphys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorld_StatsReflectPopulatedCells(t *testing.T) {
	w := newTestWorld(t, 16, 16, 1)
	w.SetCell(4, 4, w.Registry().Stone())
	w.SetCell(5, 4, w.Registry().Stone())
	w.Update(0.05)

	stats := w.Stats()
	assert.GreaterOrEqual(t, stats.MaterialCounts[w.Registry().Stone()], 2)
	assert.Equal(t, uint64(1), stats.Tick)
	assert.Equal(t, w.ID(), stats.WorldID)
}

func TestWorld_StatsEmptyWorldHasZeroAverages(t *testing.T) {
	w := newTestWorld(t, 16, 16, 1)
	w.Update(0.05)

	stats := w.Stats()
	assert.Equal(t, float32(0), stats.AvgTemperature)
	assert.Equal(t, 0, stats.ActiveChunks)
}
