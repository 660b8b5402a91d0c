package sandphys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorld_PaintCellSetsMaterial(t *testing.T) {
	w := newTestWorld(t, 32, 32, 1)
	w.PaintCell(10, 10, w.Registry().Stone())
	assert.Equal(t, w.Registry().Stone(), w.GetCell(10, 10).Material)
}

func TestWorld_FillRectCoversWholeArea(t *testing.T) {
	w := newTestWorld(t, 32, 32, 1)
	w.FillRect(4, 4, 6, 3, w.Registry().Stone())

	for y := 4; y < 7; y++ {
		for x := 4; x < 10; x++ {
			require.Equal(t, w.Registry().Stone(), w.GetCell(x, y).Material, "cell (%d,%d) should be filled", x, y)
		}
	}
	assert.True(t, w.GetCell(3, 4).IsAir())
	assert.True(t, w.GetCell(10, 4).IsAir())
}

func TestWorld_PaintLineCoversEndpoints(t *testing.T) {
	w := newTestWorld(t, 32, 32, 1)
	w.PaintLine(2, 2, 2, 10, w.Registry().Stone(), 1)

	for y := 2; y <= 10; y++ {
		assert.Equal(t, w.Registry().Stone(), w.GetCell(2, y).Material)
	}
}

func TestWorld_PaintLineDiagonalIsContinuous(t *testing.T) {
	w := newTestWorld(t, 32, 32, 1)
	w.PaintLine(0, 0, 10, 10, w.Registry().Stone(), 1)

	for i := 0; i <= 10; i++ {
		assert.Equal(t, w.Registry().Stone(), w.GetCell(i, i).Material)
	}
}

func TestWorld_PaintCircleFillsCenterAndIsRoughlySymmetric(t *testing.T) {
	w := newTestWorld(t, 32, 32, 1)
	w.PaintCircle(16, 16, 5, w.Registry().Stone())

	assert.Equal(t, w.Registry().Stone(), w.GetCell(16, 16).Material, "center must be filled")
	assert.Equal(t, w.Registry().Stone(), w.GetCell(16+5, 16).Material)
	assert.Equal(t, w.Registry().Stone(), w.GetCell(16-5, 16).Material)
	assert.Equal(t, w.Registry().Stone(), w.GetCell(16, 16+5).Material)
	assert.Equal(t, w.Registry().Stone(), w.GetCell(16, 16-5).Material)
	assert.True(t, w.GetCell(16+20, 16).IsAir(), "far outside the radius must stay untouched")
}

func TestWorld_PaintCircleNegativeRadiusIsNoOp(t *testing.T) {
	w := newTestWorld(t, 32, 32, 1)
	w.PaintCircle(16, 16, -1, w.Registry().Stone())
	assert.True(t, w.GetCell(16, 16).IsAir())
}
