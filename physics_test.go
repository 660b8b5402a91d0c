package sandphys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T, w, h int, seed int64) *World {
	t.Helper()
	world, err := NewWorld(w, h, seed)
	require.NoError(t, err)
	return world
}

func TestWorld_NewWorldRejectsZeroDimensions(t *testing.T) {
	_, err := NewWorld(0, 10, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrZeroDimensions)
}

func TestWorld_OutOfBoundsReadsAndWritesAreNoOps(t *testing.T) {
	w := newTestWorld(t, 16, 16, 1)
	assert.True(t, w.GetCell(-1, 0).IsAir())
	assert.True(t, w.GetCell(16, 0).IsAir())

	w.SetCell(-1, 5, w.Registry().Sand())
	assert.True(t, w.GetCell(-1, 5).IsAir())
}

// Scenario 1: a column of sand falls to the bottom row.
func TestWorld_SandFalls(t *testing.T) {
	w := newTestWorld(t, 16, 16, 42)
	w.SetCell(8, 0, w.Registry().Sand())

	for i := 0; i < 20; i++ {
		w.Update(0.05)
	}

	assert.Equal(t, w.Registry().Sand(), w.GetCell(8, 15).Material)
	assert.True(t, w.GetCell(8, 0).IsAir())
}

// Scenario 2: water poured onto a stone floor settles and is conserved.
func TestWorld_WaterSettlesOnFloorAndIsConserved(t *testing.T) {
	w := newTestWorld(t, 16, 16, 42)
	for x := 0; x < 16; x++ {
		w.SetCell(x, 15, w.Registry().Stone())
	}
	for y := 0; y < 4; y++ {
		for x := 4; x <= 12; x++ {
			w.SetCell(x, y, w.Registry().Water())
		}
	}

	countWater := func() int {
		n := 0
		for y := 0; y < w.Height(); y++ {
			for x := 0; x < w.Width(); x++ {
				if w.GetCell(x, y).Material == w.Registry().Water() {
					n++
				}
			}
		}
		return n
	}
	before := countWater()

	for i := 0; i < 60; i++ {
		w.Update(0.05)
	}

	assert.Equal(t, before, countWater(), "closed-boundary water count must be conserved")
}

// Scenario 3: oil next to fire ignites within a bounded number of ticks.
func TestWorld_OilIgnitesNearFire(t *testing.T) {
	w := newTestWorld(t, 16, 16, 7)
	w.SetCell(5, 5, w.Registry().Oil())
	w.SetCellFull(5, 6, Cell{Material: w.Registry().Fire(), Temperature: 600, Health: 1, Flags: FlagBurning})

	ignited := false
	for i := 0; i < 30; i++ {
		w.Update(0.05)
		cell := w.GetCell(5, 5)
		if cell.Material == w.Registry().Fire() && cell.Flags.Has(FlagBurning) {
			ignited = true
			break
		}
	}
	assert.True(t, ignited, "oil adjacent to fire should ignite within 30 ticks")
}

// Scenario 4: Water and Lava driven together convert at least one
// Water cell to Steam.
func TestWorld_WaterMeetingLavaProducesSteam(t *testing.T) {
	w := newTestWorld(t, 32, 16, 11)
	for x := 0; x < 32; x++ {
		w.SetCell(x, 15, w.Registry().Stone())
	}
	w.SetCell(14, 14, w.Registry().Water())
	w.SetCell(15, 14, w.Registry().Water())
	w.PaintLine(16, 14, 18, 14, w.Registry().Lava(), 1)

	sawSteam := false
	for i := 0; i < 20 && !sawSteam; i++ {
		w.Update(0.05)
		for y := 0; y < w.Height(); y++ {
			for x := 0; x < w.Width(); x++ {
				if w.GetCell(x, y).Material == w.Registry().Steam() {
					sawSteam = true
					break
				}
			}
		}
	}
	assert.True(t, sawSteam, "water driven into lava should produce at least one Steam cell within 20 ticks")
}

// Scenario 5: a heat source melts Ice into a growing Water region.
func TestWorld_HeatSourceMeltsIceIntoGrowingWaterRegion(t *testing.T) {
	w := newTestWorld(t, 16, 16, 3)
	w.FillRect(0, 0, 16, 16, w.Registry().Ice())

	countWater := func() int {
		n := 0
		for y := 0; y < w.Height(); y++ {
			for x := 0; x < w.Width(); x++ {
				if w.GetCell(x, y).Material == w.Registry().Water() {
					n++
				}
			}
		}
		return n
	}

	require.Equal(t, 0, countWater())
	for i := 0; i < 40; i++ {
		w.CreateHeatSource(8, 8, 500, 5)
		w.Update(0.05)
	}
	assert.Greater(t, countWater(), 0, "heat applied at the center should melt at least some surrounding Ice into Water")
}

// Law: a denser liquid placed above a lighter one with no barrier ends
// up strictly below it once enough ticks have passed.
func TestWorld_DensityOrderingLaw(t *testing.T) {
	w := newTestWorld(t, 16, 16, 21)
	for x := 0; x < 16; x++ {
		w.SetCell(x, 15, w.Registry().Stone())
	}
	for y := 0; y < 15; y++ {
		w.SetCell(3, y, w.Registry().Stone())
		w.SetCell(12, y, w.Registry().Stone())
	}
	for y := 5; y < 8; y++ {
		for x := 4; x <= 11; x++ {
			w.SetCell(x, y, w.Registry().Water())
		}
	}
	for y := 8; y < 11; y++ {
		for x := 4; x <= 11; x++ {
			w.SetCell(x, y, w.Registry().Oil())
		}
	}

	for i := 0; i < 150; i++ {
		w.Update(0.05)
	}

	maxOilY, minWaterY := -1, 1<<30
	for y := 0; y < w.Height(); y++ {
		for x := 4; x <= 11; x++ {
			switch w.GetCell(x, y).Material {
			case w.Registry().Oil():
				if y > maxOilY {
					maxOilY = y
				}
			case w.Registry().Water():
				if y < minWaterY {
					minWaterY = y
				}
			}
		}
	}
	require.NotEqual(t, -1, maxOilY, "oil must still be present in the basin")
	require.NotEqual(t, 1<<30, minWaterY, "water must still be present in the basin")
	assert.Less(t, maxOilY, minWaterY, "denser water must settle strictly below lighter oil in every column")
}

// Law: a connected pool of one liquid levels out so its surface height
// differs by at most one cell across connected columns.
func TestWorld_LevelingLaw(t *testing.T) {
	w := newTestWorld(t, 16, 16, 9)
	for x := 0; x < 16; x++ {
		w.SetCell(x, 15, w.Registry().Stone())
	}
	for y := 0; y < 15; y++ {
		w.SetCell(3, y, w.Registry().Stone())
		w.SetCell(12, y, w.Registry().Stone())
	}
	for y := 6; y < 14; y++ {
		w.SetCell(7, y, w.Registry().Water())
	}

	for i := 0; i < 300; i++ {
		w.Update(0.05)
	}

	var surfaceRows []int
	for x := 4; x <= 11; x++ {
		top := -1
		for y := 0; y < w.Height(); y++ {
			if w.GetCell(x, y).Material == w.Registry().Water() {
				top = y
				break
			}
		}
		if top >= 0 {
			surfaceRows = append(surfaceRows, top)
		}
	}
	require.NotEmpty(t, surfaceRows, "water must still be present in the basin")

	minTop, maxTop := surfaceRows[0], surfaceRows[0]
	for _, top := range surfaceRows {
		if top < minTop {
			minTop = top
		}
		if top > maxTop {
			maxTop = top
		}
	}
	assert.LessOrEqual(t, maxTop-minTop, 1, "a settled single-liquid pool's surface must differ by at most one cell across columns")
}

// Scenario 6: coordinate round trip across representative coordinates.
func TestWorld_CoordinateRoundTrip(t *testing.T) {
	coords := [][2]int{
		{-65, -65}, {-1, -1}, {0, 0}, {63, 63}, {64, 64}, {129, -3},
	}
	for _, c := range coords {
		chunk, lx, ly := WorldToChunk(c[0], c[1])
		x, y := ChunkToWorld(chunk, lx, ly)
		assert.Equal(t, c, [2]int{x, y})
	}
}

func TestWorld_PauseIsIdempotent(t *testing.T) {
	w := newTestWorld(t, 16, 16, 1)
	w.SetCell(8, 0, w.Registry().Sand())

	snapshot := func() [][]MaterialID {
		out := make([][]MaterialID, w.Height())
		for y := range out {
			out[y] = make([]MaterialID, w.Width())
			for x := range out[y] {
				out[y][x] = w.GetCell(x, y).Material
			}
		}
		return out
	}

	before := snapshot()
	w.Pause()
	w.Update(0.05)
	w.Update(0.05)
	w.Resume()

	assert.Equal(t, before, snapshot())
}

func TestWorld_ZeroActiveAreaProcessesNothing(t *testing.T) {
	w := newTestWorld(t, 16, 16, 1)
	w.SetCell(8, 0, w.Registry().Sand())
	w.SetActiveArea(0, 0, 0, 0)

	for i := 0; i < 10; i++ {
		w.Update(0.05)
	}
	assert.Equal(t, w.Registry().Sand(), w.GetCell(8, 0).Material, "sand must not move with a zero-area active region")
}

// A cell visited twice in the same tick would fall two rows instead of
// one, since each visit to a POWDER cell tries to move it straight
// down. The bottom-up sweep processes a destination row before the row
// above it, so a grain that falls from row 0 lands in row 1 after that
// row has already been swept; this checks that each grain ends the
// tick at row 1, not row 2.
func TestCellularPhysics_NoCellVisitedTwicePerTick(t *testing.T) {
	reg := NewMaterialRegistry()
	RegisterBasicMaterials(reg)
	rng := NewRNG(3)
	proc := NewCellProcessor(reg, rng)
	mgr := NewChunkManager(reg)

	for x := 0; x < 10; x++ {
		mgr.SetCell(x, 0, Cell{Material: reg.Sand(), Health: 1})
	}
	mgr.UpdateActiveChunks(ActiveRect{X: 0, Y: 0, W: 64, H: 64})

	phys := NewCellularPhysics(reg, proc, rng, 64, 64)
	phys.Tick(mgr, 0.05)

	for x := 0; x < 10; x++ {
		assert.True(t, mgr.GetCell(x, 0).IsAir(), "sand must have left its starting row")
		assert.Equal(t, reg.Sand(), mgr.GetCell(x, 1).Material, "sand must advance by exactly one row")
		assert.True(t, mgr.GetCell(x, 2).IsAir(), "a single tick must not move a cell two rows — that would mean it was visited twice")
	}
}

// Directly counting visits: this reproduces Tick's own chunk/row/column
// traversal (same package, so isUpdated/visitCell are reachable) and
// counts how many times each starting coordinate clears the isUpdated
// check and is handed to visitCell during one sweep. Each coordinate
// appears once in that traversal; the count follows coordinates, not a
// grain after it has moved.
func TestCellularPhysics_EachStartingCellScannedAtMostOnce(t *testing.T) {
	reg := NewMaterialRegistry()
	RegisterBasicMaterials(reg)
	rng := NewRNG(3)
	proc := NewCellProcessor(reg, rng)
	mgr := NewChunkManager(reg)

	starts := make(map[[2]int]bool)
	for x := 0; x < 10; x++ {
		mgr.SetCell(x, 0, Cell{Material: reg.Sand(), Health: 1})
		starts[[2]int{x, 0}] = true
	}
	mgr.UpdateActiveChunks(ActiveRect{X: 0, Y: 0, W: 64, H: 64})

	phys := NewCellularPhysics(reg, proc, rng, 64, 64)
	phys.resetScratch()

	visits := make(map[[2]int]int)
	for _, coord := range mgr.ActiveChunks() {
		chunk := mgr.Get(coord)
		if chunk == nil {
			continue
		}
		for ly := ChunkSize - 1; ly >= 0; ly-- {
			for lx := 0; lx < ChunkSize; lx++ {
				wx, wy := ChunkToWorld(coord, lx, ly)
				key := [2]int{wx, wy}
				if !starts[key] {
					continue
				}
				if phys.isUpdated(wx, wy) {
					continue
				}
				cell := mgr.GetCell(wx, wy)
				if cell.IsAir() {
					continue
				}
				visits[key]++
				phys.visitCell(mgr, wx, wy, cell, 0.05)
			}
		}
	}

	for coord := range starts {
		assert.LessOrEqual(t, visits[coord], 1, "starting cell %v must be scanned at most once per tick", coord)
	}
}
