package sandphys

import "time"

// SimulationStats is a point-in-time snapshot recomputed at the end of
// every non-paused Update call.
type SimulationStats struct {
	WorldID        string
	Tick           uint64
	ActiveChunks   int
	ActiveCells    int
	TotalCells     int
	AvgTemperature float32
	AvgPressure    float32
	MaterialCounts map[MaterialID]int
	LastTickTime   time.Duration
}

// computeStats walks every resident chunk's cells once, tallying
// per-material counts and temperature/pressure sums. It is O(resident
// cells), not O(world), since only materialized chunks are visited.
func computeStats(w *World, tickDuration time.Duration) SimulationStats {
	stats := SimulationStats{
		WorldID:        w.id,
		Tick:           w.tick,
		MaterialCounts: make(map[MaterialID]int),
		LastTickTime:   tickDuration,
	}

	var tempSum, pressureSum float64
	var nonAir int

	for _, coord := range w.chunks.AllChunkCoords() {
		chunk := w.chunks.Get(coord)
		if chunk == nil {
			continue
		}
		if chunk.Active() {
			stats.ActiveChunks++
		}
		for _, cell := range chunk.Cells {
			stats.TotalCells++
			if cell.IsAir() {
				continue
			}
			nonAir++
			stats.MaterialCounts[cell.Material]++
			tempSum += float64(cell.Temperature)
			pressureSum += float64(cell.Pressure)
			if cell.Velocity.X() != 0 || cell.Velocity.Y() != 0 {
				stats.ActiveCells++
			}
		}
	}

	if nonAir > 0 {
		stats.AvgTemperature = float32(tempSum / float64(nonAir))
		stats.AvgPressure = float32(pressureSum / float64(nonAir))
	}
	return stats
}
