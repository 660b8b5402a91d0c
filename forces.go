package sandphys

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// IgniteThreshold is the power above which an explosion's center cells
// convert directly to Fire rather than only taking damage and velocity.
const IgniteThreshold = 5.0

// CreateExplosion damages, pressurizes, and displaces every cell within
// radius of (cx, cy), scanning a bounding box and testing distance the
// way sphere/cube fills scan a bounding box and test membership,
// flattened here to a 2D radius. Damage, pressure, and outward velocity
// all fall off linearly with distance; flammable cells in range are
// ignited, and cells close enough for power to exceed IgniteThreshold
// become Fire outright. A cell that ignites becomes Fire even when the
// damage has depleted its health; any other depleted cell is cleared
// to AIR.
func (w *World) CreateExplosion(cx, cy int, radius float32, power float64) {
	if radius <= 0 {
		return
	}
	minX := int(math.Floor(float64(float32(cx) - radius)))
	maxX := int(math.Ceil(float64(float32(cx) + radius)))
	minY := int(math.Floor(float64(float32(cy) - radius)))
	maxY := int(math.Ceil(float64(float32(cy) + radius)))
	r2 := radius * radius

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float32(x-cx) + 0.5
			dy := float32(y-cy) + 0.5
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			cell := w.chunks.GetCell(x, y)
			if cell.IsAir() {
				continue
			}
			d := float32(math.Sqrt(float64(d2)))
			falloff := 1 - d/radius
			localPower := power * float64(falloff)

			props := w.registry.Get(cell.Material)
			w.proc.Damage(&cell, localPower*0.3)

			ignited := false
			if localPower > IgniteThreshold {
				w.proc.Ignite(&cell, props)
				ignited = true
			} else if props.Flammable {
				ignited = w.proc.tryIgnite(&cell, props, 1.0)
			}
			if !ignited && cell.Health <= 0 {
				cell = AirCell
				w.chunks.SetCell(x, y, cell)
				continue
			}

			if d > 0.01 {
				dir := mgl32.Vec2{dx, dy}.Normalize()
				w.proc.ApplyVelocity(&cell, [2]float32{dir.X() * float32(localPower), dir.Y() * float32(localPower)})
			}
			w.proc.ApplyPressure(&cell, float32(localPower))

			w.chunks.SetCell(x, y, cell)
		}
	}
	w.log.Infof("explosion at (%d,%d) radius=%.1f power=%.1f", cx, cy, radius, power)
}

// CreateHeatSource linearly raises or lowers the temperature of every
// cell within radius of (cx, cy) toward target for the current tick
// only — there is no persistent heat emitter, callers re-invoke this
// each tick they want the source to keep acting.
func (w *World) CreateHeatSource(cx, cy int, target float32, radius float32) {
	if radius <= 0 {
		return
	}
	minX := int(math.Floor(float64(float32(cx) - radius)))
	maxX := int(math.Ceil(float64(float32(cx) + radius)))
	minY := int(math.Floor(float64(float32(cy) - radius)))
	maxY := int(math.Ceil(float64(float32(cy) + radius)))
	r2 := radius * radius

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float32(x-cx) + 0.5
			dy := float32(y-cy) + 0.5
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			cell := w.chunks.GetCell(x, y)
			if cell.IsAir() {
				continue
			}
			d := float32(math.Sqrt(float64(d2)))
			falloff := 1 - d/radius
			cell.Temperature += (target - cell.Temperature) * falloff
			w.chunks.SetCell(x, y, cell)
		}
	}
}

// ApplyForceField adds dir*strength to the velocity and pressure of
// every cell within radius of (cx, cy), falling off linearly with
// distance.
func (w *World) ApplyForceField(cx, cy int, dir mgl32.Vec2, strength float32, radius float32) {
	if radius <= 0 {
		return
	}
	dirN := dir
	if dirN.Len() > 1e-5 {
		dirN = dirN.Normalize()
	}
	minX := int(math.Floor(float64(float32(cx) - radius)))
	maxX := int(math.Ceil(float64(float32(cx) + radius)))
	minY := int(math.Floor(float64(float32(cy) - radius)))
	maxY := int(math.Ceil(float64(float32(cy) + radius)))
	r2 := radius * radius

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float32(x-cx) + 0.5
			dy := float32(y-cy) + 0.5
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			cell := w.chunks.GetCell(x, y)
			if cell.IsAir() {
				continue
			}
			d := float32(math.Sqrt(float64(d2)))
			falloff := 1 - d/radius
			delta := dirN.Mul(strength * falloff)
			w.proc.ApplyVelocity(&cell, [2]float32{delta.X(), delta.Y()})
			w.proc.ApplyPressure(&cell, strength*falloff)
			w.chunks.SetCell(x, y, cell)
		}
	}
}
