package sandphys

import "github.com/go-gl/mathgl/mgl32"

// MaterialID is an interned handle into a MaterialRegistry. Id 0 is
// always AIR.
type MaterialID uint16

// AirID is the reserved, always-registered empty material.
const AirID MaterialID = 0

// CellFlags is a per-cell bitset.
type CellFlags uint16

const (
	FlagUpdated CellFlags = 1 << iota
	FlagBurning
	FlagFrozen
	FlagPressurized
	FlagDissolving
)

func (f CellFlags) Has(bit CellFlags) bool { return f&bit != 0 }

// Cell is a fixed-layout, trivially copyable value describing one grid
// site. Keeping it flat and copyable is what lets ChunkManager store
// chunks as plain arrays instead of pointer graphs.
type Cell struct {
	Material    MaterialID
	Temperature float32 // Celsius
	Velocity    mgl32.Vec2
	Pressure    float32
	Health      float32 // in [0,1]; depletion destroys the cell
	Lifetime    int32
	Energy      float32
	Charge      float32
	Metadata    uint8
	Flags       CellFlags
}

// AirCell is the canonical empty cell returned for out-of-bounds reads
// and used to reset a site when it is cleared.
var AirCell = Cell{Material: AirID, Health: 1}

// IsAir reports whether the cell's material is the reserved AIR id.
func (c Cell) IsAir() bool { return c.Material == AirID }

// vec2 constructs a mgl32.Vec2 from two floats — a tiny convenience
// used wherever code builds a velocity delta from scalar components.
func vec2(x, y float32) mgl32.Vec2 { return mgl32.Vec2{x, y} }
