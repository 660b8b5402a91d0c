package sandphys

import (
	"time"

	"github.com/google/uuid"
)

// World is the top-level façade: it owns the material registry, the
// chunk manager, and the physics dispatcher, and composes them behind
// a single coordinate-addressed API. Of its collaborators only the
// registry is handed out (via Registry); CreateExplosion and friends
// reach into w.chunks/w.registry/w.proc directly rather than handing
// out pointers to the chunk manager, processor, or physics.
type World struct {
	id  string
	log Logger

	width, height int

	registry *MaterialRegistry
	chunks   *ChunkManager
	proc     *CellProcessor
	physics  *CellularPhysics
	rng      *RNG

	activeArea ActiveRect
	paused     bool
	timeScale  float64

	tick         uint64
	lastTickTime time.Duration
	stats        SimulationStats
}

// NewWorld constructs a width x height world with the eleven standard
// materials (see RegisterBasicMaterials) registered and RNG seeded from seed. Zero or negative
// dimensions are rejected.
func NewWorld(width, height int, seed int64) (*World, error) {
	return newWorld(width, height, seed, NewNopLogger())
}

// NewWorldWithLogger is NewWorld with an explicit Logger instead of a
// silent default, for hosts that want life-cycle events surfaced.
func NewWorldWithLogger(width, height int, seed int64, log Logger) (*World, error) {
	return newWorld(width, height, seed, log)
}

// NewWorldFromConfig builds a world from a loaded WorldConfig.
func NewWorldFromConfig(cfg WorldConfig) (*World, error) {
	log := NewDefaultLogger("sandphys", cfg.LogDebug)
	w, err := newWorld(cfg.Width, cfg.Height, cfg.Seed, log)
	if err != nil {
		return nil, err
	}
	if cfg.ActiveArea.W > 0 && cfg.ActiveArea.H > 0 {
		w.SetActiveArea(cfg.ActiveArea.X, cfg.ActiveArea.Y, cfg.ActiveArea.W, cfg.ActiveArea.H)
	}
	return w, nil
}

func newWorld(width, height int, seed int64, log Logger) (*World, error) {
	if width <= 0 || height <= 0 {
		return nil, &WorldError{Op: "NewWorld", Err: ErrZeroDimensions, W: width, H: height}
	}

	registry := NewMaterialRegistry()
	RegisterBasicMaterials(registry)
	rng := NewRNG(seed)
	proc := NewCellProcessor(registry, rng)

	w := &World{
		id:         uuid.NewString(),
		log:        log,
		width:      width,
		height:     height,
		registry:   registry,
		chunks:     NewChunkManager(registry),
		proc:       proc,
		physics:    NewCellularPhysics(registry, proc, rng, width, height),
		rng:        rng,
		activeArea: ActiveRect{X: 0, Y: 0, W: width, H: height},
		timeScale:  1,
	}
	w.log.Infof("world %s created: %dx%d seed=%d", w.id, width, height, seed)
	return w, nil
}

// ID returns the world's UUID, stable for its lifetime.
func (w *World) ID() string { return w.id }

// Width and Height report the world's cell dimensions.
func (w *World) Width() int  { return w.width }
func (w *World) Height() int { return w.height }

// Registry exposes the material registry for registration and lookup.
// It never exposes the chunk manager or physics dispatcher, which are
// not meant to be driven directly by a host.
func (w *World) Registry() *MaterialRegistry { return w.registry }

func (w *World) inBounds(x, y int) bool {
	return x >= 0 && x < w.width && y >= 0 && y < w.height
}

// GetCell reads the cell at (x, y). Out-of-bounds reads return AIR.
func (w *World) GetCell(x, y int) Cell {
	if !w.inBounds(x, y) {
		return AirCell
	}
	return w.chunks.GetCell(x, y)
}

// SetCell writes material at (x, y), initializing the cell from the
// material's registered defaults (starting health, temperature, and
// lifetime vary by material class — see
// CellProcessor.InitializeCellFromMaterial). Out-of-bounds writes are
// no-ops.
func (w *World) SetCell(x, y int, material MaterialID) {
	if !w.inBounds(x, y) {
		return
	}
	cell := AirCell
	if material != AirID {
		cell = w.proc.InitializeCellFromMaterial(material)
	}
	w.chunks.SetCell(x, y, cell)
}

// SetCellFull writes a fully-formed cell verbatim, for callers (tests,
// scenario setup) that need to control temperature, velocity, or
// health directly instead of taking material defaults.
func (w *World) SetCellFull(x, y int, cell Cell) {
	if !w.inBounds(x, y) {
		return
	}
	w.chunks.SetCell(x, y, cell)
}

// SetActiveArea constrains which chunks are scheduled during Update,
// clamped to the world rectangle.
func (w *World) SetActiveArea(x, y, width, height int) {
	if x < 0 {
		width += x
		x = 0
	}
	if y < 0 {
		height += y
		y = 0
	}
	if x+width > w.width {
		width = w.width - x
	}
	if y+height > w.height {
		height = w.height - y
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	w.activeArea = ActiveRect{X: x, Y: y, W: width, H: height}
}

// Pause suspends Update to a no-op until Resume is called.
func (w *World) Pause() { w.paused = true }

// Resume re-enables Update after Pause.
func (w *World) Resume() { w.paused = false }

// Paused reports whether the world is currently paused.
func (w *World) Paused() bool { return w.paused }

// SetTimeScale scales dt passed into Update; 1 is real time. Only
// dt-scaled effects (heat transfer and probability rolls) slow down:
// movement, lifetime countdown, and deep-threshold state changes do not
// depend on dt, so a scale of 0 still advances them each Update.
func (w *World) SetTimeScale(s float64) { w.timeScale = s }

// Update advances the simulation by dt seconds (pre-scale). A paused
// world ignores the call entirely, including stats recomputation.
func (w *World) Update(dt float64) {
	if w.paused {
		return
	}
	start := time.Now()
	scaled := dt * w.timeScale

	w.chunks.UpdateActiveChunks(w.activeArea)
	w.physics.Tick(w.chunks, scaled)
	w.tick++

	w.lastTickTime = time.Since(start)
	w.stats = computeStats(w, w.lastTickTime)
}

// Stats returns the snapshot computed by the most recent Update call.
func (w *World) Stats() SimulationStats { return w.stats }
