package sandphys

// ChunkManager owns a sparse map from chunk coordinate to chunk and the
// set of chunk coordinates currently scheduled for simulation. Chunk
// coordinates use Euclidean (floor) division with remainder correction
// so negative world coordinates still key a well-formed chunk and a
// non-negative local offset.
type ChunkManager struct {
	registry *MaterialRegistry
	chunks   map[ChunkCoord]*Chunk
	active   map[ChunkCoord]struct{}
}

// NewChunkManager constructs an empty manager. reg is borrowed
// read-mostly to decide chunk activity; ChunkManager never mutates it.
func NewChunkManager(reg *MaterialRegistry) *ChunkManager {
	return &ChunkManager{
		registry: reg,
		chunks:   make(map[ChunkCoord]*Chunk),
		active:   make(map[ChunkCoord]struct{}),
	}
}

// WorldToChunk splits a world coordinate into its owning chunk
// coordinate and the local coordinate within that chunk, using
// Euclidean (floor) division so negative coordinates never leak a
// negative local coordinate.
func WorldToChunk(x, y int) (coord ChunkCoord, lx, ly int) {
	cx, lx := floorDivMod(x, ChunkSize)
	cy, ly := floorDivMod(y, ChunkSize)
	return ChunkCoord{X: cx, Y: cy}, lx, ly
}

// ChunkToWorld is the inverse of WorldToChunk: given a chunk coordinate
// and a local coordinate inside it, returns the world coordinate.
func ChunkToWorld(coord ChunkCoord, lx, ly int) (x, y int) {
	return coord.X*ChunkSize + lx, coord.Y*ChunkSize + ly
}

func floorDivMod(a, b int) (q, r int) {
	q = a / b
	r = a % b
	if r < 0 {
		r += b
		q--
	}
	return q, r
}

// Get returns the chunk at coord, or nil if it has never been written
// to. It never creates a chunk.
func (m *ChunkManager) Get(coord ChunkCoord) *Chunk {
	return m.chunks[coord]
}

// GetOrCreate returns the chunk at coord, creating and storing an
// empty (all-AIR) one if absent.
func (m *ChunkManager) GetOrCreate(coord ChunkCoord) *Chunk {
	c, ok := m.chunks[coord]
	if !ok {
		c = NewChunk(coord)
		m.chunks[coord] = c
	}
	return c
}

// GetCell reads the cell at world coordinates (x, y). A read into a
// chunk that doesn't exist yet returns AIR; it never creates a chunk
// as a side effect.
func (m *ChunkManager) GetCell(x, y int) Cell {
	coord, lx, ly := WorldToChunk(x, y)
	c := m.chunks[coord]
	if c == nil {
		return AirCell
	}
	return c.At(lx, ly)
}

// SetCell writes cell at world coordinates (x, y), materializing the
// owning chunk if needed, marking it dirty, and inserting its
// coordinate into the active set.
func (m *ChunkManager) SetCell(x, y int, cell Cell) {
	coord, lx, ly := WorldToChunk(x, y)
	c := m.GetOrCreate(coord)
	props := m.registry.Get(cell.Material)
	active := !cell.IsAir() && (props.Movable || cell.Velocity.X() != 0 || cell.Velocity.Y() != 0)
	c.Set(lx, ly, cell, active)
	m.active[coord] = struct{}{}
}

// ActiveRect is an inclusive-exclusive world-space rectangle used to
// constrain which chunks are scheduled.
type ActiveRect struct {
	X, Y, W, H int
}

func (r ActiveRect) empty() bool { return r.W <= 0 || r.H <= 0 }

// chunksOverlapping yields every chunk coordinate whose ChunkSize x
// ChunkSize square intersects r.
func chunksOverlapping(r ActiveRect) []ChunkCoord {
	if r.empty() {
		return nil
	}
	minCX, _ := floorDivMod(r.X, ChunkSize)
	minCY, _ := floorDivMod(r.Y, ChunkSize)
	maxCX, _ := floorDivMod(r.X+r.W-1, ChunkSize)
	maxCY, _ := floorDivMod(r.Y+r.H-1, ChunkSize)

	var out []ChunkCoord
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			out = append(out, ChunkCoord{X: cx, Y: cy})
		}
	}
	return out
}

// UpdateActiveChunks rebuilds the active set as exactly the chunks
// overlapping rect whose own Active() bit is set. Chunks that exist
// but report inactive, or that don't overlap rect at all, are dropped
// from the set (they remain resident, just unscheduled).
func (m *ChunkManager) UpdateActiveChunks(rect ActiveRect) {
	next := make(map[ChunkCoord]struct{})
	for _, coord := range chunksOverlapping(rect) {
		c, ok := m.chunks[coord]
		if !ok {
			continue
		}
		if c.Active() {
			next[coord] = struct{}{}
		}
	}
	m.active = next
}

// ActiveChunks returns the coordinates currently scheduled. The slice
// is freshly allocated each call; callers must not rely on ordering.
func (m *ChunkManager) ActiveChunks() []ChunkCoord {
	out := make([]ChunkCoord, 0, len(m.active))
	for coord := range m.active {
		out = append(out, coord)
	}
	return out
}

// ActivateChunk force-inserts coord into the active set regardless of
// its computed activity, if the chunk exists. Nothing in this package
// calls it, and the next UpdateActiveChunks rebuild drops coord again
// unless the chunk reports Active().
func (m *ChunkManager) ActivateChunk(coord ChunkCoord) {
	if _, ok := m.chunks[coord]; ok {
		m.active[coord] = struct{}{}
	}
}

// ChunkCount returns the number of resident (ever-written) chunks.
func (m *ChunkManager) ChunkCount() int { return len(m.chunks) }

// AllChunkCoords returns every resident chunk coordinate, active or
// not. The slice is freshly allocated each call.
func (m *ChunkManager) AllChunkCoords() []ChunkCoord {
	out := make([]ChunkCoord, 0, len(m.chunks))
	for coord := range m.chunks {
		out = append(out, coord)
	}
	return out
}
