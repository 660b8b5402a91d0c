package sandphys

// CellularPhysics dispatches per-cell movement and then heat/reaction
// processing for every chunk in a ChunkManager's active set. It borrows
// the registry, processor, and chunk manager for the duration of a
// single Tick call and holds no reference to any of them afterward.
type CellularPhysics struct {
	reg  *MaterialRegistry
	proc *CellProcessor
	rng  *RNG

	width, height int

	// updated is the out-of-line UPDATED flag, keyed by the chunk that
	// owns each cell rather than held inline on Cell, so Cell stays a
	// flat, trivially copyable value. touched lists every chunk coord
	// marked this tick so the next tick's reset only clears what was
	// actually written instead of the whole resident chunk set.
	updated map[ChunkCoord]*[ChunkSize * ChunkSize]bool
	touched []ChunkCoord
}

// NewCellularPhysics builds a dispatcher bounded to a width x height
// world. Movement never proposes a destination outside those bounds;
// reads/writes within them go through mgr unconditionally.
func NewCellularPhysics(reg *MaterialRegistry, proc *CellProcessor, rng *RNG, width, height int) *CellularPhysics {
	return &CellularPhysics{
		reg:     reg,
		proc:    proc,
		rng:     rng,
		width:   width,
		height:  height,
		updated: make(map[ChunkCoord]*[ChunkSize * ChunkSize]bool),
	}
}

func (p *CellularPhysics) inBounds(x, y int) bool {
	return x >= 0 && x < p.width && y >= 0 && y < p.height
}

func (p *CellularPhysics) resetScratch() {
	for _, coord := range p.touched {
		if mask, ok := p.updated[coord]; ok {
			for i := range mask {
				mask[i] = false
			}
		}
	}
	p.touched = p.touched[:0]
}

func (p *CellularPhysics) isUpdated(x, y int) bool {
	coord, lx, ly := WorldToChunk(x, y)
	mask, ok := p.updated[coord]
	if !ok {
		return false
	}
	return mask[localIndex(lx, ly)]
}

func (p *CellularPhysics) markUpdated(x, y int) {
	coord, lx, ly := WorldToChunk(x, y)
	mask, ok := p.updated[coord]
	if !ok {
		mask = &[ChunkSize * ChunkSize]bool{}
		p.updated[coord] = mask
	}
	mask[localIndex(lx, ly)] = true
	p.touched = append(p.touched, coord)
}

// Tick advances every cell in mgr's currently active chunks by one
// simulation step. The active set is read once at the start (via
// mgr.ActiveChunks) and never re-queried mid-tick, so a chunk a write
// activates this tick is not processed until the next call.
func (p *CellularPhysics) Tick(mgr *ChunkManager, dt float64) {
	p.resetScratch()
	for _, coord := range mgr.ActiveChunks() {
		chunk := mgr.Get(coord)
		if chunk == nil {
			continue
		}
		for ly := ChunkSize - 1; ly >= 0; ly-- {
			for lx := 0; lx < ChunkSize; lx++ {
				wx, wy := ChunkToWorld(coord, lx, ly)
				if p.isUpdated(wx, wy) {
					continue
				}
				cell := mgr.GetCell(wx, wy)
				if cell.IsAir() {
					continue
				}
				p.visitCell(mgr, wx, wy, cell, dt)
			}
		}
	}
}

// visitCell runs movement dispatch for the cell at (x, y), then heat
// transfer, state change, and reaction processing at wherever that
// cell ended up. Both the old and new positions are marked UPDATED.
func (p *CellularPhysics) visitCell(mgr *ChunkManager, x, y int, cell Cell, dt float64) {
	props := p.reg.Get(cell.Material)
	newX, newY := x, y

	switch props.Type {
	case TypePowder:
		newX, newY = p.updatePowder(mgr, x, y, cell)
	case TypeLiquid:
		newX, newY = p.updateFluid(mgr, x, y, cell, 1)
	case TypeGas, TypeFire:
		newX, newY = p.updateFluid(mgr, x, y, cell, -1)
	case TypeSolid, TypeSpecial, TypeEmpty:
		// no movement
	}

	if newX != x || newY != y {
		p.markUpdated(x, y)
	}
	p.markUpdated(newX, newY)
	p.processCellInteractions(mgr, newX, newY, dt)
}

// updatePowder tries straight down, then the two diagonals below,
// fair-coin ordered to avoid directional bias.
func (p *CellularPhysics) updatePowder(mgr *ChunkManager, x, y int, cell Cell) (int, int) {
	if p.moveOrSwap(mgr, x, y, x, y+1) {
		return x, y + 1
	}
	dx1, dx2 := -1, 1
	if p.rng.CoinFlip() {
		dx1, dx2 = dx2, dx1
	}
	if p.moveOrSwap(mgr, x, y, x+dx1, y+1) {
		return x + dx1, y + 1
	}
	if p.moveOrSwap(mgr, x, y, x+dx2, y+1) {
		return x + dx2, y + 1
	}
	return x, y
}

// updateFluid implements both LIQUID (vdir=+1) and GAS/FIRE (vdir=-1)
// movement: straight, then diagonals, then a horizontal flow search.
// FIRE cells are dispatched here too, but CanMove rejects every move
// whose source is Fire, so a Fire cell stays where it is.
func (p *CellularPhysics) updateFluid(mgr *ChunkManager, x, y int, cell Cell, vdir int) (int, int) {
	if p.moveOrSwap(mgr, x, y, x, y+vdir) {
		return x, y + vdir
	}
	dx1, dx2 := -1, 1
	if p.rng.CoinFlip() {
		dx1, dx2 = dx2, dx1
	}
	if p.moveOrSwap(mgr, x, y, x+dx1, y+vdir) {
		return x + dx1, y + vdir
	}
	if p.moveOrSwap(mgr, x, y, x+dx2, y+vdir) {
		return x + dx2, y + vdir
	}

	disp := effectiveDispersion(p.reg.Get(cell.Material))
	if nx, moved := p.scanDirection(mgr, x, y, cell, disp, dx1); moved {
		return nx, y
	}
	if nx, moved := p.scanDirection(mgr, x, y, cell, disp, dx2); moved {
		return nx, y
	}
	return x, y
}

// effectiveDispersion scales a material's base Dispersion down by its
// Viscosity: thicker fluids reach fewer cells horizontally per tick.
func effectiveDispersion(props MaterialProperties) int {
	v := props.Viscosity
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	eff := int(float32(props.Dispersion) * (1 - v))
	if eff < 1 {
		eff = 1
	}
	return eff
}

// scanDirection walks outward from (x, y) along dx, up to dispersion
// cells, skipping over cells of the same material (the flow continues
// past its own kind) and stopping at the first cell it either moves
// into or is blocked by.
func (p *CellularPhysics) scanDirection(mgr *ChunkManager, x, y int, cell Cell, dispersion, dx int) (int, bool) {
	for step := 1; step <= dispersion; step++ {
		tx := x + dx*step
		if !p.inBounds(tx, y) {
			break
		}
		target := mgr.GetCell(tx, y)
		if target.Material == cell.Material {
			continue
		}
		if p.proc.CanMove(cell, target) && p.moveOrSwap(mgr, x, y, tx, y) {
			return tx, true
		}
		break
	}
	return x, false
}

// moveOrSwap relocates the cell at (x, y) to (nx, ny) if kinematically
// allowed: moving into AIR, displacing an occupant CanMove allows (for
// LIQUID/POWDER any less dense material, for GAS a less dense GAS), or
// equalizing pressure between identical materials.
func (p *CellularPhysics) moveOrSwap(mgr *ChunkManager, x, y, nx, ny int) bool {
	if !p.inBounds(nx, ny) {
		return false
	}
	src := mgr.GetCell(x, y)
	if src.IsAir() {
		return false
	}
	dst := mgr.GetCell(nx, ny)
	if !p.canKinematicMove(src, dst) {
		return false
	}
	mgr.SetCell(nx, ny, src)
	if dst.IsAir() {
		mgr.SetCell(x, y, AirCell)
	} else {
		mgr.SetCell(x, y, dst)
	}
	return true
}

// canKinematicMove decides whether a may relocate into b purely for
// movement purposes — it deliberately excludes CellProcessor.CanDisplace's
// fire-into-flammable case, which is an ignition handled by reaction
// processing, not a position swap.
func (p *CellularPhysics) canKinematicMove(a, b Cell) bool {
	if a.Material == b.Material {
		ap := p.reg.Get(a.Material)
		if (ap.Type == TypeLiquid || ap.Type == TypeGas) && absF32(a.Pressure-b.Pressure) > 0.1 {
			return true
		}
		return false
	}
	return p.proc.CanMove(a, b)
}

// processCellInteractions runs heat transfer and reaction attempts
// between the cell at (x, y) and each of its 4-neighbors, then applies
// temperature-triggered state change. A successful reaction marks both
// participants UPDATED so neither reacts again this tick.
func (p *CellularPhysics) processCellInteractions(mgr *ChunkManager, x, y int, dt float64) {
	cell := mgr.GetCell(x, y)
	if cell.IsAir() {
		return
	}

	offsets := [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	for _, off := range offsets {
		nx, ny := x+off[0], y+off[1]
		neighbor := mgr.GetCell(nx, ny)
		if neighbor.IsAir() {
			continue
		}

		p.proc.TransferHeat(&cell, &neighbor, dt)
		reacted := p.proc.ProcessPotentialReaction(&cell, &neighbor, dt)

		mgr.SetCell(nx, ny, neighbor)
		mgr.SetCell(x, y, cell)

		if reacted {
			p.markUpdated(x, y)
			p.markUpdated(nx, ny)
		}
		cell = mgr.GetCell(x, y)
		if cell.IsAir() {
			return
		}
	}

	if p.proc.CheckStateChangeByTemperature(&cell) {
		mgr.SetCell(x, y, cell)
		return
	}
	p.proc.ProcessStateChange(&cell, dt)
	mgr.SetCell(x, y, cell)
}
