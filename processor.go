package sandphys

import "strings"

// CellProcessor is a stateless (aside from RNG) collection of decision
// functions consulted by CellularPhysics. It borrows the registry
// read-only and never holds a reference to any chunk across tick
// boundaries.
type CellProcessor struct {
	reg *MaterialRegistry
	rng *RNG
}

// NewCellProcessor builds a processor over reg, seeded rng.
func NewCellProcessor(reg *MaterialRegistry, rng *RNG) *CellProcessor {
	return &CellProcessor{reg: reg, rng: rng}
}

func (p *CellProcessor) props(id MaterialID) MaterialProperties { return p.reg.Get(id) }

// InitializeCellFromMaterial builds a fresh cell for material at its
// registered defaults: starting health scaled by density for movable
// classes, a type-appropriate starting temperature (Fire ignites hot,
// Lava is near its melting point, materials with a low boiling point
// start partway there, materials with a near-zero melting point start
// cold), and BURNING set immediately for Fire.
func (p *CellProcessor) InitializeCellFromMaterial(material MaterialID) Cell {
	props := p.props(material)
	cell := Cell{Material: material, Health: 1, Temperature: 20}

	switch props.Type {
	case TypePowder:
		cell.Health = clamp01(props.Density / 3000)
	case TypeLiquid:
		cell.Health = clamp01(props.Density / 2000)
	case TypeGas:
		cell.Health = clamp01(props.Density / 500)
		cell.Lifetime = props.Lifetime
	case TypeFire:
		cell.Lifetime = props.Lifetime
		cell.Flags |= FlagBurning
	}

	switch {
	case props.Type == TypeFire:
		cell.Temperature = 600
	case props.Type == TypeGas && strings.Contains(props.Name, "Steam"):
		cell.Temperature = 120
	case props.Type == TypeGas && strings.Contains(props.Name, "Smoke"):
		cell.Temperature = 150
	case props.Type == TypeLiquid && strings.Contains(props.Name, "Lava"):
		cell.Temperature = 1000
	case props.MeltingPoint != nil && *props.MeltingPoint >= 0 && *props.MeltingPoint < 100:
		cell.Temperature = *props.MeltingPoint - 5
	case props.BoilingPoint != nil && *props.BoilingPoint > 0 && *props.BoilingPoint < 150:
		cell.Temperature = *props.BoilingPoint * 0.5
	}

	return cell
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// CanMove reports whether source can move into target: source must be
// movable, and either target is AIR, or source is a denser LIQUID/POWDER
// than target, or both are GAS and source is denser. Fire is excluded
// here (it displaces rather than moves, see CanDisplace).
func (p *CellProcessor) CanMove(source, target Cell) bool {
	sp := p.props(source.Material)
	if !sp.Movable || sp.Type == TypeFire {
		return false
	}
	if target.IsAir() {
		return true
	}
	tp := p.props(target.Material)
	switch sp.Type {
	case TypeLiquid, TypePowder:
		return sp.Density > tp.Density
	case TypeGas:
		return tp.Type == TypeGas && sp.Density > tp.Density
	}
	return false
}

// CanDisplace wraps CanMove and additionally lets Fire "displace" any
// flammable target, treated as ignition rather than movement.
func (p *CellProcessor) CanDisplace(mover, target Cell) bool {
	mp := p.props(mover.Material)
	if mp.Type == TypeFire {
		tp := p.props(target.Material)
		return tp.Flammable
	}
	return p.CanMove(mover, target)
}

// ShouldSwap decides whether a and b should exchange places:
// identical-material LIQUID/GAS neighbors with a large pressure
// imbalance swap to equalize pressure; otherwise true iff either side
// can displace the other.
func (p *CellProcessor) ShouldSwap(a, b Cell) bool {
	if a.Material == b.Material {
		ap := p.props(a.Material)
		if (ap.Type == TypeLiquid || ap.Type == TypeGas) && absF32(a.Pressure-b.Pressure) > 0.1 {
			return true
		}
	}
	return p.CanDisplace(a, b) || p.CanDisplace(b, a)
}

func isAcid(props MaterialProperties) bool {
	return strings.Contains(props.Name, "Acid")
}

// CanReact is symmetric: true if (a) a's reaction table names b's
// material, (b) Fire touches something flammable, (c) Water touches
// Fire, (d) Water touches Lava, or (e) a material with "Acid" in its
// name touches a SOLID.
func (p *CellProcessor) CanReact(a, b Cell) bool {
	return p.canReactOneWay(a, b) || p.canReactOneWay(b, a)
}

func (p *CellProcessor) canReactOneWay(a, b Cell) bool {
	if a.IsAir() || b.IsAir() {
		return false
	}
	ap, bp := p.props(a.Material), p.props(b.Material)
	for _, rule := range ap.Reactions {
		if rule.ReactantMaterial == b.Material {
			return true
		}
	}
	if ap.Type == TypeFire && bp.Flammable {
		return true
	}
	if ap.Type == TypeLiquid && ap.Name == "Water" && bp.Type == TypeFire {
		return true
	}
	if ap.Type == TypeLiquid && ap.Name == "Water" && bp.Name == "Lava" {
		return true
	}
	if isAcid(ap) && bp.Type == TypeSolid {
		return true
	}
	return false
}

// ProcessPotentialReaction rolls probability*dt*10 for each applicable
// rule between a and b and mutates on success. Explicit reaction-table
// rules take priority over the built-in type-based defaults (fire
// ignition, water-quenches-fire, water-boils-on-lava,
// acid-corrodes-solid).
func (p *CellProcessor) ProcessPotentialReaction(a, b *Cell, dt float64) bool {
	if changed := p.tryExplicitReactions(a, b, dt); changed {
		return true
	}
	if changed := p.tryExplicitReactions(b, a, dt); changed {
		return true
	}

	ap, bp := p.props(a.Material), p.props(b.Material)

	if ap.Type == TypeFire && bp.Flammable {
		return p.tryIgnite(b, bp, dt)
	}
	if bp.Type == TypeFire && ap.Flammable {
		return p.tryIgnite(a, ap, dt)
	}
	if ap.Type == TypeLiquid && ap.Name == "Water" && bp.Type == TypeFire {
		return p.tryWaterQuench(a, b, dt)
	}
	if bp.Type == TypeLiquid && bp.Name == "Water" && ap.Type == TypeFire {
		return p.tryWaterQuench(b, a, dt)
	}
	if ap.Type == TypeLiquid && ap.Name == "Water" && bp.Name == "Lava" {
		return p.tryWaterBoil(a, b, dt)
	}
	if bp.Type == TypeLiquid && bp.Name == "Water" && ap.Name == "Lava" {
		return p.tryWaterBoil(b, a, dt)
	}
	if isAcid(ap) && bp.Type == TypeSolid {
		return p.tryAcidCorrode(b, dt)
	}
	if isAcid(bp) && ap.Type == TypeSolid {
		return p.tryAcidCorrode(a, dt)
	}
	return false
}

func (p *CellProcessor) tryExplicitReactions(a, b *Cell, dt float64) bool {
	ap := p.props(a.Material)
	for _, rule := range ap.Reactions {
		if rule.ReactantMaterial != b.Material {
			continue
		}
		if !p.rng.Roll(rule.Probability * dt * 10) {
			continue
		}
		temp := a.Temperature
		a.Material = rule.ResultMaterial
		a.Temperature = temp + float32(rule.EnergyRelease)
		if rule.Byproduct != nil {
			b.Material = *rule.Byproduct
		}
		return true
	}
	return false
}

func (p *CellProcessor) tryIgnite(target *Cell, targetProps MaterialProperties, dt float64) bool {
	if !p.rng.Roll(targetProps.Flammability * dt * 10) {
		return false
	}
	p.Ignite(target, targetProps)
	return true
}

// Ignite converts a cell into Fire, sized by the source material's
// flammability, and flags it as burning.
func (p *CellProcessor) Ignite(target *Cell, targetProps MaterialProperties) {
	target.Material = p.reg.Fire()
	target.Lifetime = int32(targetProps.Flammability * 200)
	target.Flags |= FlagBurning
}

func (p *CellProcessor) tryWaterQuench(water, fire *Cell, dt float64) bool {
	if !p.rng.Roll(1.0*dt*10) {
		return false
	}
	p.Extinguish(fire)
	water.Temperature += 20
	return true
}

// Extinguish turns a burning Fire cell into Smoke.
func (p *CellProcessor) Extinguish(fire *Cell) {
	fire.Material = p.reg.Smoke()
	fire.Lifetime = p.props(fire.Material).Lifetime
	fire.Flags &^= FlagBurning
}

// tryWaterBoil converts water in direct contact with lava to Steam,
// rather than waiting on gradual conductive heating to cross the
// boiling-point state-change rule. Mirrors tryWaterQuench's contact
// reaction in the other direction: the lava cools slightly, the water
// flashes to steam at its boiling point.
func (p *CellProcessor) tryWaterBoil(water, lava *Cell, dt float64) bool {
	if !p.rng.Roll(1.0*dt*10) {
		return false
	}
	boilingPoint := p.props(water.Material).BoilingPoint
	temp := water.Temperature
	if boilingPoint != nil && temp < *boilingPoint {
		temp = *boilingPoint
	}
	water.Material = p.reg.Steam()
	water.Temperature = temp
	water.Lifetime = p.props(water.Material).Lifetime
	lava.Temperature -= 10
	return true
}

func (p *CellProcessor) tryAcidCorrode(solid *Cell, dt float64) bool {
	p.Dissolve(solid, 0.2*dt*5)
	if solid.Health <= 0 {
		*solid = AirCell
	}
	return true
}

// ProcessStateChange decrements Lifetime for finite-lifetime materials
// and, on expiry, transitions Fire -> Smoke (temperature floored at
// 100C, BURNING cleared) and any GAS -> AIR. It then rolls each
// registered state-change rule independently.
func (p *CellProcessor) ProcessStateChange(cell *Cell, dt float64) {
	props := p.props(cell.Material)

	if props.Lifetime > 0 && !cell.IsAir() {
		cell.Lifetime--
		if cell.Lifetime <= 0 {
			switch props.Type {
			case TypeFire:
				if cell.Temperature < 100 {
					cell.Temperature = 100
				}
				p.Extinguish(cell)
				return
			case TypeGas:
				*cell = AirCell
				return
			}
		}
	}

	props = p.props(cell.Material)
	for _, rule := range props.StateChanges {
		if !thresholdCrossed(cell.Temperature, rule.TemperatureThreshold) {
			continue
		}
		if p.rng.Roll(rule.Probability * dt * 5) {
			p.transitionTo(cell, rule.TargetMaterial)
			return
		}
	}
}

// thresholdCrossed reports whether temp has crossed rule.Threshold in
// the indicated direction: a positive threshold is a high-temperature
// transition (temp must be at or above it), a negative one a
// low-temperature transition (temp must be at or below its magnitude).
func thresholdCrossed(temp, threshold float32) bool {
	if threshold >= 0 {
		return temp >= threshold
	}
	return temp <= -threshold
}

func (p *CellProcessor) transitionTo(cell *Cell, target MaterialID) {
	temp := cell.Temperature
	vel := cell.Velocity
	cell.Material = target
	cell.Temperature = temp
	cell.Velocity = vel
	cell.Flags &^= FlagFrozen | FlagBurning
	tp := p.props(target)
	cell.Lifetime = tp.Lifetime
	if tp.Type == TypeSolid && temp <= 0 {
		cell.Flags |= FlagFrozen
	}
	if tp.Type == TypeFire {
		cell.Flags |= FlagBurning
	}
}

// TransferHeat exchanges temperature between src and dst symmetrically,
// scaled by the lower of their two thermal conductivities and the
// *opposite* cell's specific heat. Skipped when either side is AIR or
// the temperature delta is negligible.
func (p *CellProcessor) TransferHeat(src, dst *Cell, dt float64) {
	if src.IsAir() || dst.IsAir() {
		return
	}
	delta := src.Temperature - dst.Temperature
	if absF32(delta) < 0.1 {
		return
	}
	sp, dp := p.props(src.Material), p.props(dst.Material)
	k := sp.ThermalConductivity
	if dp.ThermalConductivity < k {
		k = dp.ThermalConductivity
	}
	flow := delta * k * float32(dt) * 0.1

	// Each side's temperature change is scaled by the *other* cell's
	// specific heat: a material with a high specific heat slows how
	// fast its neighbor's temperature can shift toward it.
	srcSpecificHeat := dp.SpecificHeat
	if srcSpecificHeat <= 0 {
		srcSpecificHeat = 1
	}
	dstSpecificHeat := sp.SpecificHeat
	if dstSpecificHeat <= 0 {
		dstSpecificHeat = 1
	}

	src.Temperature -= flow / srcSpecificHeat
	dst.Temperature += flow / dstSpecificHeat
}

// CheckStateChangeByTemperature transitions cell immediately, without
// a probability roll, when it is deep past a registered threshold, and
// ignites any flammable material whose temperature has crossed its
// ignition point. Returns true if a transition fired.
func (p *CellProcessor) CheckStateChangeByTemperature(cell *Cell) bool {
	props := p.props(cell.Material)

	if props.Flammable && props.IgnitionPoint != nil && cell.Temperature >= *props.IgnitionPoint {
		p.Ignite(cell, props)
		return true
	}

	for _, rule := range props.StateChanges {
		// A high-temperature threshold needs to move further away from
		// zero to count as "deep"; a low-temperature one (stored
		// negative) needs to move closer to zero, since thresholdCrossed
		// negates negative thresholds before comparing.
		deep := rule.TemperatureThreshold * 1.2
		if rule.TemperatureThreshold < 0 {
			deep = rule.TemperatureThreshold * 0.8
		}
		if thresholdCrossed(cell.Temperature, deep) {
			p.transitionTo(cell, rule.TargetMaterial)
			return true
		}
	}
	return false
}

// Freeze marks a cell as frozen without changing its material (used by
// callers that model ice as a flag rather than a distinct material).
func (p *CellProcessor) Freeze(cell *Cell) { cell.Flags |= FlagFrozen }

// Melt clears the frozen flag.
func (p *CellProcessor) Melt(cell *Cell) { cell.Flags &^= FlagFrozen }

// Dissolve flags a cell as dissolving and reduces its health by rate.
func (p *CellProcessor) Dissolve(cell *Cell, rate float64) {
	cell.Flags |= FlagDissolving
	p.Damage(cell, rate)
}

// Damage reduces Health by amount, clamped to zero. Destruction (health
// reaching zero) is the caller's responsibility so it can decide the
// resulting material.
func (p *CellProcessor) Damage(cell *Cell, amount float64) {
	cell.Health -= float32(amount)
	if cell.Health < 0 {
		cell.Health = 0
	}
}

// ApplyVelocity adds delta to the cell's velocity.
func (p *CellProcessor) ApplyVelocity(cell *Cell, delta [2]float32) {
	cell.Velocity = cell.Velocity.Add(vec2(delta[0], delta[1]))
}

// ApplyPressure adds delta to the cell's pressure and sets PRESSURIZED
// once it exceeds a small threshold.
func (p *CellProcessor) ApplyPressure(cell *Cell, delta float32) {
	cell.Pressure += delta
	if cell.Pressure > 0.1 {
		cell.Flags |= FlagPressurized
	} else {
		cell.Flags &^= FlagPressurized
	}
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
