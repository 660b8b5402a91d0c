package sandphys

// TemplateKind enumerates the built-in world generation presets.
type TemplateKind int

const (
	TemplateEmpty TemplateKind = iota
	TemplateFlatTerrain
	TemplateTerrainWithCaves
	TemplateTerrainWithWater
	TemplateRandomMaterials
	TemplateSandbox
)

func (k TemplateKind) String() string {
	switch k {
	case TemplateEmpty:
		return "EMPTY"
	case TemplateFlatTerrain:
		return "FLAT_TERRAIN"
	case TemplateTerrainWithCaves:
		return "TERRAIN_WITH_CAVES"
	case TemplateTerrainWithWater:
		return "TERRAIN_WITH_WATER"
	case TemplateRandomMaterials:
		return "RANDOM_MATERIALS"
	case TemplateSandbox:
		return "SANDBOX"
	default:
		return "UNKNOWN"
	}
}

// GenerateTemplate populates the world using one of the built-in
// presets, entirely through the painting primitives (FillRect,
// PaintCircle, and per-cell SetCell for the random scatter) so
// generated cells activate like any other write. Only TemplateEmpty
// clears existing cells; the other presets paint over what is there.
func (w *World) GenerateTemplate(kind TemplateKind) {
	w.log.Infof("generating template %v", kind)
	switch kind {
	case TemplateEmpty:
		w.FillRect(0, 0, w.width, w.height, AirID)

	case TemplateFlatTerrain:
		groundY := w.height * 2 / 3
		w.FillRect(0, groundY, w.width, w.height-groundY, w.registry.Stone())

	case TemplateTerrainWithCaves:
		groundY := w.height * 2 / 3
		w.FillRect(0, groundY, w.width, w.height-groundY, w.registry.Stone())
		caveCount := w.width / 8
		for i := 0; i < caveCount; i++ {
			cx := w.rng.UniformInt(w.width)
			cy := groundY + w.rng.UniformInt(w.height-groundY)
			r := 2 + w.rng.UniformInt(3)
			w.PaintCircle(cx, cy, r, AirID)
		}

	case TemplateTerrainWithWater:
		groundY := w.height * 3 / 4
		waterY := w.height / 2
		w.FillRect(0, groundY, w.width, w.height-groundY, w.registry.Stone())
		w.FillRect(0, waterY, w.width, groundY-waterY, w.registry.Water())

	case TemplateRandomMaterials:
		pool := []MaterialID{
			w.registry.Sand(), w.registry.Water(), w.registry.Stone(),
			w.registry.Oil(), w.registry.Wood(),
		}
		for y := 0; y < w.height; y++ {
			for x := 0; x < w.width; x++ {
				if w.rng.Roll(0.3) {
					w.SetCell(x, y, pool[w.rng.UniformInt(len(pool))])
				}
			}
		}

	case TemplateSandbox:
		floorY := w.height - 2
		w.FillRect(0, floorY, w.width, 2, w.registry.Stone())
	}
}
