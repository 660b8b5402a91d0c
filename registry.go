package sandphys

import (
	"sort"
	"sync"
)

// MaterialRegistry interns material definitions. Registration is
// idempotent by name: registering an existing name returns its
// existing id rather than creating a duplicate. Id 0 is always AIR.
// Once set up, a registry is read-mostly and safe to share by read
// across CellProcessor/CellularPhysics invocations.
type MaterialRegistry struct {
	mu     sync.RWMutex
	byName map[string]MaterialID
	byID   []MaterialProperties

	wellKnown wellKnownIDs
}

type wellKnownIDs struct {
	air, stone, sand, water, oil, lava, fire, steam, smoke, wood, ice MaterialID
}

// NewMaterialRegistry constructs a registry with AIR pre-populated at
// id 0.
func NewMaterialRegistry() *MaterialRegistry {
	r := &MaterialRegistry{
		byName: make(map[string]MaterialID),
		byID:   make([]MaterialProperties, 0, 16),
	}
	airID := r.register(MaterialProperties{
		Name:    "Air",
		Type:    TypeEmpty,
		Movable: false,
		Color:   Color{0, 0, 0, 0},
	})
	r.wellKnown.air = airID
	return r
}

// register is the unsynchronized core of Register; callers hold r.mu.
func (r *MaterialRegistry) register(props MaterialProperties) MaterialID {
	if id, ok := r.byName[props.Name]; ok {
		return id
	}
	id := MaterialID(len(r.byID))
	r.byID = append(r.byID, props)
	r.byName[props.Name] = id
	return id
}

// Register interns props, returning its id. Calling it twice with the
// same Name is a no-op that returns the original id.
func (r *MaterialRegistry) Register(props MaterialProperties) MaterialID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(props)
}

// Get returns the properties for id. An id past the end of the table
// degrades to AIR rather than panicking, so a malformed or stale cell
// reference never fails a lookup.
func (r *MaterialRegistry) Get(id MaterialID) MaterialProperties {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(r.byID) {
		return r.byID[AirID]
	}
	return r.byID[id]
}

// IDOf resolves a material name to its id. Unknown names resolve to
// AIR rather than erroring.
func (r *MaterialRegistry) IDOf(name string) MaterialID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.byName[name]; ok {
		return id
	}
	return AirID
}

// Names returns every registered material name, sorted, for tooling.
func (r *MaterialRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered materials, including AIR.
func (r *MaterialRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func (r *MaterialRegistry) Air() MaterialID   { return r.wellKnown.air }
func (r *MaterialRegistry) Stone() MaterialID { return r.wellKnown.stone }
func (r *MaterialRegistry) Sand() MaterialID  { return r.wellKnown.sand }
func (r *MaterialRegistry) Water() MaterialID { return r.wellKnown.water }
func (r *MaterialRegistry) Oil() MaterialID   { return r.wellKnown.oil }
func (r *MaterialRegistry) Lava() MaterialID  { return r.wellKnown.lava }
func (r *MaterialRegistry) Fire() MaterialID  { return r.wellKnown.fire }
func (r *MaterialRegistry) Steam() MaterialID { return r.wellKnown.steam }
func (r *MaterialRegistry) Smoke() MaterialID { return r.wellKnown.smoke }
func (r *MaterialRegistry) Wood() MaterialID  { return r.wellKnown.wood }
func (r *MaterialRegistry) Ice() MaterialID   { return r.wellKnown.ice }
