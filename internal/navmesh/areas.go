package navmesh

import "fmt"

// AreaID identifies an area type. Volumes reference area types by id
// only; the reference is weak and may dangle after an area type is
// removed from the registry.
type AreaID uint8

// DefaultArea is the permanent built-in area type: cost 1.0, id 0.
// User-created area types must use a non-zero id.
const DefaultArea AreaID = 0

// Color is a display color for an area type. It has no effect on
// pathfinding.
type Color struct {
	R, G, B, A uint8
}

// PolyAreaType describes a named area classification with a traversal
// cost multiplier. Valid is derived: lookups for ids missing from the
// registry return a sentinel with Valid false so the UI can render
// "Invalid Area Type: N" instead of failing.
type PolyAreaType struct {
	ID         AreaID
	Name       string
	Color      Color
	Cost       float32
	Unwalkable bool
	Valid      bool
}

// AreaRegistry is an insertion-ordered collection of area types. The
// order drives display order in selection UIs. The registry is owned
// by a single mesh-editing session and must only be used from that
// session's goroutine.
type AreaRegistry struct {
	areas []PolyAreaType
	byID  map[AreaID]int

	// Cost reported for volumes whose area type no longer exists.
	fallbackCost float32
}

// NewAreaRegistry creates a registry seeded with the default area
// type. fallbackCost is the traversal cost reported for dangling area
// references; 1.0 keeps them traversable at default cost, 0 treats
// them as unwalkable.
func NewAreaRegistry(fallbackCost float32) *AreaRegistry {
	r := &AreaRegistry{
		byID:         make(map[AreaID]int),
		fallbackCost: fallbackCost,
	}
	r.areas = append(r.areas, PolyAreaType{
		ID:    DefaultArea,
		Name:  "Default",
		Color: Color{R: 128, G: 128, B: 128, A: 255},
		Cost:  1.0,
		Valid: true,
	})
	r.byID[DefaultArea] = 0
	return r
}

// AddArea registers a user-created area type. Id 0 is reserved for
// the default area and duplicate ids are rejected.
func (r *AreaRegistry) AddArea(area PolyAreaType) error {
	if area.ID == DefaultArea {
		return fmt.Errorf("area id 0 is reserved for the default area")
	}
	if _, ok := r.byID[area.ID]; ok {
		return fmt.Errorf("area id %d already registered", area.ID)
	}
	area.Valid = true
	r.byID[area.ID] = len(r.areas)
	r.areas = append(r.areas, area)
	return nil
}

// RemoveArea deletes an area type from the registry. Volumes that
// reference the removed id keep it; their lookups simply start
// returning the invalid sentinel. The default area cannot be removed.
func (r *AreaRegistry) RemoveArea(id AreaID) bool {
	if id == DefaultArea {
		return false
	}
	idx, ok := r.byID[id]
	if !ok {
		return false
	}
	r.areas = append(r.areas[:idx], r.areas[idx+1:]...)
	delete(r.byID, id)
	for i := idx; i < len(r.areas); i++ {
		r.byID[r.areas[i].ID] = i
	}
	return true
}

// PolyArea looks up an area type by id. Unknown ids return an invalid
// sentinel carrying the requested id, never an error.
func (r *AreaRegistry) PolyArea(id AreaID) PolyAreaType {
	if idx, ok := r.byID[id]; ok {
		return r.areas[idx]
	}
	return PolyAreaType{ID: id, Valid: false}
}

// PolyAreas returns the area types in registry insertion order.
func (r *AreaRegistry) PolyAreas() []PolyAreaType {
	out := make([]PolyAreaType, len(r.areas))
	copy(out, r.areas)
	return out
}

// AreaCost returns the traversal cost multiplier for an area id. For
// ids missing from the registry it returns the configured fallback
// cost.
func (r *AreaRegistry) AreaCost(id AreaID) float32 {
	if idx, ok := r.byID[id]; ok {
		return r.areas[idx].Cost
	}
	return r.fallbackCost
}
