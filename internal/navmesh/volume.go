package navmesh

import (
	"fmt"

	"github.com/Amadeus-/MQ2Nav/internal/geom"
	"github.com/Amadeus-/MQ2Nav/pkg/math"
)

// ConvexVolume is a vertical prism carved over the navmesh: a convex
// polygon footprint on the horizontal plane extruded over [HMin,
// HMax], tagged with one area type. Volumes are exclusively owned by
// the Mesh; an edit session works on a Clone and saves it back.
type ConvexVolume struct {
	// ID is unique and non-zero; 0 means "no volume selected".
	ID uint32

	Name string

	// Verts is the footprint polygon in hull order, implicitly
	// closed. A persisted volume always has at least 3 vertices.
	Verts []math.Vec3

	HMin, HMax float32

	// AreaType is a weak reference into the area registry; it may
	// dangle after the area type is deleted.
	AreaType AreaID
}

// Contains reports whether p lies inside the volume: inside the
// footprint on the horizontal plane and within the vertical extent.
func (v *ConvexVolume) Contains(p math.Vec3) bool {
	return geom.PointInPolygon(v.Verts, p) && p.Y >= v.HMin && p.Y <= v.HMax
}

// BoundingBox returns the axis-aligned bounds of the volume. The
// vertical extent comes from HMin/HMax, not from vertex heights.
func (v *ConvexVolume) BoundingBox() (bmin, bmax math.Vec3) {
	bmin = v.Verts[0]
	bmax = v.Verts[0]
	for _, p := range v.Verts[1:] {
		bmin = bmin.Min(p)
		bmax = bmax.Max(p)
	}
	bmin.Y = v.HMin
	bmax.Y = v.HMax
	return bmin, bmax
}

// Clone returns a deep copy suitable for an edit session's working
// copy.
func (v *ConvexVolume) Clone() ConvexVolume {
	out := *v
	out.Verts = make([]math.Vec3, len(v.Verts))
	copy(out.Verts, v.Verts)
	return out
}

// Label formats the volume list entry shown in the UI, flagging
// unnamed volumes and dangling area references.
func (v *ConvexVolume) Label(areas *AreaRegistry) string {
	name := v.Name
	if name == "" {
		name = "unnamed"
	}

	area := areas.PolyArea(v.AreaType)
	switch {
	case !area.Valid:
		return fmt.Sprintf("%04d: %s (Invalid Area Type: %d)", v.ID, name, v.AreaType)
	case area.Name == "":
		return fmt.Sprintf("%04d: %s (Unnamed Area: %d)", v.ID, name, v.AreaType)
	default:
		return fmt.Sprintf("%04d: %s (%s)", v.ID, name, area.Name)
	}
}
