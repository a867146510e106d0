// Package tool implements the interactive convex volume editing
// session: clicked points accumulate into a live convex hull, commit
// turns the hull into a persisted volume, and existing volumes can be
// selected, re-tagged, and saved. Every mutation reports the set of
// mesh tiles whose pathfinding data must be rebuilt.
//
// The session is frame-driven and single-threaded; all methods must
// be called from the owning session's goroutine.
package tool

import (
	"go.uber.org/zap"

	"github.com/Amadeus-/MQ2Nav/internal/geom"
	"github.com/Amadeus-/MQ2Nav/internal/navmesh"
	"github.com/Amadeus-/MQ2Nav/pkg/math"
)

// Mode is the edit session state.
type Mode int

const (
	// ModeIdle: no volume in progress, no volume selected.
	ModeIdle Mode = iota
	// ModeCreating: accumulating clicked points into a new volume.
	ModeCreating
	// ModeEditing: a persisted volume is selected; scalar fields and
	// area type can be changed and saved back.
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeCreating:
		return "creating"
	case ModeEditing:
		return "editing"
	default:
		return "idle"
	}
}

// TileRebuilder rebuilds the navmesh data for a set of tiles. The
// tool invokes it after every commit, delete, or save that changed
// geometry or area assignment, and never with an empty set.
type TileRebuilder interface {
	RebuildTiles(tiles []navmesh.TileRef)
}

// Settings carries the editor defaults for new volumes.
type Settings struct {
	// BoxHeight is the vertical size of a new volume above its base.
	BoxHeight float32
	// BoxDescent lowers a new volume's base below the lowest clicked
	// point.
	BoxDescent float32
	// PolyOffset, when above the commit epsilon, inflates the hull
	// outward before it becomes the volume footprint.
	PolyOffset float32
	// SnapDistance: a click within this distance of the last accepted
	// point commits the shape instead of adding a point.
	SnapDistance float32
}

// offsetEpsilon is the poly offset below which no offsetting happens.
const offsetEpsilon = 0.01

// ConvexVolumeTool is the edit session state machine. Dependencies
// are injected at construction; the tool holds no global state.
type ConvexVolumeTool struct {
	mesh      *navmesh.Mesh
	rebuilder TileRebuilder
	log       *zap.Logger

	mode Mode

	// In-progress shape: raw clicked points and the indices into pts
	// forming their convex hull. The hull is recomputed from scratch
	// after every accepted point; correctness over
	// micro-optimization.
	pts  []math.Vec3
	hull []int

	// Parameters for the next committed volume.
	name       string
	areaType   navmesh.AreaID
	boxHeight  float32
	boxDescent float32
	polyOffset float32
	snapDist   float32

	// Edit-existing-volume state: a working copy of the selected
	// volume and its id (0 = none). The persisted volume is only
	// touched on SaveChanges.
	editVolume      navmesh.ConvexVolume
	currentVolumeID uint32
	modified        bool
}

// New creates an edit session over the given mesh. A nil logger
// disables logging.
func New(mesh *navmesh.Mesh, rebuilder TileRebuilder, settings Settings, log *zap.Logger) *ConvexVolumeTool {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConvexVolumeTool{
		mesh:       mesh,
		rebuilder:  rebuilder,
		log:        log,
		boxHeight:  settings.BoxHeight,
		boxDescent: settings.BoxDescent,
		polyOffset: settings.PolyOffset,
		snapDist:   settings.SnapDistance,
	}
}

// Reset clears all transient session state and returns to idle. The
// editor defaults (box height, descent, offset) survive.
func (t *ConvexVolumeTool) Reset() {
	t.mode = ModeIdle
	t.pts = nil
	t.hull = nil
	t.name = ""
	t.editVolume = navmesh.ConvexVolume{}
	t.currentVolumeID = 0
	t.modified = false
}

// BeginCreate starts accumulating points for a new volume, dropping
// any selection or partial shape.
func (t *ConvexVolumeTool) BeginCreate() {
	t.Reset()
	t.mode = ModeCreating
}

// HandleClick feeds one world-space click into the session. shift
// requests delete-by-point; finish forces the in-progress shape to
// commit. The returned tile set (possibly empty) lists the tiles
// whose data changed; non-empty sets have already been handed to the
// rebuilder.
func (t *ConvexVolumeTool) HandleClick(p math.Vec3, shift, finish bool) []navmesh.TileRef {
	if shift {
		return t.deleteAtPoint(p)
	}

	// A plain click with nothing selected starts a new shape.
	if t.mode == ModeIdle && t.currentVolumeID == 0 {
		t.mode = ModeCreating
	}
	if t.mode != ModeCreating {
		return nil
	}

	// Clicking on the last placed point, or clicking with the finish
	// modifier, commits the shape instead of adding a point.
	if len(t.pts) > 0 && (finish || p.Dist2(t.pts[len(t.pts)-1]) < t.snapDist*t.snapDist) {
		return t.CreateShape()
	}

	t.pts = append(t.pts, p)
	if len(t.pts) >= 2 {
		t.hull = geom.ConvexHull(t.pts)
	} else {
		t.hull = nil
	}
	return nil
}

// deleteAtPoint deletes the first persisted volume, in store order,
// that contains p. The first-match rule is deliberate documented
// behavior; there is no nearest-centroid tie-break among overlapping
// volumes. The deleted volume's tile impact is captured before the
// delete so those tiles can be rebuilt without its influence.
func (t *ConvexVolumeTool) deleteAtPoint(p math.Vec3) []navmesh.TileRef {
	for _, vol := range t.mesh.GetConvexVolumes() {
		if !vol.Contains(p) {
			continue
		}
		tiles := t.mesh.TilesIntersectingConvexVolume(vol.ID)
		t.mesh.DeleteConvexVolumeByID(vol.ID)
		if vol.ID == t.currentVolumeID {
			t.Reset()
		}
		t.log.Info("deleted convex volume at point",
			zap.Uint32("id", vol.ID),
			zap.Int("tiles", len(tiles)))
		t.dispatch(tiles)
		return tiles
	}
	return nil
}

// CreateShape commits the in-progress shape as a new volume. It
// requires a hull of more than 2 points; otherwise nothing is
// persisted. Either way the session resets to idle. The volume's base
// is the lowest hull point minus the box descent, its top the base
// plus the box height. A configured poly offset inflates the hull
// first, falling back to the raw hull if the offset degenerates.
func (t *ConvexVolumeTool) CreateShape() []navmesh.TileRef {
	var tiles []navmesh.TileRef

	if len(t.hull) > 2 {
		verts := make([]math.Vec3, len(t.hull))
		minh := t.pts[t.hull[0]].Y
		for i, idx := range t.hull {
			verts[i] = t.pts[idx]
			minh = min(minh, verts[i].Y)
		}
		minh -= t.boxDescent
		maxh := minh + t.boxHeight

		shape := verts
		if t.polyOffset > offsetEpsilon {
			if offset := geom.OffsetPolygon(verts, t.polyOffset); len(offset) > 0 {
				shape = offset
			} else {
				t.log.Debug("poly offset degenerated, using raw hull",
					zap.Float32("offset", t.polyOffset))
			}
		}

		if vol := t.mesh.AddConvexVolume(shape, t.name, minh, maxh, t.areaType); vol != nil {
			tiles = t.mesh.TilesIntersectingConvexVolume(vol.ID)
			t.log.Info("created convex volume",
				zap.Uint32("id", vol.ID),
				zap.Int("verts", len(shape)),
				zap.Int("tiles", len(tiles)))
		}
	}

	t.Reset()
	t.dispatch(tiles)
	return tiles
}

// SelectVolume switches the session to editing the given persisted
// volume, working on a private copy. Selecting an id that no longer
// exists leaves the session untouched.
func (t *ConvexVolumeTool) SelectVolume(id uint32) bool {
	vol := t.mesh.GetConvexVolumeByID(id)
	if vol == nil {
		t.log.Debug("select of missing convex volume ignored", zap.Uint32("id", id))
		return false
	}
	t.Reset()
	t.mode = ModeEditing
	t.editVolume = vol.Clone()
	t.currentVolumeID = id
	return true
}

// SaveChanges writes the working copy's mutable fields back onto the
// persisted volume and reports the tiles to rebuild. It does nothing
// unless the session is editing and a field was changed. If the
// volume was deleted meanwhile the save is treated as already
// satisfied and the tile set is empty. The session returns to idle.
func (t *ConvexVolumeTool) SaveChanges() []navmesh.TileRef {
	if t.mode != ModeEditing || !t.modified {
		return nil
	}

	id := t.currentVolumeID
	var tiles []navmesh.TileRef
	if t.mesh.SaveConvexVolume(t.editVolume) {
		tiles = t.mesh.TilesIntersectingConvexVolume(id)
		t.log.Info("saved convex volume",
			zap.Uint32("id", id),
			zap.Int("tiles", len(tiles)))
	}

	t.Reset()
	t.dispatch(tiles)
	return tiles
}

// DeleteSelected removes the currently selected volume and reports
// its prior tile impact. No-op when nothing is selected.
func (t *ConvexVolumeTool) DeleteSelected() []navmesh.TileRef {
	if t.currentVolumeID == 0 {
		return nil
	}

	id := t.currentVolumeID
	tiles := t.mesh.TilesIntersectingConvexVolume(id)
	t.mesh.DeleteConvexVolumeByID(id)
	t.Reset()
	t.log.Info("deleted selected convex volume",
		zap.Uint32("id", id),
		zap.Int("tiles", len(tiles)))
	t.dispatch(tiles)
	return tiles
}

// dispatch hands a non-empty tile set to the rebuilder. Empty sets
// are never dispatched; unaffected tiles must not be rebuilt.
func (t *ConvexVolumeTool) dispatch(tiles []navmesh.TileRef) {
	if len(tiles) > 0 && t.rebuilder != nil {
		t.rebuilder.RebuildTiles(tiles)
	}
}

// SetName names the volume being created, or renames the working copy
// when editing.
func (t *ConvexVolumeTool) SetName(name string) {
	if t.mode == ModeEditing {
		if t.editVolume.Name != name {
			t.editVolume.Name = name
			t.modified = true
		}
		return
	}
	t.name = name
}

// SetAreaType tags the volume being created, or re-tags the working
// copy when editing.
func (t *ConvexVolumeTool) SetAreaType(area navmesh.AreaID) {
	if t.mode == ModeEditing {
		if t.editVolume.AreaType != area {
			t.editVolume.AreaType = area
			t.modified = true
		}
		return
	}
	t.areaType = area
}

// SetHeightMin adjusts the working copy's base height. Only
// meaningful while editing.
func (t *ConvexVolumeTool) SetHeightMin(h float32) {
	if t.mode != ModeEditing || t.editVolume.HMin == h {
		return
	}
	t.editVolume.HMin = h
	t.modified = true
}

// SetHeightMax adjusts the working copy's top height. Only meaningful
// while editing.
func (t *ConvexVolumeTool) SetHeightMax(h float32) {
	if t.mode != ModeEditing || t.editVolume.HMax == h {
		return
	}
	t.editVolume.HMax = h
	t.modified = true
}

// SetBoxHeight sets the vertical size used for newly created volumes.
func (t *ConvexVolumeTool) SetBoxHeight(h float32) { t.boxHeight = h }

// SetBoxDescent sets the base drop used for newly created volumes.
func (t *ConvexVolumeTool) SetBoxDescent(d float32) { t.boxDescent = d }

// SetPolyOffset sets the hull inflation used for newly created
// volumes.
func (t *ConvexVolumeTool) SetPolyOffset(o float32) { t.polyOffset = o }

// Mode returns the session state.
func (t *ConvexVolumeTool) Mode() Mode { return t.mode }

// PointCount returns the number of accumulated raw points.
func (t *ConvexVolumeTool) PointCount() int { return len(t.pts) }

// HullCount returns the number of points on the current hull.
func (t *ConvexVolumeTool) HullCount() int { return len(t.hull) }

// CurrentVolumeID returns the id of the volume being edited, 0 if
// none.
func (t *ConvexVolumeTool) CurrentVolumeID() uint32 { return t.currentVolumeID }

// Modified reports whether the working copy has unsaved changes.
func (t *ConvexVolumeTool) Modified() bool { return t.modified }

// Points returns the accumulated raw points for preview rendering.
func (t *ConvexVolumeTool) Points() []math.Vec3 {
	out := make([]math.Vec3, len(t.pts))
	copy(out, t.pts)
	return out
}

// HullVerts returns the current hull polygon for preview rendering,
// in hull order.
func (t *ConvexVolumeTool) HullVerts() []math.Vec3 {
	out := make([]math.Vec3, len(t.hull))
	for i, idx := range t.hull {
		out[i] = t.pts[idx]
	}
	return out
}

// EditVolume returns a copy of the working volume being edited.
func (t *ConvexVolumeTool) EditVolume() navmesh.ConvexVolume {
	return t.editVolume.Clone()
}
