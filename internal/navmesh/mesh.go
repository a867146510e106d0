// Package navmesh maintains the editable navigation mesh state for
// the volume tool: the area type registry, the set of persisted
// convex volumes, and the spatial index of built tiles used to answer
// "which tiles does this volume touch".
//
// A Mesh is owned by a single editing session and must only be
// touched from that session's goroutine; the frame-driven edit loop
// is single-threaded and the mesh does no locking of its own.
package navmesh

import (
	"slices"

	"github.com/dhconnelly/rtreego"
	"go.uber.org/zap"

	"github.com/Amadeus-/MQ2Nav/pkg/math"
)

// rtreeMinBranch and rtreeMaxBranch size the tile index nodes.
const (
	rtreeMinBranch = 8
	rtreeMaxBranch = 16
)

// Mesh owns the tile grid, the built-tile spatial index, the convex
// volume store, and the area registry.
type Mesh struct {
	origin   math.Vec3
	tileSize float32

	tiles     map[TileRef]*Tile
	tileIndex *rtreego.Rtree
	nextTile  TileRef

	volumes    []*ConvexVolume
	nextVolume uint32

	areas *AreaRegistry

	// Set by any mutation of persisted volumes; consumed by the
	// persistence layer, which is outside this package.
	modified bool

	log *zap.Logger
}

// NewMesh creates an empty mesh with the given tile grid origin and
// tile size. A nil logger disables logging.
func NewMesh(origin math.Vec3, tileSize float32, areas *AreaRegistry, log *zap.Logger) *Mesh {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mesh{
		origin:     origin,
		tileSize:   tileSize,
		tiles:      make(map[TileRef]*Tile),
		tileIndex:  rtreego.NewTree(3, rtreeMinBranch, rtreeMaxBranch),
		nextTile:   1,
		nextVolume: 1,
		areas:      areas,
		log:        log,
	}
}

// Areas returns the mesh's area type registry.
func (m *Mesh) Areas() *AreaRegistry {
	return m.areas
}

// TileSize returns the edge length of a grid tile.
func (m *Mesh) TileSize() float32 {
	return m.tileSize
}

// AddTile registers a built tile at grid coordinate (x, y) with the
// given vertical extent, as reported by the baking pipeline, and
// returns its ref. Horizontal bounds come from the grid origin and
// tile size.
func (m *Mesh) AddTile(x, y int, minY, maxY float32) TileRef {
	tile := &Tile{
		Ref: m.nextTile,
		X:   x,
		Y:   y,
		BMin: math.Vec3{
			X: m.origin.X + float32(x)*m.tileSize,
			Y: minY,
			Z: m.origin.Z + float32(y)*m.tileSize,
		},
		BMax: math.Vec3{
			X: m.origin.X + float32(x+1)*m.tileSize,
			Y: maxY,
			Z: m.origin.Z + float32(y+1)*m.tileSize,
		},
	}
	m.nextTile++
	m.tiles[tile.Ref] = tile
	m.tileIndex.Insert(tile)
	return tile.Ref
}

// RemoveTile drops a tile from the grid and the spatial index.
func (m *Mesh) RemoveTile(ref TileRef) bool {
	tile, ok := m.tiles[ref]
	if !ok {
		return false
	}
	m.tileIndex.Delete(tile)
	delete(m.tiles, ref)
	return true
}

// TileCount returns the number of built tiles.
func (m *Mesh) TileCount() int {
	return len(m.tiles)
}

// AddConvexVolume persists a new volume with a fresh id and marks the
// mesh modified. A footprint with fewer than 3 vertices is rejected
// with a nil result; nothing is persisted.
func (m *Mesh) AddConvexVolume(verts []math.Vec3, name string, hmin, hmax float32, area AreaID) *ConvexVolume {
	if len(verts) < 3 {
		m.log.Warn("rejecting convex volume with degenerate footprint",
			zap.Int("verts", len(verts)))
		return nil
	}

	vol := &ConvexVolume{
		ID:       m.nextVolume,
		Name:     name,
		Verts:    slices.Clone(verts),
		HMin:     hmin,
		HMax:     hmax,
		AreaType: area,
	}
	m.nextVolume++
	m.volumes = append(m.volumes, vol)
	m.modified = true

	m.log.Debug("added convex volume",
		zap.Uint32("id", vol.ID),
		zap.String("name", name),
		zap.Int("verts", len(vol.Verts)),
		zap.Uint8("area", uint8(area)))
	return vol
}

// DeleteConvexVolumeByID removes a volume. Deleting an id that is not
// present is a no-op, reported in the log only.
func (m *Mesh) DeleteConvexVolumeByID(id uint32) bool {
	for i, vol := range m.volumes {
		if vol.ID == id {
			m.volumes = append(m.volumes[:i], m.volumes[i+1:]...)
			m.modified = true
			m.log.Debug("deleted convex volume", zap.Uint32("id", id))
			return true
		}
	}
	m.log.Debug("delete of missing convex volume ignored", zap.Uint32("id", id))
	return false
}

// GetConvexVolumeByID returns the volume with the given id, or nil.
// Callers must treat nil as non-fatal; the volume may have been
// deleted earlier in the same session.
func (m *Mesh) GetConvexVolumeByID(id uint32) *ConvexVolume {
	for _, vol := range m.volumes {
		if vol.ID == id {
			return vol
		}
	}
	return nil
}

// GetConvexVolumes returns the volumes in creation order.
func (m *Mesh) GetConvexVolumes() []*ConvexVolume {
	return slices.Clone(m.volumes)
}

// GetConvexVolumeCount returns the number of persisted volumes.
func (m *Mesh) GetConvexVolumeCount() int {
	return len(m.volumes)
}

// SaveConvexVolume copies the mutable fields of v onto the persisted
// volume with the same id and marks the mesh modified. If that volume
// was deleted meanwhile the save is a no-op and SaveConvexVolume
// returns false.
func (m *Mesh) SaveConvexVolume(v ConvexVolume) bool {
	vol := m.GetConvexVolumeByID(v.ID)
	if vol == nil {
		m.log.Debug("save of missing convex volume ignored", zap.Uint32("id", v.ID))
		return false
	}

	vol.AreaType = v.AreaType
	vol.HMin = v.HMin
	vol.HMax = v.HMax
	vol.Name = v.Name
	vol.Verts = slices.Clone(v.Verts)
	m.modified = true

	m.log.Debug("saved convex volume", zap.Uint32("id", v.ID))
	return true
}

// TilesIntersectingConvexVolume returns the refs of every built tile
// whose bounds overlap the volume's axis-aligned bounding box,
// vertical extent included. The test is deliberately conservative:
// over-reporting a tile costs a redundant rebuild, under-reporting
// would leave stale pathfinding data behind. An absent volume id, or
// a footprint entirely outside the tile grid, yields an empty set.
func (m *Mesh) TilesIntersectingConvexVolume(id uint32) []TileRef {
	vol := m.GetConvexVolumeByID(id)
	if vol == nil || len(vol.Verts) == 0 {
		return nil
	}

	bmin, bmax := vol.BoundingBox()
	hits := m.tileIndex.SearchIntersect(boundsRect(bmin, bmax))

	refs := make([]TileRef, 0, len(hits))
	for _, hit := range hits {
		refs = append(refs, hit.(*Tile).Ref)
	}
	slices.Sort(refs)
	return refs
}

// Modified reports whether persisted volume state has changed since
// the last ClearModified.
func (m *Mesh) Modified() bool {
	return m.modified
}

// ClearModified resets the dirty flag, typically after the
// persistence layer has written the mesh out.
func (m *Mesh) ClearModified() {
	m.modified = false
}
