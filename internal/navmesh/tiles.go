package navmesh

import (
	"github.com/dhconnelly/rtreego"

	"github.com/Amadeus-/MQ2Nav/pkg/math"
)

// TileRef identifies a built mesh tile; the unit of incremental
// rebuild. Refs are non-zero and stable for the lifetime of the tile.
type TileRef uint64

// Tile is a fixed-size axis-aligned cell of the mesh's horizontal
// grid, with the vertical bounds reported by the baking pipeline.
type Tile struct {
	Ref  TileRef
	X, Y int
	BMin math.Vec3
	BMax math.Vec3
}

// Bounds implements rtreego.Spatial so tiles can live in the spatial
// index.
func (t *Tile) Bounds() rtreego.Rect {
	return boundsRect(t.BMin, t.BMax)
}

// boundsRect builds an index rectangle from AABB corners. Degenerate
// extents (a flat tile, a volume with hmin == hmax) are padded so the
// rectangle stays valid; the padding only widens the query, keeping
// the overlap test conservative.
func boundsRect(bmin, bmax math.Vec3) rtreego.Rect {
	const pad = 1e-3
	origin := rtreego.Point{float64(bmin.X), float64(bmin.Y), float64(bmin.Z)}
	lengths := []float64{
		max(float64(bmax.X-bmin.X), pad),
		max(float64(bmax.Y-bmin.Y), pad),
		max(float64(bmax.Z-bmin.Z), pad),
	}
	rect, err := rtreego.NewRect(origin, lengths)
	if err != nil {
		// Lengths are clamped positive above; this cannot fail.
		panic(err)
	}
	return rect
}
