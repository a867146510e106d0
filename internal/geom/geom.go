// Package geom provides the 2D computational geometry used to carve
// convex volumes over a navmesh: convex hull construction,
// point-in-polygon testing, and polygon offsetting. All operations
// work on 3D points projected onto the horizontal (XZ) plane; Y is
// carried through untouched.
package geom

import (
	"github.com/Amadeus-/MQ2Nav/pkg/math"
)

// cmppt reports whether a sorts before b on the horizontal plane:
// smaller X first, ties broken by smaller Z.
func cmppt(a, b math.Vec3) bool {
	if a.X < b.X {
		return true
	}
	if a.X > b.X {
		return false
	}
	return a.Z < b.Z
}

// left reports whether point c lies strictly to the left of the
// directed edge a->b on the XZ plane.
func left(a, b, c math.Vec3) bool {
	u := b.XZ().Sub(a.XZ())
	v := c.XZ().Sub(a.XZ())
	return u.Cross(v) < 0
}

// ConvexHull computes the convex hull of pts on the XZ plane using
// gift wrapping, starting from the lower-leftmost point. It returns
// the indices into pts of the hull vertices in consistent winding
// order. Fewer than 2 input points, or a degenerate wrap (all points
// coincident), yields nil; callers must check len(hull) > 2 before
// treating the result as a polygon.
func ConvexHull(pts []math.Vec3) []int {
	if len(pts) < 2 {
		return nil
	}

	// Find lower-leftmost point.
	hull := 0
	for i := 1; i < len(pts); i++ {
		if cmppt(pts[i], pts[hull]) {
			hull = i
		}
	}

	// Gift wrap: pick the next vertex so that all other points lie
	// to the right of the edge to it, until the wrap closes.
	out := make([]int, 0, len(pts))
	for {
		out = append(out, hull)
		endpt := 0
		for j := 1; j < len(pts); j++ {
			if hull == endpt || left(pts[hull], pts[endpt], pts[j]) {
				endpt = j
			}
		}
		hull = endpt
		if endpt == out[0] {
			return out
		}
		if len(out) > len(pts) {
			// Coincident/collinear degeneracy broke the wrap.
			return nil
		}
	}
}

// PointInPolygon reports whether p lies inside the polygon verts on
// the XZ plane, using the even-odd crossing rule. Points exactly on
// an edge may report either way. The vertical extent of a volume is
// checked separately by the caller; this test alone is necessary but
// not sufficient for containment in a volume.
func PointInPolygon(verts []math.Vec3, p math.Vec3) bool {
	c := false
	for i, j := 0, len(verts)-1; i < len(verts); j, i = i, i+1 {
		vi := verts[i]
		vj := verts[j]
		if ((vi.Z > p.Z) != (vj.Z > p.Z)) &&
			(p.X < (vj.X-vi.X)*(p.Z-vi.Z)/(vj.Z-vi.Z)+vi.X) {
			c = !c
		}
	}
	return c
}

// miterLimit is the ratio at which an offset corner miter becomes a
// bevel, matching stroke-miterlimit semantics.
const miterLimit = 1.20

const epsilon = 1e-6

// OffsetPolygon grows the convex polygon verts outward by offset on
// the XZ plane. Corners sharper than the miter limit are beveled, so
// the result may have up to 2*len(verts) vertices; if the offset
// degenerates (the output would exceed 2*len(verts)+1 vertices),
// OffsetPolygon returns nil and the caller should fall back to the
// unoffset polygon. Y values are carried from the source vertices.
func OffsetPolygon(verts []math.Vec3, offset float32) []math.Vec3 {
	n := len(verts)
	if n < 3 {
		return nil
	}
	maxOut := n*2 + 1
	out := make([]math.Vec3, 0, maxOut)

	for i := 0; i < n; i++ {
		va := verts[(i+n-1)%n]
		vb := verts[i]
		vc := verts[(i+1)%n]

		// Edge directions on the horizontal plane.
		prevDir := vb.XZ().Sub(va.XZ()).Normalize()
		currDir := vc.XZ().Sub(vb.XZ()).Normalize()

		// Sign of the turn at vb; negative means a convex corner in
		// this winding.
		cross := currDir.Cross(prevDir)

		prevNorm := prevDir.Perp()
		currNorm := currDir.Perp()

		// Averaged segment normals give the (unnormalized) miter
		// direction; its squared magnitude encodes how far the
		// corner must move relative to the edges.
		miter := prevNorm.Add(currNorm).Scale(0.5)
		miterSq := miter.Dot(miter)

		bevel := miterSq*miterLimit*miterLimit < 1.0
		if miterSq > epsilon {
			miter = miter.Scale(1.0 / miterSq)
		}

		if bevel && cross < 0 {
			if len(out)+2 > maxOut {
				return nil
			}
			// Two bevel vertices, each pushed out along its edge
			// normal and slid along the edge in proportion to the
			// corner angle.
			d := 1.0 - (prevDir.Dot(currDir))*0.5
			a := prevDir.Scale(d).Sub(prevNorm).Scale(offset)
			b := currDir.Scale(-d).Sub(currNorm).Scale(offset)
			out = append(out,
				math.Vec3{X: vb.X + a.X, Y: vb.Y, Z: vb.Z + a.Y},
				math.Vec3{X: vb.X + b.X, Y: vb.Y, Z: vb.Z + b.Y},
			)
		} else {
			if len(out)+1 > maxOut {
				return nil
			}
			m := miter.Scale(offset)
			out = append(out, math.Vec3{X: vb.X - m.X, Y: vb.Y, Z: vb.Z - m.Y})
		}
	}

	return out
}
