package geom

import (
	"testing"

	"github.com/Amadeus-/MQ2Nav/pkg/math"
)

// square returns the corners of an axis-aligned square on the XZ
// plane with the given side length, at height y.
func square(side, y float32) []math.Vec3 {
	return []math.Vec3{
		{X: 0, Y: y, Z: 0},
		{X: side, Y: y, Z: 0},
		{X: side, Y: y, Z: side},
		{X: 0, Y: y, Z: side},
	}
}

func hullVerts(pts []math.Vec3, hull []int) []math.Vec3 {
	verts := make([]math.Vec3, len(hull))
	for i, idx := range hull {
		verts[i] = pts[idx]
	}
	return verts
}

func TestConvexHull_Square(t *testing.T) {
	pts := square(10, 0)
	hull := ConvexHull(pts)

	if len(hull) != 4 {
		t.Fatalf("hull size = %d, want 4", len(hull))
	}

	seen := make(map[int]bool)
	for _, idx := range hull {
		if idx < 0 || idx >= len(pts) {
			t.Fatalf("hull index %d out of range", idx)
		}
		if seen[idx] {
			t.Fatalf("hull index %d repeated", idx)
		}
		seen[idx] = true
	}
}

func TestConvexHull_InteriorPointsExcluded(t *testing.T) {
	pts := append(square(10, 0),
		math.Vec3{X: 5, Y: 0, Z: 5},
		math.Vec3{X: 2, Y: 0, Z: 7},
		math.Vec3{X: 8, Y: 0, Z: 3},
	)
	hull := ConvexHull(pts)

	if len(hull) != 4 {
		t.Fatalf("hull size = %d, want 4", len(hull))
	}

	// Every input point is on the hull or inside it.
	verts := hullVerts(pts, hull)
	onHull := make(map[int]bool)
	for _, idx := range hull {
		onHull[idx] = true
	}
	for i, p := range pts {
		if onHull[i] {
			continue
		}
		if !PointInPolygon(verts, p) {
			t.Errorf("point %d (%v) neither on hull nor inside it", i, p)
		}
	}
}

func TestConvexHull_WindingStable(t *testing.T) {
	pts := []math.Vec3{
		{X: 3, Z: 1}, {X: 0, Z: 4}, {X: 7, Z: 2},
		{X: 5, Z: 6}, {X: 1, Z: 0},
	}

	first := ConvexHull(pts)
	for i := 0; i < 10; i++ {
		again := ConvexHull(pts)
		if len(again) != len(first) {
			t.Fatalf("hull size changed: %d vs %d", len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("hull order changed at %d: %v vs %v", j, again, first)
			}
		}
	}
}

func TestConvexHull_Degenerate(t *testing.T) {
	if hull := ConvexHull(nil); hull != nil {
		t.Errorf("hull of nothing = %v, want nil", hull)
	}
	if hull := ConvexHull([]math.Vec3{{X: 1, Z: 1}}); hull != nil {
		t.Errorf("hull of single point = %v, want nil", hull)
	}

	// Two points wrap into a 2-element hull; callers reject it via
	// the len > 2 check.
	two := ConvexHull([]math.Vec3{{X: 0, Z: 0}, {X: 1, Z: 1}})
	if len(two) > 2 {
		t.Errorf("hull of two points = %v, want at most 2 indices", two)
	}
}

func TestPointInPolygon(t *testing.T) {
	verts := square(10, 0)

	tests := []struct {
		name string
		p    math.Vec3
		want bool
	}{
		{"centroid", math.Vec3{X: 5, Z: 5}, true},
		{"near corner", math.Vec3{X: 0.5, Z: 0.5}, true},
		{"outside right", math.Vec3{X: 15, Z: 5}, false},
		{"outside above", math.Vec3{X: 5, Z: 50}, false},
		{"far outside", math.Vec3{X: -1000, Z: -1000}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(verts, tt.p); got != tt.want {
				t.Errorf("PointInPolygon(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPointInPolygon_HeightIgnored(t *testing.T) {
	// The 2D test ignores Y entirely; the height-range check is the
	// caller's responsibility.
	verts := square(10, 0)
	p := math.Vec3{X: 5, Y: 9999, Z: 5}
	if !PointInPolygon(verts, p) {
		t.Error("Y should not affect the 2D containment test")
	}
}

func TestOffsetPolygon_GrowsOutward(t *testing.T) {
	verts := square(10, 2)
	out := OffsetPolygon(verts, 1.0)

	if len(out) < len(verts) {
		t.Fatalf("offset produced %d verts, want >= %d", len(out), len(verts))
	}
	if len(out) > 2*len(verts)+1 {
		t.Fatalf("offset produced %d verts, exceeds 2n+1 bound", len(out))
	}

	// Every source vertex lies inside the grown polygon.
	for i, v := range verts {
		if !PointInPolygon(out, v) {
			t.Errorf("source vertex %d (%v) outside offset polygon", i, v)
		}
	}

	// Heights are carried through.
	for i, v := range out {
		if v.Y != 2 {
			t.Errorf("offset vertex %d has Y = %v, want 2", i, v.Y)
		}
	}
}

func TestOffsetPolygon_Degenerate(t *testing.T) {
	two := []math.Vec3{{X: 0, Z: 0}, {X: 1, Z: 0}}
	if out := OffsetPolygon(two, 1.0); out != nil {
		t.Errorf("offset of degenerate polygon = %v, want nil", out)
	}
}
