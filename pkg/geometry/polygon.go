package geometry

import "math"

// Area returns the absolute area of a polygon using the shoelace formula.
// The vertex sequence is treated as closed. Fewer than 3 points yields 0.
func Area(polygon []Point2D) float64 {
	return math.Abs(SignedArea(polygon))
}

// SignedArea returns the signed shoelace area. It is positive when the
// vertices run counter-clockwise in a y-up frame (clockwise on screen).
func SignedArea(polygon []Point2D) float64 {
	n := len(polygon)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
	}
	return sum / 2
}

// PointInPolygon tests if a point is inside a polygon using even-odd ray casting.
//
// Edges are half-open: an edge counts as crossed when one endpoint lies
// strictly below the point's y and the other at or above it, and the crossing
// lies strictly to the right of the point. For an axis-aligned rectangle this
// makes the minimum-x and minimum-y sides inside and the maximum sides outside,
// so two rectangles sharing a side never both claim a point on it.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		// Check if ray from p going right intersects edge pi-pj
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}

// HitTest returns the index of the topmost polygon containing p, or -1.
// Later polygons are on top, so the scan runs from the end.
func HitTest(p Point2D, polygons [][]Point2D) int {
	for i := len(polygons) - 1; i >= 0; i-- {
		if !BoundingBox(polygons[i]).Contains(p) {
			continue
		}
		if PointInPolygon(p, polygons[i]) {
			return i
		}
	}
	return -1
}

// Nearest returns the candidate closest to p within threshold. Ties go to the
// later candidate. ok is false when nothing lies within threshold.
func Nearest(p Point2D, candidates []Point2D, threshold float64) (best Point2D, ok bool) {
	bestDist := threshold
	for _, c := range candidates {
		if d := p.Distance(c); d <= bestDist {
			bestDist = d
			best = c
			ok = true
		}
	}
	return best, ok
}
