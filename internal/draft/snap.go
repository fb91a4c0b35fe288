package draft

import (
	"region-tracer/internal/document"
	"region-tracer/pkg/geometry"
)

// Snap replaces p with the nearest vertex of the document's first region when
// one lies within threshold pixels. Only the first region acts as a magnet so
// later regions can share its boundary exactly.
func Snap(p geometry.Point2D, doc *document.Document, threshold float64) geometry.Point2D {
	if doc == nil || doc.Len() == 0 || threshold <= 0 {
		return p
	}
	first := doc.Regions()[0]
	if v, ok := geometry.Nearest(p, first.Points, threshold); ok {
		return v
	}
	return p
}
