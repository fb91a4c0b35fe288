// Package canvas provides the declarative shapes an external renderer draws
// over the reference photo.
package canvas

import (
	"image/color"

	"region-tracer/internal/document"
	"region-tracer/pkg/colorutil"
	"region-tracer/pkg/geometry"
)

// Render constants shared with the exported document.
const (
	FillOpacity   = 0.32
	StrokeWidth   = 2.0
	MarkerRadius  = 5.0
	VertexRadius  = 3.0
	DraftStroke   = 2.0
	fallbackColor = colorutil.DefaultColor
)

// MarkerKind distinguishes point markers.
type MarkerKind int

const (
	MarkerVertex MarkerKind = iota // vertex of a committed region
	MarkerDraft                    // vertex of the region being drawn
	MarkerProbe                    // calibration probe point
)

// Overlay is everything the renderer needs for one frame.
type Overlay struct {
	Width, Height int
	ImageRef      string
	Polygons      []OverlayPolygon
	Polylines     []OverlayPolyline
	Markers       []Marker
}

// OverlayPolygon represents a committed region to draw on the overlay.
type OverlayPolygon struct {
	RegionID    string
	Points      []geometry.Point2D // Polygon vertices in canvas coordinates
	Label       string             // Region name
	LabelAt     geometry.Point2D   // Vertex centroid, a hint for label placement
	Fill        color.NRGBA        // Fill colour with FillOpacity applied
	Stroke      color.RGBA
	StrokeWidth float64
}

// OverlayPolyline is an open path, used for the draft's edges.
type OverlayPolyline struct {
	Points      []geometry.Point2D
	Stroke      color.RGBA
	StrokeWidth float64
}

// Marker is a small circle at a point.
type Marker struct {
	Center geometry.Point2D
	Radius float64
	Kind   MarkerKind
}

// Project derives the overlay from the document, the draft vertices and the
// calibration probe. It holds no state of its own.
func Project(doc *document.Document, draftPts, probe []geometry.Point2D, draftColor string) Overlay {
	ov := Overlay{}
	if doc != nil {
		ov.Width, ov.Height, ov.ImageRef = doc.Width, doc.Height, doc.ImageRef
		for _, r := range doc.Regions() {
			stroke := resolve(r.Color)
			pts := append([]geometry.Point2D(nil), r.Points...)
			ov.Polygons = append(ov.Polygons, OverlayPolygon{
				RegionID:    r.ID,
				Points:      pts,
				Label:       r.Name,
				LabelAt:     geometry.Centroid(pts),
				Fill:        colorutil.WithAlpha(stroke, FillOpacity),
				Stroke:      stroke,
				StrokeWidth: StrokeWidth,
			})
			for _, p := range pts {
				ov.Markers = append(ov.Markers, Marker{Center: p, Radius: VertexRadius, Kind: MarkerVertex})
			}
		}
	}

	if len(draftPts) > 1 {
		ov.Polylines = append(ov.Polylines, OverlayPolyline{
			Points:      append([]geometry.Point2D(nil), draftPts...),
			Stroke:      resolve(draftColor),
			StrokeWidth: DraftStroke,
		})
	}
	for _, p := range draftPts {
		ov.Markers = append(ov.Markers, Marker{Center: p, Radius: MarkerRadius, Kind: MarkerDraft})
	}
	for _, p := range probe {
		ov.Markers = append(ov.Markers, Marker{Center: p, Radius: MarkerRadius, Kind: MarkerProbe})
	}
	return ov
}

func resolve(c string) color.RGBA {
	if rgba, ok := colorutil.ParseRGBA(c); ok {
		return rgba
	}
	rgba, _ := colorutil.ParseRGBA(fallbackColor)
	return rgba
}
