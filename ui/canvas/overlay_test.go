package canvas_test

import (
	"image/color"
	"testing"

	"region-tracer/internal/document"
	"region-tracer/pkg/geometry"
	"region-tracer/ui/canvas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	doc := document.New(300, 200, "data:image/png;base64,AA==")
	r, err := document.NewRegion([]geometry.Point2D{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 30}}, "#ff0000", "Red")
	require.NoError(t, err)
	require.NoError(t, doc.Add(r))

	draft := []geometry.Point2D{{X: 100, Y: 100}, {X: 120, Y: 100}}
	probe := []geometry.Point2D{{X: 5, Y: 5}}
	ov := canvas.Project(doc, draft, probe, "#0000ff")

	assert.Equal(t, 300, ov.Width)
	assert.Equal(t, 200, ov.Height)
	require.Len(t, ov.Polygons, 1)
	poly := ov.Polygons[0]
	assert.Equal(t, r.ID, poly.RegionID)
	assert.Equal(t, "Red", poly.Label)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, poly.Stroke)
	assert.Equal(t, color.NRGBA{R: 255, A: 82}, poly.Fill)
	assert.Equal(t, geometry.Point2D{X: 20, Y: 10}, poly.LabelAt)

	require.Len(t, ov.Polylines, 1)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, ov.Polylines[0].Stroke)

	kinds := map[canvas.MarkerKind]int{}
	for _, m := range ov.Markers {
		kinds[m.Kind]++
	}
	assert.Equal(t, 3, kinds[canvas.MarkerVertex])
	assert.Equal(t, 2, kinds[canvas.MarkerDraft])
	assert.Equal(t, 1, kinds[canvas.MarkerProbe])
}

func TestProject_UnknownColourFallsBack(t *testing.T) {
	doc := document.New(10, 10, "")
	r, err := document.NewRegion([]geometry.Point2D{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3}}, "url(#grad)", "odd")
	require.NoError(t, err)
	require.NoError(t, doc.Add(r))

	ov := canvas.Project(doc, nil, nil, "")
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x70, B: 0x43, A: 255}, ov.Polygons[0].Stroke)
	assert.Empty(t, ov.Polylines)
}
