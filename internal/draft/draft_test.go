package draft_test

import (
	"testing"

	"region-tracer/internal/document"
	"region-tracer/internal/draft"
	"region-tracer/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_InactiveIgnoresVertices(t *testing.T) {
	var b draft.Builder
	assert.False(t, b.AddVertex(geometry.Point2D{X: 1, Y: 1}))
	assert.Zero(t, b.Len())
	assert.ErrorIs(t, b.Undo(), draft.ErrNothingToUndo)
	_, err := b.Close("#fff", "white")
	assert.ErrorIs(t, err, draft.ErrNotActive)
}

func TestBuilder_UndoThenCloseFails(t *testing.T) {
	var b draft.Builder
	b.Begin()
	b.AddVertex(geometry.Point2D{X: 0, Y: 0})
	b.AddVertex(geometry.Point2D{X: 10, Y: 0})
	b.AddVertex(geometry.Point2D{X: 10, Y: 10})

	require.NoError(t, b.Undo())
	require.NoError(t, b.Undo())
	assert.Equal(t, 1, b.Len())

	_, err := b.Close("#fff", "white")
	assert.ErrorIs(t, err, draft.ErrTooFewPoints)
	assert.True(t, b.Active(), "failed close leaves the draft open")
	assert.Equal(t, 1, b.Len())
}

func TestBuilder_Close(t *testing.T) {
	var b draft.Builder
	b.Begin()
	for _, p := range []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}} {
		require.True(t, b.AddVertex(p))
	}
	require.True(t, b.CanClose())

	r, err := b.Close("#42a5f5", "Water")
	require.NoError(t, err)
	assert.Equal(t, "#42a5f5", r.Color)
	assert.Equal(t, "Water", r.Name)
	assert.Len(t, r.Points, 3)
	assert.False(t, b.Active())
	assert.Zero(t, b.Len())
}

func TestBuilder_BeginClearsPrevious(t *testing.T) {
	var b draft.Builder
	b.Begin()
	b.AddVertex(geometry.Point2D{X: 1, Y: 1})
	b.Begin()
	assert.Zero(t, b.Len())
	assert.True(t, b.Active())
}

func TestSnap_OnlyFirstRegionAttracts(t *testing.T) {
	doc := document.New(500, 500, "")
	first, err := document.NewRegion([]geometry.Point2D{{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 200, Y: 200}}, "#a00", "A")
	require.NoError(t, err)
	second, err := document.NewRegion([]geometry.Point2D{{X: 300, Y: 300}, {X: 400, Y: 300}, {X: 400, Y: 400}}, "#0a0", "B")
	require.NoError(t, err)
	require.NoError(t, doc.Add(first))
	require.NoError(t, doc.Add(second))

	assert.Equal(t, geometry.Point2D{X: 200, Y: 100}, draft.Snap(geometry.Point2D{X: 190.5, Y: 104}, doc, 20))
	assert.Equal(t, geometry.Point2D{X: 305, Y: 302}, draft.Snap(geometry.Point2D{X: 305, Y: 302}, doc, 20))
	assert.Equal(t, geometry.Point2D{X: 150, Y: 150}, draft.Snap(geometry.Point2D{X: 150, Y: 150}, doc, 20))
}

func TestSnap_Threshold(t *testing.T) {
	doc := document.New(500, 500, "")
	r, err := document.NewRegion([]geometry.Point2D{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}}, "#a00", "A")
	require.NoError(t, err)
	require.NoError(t, doc.Add(r))

	p := geometry.Point2D{X: 108, Y: 0}
	assert.Equal(t, p, draft.Snap(p, doc, 5))
	assert.Equal(t, geometry.Point2D{X: 100, Y: 0}, draft.Snap(p, doc, 8))
	assert.Equal(t, p, draft.Snap(p, document.New(10, 10, ""), 50))
}
