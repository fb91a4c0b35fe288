package document_test

import (
	"testing"

	"region-tracer/internal/document"
	"region-tracer/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x, y, size float64) []geometry.Point2D {
	return []geometry.Point2D{{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size}}
}

func mustRegion(t *testing.T, pts []geometry.Point2D, color, name string) *document.Region {
	t.Helper()
	r, err := document.NewRegion(pts, color, name)
	require.NoError(t, err)
	return r
}

func TestNewRegion(t *testing.T) {
	_, err := document.NewRegion(square(0, 0, 10)[:2], "#fff", "x")
	assert.ErrorIs(t, err, document.ErrTooFewPoints)

	pts := square(0, 0, 10)
	r := mustRegion(t, pts, "#ff7043", "")
	assert.Equal(t, "#ff7043", r.Name)
	assert.NotEmpty(t, r.ID)

	pts[0].X = 99
	assert.Equal(t, 0.0, r.Points[0].X, "points are copied on commit")
}

func TestDocument_RemoveIsExact(t *testing.T) {
	doc := document.New(200, 200, "")
	a := mustRegion(t, square(0, 0, 10), "#a00", "A")
	r := mustRegion(t, square(20, 20, 10), "#0a0", "R")
	c := mustRegion(t, square(40, 40, 10), "#00a", "C")
	for _, reg := range []*document.Region{a, r, c} {
		require.NoError(t, doc.Add(reg))
	}

	aPts := append([]geometry.Point2D(nil), a.Points...)
	cPts := append([]geometry.Point2D(nil), c.Points...)

	assert.True(t, doc.Remove(r.ID))
	got := doc.Regions()
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, c.ID, got[1].ID)
	assert.Equal(t, aPts, got[0].Points)
	assert.Equal(t, cPts, got[1].Points)

	assert.False(t, doc.Remove(r.ID))
}

func TestDocument_RegionAtPrefersLatest(t *testing.T) {
	doc := document.New(200, 200, "")
	a := mustRegion(t, square(0, 0, 50), "#a00", "A")
	b := mustRegion(t, square(25, 25, 50), "#0a0", "B")
	require.NoError(t, doc.Add(a))
	require.NoError(t, doc.Add(b))

	assert.Equal(t, b, doc.RegionAt(geometry.Point2D{X: 30, Y: 30}))
	assert.Equal(t, a, doc.RegionAt(geometry.Point2D{X: 5, Y: 5}))
	assert.Nil(t, doc.RegionAt(geometry.Point2D{X: 150, Y: 150}))
}

func TestDocument_RelabelColor(t *testing.T) {
	doc := document.New(100, 100, "")
	require.NoError(t, doc.Add(mustRegion(t, square(0, 0, 5), "#FF7043", "old")))
	require.NoError(t, doc.Add(mustRegion(t, square(10, 10, 5), "#66bb6a", "green")))
	require.NoError(t, doc.Add(mustRegion(t, square(20, 20, 5), " #ff7043", "old")))

	assert.Equal(t, 2, doc.RelabelColor("#ff7043", "roof"))
	regs := doc.Regions()
	assert.Equal(t, "roof", regs[0].Name)
	assert.Equal(t, "green", regs[1].Name)
	assert.Equal(t, "roof", regs[2].Name)
}

func TestDocument_Calibration(t *testing.T) {
	doc := document.New(100, 100, "")
	_, ok := doc.MetersPerPixel()
	assert.False(t, ok)

	assert.ErrorIs(t, doc.SetMetersPerPixel(0), document.ErrBadCalibration)
	assert.ErrorIs(t, doc.SetMetersPerPixel(-1), document.ErrBadCalibration)
	require.NoError(t, doc.SetMetersPerPixel(0.1))
	mpp, ok := doc.MetersPerPixel()
	assert.True(t, ok)
	assert.Equal(t, 0.1, mpp)
}

func TestDocument_AreaSummary(t *testing.T) {
	doc := document.New(500, 500, "")
	require.NoError(t, doc.Add(mustRegion(t, square(0, 0, 100), "#ff7043", "Roof")))
	require.NoError(t, doc.Add(mustRegion(t, square(200, 200, 10), "#66bb6a", "Lawn")))
	require.NoError(t, doc.Add(mustRegion(t, square(300, 300, 100), "#FF7043", "Roof")))

	t.Run("pixels", func(t *testing.T) {
		sum := doc.AreaSummary()
		require.Len(t, sum, 2)
		assert.Equal(t, "Roof", sum[0].Name)
		assert.Equal(t, 2, sum[0].Count)
		assert.Equal(t, 20000.0, sum[0].PixelArea)
		assert.Equal(t, "20,000 px2", sum[0].Format(nil))
		assert.Equal(t, "Lawn", sum[1].Name)
		assert.Equal(t, "100 px2", sum[1].Format(nil))
	})

	t.Run("calibrated", func(t *testing.T) {
		require.NoError(t, doc.SetMetersPerPixel(0.1))
		sum := doc.AreaSummary()
		assert.True(t, sum[0].Calibrated)
		assert.InDelta(t, 200.0, sum[0].SquareMeters, 1e-9)
		assert.InDelta(t, 1.0, sum[1].SquareMeters, 1e-9)
		assert.Equal(t, "1 m2", sum[1].Format(nil))
	})
}
