package replay_test

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"region-tracer/internal/app"
	"region-tracer/internal/replay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const session = `
image: photo.png
steps:
  - calibrate: {from: [0, 0], to: [100, 0], meters: "10"}
  - draw: [[10, 10], [110, 10], [110, 110], [10, 110]]
  - select: "#42a5f5"
  - draw: [[150, 150], [190, 150], [190, 190]]
  - recolor: {at: [50, 50], color: "#66bb6a"}
  - rename: {color: "#66bb6a", name: Lawn}
  - delete: [180, 155]
`

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestParse(t *testing.T) {
	s, err := replay.Parse(strings.NewReader(session))
	require.NoError(t, err)
	assert.Equal(t, "photo.png", s.Image)
	require.Len(t, s.Steps, 7)
	assert.Equal(t, "calibrate", s.Steps[0].Name())
	assert.Equal(t, "10", s.Steps[0].Calibrate.Meters)
	assert.Equal(t, replay.XY{110, 10}, s.Steps[1].Draw[1])
	assert.Equal(t, "delete", s.Steps[6].Name())
}

func TestParse_Invalid(t *testing.T) {
	_, err := replay.Parse(strings.NewReader("steps:\n  - {}\n"))
	assert.ErrorIs(t, err, replay.ErrBadStep)

	_, err = replay.Parse(strings.NewReader("steps:\n  - select: red\n    delete: [1, 2]\n"))
	assert.ErrorIs(t, err, replay.ErrBadStep)

	_, err = replay.Parse(strings.NewReader("steps:\n  - paint: red\n"))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "photo.png"), 300, 200)
	scriptPath := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(scriptPath, []byte(session), 0644))

	s, err := replay.Load(scriptPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "photo.png"), s.Image)

	e := app.New()
	require.NoError(t, s.Run(e))

	regions := e.Document().Regions()
	require.Len(t, regions, 1)
	assert.Equal(t, "#66bb6a", regions[0].Color)
	assert.Equal(t, "Lawn", regions[0].Name)
	assert.Equal(t, app.ModeIdle, e.Mode())

	totals, err := e.CalculateAreas()
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.InDelta(t, 100.0, totals[0].SquareMeters, 1e-9)
}

func TestRun_StopsAtFailure(t *testing.T) {
	s, err := replay.Parse(strings.NewReader("steps:\n  - draw: [[1, 1], [5, 1], [5, 5]]\n"))
	require.NoError(t, err)
	err = s.Run(app.New())
	assert.ErrorIs(t, err, app.ErrNoImage)
	assert.Contains(t, err.Error(), "step 1 (draw)")
}
