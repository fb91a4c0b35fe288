// Package draft accumulates the vertices of the region being drawn.
package draft

import (
	"errors"

	"region-tracer/internal/document"
	"region-tracer/pkg/geometry"
)

var (
	ErrNotActive     = errors.New("draft: not drawing")
	ErrNothingToUndo = errors.New("draft: no vertex to undo")
	ErrTooFewPoints  = errors.New("draft: at least 3 vertices are needed to close")
)

// Builder holds the in-progress vertex sequence. The zero value is inactive.
type Builder struct {
	points []geometry.Point2D
	active bool
}

// Begin discards any previous draft and starts a new one.
func (b *Builder) Begin() {
	b.points = nil
	b.active = true
}

// Reset discards the draft and deactivates the builder.
func (b *Builder) Reset() {
	b.points = nil
	b.active = false
}

// Active reports whether a draft is open.
func (b *Builder) Active() bool {
	return b.active
}

// Len returns the number of vertices placed.
func (b *Builder) Len() int {
	return len(b.points)
}

// CanClose reports whether Close would succeed.
func (b *Builder) CanClose() bool {
	return b.active && len(b.points) >= document.MinPoints
}

// Points returns a copy of the draft vertices.
func (b *Builder) Points() []geometry.Point2D {
	out := make([]geometry.Point2D, len(b.points))
	copy(out, b.points)
	return out
}

// AddVertex appends p while active. It reports whether the vertex was added.
func (b *Builder) AddVertex(p geometry.Point2D) bool {
	if !b.active {
		return false
	}
	b.points = append(b.points, p)
	return true
}

// Undo removes the last vertex.
func (b *Builder) Undo() error {
	if !b.active || len(b.points) == 0 {
		return ErrNothingToUndo
	}
	b.points = b.points[:len(b.points)-1]
	return nil
}

// Close commits the draft as a region with the given colour and name. On
// failure the draft is left untouched.
func (b *Builder) Close(color, name string) (*document.Region, error) {
	if !b.active {
		return nil, ErrNotActive
	}
	if len(b.points) < document.MinPoints {
		return nil, ErrTooFewPoints
	}
	r, err := document.NewRegion(b.points, color, name)
	if err != nil {
		return nil, err
	}
	b.Reset()
	return r, nil
}
