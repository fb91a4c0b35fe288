// Package document holds the committed annotation set: canvas size, image
// reference, calibration scale and the ordered list of regions.
package document

import (
	"errors"

	"region-tracer/internal/calibration"
	"region-tracer/pkg/colorutil"
	"region-tracer/pkg/geometry"

	"github.com/google/uuid"
)

// MinPoints is the smallest vertex count of a committed region.
const MinPoints = 3

var (
	ErrTooFewPoints   = errors.New("document: region needs at least 3 points")
	ErrBadCalibration = errors.New("document: metres per pixel must be finite and positive")
)

// Region is a committed, coloured, named polygon.
type Region struct {
	ID     string
	Points []geometry.Point2D
	Color  string
	Name   string
}

// NewRegion copies points into a new region with a fresh ID. An empty name
// defaults to the colour value.
func NewRegion(points []geometry.Point2D, color, name string) (*Region, error) {
	if len(points) < MinPoints {
		return nil, ErrTooFewPoints
	}
	pts := make([]geometry.Point2D, len(points))
	copy(pts, points)
	if name == "" {
		name = color
	}
	return &Region{
		ID:     uuid.NewString(),
		Points: pts,
		Color:  color,
		Name:   name,
	}, nil
}

// Area returns the region's area in pixel².
func (r *Region) Area() float64 {
	return geometry.Area(r.Points)
}

// Contains reports whether p is inside the region.
func (r *Region) Contains(p geometry.Point2D) bool {
	return geometry.PointInPolygon(p, r.Points)
}

// Document is the single source of truth for one annotation set.
type Document struct {
	Width    int
	Height   int
	ImageRef string // data URI or external reference; empty when image-less

	regions        []*Region
	metersPerPixel float64 // 0 means uncalibrated
}

// New creates an empty document.
func New(width, height int, imageRef string) *Document {
	return &Document{Width: width, Height: height, ImageRef: imageRef}
}

// HasImage reports whether an image reference is attached.
func (d *Document) HasImage() bool {
	return d.ImageRef != ""
}

// Len returns the number of regions.
func (d *Document) Len() int {
	return len(d.regions)
}

// Regions returns the regions in insertion (z-) order. The slice is a copy;
// the regions are shared.
func (d *Document) Regions() []*Region {
	out := make([]*Region, len(d.regions))
	copy(out, d.regions)
	return out
}

// Region returns the region with the given ID, or nil.
func (d *Document) Region(id string) *Region {
	if i := d.indexOf(id); i >= 0 {
		return d.regions[i]
	}
	return nil
}

// Add appends a region on top of the stack.
func (d *Document) Add(r *Region) error {
	if r == nil || len(r.Points) < MinPoints {
		return ErrTooFewPoints
	}
	d.regions = append(d.regions, r)
	return nil
}

// Remove deletes exactly one region, preserving the order of the rest.
func (d *Document) Remove(id string) bool {
	i := d.indexOf(id)
	if i < 0 {
		return false
	}
	d.regions = append(d.regions[:i:i], d.regions[i+1:]...)
	return true
}

func (d *Document) indexOf(id string) int {
	for i, r := range d.regions {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// RegionAt returns the topmost region containing p, or nil.
func (d *Document) RegionAt(p geometry.Point2D) *Region {
	polys := make([][]geometry.Point2D, len(d.regions))
	for i, r := range d.regions {
		polys[i] = r.Points
	}
	if i := geometry.HitTest(p, polys); i >= 0 {
		return d.regions[i]
	}
	return nil
}

// Recolor sets the colour and name of one region.
func (d *Document) Recolor(id, color, name string) bool {
	r := d.Region(id)
	if r == nil {
		return false
	}
	r.Color = color
	if name == "" {
		name = color
	}
	r.Name = name
	return true
}

// RelabelColor renames every region whose colour matches colorKey and
// returns how many changed.
func (d *Document) RelabelColor(colorKey, name string) int {
	n := 0
	for _, r := range d.regions {
		if colorutil.SameColor(r.Color, colorKey) {
			r.Name = name
			n++
		}
	}
	return n
}

// MetersPerPixel returns the calibration scale and whether one is set.
func (d *Document) MetersPerPixel() (float64, bool) {
	return d.metersPerPixel, d.metersPerPixel > 0
}

// SetMetersPerPixel installs a calibration scale.
func (d *Document) SetMetersPerPixel(mpp float64) error {
	if !calibration.Valid(mpp) {
		return ErrBadCalibration
	}
	d.metersPerPixel = mpp
	return nil
}

