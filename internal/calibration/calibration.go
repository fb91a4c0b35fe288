// Package calibration turns a two-point pixel measurement and a user-supplied
// real distance into a metres-per-pixel scale.
package calibration

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"region-tracer/pkg/geometry"
)

var (
	ErrNotCalibrating  = errors.New("calibration: not in progress")
	ErrZeroDistance    = errors.New("calibration: probe points are 0px apart")
	ErrCancelled       = errors.New("calibration: cancelled")
	ErrInvalidDistance = errors.New("calibration: distance must be a positive number")
)

// State is the calibration state machine position.
type State int

const (
	Idle State = iota
	Collecting       // waiting for probe points
	AwaitingDistance // both points placed, waiting for the real distance
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case AwaitingDistance:
		return "awaiting-distance"
	default:
		return "idle"
	}
}

// Step tells the caller what the unit needs next after a probe point.
type Step int

const (
	StepNeedSecondPoint Step = iota
	StepNeedDistance
)

// Unit is the calibration state machine. It never holds the resulting scale;
// the document owns that.
type Unit struct {
	state         State
	probe         []geometry.Point2D
	pixelDistance float64
}

// Begin clears any probe and starts collecting points.
func (u *Unit) Begin() {
	u.reset()
	u.state = Collecting
}

// Cancel abandons an attempt in any state.
func (u *Unit) Cancel() {
	u.reset()
}

func (u *Unit) reset() {
	u.state = Idle
	u.probe = u.probe[:0]
	u.pixelDistance = 0
}

// State returns the current state.
func (u *Unit) State() State {
	return u.state
}

// Active reports whether an attempt is in progress.
func (u *Unit) Active() bool {
	return u.state != Idle
}

// Probe returns a copy of the probe points collected so far.
func (u *Unit) Probe() []geometry.Point2D {
	out := make([]geometry.Point2D, len(u.probe))
	copy(out, u.probe)
	return out
}

// PixelDistance returns the measured distance once both points are placed.
func (u *Unit) PixelDistance() float64 {
	return u.pixelDistance
}

// AddProbePoint records a probe point. The second point measures the segment;
// a zero-length segment aborts the attempt with ErrZeroDistance.
func (u *Unit) AddProbePoint(p geometry.Point2D) (Step, error) {
	if u.state != Collecting {
		return 0, ErrNotCalibrating
	}
	u.probe = append(u.probe, p)
	if len(u.probe) == 1 {
		return StepNeedSecondPoint, nil
	}

	d := u.probe[0].Distance(u.probe[1])
	if d == 0 {
		u.reset()
		return 0, ErrZeroDistance
	}
	u.pixelDistance = d
	u.state = AwaitingDistance
	return StepNeedDistance, nil
}

// Complete answers the distance request with free text. The attempt ends
// whatever the outcome; on success the new metres-per-pixel is returned.
// Empty input counts as a cancellation.
func (u *Unit) Complete(input string) (float64, error) {
	if u.state != AwaitingDistance {
		return 0, ErrNotCalibrating
	}
	px := u.pixelDistance
	u.reset()

	meters, err := ParseDistance(input)
	if err != nil {
		return 0, err
	}
	return MetersPerPixel(meters, px)
}

// ParseDistance validates a free-text real-world distance in metres.
func ParseDistance(input string) (float64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, ErrCancelled
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, ErrInvalidDistance
	}
	return v, nil
}

// MetersPerPixel computes the scale for a segment of pixels length spanning meters.
func MetersPerPixel(meters, pixels float64) (float64, error) {
	if pixels <= 0 {
		return 0, ErrZeroDistance
	}
	mpp := meters / pixels
	if !Valid(mpp) {
		return 0, ErrInvalidDistance
	}
	return mpp, nil
}

// Valid reports whether mpp is usable as a scale: finite and strictly positive.
func Valid(mpp float64) bool {
	return mpp > 0 && !math.IsInf(mpp, 0) && !math.IsNaN(mpp)
}

// SquareMeters converts a pixel² area with the given scale.
func SquareMeters(px2, mpp float64) float64 {
	return px2 * mpp * mpp
}
