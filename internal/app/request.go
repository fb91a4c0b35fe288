package app

import (
	"errors"
	"fmt"

	"region-tracer/internal/calibration"
	"region-tracer/internal/palette"
)

// RequestKind identifies what input the engine is waiting for.
type RequestKind int

const (
	RequestNone RequestKind = iota
	RequestCalibrationDistance
	RequestRename
)

func (k RequestKind) String() string {
	switch k {
	case RequestCalibrationDistance:
		return "calibration-distance"
	case RequestRename:
		return "rename"
	default:
		return "none"
	}
}

// Request asks the host for one line of text. The engine refuses clicks and
// mode changes until the host calls Submit or Cancel.
type Request struct {
	Kind     RequestKind
	Prompt   string
	Default  string
	ColorKey string // for RequestRename
}

// Pending returns the outstanding request, if any.
func (e *Engine) Pending() (Request, bool) {
	return e.pending, e.pending.Kind != RequestNone
}

func (e *Engine) request(r Request) {
	e.pending = r
	e.emit(EventRequest, r)
	e.setHint(r.Prompt)
}

func (e *Engine) guardPending(op string) error {
	if e.pending.Kind == RequestNone {
		return nil
	}
	return e.refuse(op, ErrAwaitingInput, "Answer or cancel the open prompt first")
}

// Submit answers the pending request with free text.
func (e *Engine) Submit(text string) error {
	req := e.pending
	e.pending = Request{}

	switch req.Kind {
	case RequestCalibrationDistance:
		return e.completeCalibration(text)
	case RequestRename:
		return e.renameColor(req.ColorKey, text)
	default:
		return e.refuse("submit", ErrNoRequest, "Nothing is waiting for input")
	}
}

// Cancel withdraws the pending request. With no request open it returns the
// engine to Idle, discarding any draft or probe.
func (e *Engine) Cancel() {
	req := e.pending
	e.pending = Request{}

	switch req.Kind {
	case RequestCalibrationDistance:
		e.setMode(ModeIdle)
		e.setHint("Scale calibration cancelled")
	case RequestRename:
		e.setHint("Rename cancelled")
	default:
		e.setMode(ModeIdle)
		e.setHint("")
	}
}

// RequestRename opens a rename prompt for the selected colour.
func (e *Engine) RequestRename() error {
	if err := e.guardPending("rename"); err != nil {
		return err
	}
	e.request(Request{
		Kind:     RequestRename,
		Prompt:   "Enter a name for this color",
		Default:  e.palette.ResolveName(e.selected),
		ColorKey: e.selected,
	})
	return nil
}

// RenameColor sets a colour's display name and relabels its regions.
func (e *Engine) RenameColor(colorKey, name string) error {
	if err := e.guardPending("rename"); err != nil {
		return err
	}
	return e.renameColor(colorKey, name)
}

func (e *Engine) renameColor(colorKey, name string) error {
	err := e.palette.Rename(colorKey, name)
	switch {
	case errors.Is(err, palette.ErrInvalidText):
		return e.refuse("rename", err, "Names cannot contain control characters")
	case err != nil:
		return e.refuse("rename", err, "Enter a name")
	}
	resolved := e.palette.ResolveName(colorKey)
	n := e.doc.RelabelColor(colorKey, resolved)
	e.log.Debug("color renamed", "color", colorKey, "name", resolved, "regions", n)
	e.emit(EventPaletteChanged, e.palette.Entries())
	e.changed()
	e.setHint(fmt.Sprintf("Renamed color to %q", resolved))
	return nil
}

func (e *Engine) completeCalibration(text string) error {
	mpp, err := e.calib.Complete(text)
	e.setMode(ModeIdle)
	switch {
	case errors.Is(err, calibration.ErrCancelled):
		return e.refuse("calibrate", err, "Scale calibration cancelled")
	case err != nil:
		return e.refuse("calibrate", err, "Enter a valid number (e.g. 12.5)")
	}
	if err := e.doc.SetMetersPerPixel(mpp); err != nil {
		return e.refuse("calibrate", err, "Enter a valid number (e.g. 12.5)")
	}
	e.log.Debug("calibrated", "meters_per_pixel", mpp)
	e.emit(EventCalibrated, mpp)
	e.changed()
	e.setHint(fmt.Sprintf("Scale set: 1px = %.4f m", mpp))
	return nil
}
