package app

import (
	"errors"
	"fmt"

	"region-tracer/internal/calibration"
	"region-tracer/internal/document"
	"region-tracer/internal/draft"
	"region-tracer/pkg/geometry"
)

func (e *Engine) guardLoaded(op string) error {
	if !e.loaded {
		return e.refuse(op, ErrNoImage, "Load an image first")
	}
	return nil
}

// StartDrawing begins a new draft region.
func (e *Engine) StartDrawing() error {
	if err := e.guardPending("start-drawing"); err != nil {
		return err
	}
	if err := e.guardLoaded("start-drawing"); err != nil {
		return err
	}
	if e.mode == ModeScaleCalibration {
		return e.refuse("start-drawing", ErrCalibrating,
			"Finish scale calibration first (click two points, then enter the distance)")
	}
	e.setMode(ModeDrawing)
	e.draft.Begin()
	e.setHint("Click to add vertices. Confirm once there are 3 or more.")
	return nil
}

// ToggleColorAssign enters ColorAssign, or leaves it for Idle when already
// active.
func (e *Engine) ToggleColorAssign() error {
	if err := e.guardPending("color-assign"); err != nil {
		return err
	}
	if e.mode == ModeColorAssign {
		e.setMode(ModeIdle)
		e.setHint("")
		return nil
	}
	if err := e.guardLoaded("color-assign"); err != nil {
		return err
	}
	e.setMode(ModeColorAssign)
	e.setHint("Click a region to recolor it")
	return nil
}

// StartScaleCalibration begins a two-point calibration attempt. An existing
// scale stays in effect until the attempt succeeds.
func (e *Engine) StartScaleCalibration() error {
	if err := e.guardPending("calibrate"); err != nil {
		return err
	}
	if err := e.guardLoaded("calibrate"); err != nil {
		return err
	}
	e.setMode(ModeScaleCalibration)
	e.calib.Begin()
	e.setHint("Scale: click any two points")
	return nil
}

// StartDelete enters Delete mode. It is refused when there is nothing to
// delete.
func (e *Engine) StartDelete() error {
	if err := e.guardPending("start-delete"); err != nil {
		return err
	}
	if e.doc.Len() == 0 {
		return e.refuse("start-delete", ErrNoRegions, "There are no regions to delete")
	}
	e.setMode(ModeDelete)
	e.setHint("Click the region to delete")
	return nil
}

// ConfirmRegion commits the draft with the selected colour and returns to
// Idle. With fewer than three vertices the draft is kept as is.
func (e *Engine) ConfirmRegion() (*document.Region, error) {
	if err := e.guardPending("confirm"); err != nil {
		return nil, err
	}
	if e.mode != ModeDrawing {
		return nil, e.refuse("confirm", draft.ErrNotActive, "Press start drawing first")
	}
	r, err := e.draft.Close(e.selected, e.palette.ResolveName(e.selected))
	if err != nil {
		return nil, e.refuse("confirm", err, "Add at least 3 vertices")
	}
	if err := e.doc.Add(r); err != nil {
		return nil, e.refuse("confirm", err, "Add at least 3 vertices")
	}
	e.log.Debug("region added", "id", r.ID, "points", len(r.Points), "color", r.Color)
	e.setMode(ModeIdle)
	e.changed()
	e.setHint(fmt.Sprintf("Region %q added", r.Name))
	return r, nil
}

// UndoVertex removes the last draft vertex.
func (e *Engine) UndoVertex() error {
	if e.mode != ModeDrawing {
		return e.refuse("undo", draft.ErrNothingToUndo, "No vertex to undo")
	}
	if err := e.draft.Undo(); err != nil {
		return e.refuse("undo", err, "No vertex to undo")
	}
	e.emit(EventShapesChanged, e.Shapes())
	return nil
}

// Click routes a canvas click by mode. Coordinates are clamped to the canvas
// and rounded to one decimal place first. Clicks in Idle are ignored.
func (e *Engine) Click(x, y float64) error {
	if err := e.guardPending("click"); err != nil {
		return err
	}
	p := geometry.NewPoint2D(x, y).Clamp(float64(e.doc.Width), float64(e.doc.Height)).Round1()

	switch e.mode {
	case ModeDrawing:
		return e.clickDrawing(p)
	case ModeColorAssign:
		return e.clickColorAssign(p)
	case ModeDelete:
		return e.clickDelete(p)
	case ModeScaleCalibration:
		return e.clickCalibration(p)
	}
	return nil
}

func (e *Engine) clickDrawing(p geometry.Point2D) error {
	snapped := draft.Snap(p, e.doc, e.cfg.SnapThreshold)
	if snapped != p {
		e.log.Debug("vertex snapped", "from", p, "to", snapped)
	}
	e.draft.AddVertex(snapped)
	e.emit(EventShapesChanged, e.Shapes())
	if e.draft.CanClose() {
		e.setHint(fmt.Sprintf("%d vertices. Confirm to close the region", e.draft.Len()))
	}
	return nil
}

func (e *Engine) clickColorAssign(p geometry.Point2D) error {
	if e.doc.Len() == 0 {
		return e.refuse("recolor", ErrNoRegions, "No regions yet. Create a region first")
	}
	r := e.doc.RegionAt(p)
	if r == nil {
		return e.refuse("recolor", ErrNoRegionAtPoint, "Click inside a region")
	}
	e.doc.Recolor(r.ID, e.selected, e.palette.ResolveName(e.selected))
	e.changed()
	e.setHint("Color changed")
	return nil
}

func (e *Engine) clickDelete(p geometry.Point2D) error {
	r := e.doc.RegionAt(p)
	if r == nil {
		return e.refuse("delete", ErrNoRegionAtPoint, "Click inside a region")
	}
	e.doc.Remove(r.ID)
	e.log.Debug("region deleted", "id", r.ID)
	e.setMode(ModeIdle)
	e.changed()
	e.setHint("Region deleted")
	return nil
}

func (e *Engine) clickCalibration(p geometry.Point2D) error {
	step, err := e.calib.AddProbePoint(p)
	switch {
	case errors.Is(err, calibration.ErrZeroDistance):
		e.setMode(ModeIdle)
		return e.refuse("calibrate", err, "Distance is 0px. Pick two different points")
	case err != nil:
		return e.refuse("calibrate", err, "Scale: click any two points")
	}

	e.emit(EventShapesChanged, e.Shapes())
	if step == calibration.StepNeedSecondPoint {
		e.setHint("Click one more point")
		return nil
	}
	e.request(Request{
		Kind:   RequestCalibrationDistance,
		Prompt: fmt.Sprintf("Enter the real distance between the points (m). Pixel distance: %.1fpx", e.calib.PixelDistance()),
	})
	return nil
}
