package app

// Mode is the interaction mode. Exactly one is active at a time.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModeColorAssign
	ModeScaleCalibration
	ModeDelete
)

func (m Mode) String() string {
	switch m {
	case ModeDrawing:
		return "drawing"
	case ModeColorAssign:
		return "color-assign"
	case ModeScaleCalibration:
		return "scale-calibration"
	case ModeDelete:
		return "delete"
	default:
		return "idle"
	}
}

// setMode leaves the current mode and enters m. Leaving discards the draft
// and any calibration attempt in progress.
func (e *Engine) setMode(m Mode) {
	old := e.mode
	e.draft.Reset()
	e.calib.Cancel()
	e.mode = m
	if old != m {
		e.log.Debug("mode changed", "from", old, "to", m)
		e.emit(EventModeChanged, m)
	}
	e.emit(EventShapesChanged, e.Shapes())
}
