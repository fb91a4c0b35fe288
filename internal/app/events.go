package app

// EventType identifies different engine events.
type EventType int

const (
	EventHint           EventType = iota // data: string
	EventModeChanged                     // data: Mode
	EventShapesChanged                   // data: canvas.Overlay
	EventDocumentLoaded                  // data: *document.Document
	EventCalibrated                      // data: float64 metres per pixel
	EventRequest                         // data: Request
	EventPaletteChanged                  // data: []palette.Entry
	EventSummaryChanged                  // data: []document.AreaTotal
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// On registers an event listener for the specified event type.
func (e *Engine) On(event EventType, listener EventListener) {
	e.listeners[event] = append(e.listeners[event], listener)
}

func (e *Engine) emit(event EventType, data interface{}) {
	for _, listener := range e.listeners[event] {
		listener(data)
	}
}

func (e *Engine) setHint(msg string) {
	e.hint = msg
	e.emit(EventHint, msg)
}

// refuse reports a failed operation: hint for the user, log for the operator.
func (e *Engine) refuse(op string, err error, msg string) error {
	e.log.Info("operation refused", "op", op, "mode", e.mode, "err", err)
	e.setHint(msg)
	return err
}

// changed notifies renderers and summary views after a mutation.
func (e *Engine) changed() {
	e.emit(EventShapesChanged, e.Shapes())
	e.emit(EventSummaryChanged, e.doc.AreaSummary())
}
