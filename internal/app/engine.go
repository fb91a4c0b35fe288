// Package app is the interaction controller: it owns the document, routes
// clicks by mode and reports advisory hints.
package app

import (
	"bytes"
	"errors"
	"io"
	"log/slog"

	"region-tracer/internal/calibration"
	"region-tracer/internal/config"
	"region-tracer/internal/document"
	"region-tracer/internal/draft"
	"region-tracer/internal/image"
	"region-tracer/internal/logging"
	"region-tracer/internal/palette"
	"region-tracer/internal/svgdoc"
	"region-tracer/pkg/colorutil"
	"region-tracer/pkg/geometry"
	"region-tracer/ui/canvas"
)

var (
	ErrNoImage         = errors.New("no image loaded")
	ErrCalibrating     = errors.New("scale calibration in progress")
	ErrNoRegions       = errors.New("no regions")
	ErrNoRegionAtPoint = errors.New("no region under click")
	ErrAwaitingInput   = errors.New("waiting for prompt input")
	ErrNoRequest       = errors.New("no pending request")
)

// Engine is the single owner of annotation state. It is not safe for
// concurrent use; the host serialises calls.
type Engine struct {
	cfg     config.Config
	log     *slog.Logger
	palette *palette.Registry

	doc    *document.Document
	loaded bool // an image or document has been loaded

	draft    draft.Builder
	calib    calibration.Unit
	mode     Mode
	selected string
	pending  Request
	hint     string

	listeners map[EventType][]EventListener
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces the default configuration.
func WithConfig(cfg config.Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithLogger sets the logger. nil keeps the no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an engine with an empty, image-less document.
func New(opts ...Option) *Engine {
	e := &Engine{
		cfg:       config.Default(),
		log:       logging.NewNop(),
		listeners: make(map[EventType][]EventListener),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.palette = palette.New(e.cfg.Palette...)
	e.selected = colorutil.NormalizeKey(e.cfg.DefaultColor)
	e.palette.RegisterIfAbsent(e.selected, e.selected)
	e.doc = document.New(e.cfg.DefaultCanvas.Width, e.cfg.DefaultCanvas.Height, "")
	return e
}

// Reset drops the document and returns to the unloaded state. The palette
// is kept.
func (e *Engine) Reset() {
	e.pending = Request{}
	e.setMode(ModeIdle)
	e.doc = document.New(e.cfg.DefaultCanvas.Width, e.cfg.DefaultCanvas.Height, "")
	e.loaded = false
	e.changed()
}

// Mode returns the active mode.
func (e *Engine) Mode() Mode { return e.mode }

// Hint returns the latest advisory message.
func (e *Engine) Hint() string { return e.hint }

// Document returns the current document.
func (e *Engine) Document() *document.Document { return e.doc }

// Palette returns the palette registry.
func (e *Engine) Palette() *palette.Registry { return e.palette }

// Loaded reports whether an image or document is available to edit.
func (e *Engine) Loaded() bool { return e.loaded }

// Draft returns the vertices of the region being drawn.
func (e *Engine) Draft() []geometry.Point2D { return e.draft.Points() }

// Probe returns the calibration probe points placed so far.
func (e *Engine) Probe() []geometry.Point2D { return e.calib.Probe() }

// CanConfirm reports whether ConfirmRegion would succeed.
func (e *Engine) CanConfirm() bool { return e.mode == ModeDrawing && e.draft.CanClose() }

// CanUndo reports whether UndoVertex would succeed.
func (e *Engine) CanUndo() bool { return e.mode == ModeDrawing && e.draft.Len() > 0 }

// CanExport reports whether there is anything to export.
func (e *Engine) CanExport() bool { return e.doc.Len() > 0 }

// Selected returns the selected colour key and its display name.
func (e *Engine) Selected() (string, string) {
	return e.selected, e.palette.ResolveName(e.selected)
}

// Shapes projects the current state for the renderer.
func (e *Engine) Shapes() canvas.Overlay {
	return canvas.Project(e.doc, e.draft.Points(), e.calib.Probe(), e.selected)
}

// SelectColor makes c the colour for new and recoloured regions, registering
// it when unknown. A blank colour is ignored.
func (e *Engine) SelectColor(c string) error {
	key := colorutil.NormalizeKey(c)
	if key == "" {
		return nil
	}
	if !palette.ValidText(key) {
		return e.refuse("select-color", palette.ErrInvalidText, "Choose a valid color")
	}
	if e.palette.RegisterIfAbsent(key, key) {
		e.emit(EventPaletteChanged, e.palette.Entries())
	}
	e.selected = key
	e.emit(EventShapesChanged, e.Shapes())
	return nil
}

// LoadImage installs a new reference photo, replacing the document.
// Rejected input leaves everything unchanged.
func (e *Engine) LoadImage(data []byte, mediaType string) error {
	if err := e.guardPending("load-image"); err != nil {
		return err
	}
	src, err := image.Load(data, mediaType, e.cfg.ImageTypes)
	if errors.Is(err, image.ErrUnsupportedType) {
		return e.refuse("load-image", err, "Choose a PNG or JPEG image")
	}
	if err != nil {
		return e.refuse("load-image", err, "Could not read the image")
	}

	w, h := src.Fit(e.cfg.MaxCanvasWidth)
	e.replaceDocument(document.New(w, h, src.DataURI))
	e.log.Debug("image loaded", "format", src.Format, "natural_w", src.Width, "natural_h", src.Height, "canvas_w", w, "canvas_h", h)
	e.setHint("Press start drawing to trace a region")
	return nil
}

// Import replaces the document with a parsed canonical SVG. name is the file
// name, used when the media type is blank or generic.
func (e *Engine) Import(data []byte, mediaType, name string) error {
	if err := e.guardPending("import"); err != nil {
		return err
	}
	if !image.IsDocumentType(mediaType, name) {
		return e.refuse("import", image.ErrUnsupportedType, "Choose an SVG file")
	}

	fallback := e.cfg.DefaultCanvas
	if e.loaded {
		fallback = svgdoc.Size{Width: e.doc.Width, Height: e.doc.Height}
	}
	res, err := svgdoc.Decode(bytes.NewReader(data), fallback)
	if err != nil {
		return e.refuse("import", err, "Could not parse the SVG")
	}
	if res.Skipped > 0 {
		e.log.Warn("skipped polygons with fewer than 3 valid points", "count", res.Skipped)
	}

	e.replaceDocument(res.Document)
	e.palette.Apply(res.Palette)
	e.emit(EventPaletteChanged, e.palette.Entries())
	e.setHint("SVG loaded. You can keep editing the regions")
	return nil
}

func (e *Engine) replaceDocument(doc *document.Document) {
	e.pending = Request{}
	e.setMode(ModeIdle)
	e.doc = doc
	e.loaded = true
	e.emit(EventDocumentLoaded, doc)
	e.changed()
}

// Export serializes the document. An empty document is refused.
func (e *Engine) Export() ([]byte, error) {
	if e.doc.Len() == 0 {
		return nil, e.refuse("export", ErrNoRegions, "There are no regions to save")
	}
	return svgdoc.Marshal(e.doc)
}

// ExportTo writes the serialized document to w.
func (e *Engine) ExportTo(w io.Writer) error {
	data, err := e.Export()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// CalculateAreas returns the per-colour area summary.
func (e *Engine) CalculateAreas() ([]document.AreaTotal, error) {
	if e.doc.Len() == 0 {
		return nil, e.refuse("areas", ErrNoRegions, "No regions yet. Create a region first")
	}
	totals := e.doc.AreaSummary()
	e.emit(EventSummaryChanged, totals)
	e.setHint("Calculated area per color")
	return totals, nil
}
