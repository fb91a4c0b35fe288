package svgdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"region-tracer/internal/calibration"
	"region-tracer/internal/document"
	"region-tracer/internal/palette"
	"region-tracer/pkg/colorutil"
	"region-tracer/pkg/geometry"

	"golang.org/x/net/html/charset"
)

// ErrNoRoot is returned when the input has no <svg> element.
var ErrNoRoot = errors.New("svgdoc: no <svg> root element")

// ParseError wraps a markup syntax error that aborts the import.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("svgdoc: malformed document: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Size is a canvas size in pixels.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DefaultSize is the canvas used when neither the document nor the caller
// supplies one.
var DefaultSize = Size{Width: 800, Height: 600}

// Result is a parsed document plus what the palette should learn from it.
type Result struct {
	Document *document.Document
	// Palette maps each distinct colour key to its first-seen name, in order.
	Palette []palette.Entry
	// Skipped counts polygons dropped for having fewer than 3 valid points.
	Skipped int
}

// Decode parses a canonical document. fallback supplies the canvas size when
// the root carries none.
func Decode(r io.Reader, fallback Size) (*Result, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	root, err := findRoot(dec)
	if err != nil {
		return nil, err
	}

	w, h := canvasSize(root)
	if w <= 0 || h <= 0 {
		w, h = fallback.Width, fallback.Height
	}
	if w <= 0 || h <= 0 {
		w, h = DefaultSize.Width, DefaultSize.Height
	}
	doc := document.New(w, h, "")
	if mpp, err := strconv.ParseFloat(strings.TrimSpace(attr(root, attrMetersPerPixel)), 64); err == nil && calibration.Valid(mpp) {
		_ = doc.SetMetersPerPixel(mpp)
	}

	res := &Result{Document: doc}
	seen := make(map[string]bool)
	imageSeen := false
	depth := 1

	for depth > 0 {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, &ParseError{Err: io.ErrUnexpectedEOF}
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			switch el.Name.Local {
			case "image":
				if !imageSeen {
					imageSeen = true
					doc.ImageRef = imageHref(el)
				}
			case "polygon":
				region, ok := parsePolygon(el)
				if !ok {
					res.Skipped++
					continue
				}
				_ = doc.Add(region)
				key := colorutil.NormalizeKey(region.Color)
				if key != "" && !seen[key] {
					seen[key] = true
					res.Palette = append(res.Palette, palette.Entry{Color: key, Name: region.Name})
				}
			}
		case xml.EndElement:
			depth--
		}
	}
	return res, nil
}

func findRoot(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return xml.StartElement{}, ErrNoRoot
		}
		if err != nil {
			return xml.StartElement{}, &ParseError{Err: err}
		}
		if el, ok := tok.(xml.StartElement); ok && el.Name.Local == "svg" {
			return el, nil
		}
	}
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}

// imageHref prefers a plain href and falls back to xlink:href.
func imageHref(el xml.StartElement) string {
	if v := attr(el, "href"); v != "" {
		return v
	}
	for _, a := range el.Attr {
		if a.Name.Local == "href" && a.Value != "" {
			return a.Value
		}
	}
	return ""
}

func canvasSize(root xml.StartElement) (int, int) {
	w := parseDimension(attr(root, "width"))
	h := parseDimension(attr(root, "height"))
	if w > 0 && h > 0 {
		return w, h
	}
	fields := strings.FieldsFunc(attr(root, "viewBox"), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 4 {
		if w <= 0 {
			w = parseDimension(fields[2])
		}
		if h <= 0 {
			h = parseDimension(fields[3])
		}
	}
	return w, h
}

func parseDimension(s string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return int(math.Round(v))
}

func parsePolygon(el xml.StartElement) (*document.Region, bool) {
	points := ParsePoints(attr(el, "points"))
	if len(points) < document.MinPoints {
		return nil, false
	}
	color := attr(el, attrColor)
	if color == "" {
		color = attr(el, "fill")
	}
	if color == "" {
		color = colorutil.DefaultColor
	}
	name := attr(el, attrName)
	if name == "" {
		name = color
	}
	region, err := document.NewRegion(points, color, name)
	if err != nil {
		return nil, false
	}
	return region, true
}

// ParsePoints reads a whitespace-separated list of "x,y" pairs, dropping
// any pair that is not exactly two finite numbers.
func ParsePoints(s string) []geometry.Point2D {
	var out []geometry.Point2D
	for _, pair := range strings.Fields(s) {
		xy := strings.Split(pair, ",")
		if len(xy) != 2 {
			continue
		}
		x, errX := strconv.ParseFloat(xy[0], 64)
		y, errY := strconv.ParseFloat(xy[1], 64)
		if errX != nil || errY != nil || !finite(x) || !finite(y) {
			continue
		}
		out = append(out, geometry.Point2D{X: x, Y: y})
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
