// Package svgdoc reads and writes the canonical SVG annotation document: the
// canvas size, optional embedded image, calibration scale and one polygon per
// region.
package svgdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"region-tracer/internal/document"
	"region-tracer/internal/palette"
)

const (
	svgNS       = "http://www.w3.org/2000/svg"
	fillOpacity = "0.32"
	strokeWidth = "2"

	attrMetersPerPixel = "data-meters-per-pixel"
	attrColor          = "data-color"
	attrName           = "data-name"
)

// ErrEmptyDocument is returned when asked to export a document with no regions.
var ErrEmptyDocument = errors.New("svgdoc: document has no regions")

// Whitespace is written as character references so attribute value
// normalisation on import leaves it intact.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"\r", "&#xD;",
	"\n", "&#xA;",
	"\t", "&#x9;",
)

// escape quotes s for an attribute value. Invalid UTF-8 and characters XML
// cannot carry become U+FFFD.
func escape(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	s = strings.Map(func(r rune) rune {
		if palette.IsXMLChar(r) {
			return r
		}
		return '\uFFFD'
	}, s)
	return attrEscaper.Replace(s)
}

// FormatNumber renders a coordinate or scale in shortest round-trip form
// without exponent.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Marshal serializes doc. Output is deterministic for a given document.
func Marshal(doc *document.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes doc to w.
func Write(w io.Writer, doc *document.Document) error {
	if doc == nil || doc.Len() == 0 {
		return ErrEmptyDocument
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg xmlns="%s" width="%d" height="%d" viewBox="0 0 %d %d"`,
		svgNS, doc.Width, doc.Height, doc.Width, doc.Height)
	if mpp, ok := doc.MetersPerPixel(); ok {
		fmt.Fprintf(&b, ` %s="%s"`, attrMetersPerPixel, FormatNumber(mpp))
	}
	b.WriteString(">\n")

	if doc.HasImage() {
		fmt.Fprintf(&b, `  <image href="%s" width="%d" height="%d" />`+"\n",
			escape(doc.ImageRef), doc.Width, doc.Height)
	}

	for _, r := range doc.Regions() {
		color := escape(r.Color)
		fmt.Fprintf(&b, `  <polygon points="%s" fill="%s" fill-opacity="%s" stroke="%s" stroke-width="%s" %s="%s" %s="%s" />`+"\n",
			escape(formatPoints(r)), color, fillOpacity, color, strokeWidth,
			attrColor, color, attrName, escape(r.Name))
	}
	b.WriteString("</svg>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func formatPoints(r *document.Region) string {
	parts := make([]string, len(r.Points))
	for i, p := range r.Points {
		parts[i] = FormatNumber(p.X) + "," + FormatNumber(p.Y)
	}
	return strings.Join(parts, " ")
}
